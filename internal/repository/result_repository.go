package repository

import (
	"context"
	"quiz_assessment_backend/internal/model"

	"gorm.io/gorm"
)

type ResultRepository struct {
	DB *gorm.DB
}

func NewResultRepository(db *gorm.DB) *ResultRepository {
	return &ResultRepository{DB: db}
}

// Create 答卷和逐题记录在一个事务中写入
func (r *ResultRepository) Create(ctx context.Context, result *model.Result) error {
	return wrapErr(r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(result).Error
	}))
}

// ListByProject projectID 为 0 时返回全部；按完成时间倒序
func (r *ResultRepository) ListByProject(ctx context.Context, projectID uint) ([]model.Result, error) {
	var results []model.Result
	query := r.DB.WithContext(ctx).
		Preload("Answers", func(db *gorm.DB) *gorm.DB {
			return db.Order("question_number asc")
		})
	if projectID > 0 {
		query = query.Where("project_id = ?", projectID)
	}
	err := query.Order("completed_at desc, created_at desc").Find(&results).Error
	return results, wrapErr(err)
}

// DeleteAll projectID 为 0 时清空全部答卷，返回删除条数
func (r *ResultRepository) DeleteAll(ctx context.Context, projectID uint) (int64, error) {
	var deleted int64
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		resultQuery := tx.Model(&model.Result{}).Select("id")
		deleteQuery := tx.Session(&gorm.Session{AllowGlobalUpdate: true})
		if projectID > 0 {
			resultQuery = resultQuery.Where("project_id = ?", projectID)
			deleteQuery = deleteQuery.Where("project_id = ?", projectID)
		}

		if err := tx.Where("result_id IN (?)", resultQuery).Delete(&model.ResultAnswer{}).Error; err != nil {
			return err
		}
		res := deleteQuery.Delete(&model.Result{})
		if res.Error != nil {
			return res.Error
		}
		deleted = res.RowsAffected
		return nil
	})
	if err != nil {
		return 0, wrapErr(err)
	}
	return deleted, nil
}

func (r *ResultRepository) DeleteByID(ctx context.Context, id string) (bool, error) {
	var deleted bool
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("result_id = ?", id).Delete(&model.ResultAnswer{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&model.Result{})
		if res.Error != nil {
			return res.Error
		}
		deleted = res.RowsAffected > 0
		return nil
	})
	if err != nil {
		return false, wrapErr(err)
	}
	return deleted, nil
}
