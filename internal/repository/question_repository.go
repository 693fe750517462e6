package repository

import (
	"context"
	"quiz_assessment_backend/internal/model"

	"gorm.io/gorm"
)

type QuestionRepository struct {
	DB *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) *QuestionRepository {
	return &QuestionRepository{DB: db}
}

func (r *QuestionRepository) Create(ctx context.Context, q *model.Question) error {
	return wrapErr(r.DB.WithContext(ctx).Create(q).Error)
}

// CreateBatch 批量写入，全部成功或全部失败
func (r *QuestionRepository) CreateBatch(ctx context.Context, qs []model.Question) error {
	if len(qs) == 0 {
		return nil
	}
	return wrapErr(r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&qs).Error
	}))
}

func (r *QuestionRepository) FindByID(ctx context.Context, id uint) (*model.Question, error) {
	var q model.Question
	if err := r.DB.WithContext(ctx).First(&q, id).Error; err != nil {
		return nil, wrapErr(err)
	}
	return &q, nil
}

// ListByProject projectID 为 0 时返回全部
func (r *QuestionRepository) ListByProject(ctx context.Context, projectID uint) ([]model.Question, error) {
	var qs []model.Question
	query := r.DB.WithContext(ctx).Model(&model.Question{})
	if projectID > 0 {
		query = query.Where("project_id = ?", projectID)
	}
	err := query.Order("project_id asc, question_number asc").Find(&qs).Error
	return qs, wrapErr(err)
}

func (r *QuestionRepository) FindByIDs(ctx context.Context, projectID uint, ids []uint) ([]model.Question, error) {
	var qs []model.Question
	err := r.DB.WithContext(ctx).
		Where("project_id = ? AND id IN ?", projectID, ids).
		Order("question_number asc").
		Find(&qs).Error
	return qs, wrapErr(err)
}

func (r *QuestionRepository) MaxQuestionNumber(ctx context.Context, projectID uint) (int, error) {
	var max int
	err := r.DB.WithContext(ctx).Model(&model.Question{}).
		Where("project_id = ?", projectID).
		Select("COALESCE(MAX(question_number), 0)").
		Scan(&max).Error
	return max, wrapErr(err)
}

// NumberTaken excludeID 用于更新时排除自身
func (r *QuestionRepository) NumberTaken(ctx context.Context, projectID uint, number int, excludeID uint) (bool, error) {
	var count int64
	query := r.DB.WithContext(ctx).Model(&model.Question{}).
		Where("project_id = ? AND question_number = ?", projectID, number)
	if excludeID > 0 {
		query = query.Where("id <> ?", excludeID)
	}
	err := query.Count(&count).Error
	return count > 0, wrapErr(err)
}

func (r *QuestionRepository) Update(ctx context.Context, q *model.Question) error {
	return wrapErr(r.DB.WithContext(ctx).Save(q).Error)
}

func (r *QuestionRepository) Delete(ctx context.Context, id uint) (bool, error) {
	res := r.DB.WithContext(ctx).Delete(&model.Question{}, id)
	if res.Error != nil {
		return false, wrapErr(res.Error)
	}
	return res.RowsAffected > 0, nil
}
