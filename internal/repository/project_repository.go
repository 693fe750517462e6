package repository

import (
	"context"
	"quiz_assessment_backend/internal/model"
	"strings"

	"gorm.io/gorm"
)

type ProjectRepository struct {
	DB *gorm.DB
}

func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{DB: db}
}

func (r *ProjectRepository) Create(ctx context.Context, p *model.Project) error {
	return wrapErr(r.DB.WithContext(ctx).Create(p).Error)
}

func (r *ProjectRepository) FindByID(ctx context.Context, id uint) (*model.Project, error) {
	var p model.Project
	if err := r.DB.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, wrapErr(err)
	}
	return &p, nil
}

// FindActiveByAccessCode 访问码不区分大小写
func (r *ProjectRepository) FindActiveByAccessCode(ctx context.Context, code string) (*model.Project, error) {
	var p model.Project
	err := r.DB.WithContext(ctx).
		Where("UPPER(access_code) = ? AND status = ?", strings.ToUpper(code), model.ProjectActive).
		First(&p).Error
	if err != nil {
		return nil, wrapErr(err)
	}
	return &p, nil
}

func (r *ProjectRepository) AccessCodeExists(ctx context.Context, code string) (bool, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.Project{}).
		Where("UPPER(access_code) = ?", strings.ToUpper(code)).
		Count(&count).Error
	return count > 0, wrapErr(err)
}

func (r *ProjectRepository) List(ctx context.Context) ([]model.Project, error) {
	var ps []model.Project
	err := r.DB.WithContext(ctx).Order("created_at desc, id desc").Find(&ps).Error
	return ps, wrapErr(err)
}

// Names 返回 id -> 名称映射，导出时使用
func (r *ProjectRepository) Names(ctx context.Context) (map[uint]string, error) {
	ps, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[uint]string, len(ps))
	for _, p := range ps {
		names[p.ID] = p.Name
	}
	return names, nil
}

func (r *ProjectRepository) Update(ctx context.Context, p *model.Project) error {
	return wrapErr(r.DB.WithContext(ctx).Save(p).Error)
}

func (r *ProjectRepository) UpdateStatus(ctx context.Context, id uint, status model.ProjectStatus) error {
	res := r.DB.WithContext(ctx).Model(&model.Project{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return wrapErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return wrapErr(gorm.ErrRecordNotFound)
	}
	return nil
}

type countRow struct {
	ProjectID uint
	Count     int64
}

func (r *ProjectRepository) countBy(ctx context.Context, table interface{}) (map[uint]int64, error) {
	var rows []countRow
	err := r.DB.WithContext(ctx).Model(table).
		Select("project_id, COUNT(*) as count").
		Group("project_id").
		Scan(&rows).Error
	if err != nil {
		return nil, wrapErr(err)
	}
	counts := make(map[uint]int64, len(rows))
	for _, row := range rows {
		counts[row.ProjectID] = row.Count
	}
	return counts, nil
}

// ListSummaries 项目列表附带题目数和提交数
func (r *ProjectRepository) ListSummaries(ctx context.Context) ([]model.ProjectSummary, error) {
	ps, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	questionCounts, err := r.countBy(ctx, &model.Question{})
	if err != nil {
		return nil, err
	}
	resultCounts, err := r.countBy(ctx, &model.Result{})
	if err != nil {
		return nil, err
	}

	summaries := make([]model.ProjectSummary, len(ps))
	for i, p := range ps {
		summaries[i] = model.ProjectSummary{
			Project:       p,
			QuestionCount: questionCounts[p.ID],
			ResultCount:   resultCounts[p.ID],
		}
	}
	return summaries, nil
}

// DeleteCascade 在同一事务中删除项目及其题目、答卷
func (r *ProjectRepository) DeleteCascade(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var p model.Project
		if err := tx.First(&p, id).Error; err != nil {
			return wrapErr(err)
		}

		resultIDs := tx.Model(&model.Result{}).Select("id").Where("project_id = ?", id)
		if err := tx.Where("result_id IN (?)", resultIDs).Delete(&model.ResultAnswer{}).Error; err != nil {
			return wrapErr(err)
		}
		if err := tx.Where("project_id = ?", id).Delete(&model.Result{}).Error; err != nil {
			return wrapErr(err)
		}
		if err := tx.Where("project_id = ?", id).Delete(&model.Question{}).Error; err != nil {
			return wrapErr(err)
		}
		return wrapErr(tx.Delete(&p).Error)
	})
}
