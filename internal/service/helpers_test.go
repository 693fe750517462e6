package service

import (
	"context"
	"quiz_assessment_backend/internal/model"
	"quiz_assessment_backend/internal/repository"
	"quiz_assessment_backend/pkg/database"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type fixture struct {
	db        *gorm.DB
	results   *repository.ResultRepository
	projects  *repository.ProjectRepository
	questions *repository.QuestionRepository
}

// ---------- 初始化测试环境 ----------
func setupFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.Migrate(db))

	return &fixture{
		db:        db,
		results:   repository.NewResultRepository(db),
		projects:  repository.NewProjectRepository(db),
		questions: repository.NewQuestionRepository(db),
	}
}

func (f *fixture) project(t *testing.T, name, code string, status model.ProjectStatus) *model.Project {
	t.Helper()
	p := &model.Project{Name: name, AccessCode: code, Status: status}
	require.NoError(t, f.projects.Create(context.Background(), p))
	return p
}

func (f *fixture) question(t *testing.T, projectID uint, number int, correct, skill, category string) *model.Question {
	t.Helper()
	q := &model.Question{
		ProjectID:      projectID,
		QuestionNumber: number,
		QuestionText:   "question",
		Options:        model.EncodeOptions([]string{"A", "B", "C"}),
		CorrectAnswer:  correct,
		Skill:          skill,
		Category:       category,
	}
	require.NoError(t, f.questions.Create(context.Background(), q))
	return q
}

func strPtr(s string) *string     { return &s }
func intPtr(i int) *int           { return &i }
func uintPtr(u uint) *uint        { return &u }
func floatPtr(f float64) *float64 { return &f }
