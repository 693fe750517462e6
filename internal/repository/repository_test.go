package repository

import (
	"context"
	"errors"
	"quiz_assessment_backend/internal/model"
	"quiz_assessment_backend/internal/util"
	"quiz_assessment_backend/pkg/database"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ---------- 初始化测试环境 ----------
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// 内存库每个连接独立，限制为单连接
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))
	return db
}

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	return db, mock
}

func createProject(t *testing.T, db *gorm.DB, name, code string) *model.Project {
	t.Helper()
	p := &model.Project{Name: name, AccessCode: code, Status: model.ProjectActive}
	require.NoError(t, NewProjectRepository(db).Create(context.Background(), p))
	return p
}

func newResult(projectID uint, name string, completedAt time.Time, answers ...model.ResultAnswer) *model.Result {
	return &model.Result{
		ParticipantName: name,
		ProjectID:       projectID,
		Period:          util.PeriodBaseline,
		CompletedAt:     completedAt,
		TotalScore:      len(answers),
		Percentage:      50,
		Answers:         answers,
	}
}

func TestResultRepository_CreateAndList(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := NewResultRepository(db)
	p := createProject(t, db, "Pilot", "ABC123")

	base := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	older := newResult(p.ID, "Ana", base, model.ResultAnswer{QuestionNumber: 2, UserAnswer: "B"}, model.ResultAnswer{QuestionNumber: 1, UserAnswer: "A"})
	newer := newResult(p.ID, "Ben", base.Add(time.Hour))
	require.NoError(t, repo.Create(ctx, older))
	require.NoError(t, repo.Create(ctx, newer))

	assert.NotEmpty(t, older.ID)
	assert.NotEqual(t, older.ID, newer.ID)

	results, err := repo.ListByProject(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "Ben", results[0].ParticipantName)
	assert.Equal(t, "Ana", results[1].ParticipantName)
	require.Len(t, results[1].Answers, 2)
	assert.Equal(t, 1, results[1].Answers[0].QuestionNumber)
	assert.Equal(t, 2, results[1].Answers[1].QuestionNumber)
}

func TestResultRepository_ListAllProjects(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := NewResultRepository(db)
	p1 := createProject(t, db, "One", "AAA111")
	p2 := createProject(t, db, "Two", "BBB222")

	now := time.Now().UTC()
	require.NoError(t, repo.Create(ctx, newResult(p1.ID, "Ana", now)))
	require.NoError(t, repo.Create(ctx, newResult(p2.ID, "Ben", now)))

	all, err := repo.ListByProject(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	only, err := repo.ListByProject(ctx, p2.ID)
	require.NoError(t, err)
	require.Len(t, only, 1)
	assert.Equal(t, "Ben", only[0].ParticipantName)
}

func TestResultRepository_Delete(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := NewResultRepository(db)
	p1 := createProject(t, db, "One", "AAA111")
	p2 := createProject(t, db, "Two", "BBB222")

	now := time.Now().UTC()
	r1 := newResult(p1.ID, "Ana", now, model.ResultAnswer{QuestionNumber: 1})
	require.NoError(t, repo.Create(ctx, r1))
	require.NoError(t, repo.Create(ctx, newResult(p1.ID, "Ben", now, model.ResultAnswer{QuestionNumber: 1})))
	require.NoError(t, repo.Create(ctx, newResult(p2.ID, "Cid", now)))

	ok, err := repo.DeleteByID(ctx, r1.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.DeleteByID(ctx, r1.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	n, err := repo.DeleteAll(ctx, p1.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	var answers int64
	db.Model(&model.ResultAnswer{}).Count(&answers)
	assert.Equal(t, int64(0), answers)

	n, err = repo.DeleteAll(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestResultRepository_StorageError(t *testing.T) {
	db, mock := setupMockDB(t)
	mock.ExpectQuery("SELECT").WillReturnError(errors.New("connection refused"))

	_, err := NewResultRepository(db).ListByProject(context.Background(), 1)
	assert.True(t, errors.Is(err, util.ErrStorage))
	assert.Contains(t, err.Error(), "connection refused")
}

func TestResultRepository_CreateRollsBack(t *testing.T) {
	db, mock := setupMockDB(t)
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `quiz_results`").WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	err := NewResultRepository(db).Create(context.Background(), newResult(1, "Ana", time.Now()))
	assert.True(t, errors.Is(err, util.ErrStorage))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProjectRepository_AccessCode(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := NewProjectRepository(db)
	p := createProject(t, db, "Pilot", "QWE123")

	found, err := repo.FindActiveByAccessCode(ctx, "qwe123")
	require.NoError(t, err)
	assert.Equal(t, p.ID, found.ID)

	exists, err := repo.AccessCodeExists(ctx, "qwe123")
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, repo.UpdateStatus(ctx, p.ID, model.ProjectClosed))
	_, err = repo.FindActiveByAccessCode(ctx, "QWE123")
	assert.True(t, errors.Is(err, util.ErrNotFound))

	err = repo.UpdateStatus(ctx, 999, model.ProjectClosed)
	assert.True(t, errors.Is(err, util.ErrNotFound))
}

func TestProjectRepository_DeleteCascade(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	projects := NewProjectRepository(db)
	questions := NewQuestionRepository(db)
	results := NewResultRepository(db)

	p := createProject(t, db, "Pilot", "CAS123")
	keep := createProject(t, db, "Other", "KEP123")

	require.NoError(t, questions.Create(ctx, &model.Question{ProjectID: p.ID, QuestionNumber: 1, QuestionText: "q1"}))
	require.NoError(t, questions.Create(ctx, &model.Question{ProjectID: keep.ID, QuestionNumber: 1, QuestionText: "q1"}))
	require.NoError(t, results.Create(ctx, newResult(p.ID, "Ana", time.Now().UTC(), model.ResultAnswer{QuestionNumber: 1})))
	require.NoError(t, results.Create(ctx, newResult(keep.ID, "Ben", time.Now().UTC())))

	summaries, err := projects.ListSummaries(ctx)
	require.NoError(t, err)
	require.Len(t, summaries, 2)
	for _, s := range summaries {
		assert.Equal(t, int64(1), s.QuestionCount)
		assert.Equal(t, int64(1), s.ResultCount)
	}

	require.NoError(t, projects.DeleteCascade(ctx, p.ID))

	left, err := results.ListByProject(ctx, p.ID)
	require.NoError(t, err)
	assert.Empty(t, left)

	qs, err := questions.ListByProject(ctx, p.ID)
	require.NoError(t, err)
	assert.Empty(t, qs)

	var answers int64
	db.Model(&model.ResultAnswer{}).Count(&answers)
	assert.Equal(t, int64(0), answers)

	other, err := results.ListByProject(ctx, keep.ID)
	require.NoError(t, err)
	assert.Len(t, other, 1)

	err = projects.DeleteCascade(ctx, p.ID)
	assert.True(t, errors.Is(err, util.ErrNotFound))
}

func TestQuestionRepository_Numbers(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := NewQuestionRepository(db)
	p := createProject(t, db, "Pilot", "NUM123")

	max, err := repo.MaxQuestionNumber(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, max)

	q := &model.Question{ProjectID: p.ID, QuestionNumber: 4, QuestionText: "q4", Options: model.EncodeOptions([]string{"a", "b"})}
	require.NoError(t, repo.Create(ctx, q))
	require.NoError(t, repo.CreateBatch(ctx, []model.Question{
		{ProjectID: p.ID, QuestionNumber: 5, QuestionText: "q5"},
		{ProjectID: p.ID, QuestionNumber: 6, QuestionText: "q6"},
	}))

	max, err = repo.MaxQuestionNumber(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 6, max)

	taken, err := repo.NumberTaken(ctx, p.ID, 4, 0)
	require.NoError(t, err)
	assert.True(t, taken)

	taken, err = repo.NumberTaken(ctx, p.ID, 4, q.ID)
	require.NoError(t, err)
	assert.False(t, taken)

	found, err := repo.FindByID(ctx, q.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, found.OptionList())

	ok, err := repo.Delete(ctx, q.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.Delete(ctx, q.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}
