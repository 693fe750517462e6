package service

import (
	"context"
	"errors"
	"quiz_assessment_backend/internal/model"
	"quiz_assessment_backend/internal/util"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuestionService_CreateNumbering(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()
	p := f.project(t, "Pilot", "QST123", model.ProjectActive)
	svc := NewQuestionService(f.questions, f.projects)

	q1, err := svc.Create(ctx, QuestionRequest{ProjectID: p.ID, QuestionText: "first", Options: []string{"A", "B"}, CorrectAnswer: "A"})
	require.NoError(t, err)
	assert.Equal(t, 1, q1.QuestionNumber)

	q5, err := svc.Create(ctx, QuestionRequest{ProjectID: p.ID, QuestionNumber: 5, QuestionText: "fifth"})
	require.NoError(t, err)
	assert.Equal(t, 5, q5.QuestionNumber)

	q6, err := svc.Create(ctx, QuestionRequest{ProjectID: p.ID, QuestionText: "next"})
	require.NoError(t, err)
	assert.Equal(t, 6, q6.QuestionNumber)

	_, err = svc.Create(ctx, QuestionRequest{ProjectID: p.ID, QuestionNumber: 5, QuestionText: "dup"})
	assert.True(t, errors.Is(err, util.ErrConflict))

	_, err = svc.Create(ctx, QuestionRequest{ProjectID: 999, QuestionText: "orphan"})
	assert.True(t, errors.Is(err, util.ErrNotFound))

	_, err = svc.Create(ctx, QuestionRequest{QuestionText: "no project"})
	assert.True(t, errors.Is(err, util.ErrInvalidInput))

	list, err := svc.List(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []string{"A", "B"}, list[0].OptionList())
}

func TestQuestionService_UpdateAndDelete(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()
	p := f.project(t, "Pilot", "QUP123", model.ProjectActive)
	f.question(t, p.ID, 1, "A", "", "")
	q2 := f.question(t, p.ID, 2, "B", "", "")
	svc := NewQuestionService(f.questions, f.projects)

	_, err := svc.Update(ctx, q2.ID, QuestionRequest{QuestionNumber: 1, QuestionText: "moved"})
	assert.True(t, errors.Is(err, util.ErrConflict))

	updated, err := svc.Update(ctx, q2.ID, QuestionRequest{QuestionNumber: 3, QuestionText: "moved", CorrectAnswer: "C", Skill: "Loops"})
	require.NoError(t, err)
	assert.Equal(t, 3, updated.QuestionNumber)
	assert.Equal(t, "C", updated.CorrectAnswer)
	assert.Equal(t, p.ID, updated.ProjectID)

	_, err = svc.Update(ctx, 999, QuestionRequest{QuestionText: "x"})
	assert.True(t, errors.Is(err, util.ErrNotFound))

	require.NoError(t, svc.Delete(ctx, q2.ID))
	err = svc.Delete(ctx, q2.ID)
	assert.True(t, errors.Is(err, util.ErrNotFound))
}

func TestQuestionService_CopyRenumbers(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()
	src := f.project(t, "Source", "SRC123", model.ProjectActive)
	dst := f.project(t, "Target", "DST123", model.ProjectActive)
	a := f.question(t, src.ID, 1, "A", "Charts", "Data Analysis")
	f.question(t, src.ID, 2, "B", "", "")
	c := f.question(t, src.ID, 3, "C", "Loops", "Programming Logic")
	f.question(t, dst.ID, 1, "X", "", "")
	f.question(t, dst.ID, 4, "Y", "", "")

	svc := NewQuestionService(f.questions, f.projects)
	copies, err := svc.Copy(ctx, CopyQuestionsRequest{
		SourceProjectID: src.ID,
		TargetProjectID: dst.ID,
		QuestionIDs:     []uint{c.ID, a.ID, a.ID},
	})
	require.NoError(t, err)
	require.Len(t, copies, 2)
	assert.Equal(t, 5, copies[0].QuestionNumber)
	assert.Equal(t, "A", copies[0].CorrectAnswer)
	assert.Equal(t, 6, copies[1].QuestionNumber)
	assert.Equal(t, "C", copies[1].CorrectAnswer)
	assert.NotZero(t, copies[0].ID)

	all, err := svc.Copy(ctx, CopyQuestionsRequest{SourceProjectID: src.ID, TargetProjectID: dst.ID})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []int{7, 8, 9}, []int{all[0].QuestionNumber, all[1].QuestionNumber, all[2].QuestionNumber})

	list, err := svc.List(ctx, dst.ID)
	require.NoError(t, err)
	assert.Len(t, list, 7)

	source, err := svc.List(ctx, src.ID)
	require.NoError(t, err)
	assert.Len(t, source, 3)
}

func TestQuestionService_CopyErrors(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()
	src := f.project(t, "Source", "SRE123", model.ProjectActive)
	dst := f.project(t, "Target", "DSE123", model.ProjectActive)
	other := f.question(t, dst.ID, 1, "X", "", "")
	svc := NewQuestionService(f.questions, f.projects)

	_, err := svc.Copy(ctx, CopyQuestionsRequest{SourceProjectID: src.ID, TargetProjectID: 999})
	assert.True(t, errors.Is(err, util.ErrNotFound))

	_, err = svc.Copy(ctx, CopyQuestionsRequest{SourceProjectID: src.ID, TargetProjectID: dst.ID, QuestionIDs: []uint{other.ID}})
	assert.True(t, errors.Is(err, util.ErrNotFound))

	empty, err := svc.Copy(ctx, CopyQuestionsRequest{SourceProjectID: src.ID, TargetProjectID: dst.ID})
	require.NoError(t, err)
	assert.Empty(t, empty)
}
