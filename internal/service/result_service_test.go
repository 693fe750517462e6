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

func newResultService(f *fixture) *ResultService {
	return NewResultService(f.results, f.projects, f.questions, NewSubmissionValidator("baseline"), NewEventPublisher(nil, "quiz:results"))
}

func TestResultService_SubmitEnrichesAndGrades(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()
	p := f.project(t, "Pilot", "SUB123", model.ProjectActive)
	f.question(t, p.ID, 1, "A", "Reading charts", "Data Analysis")
	f.question(t, p.ID, 2, "C", "Loops", "Programming Logic")

	svc := newResultService(f)
	req := SubmissionRequest{
		ParticipantName: strPtr("Ana"),
		ProjectID:       uintPtr(p.ID),
		TotalScore:      intPtr(1),
		Percentage:      floatPtr(50),
		Answers: map[string]AnswerRequest{
			"1": {UserAnswer: "A"},
			"2": {UserAnswer: "B"},
			"3": {UserAnswer: "D"},
		},
	}

	r, err := svc.Submit(ctx, req)
	require.NoError(t, err)
	assert.NotEmpty(t, r.ID)

	rows, err := f.results.ListByProject(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	stored := rows[0]
	assert.Equal(t, r.ID, stored.ID)
	require.Len(t, stored.Answers, 3)

	first := stored.Answers[0]
	assert.Equal(t, "A", first.CorrectAnswer)
	assert.Equal(t, "Reading charts", first.Skill)
	assert.Equal(t, "Data Analysis", first.Category)
	assert.True(t, first.IsCorrect)

	assert.Equal(t, "C", stored.Answers[1].CorrectAnswer)
	assert.False(t, stored.Answers[1].IsCorrect)

	// 题库中没有第 3 题，标准答案为空时判错
	assert.Equal(t, "", stored.Answers[2].CorrectAnswer)
	assert.False(t, stored.Answers[2].IsCorrect)

	assert.Equal(t, float64(50), stored.Percentage)
}

func TestResultService_SubmitKeepsClientCorrectAnswer(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()
	p := f.project(t, "Pilot", "SUB124", model.ProjectActive)
	f.question(t, p.ID, 1, "A", "", "")

	r, err := newResultService(f).Submit(ctx, SubmissionRequest{
		ParticipantName: strPtr("Ben"),
		ProjectID:       uintPtr(p.ID),
		TotalScore:      intPtr(1),
		Percentage:      floatPtr(100),
		Answers:         map[string]AnswerRequest{"1": {UserAnswer: "B", CorrectAnswer: "B"}},
	})
	require.NoError(t, err)
	assert.True(t, r.Answers[0].IsCorrect)
}

func TestResultService_SubmitRejects(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()
	closed := f.project(t, "Closed", "CLS123", model.ProjectClosed)
	svc := newResultService(f)

	req := SubmissionRequest{
		ParticipantName: strPtr("Ana"),
		ProjectID:       uintPtr(closed.ID),
		TotalScore:      intPtr(1),
		Percentage:      floatPtr(50),
	}
	_, err := svc.Submit(ctx, req)
	assert.True(t, errors.Is(err, util.ErrInvalidSubmission))

	req.ProjectID = uintPtr(999)
	_, err = svc.Submit(ctx, req)
	assert.True(t, errors.Is(err, util.ErrNotFound))

	req.ParticipantName = nil
	_, err = svc.Submit(ctx, req)
	assert.True(t, errors.Is(err, util.ErrInvalidSubmission))

	all, err := f.results.ListByProject(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestResultService_ListFlattensAnswers(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()
	p := f.project(t, "Pilot", "LST123", model.ProjectActive)
	f.question(t, p.ID, 1, "A", "Charts", "Data Analysis")

	svc := newResultService(f)
	first, err := svc.Submit(ctx, SubmissionRequest{
		ParticipantName: strPtr("Ana"),
		ProjectID:       uintPtr(p.ID),
		TotalScore:      intPtr(1),
		Percentage:      floatPtr(100),
		Answers:         map[string]AnswerRequest{"1": {UserAnswer: "A"}},
	})
	require.NoError(t, err)
	second, err := svc.Submit(ctx, SubmissionRequest{
		ParticipantName: strPtr("Ana"),
		ProjectID:       uintPtr(p.ID),
		TotalScore:      intPtr(0),
		Percentage:      floatPtr(0),
	})
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)

	rows, err := svc.List(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	var row map[string]interface{}
	for _, r := range rows {
		if r["id"] == first.ID {
			row = r
		}
	}
	require.NotNil(t, row)
	assert.Equal(t, "Pilot", row["project_name"])
	assert.Equal(t, "A", row["Q1"])
	assert.Equal(t, "A", row["Q1_correct_answer"])
	assert.Equal(t, "Charts", row["Q1_skill"])
	assert.Equal(t, "Data Analysis", row["Q1_category"])
	assert.Equal(t, true, row["Q1_is_correct"])
	assert.NotContains(t, row, "Q2")
}

func TestResultService_Delete(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()
	p := f.project(t, "Pilot", "DEL123", model.ProjectActive)
	svc := newResultService(f)

	r, err := svc.Submit(ctx, SubmissionRequest{
		ParticipantName: strPtr("Ana"),
		ProjectID:       uintPtr(p.ID),
		TotalScore:      intPtr(1),
		Percentage:      floatPtr(10),
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteOne(ctx, r.ID))
	err = svc.DeleteOne(ctx, r.ID)
	assert.True(t, errors.Is(err, util.ErrNotFound))

	n, err := svc.DeleteAll(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)
}
