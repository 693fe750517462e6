package service

import (
	"context"
	"errors"
	"quiz_assessment_backend/internal/config"
	"quiz_assessment_backend/internal/model"
	"quiz_assessment_backend/internal/util"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var defaultPeriods = []string{"baseline", "intermediate", "endline"}

func defaultAreas() []model.SkillArea {
	return SkillAreasFromConfig(config.DefaultSkillAreas())
}

func scored(name, period string, percentage float64, totalScore int) model.Result {
	return model.Result{
		ParticipantName: name,
		Period:          period,
		Percentage:      percentage,
		TotalScore:      totalScore,
	}
}

func answersFor(from, to int, correct bool) []model.ResultAnswer {
	var out []model.ResultAnswer
	for n := from; n <= to; n++ {
		out = append(out, model.ResultAnswer{QuestionNumber: n, IsCorrect: correct})
	}
	return out
}

func findArea(t *testing.T, scores []model.SkillAreaScore, name string) model.SkillAreaScore {
	t.Helper()
	for _, s := range scores {
		if s.Area == name {
			return s
		}
	}
	t.Fatalf("area %s not found", name)
	return model.SkillAreaScore{}
}

func TestComputeStats_Empty(t *testing.T) {
	stats := ComputeStats(nil, time.Now())
	assert.Equal(t, 0, stats.Total)
	assert.Equal(t, 0, stats.AverageScore)
	assert.Equal(t, 0, stats.ExcellentCount)
	assert.Equal(t, 0, stats.TodayCount)
}

func TestComputeStats_RoundsHalfUp(t *testing.T) {
	now := time.Date(2025, 5, 10, 12, 0, 0, 0, time.UTC)
	results := []model.Result{
		scored("a", "baseline", 100, 20),
		scored("b", "baseline", 50, 10),
		scored("c", "baseline", 0, 0),
		scored("d", "baseline", 80, 16),
	}
	results[0].CreatedAt = now.Add(-time.Hour)
	results[1].CreatedAt = now.Add(-24 * time.Hour)

	stats := ComputeStats(results, now)
	assert.Equal(t, 4, stats.Total)
	assert.Equal(t, 58, stats.AverageScore)
	// 80 达到优秀线
	assert.Equal(t, 2, stats.ExcellentCount)
	assert.Equal(t, 1, stats.TodayCount)
}

func TestComputeStatsByPeriod(t *testing.T) {
	results := []model.Result{
		scored("a", "baseline", 40, 8),
		scored("a", "endline", 90, 18),
		scored("b", "baseline", 60, 12),
	}
	byPeriod := ComputeStatsByPeriod(results, time.Now())
	require.Len(t, byPeriod, 2)
	assert.Equal(t, 2, byPeriod["baseline"].Total)
	assert.Equal(t, 50, byPeriod["baseline"].AverageScore)
	assert.Equal(t, 1, byPeriod["endline"].ExcellentCount)
}

func TestSkillBreakdown(t *testing.T) {
	r := model.Result{Answers: answersFor(17, 20, true)}
	scores := SkillBreakdown([]model.Result{r}, defaultAreas())
	require.Len(t, scores, 4)
	assert.Equal(t, "Data Analysis", scores[0].Area)

	logic := findArea(t, scores, "Programming Logic")
	assert.Equal(t, 4, logic.Correct)
	assert.Equal(t, 4, logic.Total)
	assert.Equal(t, 100, logic.Percentage)

	data := findArea(t, scores, "Data Analysis")
	assert.Equal(t, 0, data.Total)
	assert.Equal(t, 0, data.Percentage)
}

func TestSkillBreakdown_AggregatesAcrossResults(t *testing.T) {
	// 3 道对 + 5 道错，合计 3/8，再加上另一份 8 道全对 → 11/16 = 68.75
	first := model.Result{Answers: append(answersFor(1, 3, true), answersFor(4, 8, false)...)}
	second := model.Result{Answers: answersFor(1, 8, true)}

	data := findArea(t, SkillBreakdown([]model.Result{first, second}, defaultAreas()), "Data Analysis")
	assert.Equal(t, 11, data.Correct)
	assert.Equal(t, 16, data.Total)
	assert.Equal(t, 69, data.Percentage)
}

func TestComputeProgress(t *testing.T) {
	results := []model.Result{
		scored("A", "baseline", 40, 8),
		scored("B", "baseline", 70, 14),
		scored("A", "endline", 90, 18),
	}

	progress := ComputeProgress(results, defaultPeriods, defaultAreas())
	require.Len(t, progress.Participants, 2)

	a := progress.Participants[0]
	assert.Equal(t, "A", a.ParticipantName)
	require.NotNil(t, a.Change)
	assert.Equal(t, "baseline", a.Change.From)
	assert.Equal(t, "endline", a.Change.To)
	assert.Equal(t, float64(50), a.Change.PercentageChange)
	assert.Equal(t, 10, a.Change.ScoreChange)

	b := progress.Participants[1]
	assert.Equal(t, "B", b.ParticipantName)
	assert.Nil(t, b.Change)

	assert.Equal(t, model.PeriodSummary{AverageScore: 55, Participants: 2}, progress.Periods["baseline"])
	assert.Equal(t, model.PeriodSummary{AverageScore: 90, Participants: 1}, progress.Periods["endline"])
	assert.Contains(t, progress.SkillAreasByPeriod, "baseline")
	assert.Contains(t, progress.SkillAreasByPeriod, "endline")
}

func TestComputeProgress_FirstSeenWins(t *testing.T) {
	results := []model.Result{
		scored("A", "baseline", 40, 8),
		scored("A", "baseline", 100, 20),
		scored("A", "intermediate", 60, 12),
		scored("A", "endline", 70, 14),
	}

	progress := ComputeProgress(results, defaultPeriods, defaultAreas())
	require.Len(t, progress.Participants, 1)
	a := progress.Participants[0]
	assert.Equal(t, float64(40), a.Periods["baseline"].Percentage)
	require.NotNil(t, a.Change)
	assert.Equal(t, "baseline", a.Change.From)
	assert.Equal(t, "endline", a.Change.To)
	assert.Equal(t, float64(30), a.Change.PercentageChange)
	assert.Equal(t, 1, progress.Periods["baseline"].Participants)
}

func TestComputeProgress_UnrecognizedPeriod(t *testing.T) {
	results := []model.Result{
		scored("C", "pilot", 20, 4),
		scored("C", "baseline", 50, 10),
	}

	progress := ComputeProgress(results, defaultPeriods, defaultAreas())
	c := progress.Participants[0]
	assert.Len(t, c.Periods, 2)
	assert.Contains(t, c.Periods, "pilot")
	assert.Nil(t, c.Change)
	assert.Equal(t, 20, progress.Periods["pilot"].AverageScore)
}

func TestComputeProgress_PerPeriodSkillAreas(t *testing.T) {
	baseline := scored("A", "baseline", 0, 0)
	baseline.Answers = answersFor(17, 20, false)
	endline := scored("A", "endline", 100, 4)
	endline.Answers = answersFor(17, 20, true)

	progress := ComputeProgress([]model.Result{baseline, endline}, defaultPeriods, defaultAreas())
	assert.Equal(t, 0, findArea(t, progress.SkillAreasByPeriod["baseline"], "Programming Logic").Percentage)
	assert.Equal(t, 100, findArea(t, progress.SkillAreasByPeriod["endline"], "Programming Logic").Percentage)
}

func TestAnalyticsService_Stats(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()
	p := f.project(t, "Pilot", "STA123", model.ProjectActive)

	for _, r := range []model.Result{
		scored("A", "baseline", 40, 8),
		scored("A", "endline", 90, 18),
	} {
		r := r
		r.ProjectID = p.ID
		r.CompletedAt = time.Now().UTC()
		require.NoError(t, f.results.Create(ctx, &r))
	}

	svc := NewAnalyticsService(f.results, f.projects, config.AnalyticsConfig{})
	resp, err := svc.Stats(ctx, p.ID, true)
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Total)
	assert.Equal(t, 65, resp.AverageScore)
	assert.Equal(t, 1, resp.ExcellentCount)
	assert.Equal(t, 2, resp.TodayCount)
	require.Len(t, resp.ByPeriod, 2)

	resp, err = svc.Stats(ctx, p.ID, false)
	require.NoError(t, err)
	assert.Nil(t, resp.ByPeriod)

	svc.UpdateConfig(config.AnalyticsConfig{ExcellentScore: 95})
	resp, err = svc.Stats(ctx, p.ID, false)
	require.NoError(t, err)
	assert.Equal(t, 0, resp.ExcellentCount)
}

func TestAnalyticsService_PeriodComparison(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()
	svc := NewAnalyticsService(f.results, f.projects, config.AnalyticsConfig{})

	_, err := svc.PeriodComparison(ctx, 42)
	assert.True(t, errors.Is(err, util.ErrNotFound))

	p := f.project(t, "Pilot", "CMP123", model.ProjectActive)
	base := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)
	first := scored("A", "baseline", 40, 8)
	first.ProjectID, first.CompletedAt = p.ID, base
	last := scored("A", "endline", 90, 18)
	last.ProjectID, last.CompletedAt = p.ID, base.Add(24*time.Hour)
	require.NoError(t, f.results.Create(ctx, &first))
	require.NoError(t, f.results.Create(ctx, &last))

	cmp, err := svc.PeriodComparison(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Pilot", cmp.Project.Name)
	require.Len(t, cmp.Progress.Participants, 1)
	require.NotNil(t, cmp.Progress.Participants[0].Change)
	assert.Equal(t, float64(50), cmp.Progress.Participants[0].Change.PercentageChange)

	report, err := svc.Analytics(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, report.TotalResults)
	assert.Len(t, report.SkillAreas, 4)
}
