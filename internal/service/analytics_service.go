package service

import (
	"context"
	"math"
	"quiz_assessment_backend/internal/config"
	"quiz_assessment_backend/internal/model"
	"quiz_assessment_backend/internal/repository"
	"quiz_assessment_backend/pkg/tracing"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
)

// DefaultExcellentScore 优秀线（百分比）
const DefaultExcellentScore = 80

type AnalyticsService struct {
	ResultRepo  *repository.ResultRepository
	ProjectRepo *repository.ProjectRepository
	Now         func() time.Time

	mu             sync.RWMutex
	periods        []string
	skillAreas     []model.SkillArea
	excellentScore float64
}

func NewAnalyticsService(resultRepo *repository.ResultRepository, projectRepo *repository.ProjectRepository, cfg config.AnalyticsConfig) *AnalyticsService {
	s := &AnalyticsService{
		ResultRepo:  resultRepo,
		ProjectRepo: projectRepo,
		Now:         time.Now,
	}
	s.UpdateConfig(cfg)
	return s
}

// UpdateConfig 配置热更新时替换期次和能力维度
func (s *AnalyticsService) UpdateConfig(cfg config.AnalyticsConfig) {
	periods := cfg.Periods
	if len(periods) == 0 {
		periods = []string{"baseline", "intermediate", "endline"}
	}
	areaCfg := cfg.SkillAreas
	if len(areaCfg) == 0 {
		areaCfg = config.DefaultSkillAreas()
	}
	excellent := cfg.ExcellentScore
	if excellent <= 0 {
		excellent = DefaultExcellentScore
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.periods = append([]string(nil), periods...)
	s.skillAreas = SkillAreasFromConfig(areaCfg)
	s.excellentScore = excellent
}

func (s *AnalyticsService) settings() ([]string, []model.SkillArea, float64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.periods, s.skillAreas, s.excellentScore
}

func SkillAreasFromConfig(cfg []config.SkillAreaConfig) []model.SkillArea {
	areas := make([]model.SkillArea, 0, len(cfg))
	for _, a := range cfg {
		areas = append(areas, model.SkillArea{Name: a.Name, Questions: append([]int(nil), a.Questions...)})
	}
	return areas
}

// Stats projectID 为 0 时统计全部项目
func (s *AnalyticsService) Stats(ctx context.Context, projectID uint, byPeriod bool) (*model.StatsResponse, error) {
	ctx, span := tracing.Tracer.Start(ctx, "AnalyticsService.Stats")
	defer span.End()

	results, err := s.ResultRepo.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.Int("quiz.results", len(results)))

	_, _, excellent := s.settings()
	now := s.Now()
	resp := &model.StatsResponse{Stats: computeStats(results, now, excellent)}
	if byPeriod {
		resp.ByPeriod = computeStatsByPeriod(results, now, excellent)
	}
	return resp, nil
}

// Analytics 总体能力维度 + 学员跨期次进度
func (s *AnalyticsService) Analytics(ctx context.Context, projectID uint) (*model.AnalyticsReport, error) {
	ctx, span := tracing.Tracer.Start(ctx, "AnalyticsService.Analytics")
	defer span.End()

	results, err := s.ResultRepo.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.Int("quiz.results", len(results)))

	periods, areas, _ := s.settings()
	return &model.AnalyticsReport{
		TotalResults: len(results),
		SkillAreas:   SkillBreakdown(results, areas),
		Progress:     ComputeProgress(results, periods, areas),
	}, nil
}

func (s *AnalyticsService) PeriodComparison(ctx context.Context, projectID uint) (*model.PeriodComparison, error) {
	ctx, span := tracing.Tracer.Start(ctx, "AnalyticsService.PeriodComparison")
	defer span.End()

	project, err := s.ProjectRepo.FindByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	results, err := s.ResultRepo.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.Int("quiz.results", len(results)))

	periods, areas, _ := s.settings()
	return &model.PeriodComparison{
		Project:  *project,
		Progress: ComputeProgress(results, periods, areas),
	}, nil
}

// ---------- 纯计算函数 ----------

// roundPercent 四舍五入到整数（数值均非负，math.Round 即 half-up）
func roundPercent(v float64) int {
	return int(math.Round(v))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// ComputeStats 汇总统计，优秀线为 80
func ComputeStats(results []model.Result, now time.Time) model.Stats {
	return computeStats(results, now, DefaultExcellentScore)
}

func computeStats(results []model.Result, now time.Time, excellent float64) model.Stats {
	stats := model.Stats{Total: len(results)}
	if len(results) == 0 {
		return stats
	}

	today := now.UTC().Format("2006-01-02")
	var sum float64
	for _, r := range results {
		sum += r.Percentage
		if r.Percentage >= excellent {
			stats.ExcellentCount++
		}
		if r.CreatedAt.UTC().Format("2006-01-02") == today {
			stats.TodayCount++
		}
	}
	stats.AverageScore = roundPercent(sum / float64(len(results)))
	return stats
}

// ComputeStatsByPeriod 按期次分别统计，未知期次同样保留
func ComputeStatsByPeriod(results []model.Result, now time.Time) map[string]model.Stats {
	return computeStatsByPeriod(results, now, DefaultExcellentScore)
}

func computeStatsByPeriod(results []model.Result, now time.Time, excellent float64) map[string]model.Stats {
	groups := make(map[string][]model.Result)
	for _, r := range results {
		groups[r.Period] = append(groups[r.Period], r)
	}
	out := make(map[string]model.Stats, len(groups))
	for period, rs := range groups {
		out[period] = computeStats(rs, now, excellent)
	}
	return out
}

// SkillBreakdown 按能力维度汇总所有答卷的正确率，分母为全部答卷在该维度的题目数之和
func SkillBreakdown(results []model.Result, areas []model.SkillArea) []model.SkillAreaScore {
	scores := make([]model.SkillAreaScore, len(areas))
	for i, area := range areas {
		scores[i].Area = area.Name
	}

	for _, r := range results {
		for _, a := range r.Answers {
			for i, area := range areas {
				if !area.Contains(a.QuestionNumber) {
					continue
				}
				scores[i].Total++
				if a.IsCorrect {
					scores[i].Correct++
				}
			}
		}
	}

	for i := range scores {
		if scores[i].Total > 0 {
			scores[i].Percentage = roundPercent(float64(scores[i].Correct) / float64(scores[i].Total) * 100)
		}
	}
	return scores
}

type participantGroup struct {
	name    string
	periods map[string]model.Result
	order   []string
}

// ComputeProgress 学员跨期次对比
//
// 同一学员同一期次只保留首次出现的答卷；至少有两个已知期次才计算变化。
func ComputeProgress(results []model.Result, orderedPeriods []string, areas []model.SkillArea) model.Progress {
	var groups []*participantGroup
	byName := make(map[string]*participantGroup)
	byPeriod := make(map[string][]model.Result)

	for _, r := range results {
		byPeriod[r.Period] = append(byPeriod[r.Period], r)

		g, ok := byName[r.ParticipantName]
		if !ok {
			g = &participantGroup{name: r.ParticipantName, periods: make(map[string]model.Result)}
			byName[r.ParticipantName] = g
			groups = append(groups, g)
		}
		if _, seen := g.periods[r.Period]; seen {
			continue
		}
		g.periods[r.Period] = r
		g.order = append(g.order, r.Period)
	}

	progress := model.Progress{
		Periods:            make(map[string]model.PeriodSummary),
		Participants:       make([]model.ParticipantProgress, 0, len(groups)),
		SkillAreasByPeriod: make(map[string][]model.SkillAreaScore, len(byPeriod)),
	}

	sums := make(map[string]float64)
	counts := make(map[string]int)
	for _, g := range groups {
		pp := model.ParticipantProgress{
			ParticipantName: g.name,
			Periods:         make(map[string]model.ParticipantPeriod, len(g.periods)),
		}
		for _, period := range g.order {
			r := g.periods[period]
			pp.Periods[period] = model.ParticipantPeriod{
				ResultID:    r.ID,
				Percentage:  r.Percentage,
				TotalScore:  r.TotalScore,
				CompletedAt: r.CompletedAt.UTC().Format(time.RFC3339),
			}
			sums[period] += r.Percentage
			counts[period]++
		}
		pp.Change = periodChange(g.periods, orderedPeriods)
		progress.Participants = append(progress.Participants, pp)
	}

	for period, n := range counts {
		progress.Periods[period] = model.PeriodSummary{
			AverageScore: roundPercent(sums[period] / float64(n)),
			Participants: n,
		}
	}
	for period, rs := range byPeriod {
		progress.SkillAreasByPeriod[period] = SkillBreakdown(rs, areas)
	}
	return progress
}

// periodChange 最早与最晚已知期次之间的变化，不足两个已知期次返回 nil
func periodChange(periods map[string]model.Result, ordered []string) *model.ProgressChange {
	var present []string
	for _, p := range ordered {
		if _, ok := periods[p]; ok {
			present = append(present, p)
		}
	}
	if len(present) < 2 {
		return nil
	}

	from, to := present[0], present[len(present)-1]
	first, last := periods[from], periods[to]
	return &model.ProgressChange{
		From:             from,
		To:               to,
		PercentageChange: round2(last.Percentage - first.Percentage),
		ScoreChange:      last.TotalScore - first.TotalScore,
	}
}
