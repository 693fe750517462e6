package model

// Stats 汇总统计
type Stats struct {
	Total          int `json:"total"`
	AverageScore   int `json:"average_score"`
	ExcellentCount int `json:"excellent_count"`
	TodayCount     int `json:"today_count"`
}

// StatsResponse 统计接口返回，ByPeriod 仅在按期次拆分时返回
type StatsResponse struct {
	Stats
	ByPeriod map[string]Stats `json:"by_period,omitempty"`
}

// SkillArea 能力维度与题号集合
type SkillArea struct {
	Name      string
	Questions []int
}

// Contains 题号是否属于该能力维度
func (a SkillArea) Contains(number int) bool {
	for _, q := range a.Questions {
		if q == number {
			return true
		}
	}
	return false
}

// SkillAreaScore 能力维度得分
type SkillAreaScore struct {
	Area       string `json:"area"`
	Correct    int    `json:"correct"`
	Total      int    `json:"total"`
	Percentage int    `json:"percentage"`
}

// PeriodSummary 某一期次的平均成绩
type PeriodSummary struct {
	AverageScore int `json:"average_score"`
	Participants int `json:"participants"`
}

// ParticipantPeriod 学员在某一期次的成绩
type ParticipantPeriod struct {
	ResultID    string  `json:"result_id"`
	Percentage  float64 `json:"percentage"`
	TotalScore  int     `json:"total_score"`
	CompletedAt string  `json:"completed_at"`
}

// ProgressChange 最早与最晚期次之间的变化
type ProgressChange struct {
	From             string  `json:"from"`
	To               string  `json:"to"`
	PercentageChange float64 `json:"percentage_change"`
	ScoreChange      int     `json:"score_change"`
}

// ParticipantProgress 单个学员的跨期次进度
type ParticipantProgress struct {
	ParticipantName string                       `json:"participant_name"`
	Periods         map[string]ParticipantPeriod `json:"periods"`
	Change          *ProgressChange              `json:"change,omitempty"`
}

// Progress 期次对比结果
type Progress struct {
	Periods            map[string]PeriodSummary    `json:"periods"`
	Participants       []ParticipantProgress       `json:"participants"`
	SkillAreasByPeriod map[string][]SkillAreaScore `json:"skill_areas_by_period"`
}

// AnalyticsReport 能力维度分析 + 学员进度
type AnalyticsReport struct {
	TotalResults int              `json:"total_results"`
	SkillAreas   []SkillAreaScore `json:"skill_areas"`
	Progress     Progress         `json:"progress"`
}

// PeriodComparison 单个项目的期次对比
type PeriodComparison struct {
	Project  Project  `json:"project"`
	Progress Progress `json:"progress"`
}
