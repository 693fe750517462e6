package model

import "time"

// Result 一次完整的答题提交，创建后除管理员删除外不可修改
// swagger:model Result
type Result struct {
	UUIDBase
	ParticipantName string         `gorm:"size:255;not null;index" json:"participant_name"`
	ProjectID       uint           `gorm:"not null;index" json:"project_id"`
	Period          string         `gorm:"size:32;index" json:"period"`
	CompletedAt     time.Time      `gorm:"index" json:"completed_at"`
	TotalScore      int            `json:"total_score"`
	Percentage      float64        `json:"percentage"`
	TimeTaken       *int           `json:"time_taken"` // Seconds
	Answers         []ResultAnswer `gorm:"foreignKey:ResultID;constraint:OnDelete:CASCADE" json:"answers"`
}

func (Result) TableName() string {
	return "quiz_results"
}

// ResultAnswer 单题作答记录
type ResultAnswer struct {
	ID             uint   `gorm:"primaryKey;autoIncrement" json:"-"`
	ResultID       string `gorm:"index;type:varchar(36);not null" json:"-"`
	QuestionNumber int    `gorm:"not null" json:"question_number"`
	UserAnswer     string `gorm:"type:text" json:"user_answer"`
	CorrectAnswer  string `gorm:"type:text" json:"correct_answer"`
	Skill          string `gorm:"size:128" json:"skill"`
	Category       string `gorm:"size:128" json:"category"`
	IsCorrect      bool   `json:"is_correct"`
}

func (ResultAnswer) TableName() string {
	return "quiz_result_answers"
}

// Grade 根据作答和标准答案判定是否正确。
// 标准答案为空说明题库未配置该题，此时一律判错，避免空作答和空答案相等被计为答对
func (a *ResultAnswer) Grade() {
	a.IsCorrect = a.CorrectAnswer != "" && a.UserAnswer == a.CorrectAnswer
}

// AnswerFor 按题号查找作答记录
func (r *Result) AnswerFor(number int) (ResultAnswer, bool) {
	for _, a := range r.Answers {
		if a.QuestionNumber == number {
			return a, true
		}
	}
	return ResultAnswer{}, false
}
