package model

import (
	"encoding/json"

	"gorm.io/datatypes"
)

// swagger:model Question
type Question struct {
	BaseModel
	ProjectID      uint           `gorm:"not null;uniqueIndex:idx_project_question_number" json:"project_id"`
	Period         string         `gorm:"size:32" json:"period"`
	QuestionNumber int            `gorm:"not null;uniqueIndex:idx_project_question_number" json:"question_number"`
	Category       string         `gorm:"size:128" json:"category"`
	Skill          string         `gorm:"size:128" json:"skill"`
	QuestionText   string         `gorm:"type:text;not null" json:"question_text"`
	Options        datatypes.JSON `json:"options"` // JSON: []string
	CorrectAnswer  string         `gorm:"type:text" json:"correct_answer"`
	Explanation    string         `gorm:"type:text" json:"explanation"`
}

func (Question) TableName() string {
	return "questions"
}

// OptionList 解析选项列表，格式错误时返回空列表
func (q *Question) OptionList() []string {
	var opts []string
	if len(q.Options) == 0 {
		return []string{}
	}
	if err := json.Unmarshal(q.Options, &opts); err != nil {
		return []string{}
	}
	return opts
}

// EncodeOptions 将选项列表编码为 JSON 列
func EncodeOptions(opts []string) datatypes.JSON {
	if opts == nil {
		opts = []string{}
	}
	b, _ := json.Marshal(opts)
	return datatypes.JSON(b)
}

// PublicQuestion 答题端题目，不含正确答案和解析
type PublicQuestion struct {
	ID             uint     `json:"id"`
	Period         string   `json:"period"`
	QuestionNumber int      `json:"question_number"`
	Category       string   `json:"category"`
	Skill          string   `json:"skill"`
	QuestionText   string   `json:"question_text"`
	Options        []string `json:"options"`
	CorrectAnswer  string   `json:"correct_answer,omitempty"`
	Explanation    string   `json:"explanation,omitempty"`
}

func (q *Question) Public(reveal bool) PublicQuestion {
	pq := PublicQuestion{
		ID:             q.ID,
		Period:         q.Period,
		QuestionNumber: q.QuestionNumber,
		Category:       q.Category,
		Skill:          q.Skill,
		QuestionText:   q.QuestionText,
		Options:        q.OptionList(),
	}
	if reveal {
		pq.CorrectAnswer = q.CorrectAnswer
		pq.Explanation = q.Explanation
	}
	return pq
}
