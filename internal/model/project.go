package model

// ProjectStatus 测评项目状态
type ProjectStatus string

const (
	ProjectActive ProjectStatus = "active"
	ProjectClosed ProjectStatus = "closed"
)

func (s ProjectStatus) Valid() bool {
	return s == ProjectActive || s == ProjectClosed
}

// swagger:model Project
type Project struct {
	BaseModel
	Name        string        `gorm:"size:255;not null" json:"name"`
	AccessCode  string        `gorm:"size:16;not null;uniqueIndex" json:"access_code"`
	TimeLimit   int           `gorm:"default:0" json:"time_limit"` // Seconds
	Description string        `gorm:"type:text" json:"description"`
	Status      ProjectStatus `gorm:"size:20;not null;default:'active';index" json:"status"`
}

func (Project) TableName() string {
	return "projects"
}

// ProjectSummary 项目列表项，附带题目数和提交数
type ProjectSummary struct {
	Project
	QuestionCount int64 `json:"question_count"`
	ResultCount   int64 `json:"result_count"`
}
