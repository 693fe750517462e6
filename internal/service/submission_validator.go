package service

import (
	"errors"
	"fmt"
	"quiz_assessment_backend/internal/model"
	"quiz_assessment_backend/internal/util"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// AnswerRequest 单题作答
type AnswerRequest struct {
	UserAnswer    string `json:"user_answer"`
	CorrectAnswer string `json:"correct_answer"`
	Skill         string `json:"skill"`
	Category      string `json:"category"`
}

// SubmissionRequest 答卷提交，必填的数值字段使用指针以区分缺失和 0
type SubmissionRequest struct {
	ParticipantName *string                  `json:"participant_name" validate:"required"`
	ProjectID       *uint                    `json:"project_id" validate:"required,gt=0"`
	Period          string                   `json:"period" validate:"omitempty,max=32"`
	TotalScore      *int                     `json:"total_score" validate:"required,gte=0"`
	Percentage      *float64                 `json:"percentage" validate:"required,gte=0,lte=100"`
	TimeTaken       *int                     `json:"time_taken" validate:"omitempty,gte=0"`
	CompletedAt     *time.Time               `json:"completed_at"`
	Answers         map[string]AnswerRequest `json:"answers"`
}

type SubmissionValidator struct {
	validate      *validator.Validate
	DefaultPeriod string
	Now           func() time.Time
}

func NewSubmissionValidator(defaultPeriod string) *SubmissionValidator {
	v := validator.New()
	// 错误信息使用 json 字段名
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	if defaultPeriod == "" {
		defaultPeriod = util.PeriodBaseline
	}
	return &SubmissionValidator{
		validate:      v,
		DefaultPeriod: defaultPeriod,
		Now:           time.Now,
	}
}

// Validate 校验并规范化提交内容，不产生任何副作用
func (v *SubmissionValidator) Validate(req SubmissionRequest) (*model.Result, error) {
	var problems []string
	if err := v.validate.Struct(req); err != nil {
		var ve validator.ValidationErrors
		if !errors.As(err, &ve) {
			return nil, fmt.Errorf("%w: %v", util.ErrInvalidSubmission, err)
		}
		for _, fe := range ve {
			problems = append(problems, describeFieldError(fe))
		}
	}

	name := ""
	if req.ParticipantName != nil {
		name = strings.TrimSpace(*req.ParticipantName)
		if name == "" {
			problems = append(problems, "participant_name must not be blank")
		}
	}

	answers, err := normalizeAnswers(req.Answers)
	if err != nil {
		problems = append(problems, err.Error())
	}

	if len(problems) > 0 {
		return nil, fmt.Errorf("%w: %s", util.ErrInvalidSubmission, strings.Join(problems, "; "))
	}

	period := strings.TrimSpace(req.Period)
	if period == "" {
		period = v.DefaultPeriod
	}

	completedAt := v.Now().UTC()
	if req.CompletedAt != nil && !req.CompletedAt.IsZero() {
		completedAt = req.CompletedAt.UTC()
	}

	return &model.Result{
		ParticipantName: name,
		ProjectID:       *req.ProjectID,
		Period:          period,
		CompletedAt:     completedAt,
		TotalScore:      *req.TotalScore,
		Percentage:      *req.Percentage,
		TimeTaken:       req.TimeTaken,
		Answers:         answers,
	}, nil
}

func describeFieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "gt":
		return fmt.Sprintf("%s must be > %s", fe.Field(), fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be >= %s", fe.Field(), fe.Param())
	case "lte", "max":
		return fmt.Sprintf("%s must be <= %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag())
	}
}

// normalizeAnswers 题号必须为正整数，结果按题号升序
func normalizeAnswers(in map[string]AnswerRequest) ([]model.ResultAnswer, error) {
	answers := make([]model.ResultAnswer, 0, len(in))
	seen := make(map[int]bool, len(in))
	for key, a := range in {
		n, err := strconv.Atoi(strings.TrimSpace(key))
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("answers key %q is not a valid question number", key)
		}
		if seen[n] {
			return nil, fmt.Errorf("question %d answered more than once", n)
		}
		seen[n] = true
		answers = append(answers, model.ResultAnswer{
			QuestionNumber: n,
			UserAnswer:     a.UserAnswer,
			CorrectAnswer:  a.CorrectAnswer,
			Skill:          a.Skill,
			Category:       a.Category,
		})
	}
	sort.Slice(answers, func(i, j int) bool {
		return answers[i].QuestionNumber < answers[j].QuestionNumber
	})
	return answers, nil
}
