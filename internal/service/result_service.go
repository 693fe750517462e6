package service

import (
	"context"
	"fmt"
	"quiz_assessment_backend/internal/model"
	"quiz_assessment_backend/internal/repository"
	"quiz_assessment_backend/internal/util"
	"quiz_assessment_backend/pkg/logger"
	"quiz_assessment_backend/pkg/monitoring"
	"strconv"
	"time"

	"go.uber.org/zap"
)

type ResultService struct {
	ResultRepo   *repository.ResultRepository
	ProjectRepo  *repository.ProjectRepository
	QuestionRepo *repository.QuestionRepository
	Validator    *SubmissionValidator
	Events       *EventPublisher
}

func NewResultService(
	resultRepo *repository.ResultRepository,
	projectRepo *repository.ProjectRepository,
	questionRepo *repository.QuestionRepository,
	validator *SubmissionValidator,
	events *EventPublisher,
) *ResultService {
	return &ResultService{
		ResultRepo:   resultRepo,
		ProjectRepo:  projectRepo,
		QuestionRepo: questionRepo,
		Validator:    validator,
		Events:       events,
	}
}

// Submit 校验、补全题目信息并判分后写入
func (s *ResultService) Submit(ctx context.Context, req SubmissionRequest) (*model.Result, error) {
	result, err := s.Validator.Validate(req)
	if err != nil {
		return nil, err
	}

	project, err := s.ProjectRepo.FindByID(ctx, result.ProjectID)
	if err != nil {
		return nil, notFound(err, "project", result.ProjectID)
	}
	if project.Status != model.ProjectActive {
		return nil, fmt.Errorf("%w: project %q is closed", util.ErrInvalidSubmission, project.Name)
	}

	questions, err := s.QuestionRepo.ListByProject(ctx, project.ID)
	if err != nil {
		return nil, err
	}
	enrichAnswers(result.Answers, questions)

	if err := s.ResultRepo.Create(ctx, result); err != nil {
		return nil, err
	}

	monitoring.SubmissionCounter.WithLabelValues(result.Period).Inc()
	logger.Log.Info("quiz submitted",
		zap.String("result_id", result.ID),
		zap.String("participant", result.ParticipantName),
		zap.Uint("project_id", result.ProjectID),
		zap.String("period", result.Period),
	)

	if err := s.Events.PublishSubmitted(ctx, result); err != nil {
		logger.Log.Warn("publish submission event failed", zap.String("result_id", result.ID), zap.Error(err))
	}
	return result, nil
}

// enrichAnswers 客户端未带的标准答案、能力和分类从题库补全，然后判分
func enrichAnswers(answers []model.ResultAnswer, questions []model.Question) {
	bank := make(map[int]*model.Question, len(questions))
	for i := range questions {
		bank[questions[i].QuestionNumber] = &questions[i]
	}

	for i := range answers {
		a := &answers[i]
		if q, ok := bank[a.QuestionNumber]; ok {
			if a.CorrectAnswer == "" {
				a.CorrectAnswer = q.CorrectAnswer
			}
			if a.Skill == "" {
				a.Skill = q.Skill
			}
			if a.Category == "" {
				a.Category = q.Category
			}
		}
		a.Grade()
	}
}

// List 返回扁平化后的答卷，projectID 为 0 时返回全部
func (s *ResultService) List(ctx context.Context, projectID uint) ([]map[string]interface{}, error) {
	results, err := s.ResultRepo.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	names, err := s.ProjectRepo.Names(ctx)
	if err != nil {
		return nil, err
	}

	rows := make([]map[string]interface{}, 0, len(results))
	for i := range results {
		rows = append(rows, FlattenResult(&results[i], names[results[i].ProjectID]))
	}
	return rows, nil
}

// FlattenResult 逐题字段展开为 Q{n}、Q{n}_correct_answer 等键
func FlattenResult(r *model.Result, projectName string) map[string]interface{} {
	row := map[string]interface{}{
		"id":               r.ID,
		"participant_name": r.ParticipantName,
		"project_id":       r.ProjectID,
		"project_name":     projectName,
		"period":           r.Period,
		"total_score":      r.TotalScore,
		"percentage":       r.Percentage,
		"time_taken":       r.TimeTaken,
		"completed_at":     r.CompletedAt.UTC().Format(time.RFC3339),
		"created_at":       r.CreatedAt.UTC().Format(time.RFC3339),
	}
	for _, a := range r.Answers {
		key := "Q" + strconv.Itoa(a.QuestionNumber)
		row[key] = a.UserAnswer
		row[key+"_correct_answer"] = a.CorrectAnswer
		row[key+"_category"] = a.Category
		row[key+"_skill"] = a.Skill
		row[key+"_is_correct"] = a.IsCorrect
	}
	return row
}

func (s *ResultService) DeleteAll(ctx context.Context, projectID uint) (int64, error) {
	n, err := s.ResultRepo.DeleteAll(ctx, projectID)
	if err != nil {
		return 0, err
	}
	logger.Log.Info("results cleared", zap.Uint("project_id", projectID), zap.Int64("deleted", n))
	return n, nil
}

func (s *ResultService) DeleteOne(ctx context.Context, id string) error {
	ok, err := s.ResultRepo.DeleteByID(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: result %s", util.ErrNotFound, id)
	}
	logger.Log.Info("result deleted", zap.String("result_id", id))
	return nil
}
