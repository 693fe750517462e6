package service

import (
	"context"
	"fmt"
	"quiz_assessment_backend/internal/model"
	"quiz_assessment_backend/internal/repository"
	"quiz_assessment_backend/internal/util"
	"quiz_assessment_backend/pkg/logger"
	"strings"
	"sync/atomic"

	"go.uber.org/zap"
)

// QuestionRequest QuestionNumber 为 0 时新建取当前最大题号 +1，更新时保持不变
type QuestionRequest struct {
	ProjectID      uint     `json:"project_id"`
	Period         string   `json:"period"`
	QuestionNumber int      `json:"question_number" binding:"gte=0"`
	Category       string   `json:"category"`
	Skill          string   `json:"skill"`
	QuestionText   string   `json:"question_text" binding:"required"`
	Options        []string `json:"options"`
	CorrectAnswer  string   `json:"correct_answer"`
	Explanation    string   `json:"explanation"`
}

type CopyQuestionsRequest struct {
	SourceProjectID uint   `json:"source_project_id" binding:"required"`
	TargetProjectID uint   `json:"target_project_id" binding:"required"`
	QuestionIDs     []uint `json:"question_ids"`
}

type QuestionService struct {
	Repo        *repository.QuestionRepository
	ProjectRepo *repository.ProjectRepository

	revealAnswers atomic.Bool
}

func NewQuestionService(repo *repository.QuestionRepository, projectRepo *repository.ProjectRepository) *QuestionService {
	return &QuestionService{Repo: repo, ProjectRepo: projectRepo}
}

func (s *QuestionService) requireProject(ctx context.Context, id uint) error {
	if id == 0 {
		return fmt.Errorf("%w: project_id is required", util.ErrInvalidInput)
	}
	if _, err := s.ProjectRepo.FindByID(ctx, id); err != nil {
		return notFound(err, "project", id)
	}
	return nil
}

func (s *QuestionService) checkNumber(ctx context.Context, projectID uint, number int, excludeID uint) error {
	taken, err := s.Repo.NumberTaken(ctx, projectID, number, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return fmt.Errorf("%w: question number %d already exists in project %d", util.ErrConflict, number, projectID)
	}
	return nil
}

func (s *QuestionService) Create(ctx context.Context, req QuestionRequest) (*model.Question, error) {
	if err := s.requireProject(ctx, req.ProjectID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.QuestionText) == "" {
		return nil, fmt.Errorf("%w: question_text is required", util.ErrInvalidInput)
	}

	number := req.QuestionNumber
	if number <= 0 {
		max, err := s.Repo.MaxQuestionNumber(ctx, req.ProjectID)
		if err != nil {
			return nil, err
		}
		number = max + 1
	} else if err := s.checkNumber(ctx, req.ProjectID, number, 0); err != nil {
		return nil, err
	}

	q := &model.Question{
		ProjectID:      req.ProjectID,
		Period:         req.Period,
		QuestionNumber: number,
		Category:       req.Category,
		Skill:          req.Skill,
		QuestionText:   req.QuestionText,
		Options:        model.EncodeOptions(req.Options),
		CorrectAnswer:  req.CorrectAnswer,
		Explanation:    req.Explanation,
	}
	if err := s.Repo.Create(ctx, q); err != nil {
		return nil, err
	}
	return q, nil
}

func (s *QuestionService) Update(ctx context.Context, id uint, req QuestionRequest) (*model.Question, error) {
	q, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "question", id)
	}
	if strings.TrimSpace(req.QuestionText) == "" {
		return nil, fmt.Errorf("%w: question_text is required", util.ErrInvalidInput)
	}

	if req.QuestionNumber > 0 && req.QuestionNumber != q.QuestionNumber {
		if err := s.checkNumber(ctx, q.ProjectID, req.QuestionNumber, q.ID); err != nil {
			return nil, err
		}
		q.QuestionNumber = req.QuestionNumber
	}

	q.Period = req.Period
	q.Category = req.Category
	q.Skill = req.Skill
	q.QuestionText = req.QuestionText
	q.Options = model.EncodeOptions(req.Options)
	q.CorrectAnswer = req.CorrectAnswer
	q.Explanation = req.Explanation
	if err := s.Repo.Update(ctx, q); err != nil {
		return nil, err
	}
	return q, nil
}

func (s *QuestionService) Delete(ctx context.Context, id uint) error {
	ok, err := s.Repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: question %d", util.ErrNotFound, id)
	}
	return nil
}

// SetRevealAnswers 与 quiz.reveal_answers 同步，决定匿名列表是否带答案
func (s *QuestionService) SetRevealAnswers(reveal bool) {
	s.revealAnswers.Store(reveal)
}

// List projectID 为 0 时返回全部题目，含正确答案，仅供管理员
func (s *QuestionService) List(ctx context.Context, projectID uint) ([]model.Question, error) {
	return s.Repo.ListByProject(ctx, projectID)
}

// ListPublic 匿名访问的题目列表，默认去掉正确答案和解析
func (s *QuestionService) ListPublic(ctx context.Context, projectID uint) ([]model.PublicQuestion, error) {
	qs, err := s.Repo.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	reveal := s.revealAnswers.Load()
	out := make([]model.PublicQuestion, 0, len(qs))
	for i := range qs {
		out = append(out, qs[i].Public(reveal))
	}
	return out, nil
}

// Copy 复制题目到目标项目，题号接在目标项目最大题号之后并保持源顺序
func (s *QuestionService) Copy(ctx context.Context, req CopyQuestionsRequest) ([]model.Question, error) {
	if err := s.requireProject(ctx, req.SourceProjectID); err != nil {
		return nil, err
	}
	if err := s.requireProject(ctx, req.TargetProjectID); err != nil {
		return nil, err
	}

	var source []model.Question
	var err error
	if len(req.QuestionIDs) == 0 {
		source, err = s.Repo.ListByProject(ctx, req.SourceProjectID)
	} else {
		ids := uniqueIDs(req.QuestionIDs)
		source, err = s.Repo.FindByIDs(ctx, req.SourceProjectID, ids)
		if err == nil && len(source) != len(ids) {
			err = fmt.Errorf("%w: %d of %d questions not found in project %d",
				util.ErrNotFound, len(ids)-len(source), len(ids), req.SourceProjectID)
		}
	}
	if err != nil {
		return nil, err
	}
	if len(source) == 0 {
		return []model.Question{}, nil
	}

	max, err := s.Repo.MaxQuestionNumber(ctx, req.TargetProjectID)
	if err != nil {
		return nil, err
	}

	copies := make([]model.Question, len(source))
	for i, q := range source {
		copies[i] = model.Question{
			ProjectID:      req.TargetProjectID,
			Period:         q.Period,
			QuestionNumber: max + i + 1,
			Category:       q.Category,
			Skill:          q.Skill,
			QuestionText:   q.QuestionText,
			Options:        q.Options,
			CorrectAnswer:  q.CorrectAnswer,
			Explanation:    q.Explanation,
		}
	}
	if err := s.Repo.CreateBatch(ctx, copies); err != nil {
		return nil, err
	}

	logger.Log.Info("questions copied",
		zap.Uint("source_project_id", req.SourceProjectID),
		zap.Uint("target_project_id", req.TargetProjectID),
		zap.Int("count", len(copies)),
	)
	return copies, nil
}

func uniqueIDs(ids []uint) []uint {
	seen := make(map[uint]bool, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if id == 0 || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
