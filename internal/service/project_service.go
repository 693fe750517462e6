package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"quiz_assessment_backend/internal/config"
	"quiz_assessment_backend/internal/model"
	"quiz_assessment_backend/internal/repository"
	"quiz_assessment_backend/internal/util"
	"quiz_assessment_backend/pkg/logger"
	"strings"
	"sync/atomic"

	"go.uber.org/zap"
)

const (
	accessCodeAlphabet    = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	defaultAccessCodeSize = 6
	maxAccessCodeAttempts = 10
)

type ProjectRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	TimeLimit   int    `json:"time_limit" binding:"gte=0"`
}

type StatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type AccessCodeRequest struct {
	AccessCode string `json:"access_code" binding:"required"`
}

// AccessCodeResponse 访问码校验结果
type AccessCodeResponse struct {
	Project   model.Project          `json:"project"`
	Questions []model.PublicQuestion `json:"questions"`
}

type ProjectService struct {
	Repo         *repository.ProjectRepository
	QuestionRepo *repository.QuestionRepository
	GenerateCode func(size int) (string, error)

	codeSize      atomic.Int64
	revealAnswers atomic.Bool
}

func NewProjectService(repo *repository.ProjectRepository, questionRepo *repository.QuestionRepository, cfg config.QuizConfig) *ProjectService {
	s := &ProjectService{
		Repo:         repo,
		QuestionRepo: questionRepo,
		GenerateCode: RandomAccessCode,
	}
	s.UpdateConfig(cfg)
	return s
}

func (s *ProjectService) UpdateConfig(cfg config.QuizConfig) {
	size := cfg.AccessCodeSize
	if size <= 0 {
		size = defaultAccessCodeSize
	}
	s.codeSize.Store(int64(size))
	s.revealAnswers.Store(cfg.RevealAnswers)
}

// RandomAccessCode 使用 crypto/rand 生成大写字母数字访问码
func RandomAccessCode(size int) (string, error) {
	max := big.NewInt(int64(len(accessCodeAlphabet)))
	var sb strings.Builder
	sb.Grow(size)
	for i := 0; i < size; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		sb.WriteByte(accessCodeAlphabet[n.Int64()])
	}
	return sb.String(), nil
}

func (s *ProjectService) uniqueAccessCode(ctx context.Context) (string, error) {
	for attempt := 0; attempt < maxAccessCodeAttempts; attempt++ {
		code, err := s.GenerateCode(int(s.codeSize.Load()))
		if err != nil {
			return "", err
		}
		exists, err := s.Repo.AccessCodeExists(ctx, code)
		if err != nil {
			return "", err
		}
		if !exists {
			return code, nil
		}
	}
	return "", fmt.Errorf("%w: no free access code after %d attempts", util.ErrConflict, maxAccessCodeAttempts)
}

func (s *ProjectService) Create(ctx context.Context, req ProjectRequest) (*model.Project, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", util.ErrInvalidInput)
	}
	if req.TimeLimit < 0 {
		return nil, fmt.Errorf("%w: time_limit must be >= 0", util.ErrInvalidInput)
	}

	code, err := s.uniqueAccessCode(ctx)
	if err != nil {
		return nil, err
	}

	p := &model.Project{
		Name:        name,
		AccessCode:  code,
		TimeLimit:   req.TimeLimit,
		Description: req.Description,
		Status:      model.ProjectActive,
	}
	if err := s.Repo.Create(ctx, p); err != nil {
		return nil, err
	}
	logger.Log.Info("project created", zap.Uint("project_id", p.ID), zap.String("access_code", p.AccessCode))
	return p, nil
}

// ValidateAccessCode 返回项目和题目；默认不返回正确答案和解析
func (s *ProjectService) ValidateAccessCode(ctx context.Context, code string) (*AccessCodeResponse, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil, fmt.Errorf("%w: access_code is required", util.ErrInvalidInput)
	}

	p, err := s.Repo.FindActiveByAccessCode(ctx, code)
	if err != nil {
		return nil, err
	}
	questions, err := s.QuestionRepo.ListByProject(ctx, p.ID)
	if err != nil {
		return nil, err
	}

	reveal := s.revealAnswers.Load()
	public := make([]model.PublicQuestion, 0, len(questions))
	for i := range questions {
		public = append(public, questions[i].Public(reveal))
	}
	return &AccessCodeResponse{Project: *p, Questions: public}, nil
}

func (s *ProjectService) List(ctx context.Context) ([]model.ProjectSummary, error) {
	return s.Repo.ListSummaries(ctx)
}

func (s *ProjectService) Get(ctx context.Context, id uint) (*model.Project, error) {
	p, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "project", id)
	}
	return p, nil
}

func (s *ProjectService) Update(ctx context.Context, id uint, req ProjectRequest) (*model.Project, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", util.ErrInvalidInput)
	}

	p.Name = name
	p.Description = req.Description
	p.TimeLimit = req.TimeLimit
	if err := s.Repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *ProjectService) SetStatus(ctx context.Context, id uint, status string) error {
	st := model.ProjectStatus(strings.ToLower(strings.TrimSpace(status)))
	if !st.Valid() {
		return fmt.Errorf("%w: status must be active or closed", util.ErrInvalidInput)
	}
	if err := s.Repo.UpdateStatus(ctx, id, st); err != nil {
		return notFound(err, "project", id)
	}
	logger.Log.Info("project status changed", zap.Uint("project_id", id), zap.String("status", string(st)))
	return nil
}

// Delete 级联删除题目和答卷
func (s *ProjectService) Delete(ctx context.Context, id uint) error {
	if err := s.Repo.DeleteCascade(ctx, id); err != nil {
		return notFound(err, "project", id)
	}
	logger.Log.Info("project deleted", zap.Uint("project_id", id))
	return nil
}
