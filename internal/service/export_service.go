package service

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"quiz_assessment_backend/internal/model"
	"quiz_assessment_backend/internal/repository"
	"quiz_assessment_backend/internal/util"
	"quiz_assessment_backend/pkg/logger"
	"quiz_assessment_backend/pkg/monitoring"
	"quiz_assessment_backend/pkg/tracing"
	"strconv"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

const (
	// DefaultQuestionCount CSV 默认题目列数
	DefaultQuestionCount = 20
	// DefaultMaxQuestionCount 请求可指定的最大题目列数
	DefaultMaxQuestionCount = 200
)

var csvBaseHeader = []string{
	"id", "participant_name", "project_id", "project_name", "period",
	"total_score", "percentage", "time_taken", "completed_at", "created_at",
}

var csvQuestionSuffixes = []string{"_answer", "_correct_answer", "_category", "_skill", "_is_correct"}

type ExportService struct {
	ResultRepo  *repository.ResultRepository
	ProjectRepo *repository.ProjectRepository
	Storage     *StorageService
	Now         func() time.Time

	questionCount    atomic.Int64
	maxQuestionCount atomic.Int64
}

func NewExportService(resultRepo *repository.ResultRepository, projectRepo *repository.ProjectRepository, storage *StorageService, questionCount int) *ExportService {
	s := &ExportService{
		ResultRepo:  resultRepo,
		ProjectRepo: projectRepo,
		Storage:     storage,
		Now:         time.Now,
	}
	s.SetQuestionCount(questionCount)
	s.SetMaxQuestionCount(DefaultMaxQuestionCount)
	return s
}

func (s *ExportService) SetQuestionCount(n int) {
	if n <= 0 {
		n = DefaultQuestionCount
	}
	s.questionCount.Store(int64(n))
}

func (s *ExportService) QuestionCount() int {
	return int(s.questionCount.Load())
}

func (s *ExportService) SetMaxQuestionCount(n int) {
	if n <= 0 {
		n = DefaultMaxQuestionCount
	}
	s.maxQuestionCount.Store(int64(n))
}

func (s *ExportService) MaxQuestionCount() int {
	return int(s.maxQuestionCount.Load())
}

// ToCSV 所有字段加引号，缺失值输出为空字符串；行顺序与输入一致
func ToCSV(results []model.Result, projectName func(uint) string, questionCount int) ([]byte, error) {
	if len(results) == 0 {
		return nil, util.ErrNoData
	}
	if projectName == nil {
		projectName = func(uint) string { return "" }
	}

	header := make([]string, 0, len(csvBaseHeader)+questionCount*len(csvQuestionSuffixes))
	header = append(header, csvBaseHeader...)
	for n := 1; n <= questionCount; n++ {
		for _, suffix := range csvQuestionSuffixes {
			header = append(header, "Q"+strconv.Itoa(n)+suffix)
		}
	}

	var buf bytes.Buffer
	util.WriteCSVRow(&buf, header)
	for i := range results {
		util.WriteCSVRow(&buf, csvRecord(&results[i], projectName(results[i].ProjectID), questionCount))
	}
	return buf.Bytes(), nil
}

func csvRecord(r *model.Result, projectName string, questionCount int) []string {
	timeTaken := ""
	if r.TimeTaken != nil {
		timeTaken = strconv.Itoa(*r.TimeTaken)
	}

	record := []string{
		r.ID,
		r.ParticipantName,
		strconv.FormatUint(uint64(r.ProjectID), 10),
		projectName,
		r.Period,
		strconv.Itoa(r.TotalScore),
		strconv.FormatFloat(r.Percentage, 'f', -1, 64),
		timeTaken,
		formatTime(r.CompletedAt),
		formatTime(r.CreatedAt),
	}
	for n := 1; n <= questionCount; n++ {
		a, ok := r.AnswerFor(n)
		if !ok {
			record = append(record, "", "", "", "", "")
			continue
		}
		record = append(record, a.UserAnswer, a.CorrectAnswer, a.Category, a.Skill, strconv.FormatBool(a.IsCorrect))
	}
	return record
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

// maxAnswered 数据集中出现的最大题号
func maxAnswered(results []model.Result) int {
	max := 0
	for _, r := range results {
		for _, a := range r.Answers {
			if a.QuestionNumber > max {
				max = a.QuestionNumber
			}
		}
	}
	return max
}

// Export 生成 CSV，questionCount 为 0 时使用配置值，并自动扩展到最大已答题号；
// 请求值超过 export.max_question_count 时拒绝
func (s *ExportService) Export(ctx context.Context, projectID uint, questionCount int) (string, []byte, error) {
	if limit := s.MaxQuestionCount(); questionCount > limit {
		return "", nil, fmt.Errorf("%w: questions must be at most %d", util.ErrInvalidInput, limit)
	}

	ctx, span := tracing.Tracer.Start(ctx, "ExportService.Export")
	defer span.End()

	results, err := s.ResultRepo.ListByProject(ctx, projectID)
	if err != nil {
		return "", nil, err
	}
	span.SetAttributes(attribute.Int("quiz.results", len(results)))

	names, err := s.ProjectRepo.Names(ctx)
	if err != nil {
		return "", nil, err
	}

	if questionCount <= 0 {
		questionCount = s.QuestionCount()
	}
	if m := maxAnswered(results); m > questionCount {
		questionCount = m
	}

	data, err := ToCSV(results, func(id uint) string { return names[id] }, questionCount)
	if err != nil {
		return "", nil, err
	}
	return s.filename(projectID), data, nil
}

func (s *ExportService) filename(projectID uint) string {
	scope := "all"
	if projectID > 0 {
		scope = "project_" + strconv.FormatUint(uint64(projectID), 10)
	}
	return fmt.Sprintf("quiz_results_%s_%s.csv", scope, s.Now().UTC().Format(util.DateFormat))
}

// Download 供 HTTP 下载使用，记录导出次数
func (s *ExportService) Download(ctx context.Context, projectID uint, questionCount int) (string, []byte, error) {
	filename, data, err := s.Export(ctx, projectID, questionCount)
	if err != nil {
		return "", nil, err
	}
	monitoring.ExportCounter.WithLabelValues("download").Inc()
	return filename, data, nil
}

// Archive 生成 CSV 并上传到存储后端，返回访问地址
func (s *ExportService) Archive(ctx context.Context, projectID uint) (string, error) {
	filename, data, err := s.Export(ctx, projectID, 0)
	if err != nil {
		return "", err
	}

	key := path.Join("reports", filename)
	url, err := s.Storage.Upload(ctx, key, bytes.NewReader(data), int64(len(data)), util.MimeCSV)
	if err != nil {
		return "", err
	}

	monitoring.ExportCounter.WithLabelValues("archive").Inc()
	logger.Log.Info("report archived", zap.Uint("project_id", projectID), zap.String("url", url))
	return url, nil
}
