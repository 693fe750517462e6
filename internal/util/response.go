package util

import (
	"errors"
	"net/http"
	"quiz_assessment_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorResponse 统一错误响应结构
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// SubmitResponse 提交答卷响应
type SubmitResponse struct {
	Success bool   `json:"success"`
	ID      string `json:"id"`
	Message string `json:"message"`
}

// MessageResponse 通用操作响应
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Deleted int64  `json:"deleted,omitempty"`
}

func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}

func Error(c *gin.Context, code int, message string) {
	c.JSON(code, ErrorResponse{Error: message})
}

func ErrorWithDetails(c *gin.Context, code int, message, details string) {
	c.JSON(code, ErrorResponse{Error: message, Details: details})
}

func Unauthorized(c *gin.Context) {
	Error(c, http.StatusUnauthorized, "Unauthorized")
}

func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

func InternalServerError(c *gin.Context) {
	Error(c, http.StatusInternalServerError, "Internal server error")
}

func LogInternalError(c *gin.Context, err error) {
	logger.Log.Error("Internal server error",
		zap.String("path", c.FullPath()),
		zap.Error(err),
	)
	ErrorWithDetails(c, http.StatusInternalServerError, "Internal server error", err.Error())
}

// StatusFor 将领域错误映射为 HTTP 状态码
func StatusFor(err error) int {
	switch {
	case errors.Is(err, ErrInvalidSubmission), errors.Is(err, ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrNoData):
		return http.StatusNotFound
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// HandleError 按错误类型输出 {error, details}，5xx 记录日志
func HandleError(c *gin.Context, err error) {
	code := StatusFor(err)
	if code == http.StatusInternalServerError {
		LogInternalError(c, err)
		return
	}

	var root error
	for _, sentinel := range []error{ErrInvalidSubmission, ErrInvalidInput, ErrNotFound, ErrNoData, ErrUnauthorized, ErrConflict} {
		if errors.Is(err, sentinel) {
			root = sentinel
			break
		}
	}
	details := ""
	if err.Error() != root.Error() {
		details = err.Error()
	}
	ErrorWithDetails(c, code, root.Error(), details)
}
