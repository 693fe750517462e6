package controller

import (
	"fmt"
	"net/http"
	"quiz_assessment_backend/internal/service"
	"quiz_assessment_backend/internal/util"
	"strconv"

	"github.com/gin-gonic/gin"
)

type ExportController struct {
	Service *service.ExportService
}

func NewExportController(svc *service.ExportService) *ExportController {
	return &ExportController{Service: svc}
}

// @Summary 下载 CSV
// @Description 导出答卷为 CSV，questions 为逐题列数，默认取配置值
// @Tags 导出
// @Produce text/csv
// @Param project_id query int false "项目ID"
// @Param questions query int false "题目列数"
// @Success 200 {file} file
// @Failure 404 {object} util.ErrorResponse "没有可导出的数据"
// @Router /download-csv [get]
func (c *ExportController) DownloadCSV(ctx *gin.Context) {
	projectID, ok := optionalProjectID(ctx)
	if !ok {
		return
	}
	questions := 0
	if raw := ctx.Query("questions"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			util.BadRequest(ctx, "invalid questions")
			return
		}
		questions = n
	}

	filename, data, err := c.Service.Download(ctx.Request.Context(), projectID, questions)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	ctx.Data(http.StatusOK, util.MimeCSV+"; charset=utf-8", data)
}

// @Summary 归档 CSV 报表
// @Description 生成 CSV 并上传到对象存储，返回访问地址
// @Tags 导出
// @Produce json
// @Security AdminPassword
// @Param project_id query int false "项目ID"
// @Success 200 {object} map[string]string
// @Router /reports/archive [post]
func (c *ExportController) Archive(ctx *gin.Context) {
	projectID, ok := optionalProjectID(ctx)
	if !ok {
		return
	}

	url, err := c.Service.Archive(ctx.Request.Context(), projectID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"url": url})
}
