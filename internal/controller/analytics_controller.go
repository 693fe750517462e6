package controller

import (
	"quiz_assessment_backend/internal/service"
	"quiz_assessment_backend/internal/util"
	"strconv"

	"github.com/gin-gonic/gin"
)

type AnalyticsController struct {
	AnalyticsService *service.AnalyticsService
}

func NewAnalyticsController(analyticsService *service.AnalyticsService) *AnalyticsController {
	return &AnalyticsController{AnalyticsService: analyticsService}
}

// @Summary 成绩统计
// @Description 提交数、平均分、优秀人数和今日提交数
// @Tags 分析
// @Produce json
// @Param project_id path int false "项目ID"
// @Param by_period query bool false "是否按测评阶段分组"
// @Success 200 {object} model.StatsResponse
// @Router /stats/{project_id} [get]
func (c *AnalyticsController) Stats(ctx *gin.Context) {
	projectID, ok := optionalProjectID(ctx)
	if !ok {
		return
	}
	byPeriod, _ := strconv.ParseBool(ctx.DefaultQuery("by_period", "false"))

	stats, err := c.AnalyticsService.Stats(ctx.Request.Context(), projectID, byPeriod)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, stats)
}

// @Summary 综合分析
// @Description 阶段统计、能力维度得分和个人进步情况
// @Tags 分析
// @Produce json
// @Param project_id query int false "项目ID"
// @Success 200 {object} model.AnalyticsReport
// @Router /analytics [get]
func (c *AnalyticsController) Analytics(ctx *gin.Context) {
	projectID, ok := optionalProjectID(ctx)
	if !ok {
		return
	}

	report, err := c.AnalyticsService.Analytics(ctx.Request.Context(), projectID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, report)
}

// @Summary 阶段对比
// @Description 按参与者对比各测评阶段成绩
// @Tags 分析
// @Produce json
// @Param project_id path int true "项目ID"
// @Success 200 {object} model.PeriodComparison
// @Failure 404 {object} util.ErrorResponse
// @Router /period-comparison/{project_id} [get]
func (c *AnalyticsController) PeriodComparison(ctx *gin.Context) {
	projectID, ok := pathID(ctx, "project_id")
	if !ok {
		return
	}

	cmp, err := c.AnalyticsService.PeriodComparison(ctx.Request.Context(), projectID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, cmp)
}
