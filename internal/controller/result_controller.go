package controller

import (
	"quiz_assessment_backend/internal/service"
	"quiz_assessment_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ResultController struct {
	Service *service.ResultService
}

func NewResultController(svc *service.ResultService) *ResultController {
	return &ResultController{Service: svc}
}

// @Summary 提交答卷
// @Description 校验答卷，按题库补全标准答案后判分保存
// @Tags 答卷
// @Accept json
// @Produce json
// @Param body body service.SubmissionRequest true "答卷"
// @Success 201 {object} util.SubmitResponse
// @Failure 400 {object} util.ErrorResponse
// @Failure 404 {object} util.ErrorResponse
// @Router /submit-quiz [post]
func (c *ResultController) Submit(ctx *gin.Context) {
	var req service.SubmissionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.ErrorWithDetails(ctx, util.StatusFor(util.ErrInvalidSubmission), util.ErrInvalidSubmission.Error(), err.Error())
		return
	}

	result, err := c.Service.Submit(ctx.Request.Context(), req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Created(ctx, util.SubmitResponse{
		Success: true,
		ID:      result.ID,
		Message: "Quiz submitted successfully",
	})
}

// @Summary 答卷列表
// @Description 按完成时间倒序，逐题字段展开为 Q{n} 等键
// @Tags 答卷
// @Produce json
// @Param project_id path int false "项目ID，不传返回全部"
// @Success 200 {array} object
// @Router /results/{project_id} [get]
func (c *ResultController) List(ctx *gin.Context) {
	projectID, ok := optionalProjectID(ctx)
	if !ok {
		return
	}

	rows, err := c.Service.List(ctx.Request.Context(), projectID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, rows)
}

// @Summary 清空答卷
// @Tags 答卷
// @Produce json
// @Security AdminPassword
// @Param project_id path int false "项目ID，不传清空全部"
// @Success 200 {object} util.MessageResponse
// @Failure 401 {object} util.ErrorResponse
// @Router /results/{project_id} [delete]
func (c *ResultController) DeleteAll(ctx *gin.Context) {
	projectID, ok := optionalProjectID(ctx)
	if !ok {
		return
	}

	n, err := c.Service.DeleteAll(ctx.Request.Context(), projectID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, util.MessageResponse{Success: true, Message: "Results deleted", Deleted: n})
}

// @Summary 删除单条答卷
// @Tags 答卷
// @Produce json
// @Security AdminPassword
// @Param id path string true "答卷ID"
// @Success 200 {object} util.MessageResponse
// @Failure 404 {object} util.ErrorResponse
// @Router /results/record/{id} [delete]
func (c *ResultController) DeleteRecord(ctx *gin.Context) {
	if err := c.Service.DeleteOne(ctx.Request.Context(), ctx.Param("id")); err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, util.MessageResponse{Success: true, Message: "Result deleted", Deleted: 1})
}
