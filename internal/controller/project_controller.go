package controller

import (
	"quiz_assessment_backend/internal/service"
	"quiz_assessment_backend/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

type ProjectController struct {
	Service *service.ProjectService
}

func NewProjectController(svc *service.ProjectService) *ProjectController {
	return &ProjectController{Service: svc}
}

// @Summary 创建测评项目
// @Description 自动生成 6 位访问码
// @Tags 项目
// @Accept json
// @Produce json
// @Security AdminPassword
// @Param body body service.ProjectRequest true "项目信息"
// @Success 201 {object} model.Project
// @Router /projects [post]
func (c *ProjectController) Create(ctx *gin.Context) {
	var req service.ProjectRequest
	if err := ctx.ShouldBindBodyWith(&req, binding.JSON); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	p, err := c.Service.Create(ctx.Request.Context(), req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, p)
}

// @Summary 项目列表
// @Tags 项目
// @Produce json
// @Success 200 {array} model.ProjectSummary
// @Router /projects [get]
func (c *ProjectController) List(ctx *gin.Context) {
	ps, err := c.Service.List(ctx.Request.Context())
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, ps)
}

// @Summary 项目详情
// @Tags 项目
// @Produce json
// @Param id path int true "项目ID"
// @Success 200 {object} model.Project
// @Failure 404 {object} util.ErrorResponse
// @Router /projects/{id} [get]
func (c *ProjectController) Get(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	p, err := c.Service.Get(ctx.Request.Context(), id)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, p)
}

// @Summary 更新项目
// @Tags 项目
// @Accept json
// @Produce json
// @Security AdminPassword
// @Param id path int true "项目ID"
// @Param body body service.ProjectRequest true "项目信息"
// @Success 200 {object} model.Project
// @Router /projects/{id} [put]
func (c *ProjectController) Update(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	var req service.ProjectRequest
	if err := ctx.ShouldBindBodyWith(&req, binding.JSON); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	p, err := c.Service.Update(ctx.Request.Context(), id, req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, p)
}

// @Summary 修改项目状态
// @Tags 项目
// @Accept json
// @Produce json
// @Security AdminPassword
// @Param id path int true "项目ID"
// @Param body body service.StatusRequest true "active 或 closed"
// @Success 200 {object} util.MessageResponse
// @Router /projects/{id}/status [put]
func (c *ProjectController) SetStatus(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	var req service.StatusRequest
	if err := ctx.ShouldBindBodyWith(&req, binding.JSON); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.Service.SetStatus(ctx.Request.Context(), id, req.Status); err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, util.MessageResponse{Success: true, Message: "Status updated"})
}

// @Summary 删除项目
// @Description 同时删除该项目的题目和答卷
// @Tags 项目
// @Produce json
// @Security AdminPassword
// @Param id path int true "项目ID"
// @Success 200 {object} util.MessageResponse
// @Failure 404 {object} util.ErrorResponse
// @Router /projects/{id} [delete]
func (c *ProjectController) Delete(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	if err := c.Service.Delete(ctx.Request.Context(), id); err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, util.MessageResponse{Success: true, Message: "Project deleted"})
}

// @Summary 校验访问码
// @Description 返回进行中的项目及题目，默认不含正确答案
// @Tags 项目
// @Accept json
// @Produce json
// @Param body body service.AccessCodeRequest true "访问码"
// @Success 200 {object} service.AccessCodeResponse
// @Failure 404 {object} util.ErrorResponse
// @Router /validate-access-code [post]
func (c *ProjectController) ValidateAccessCode(ctx *gin.Context) {
	var req service.AccessCodeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	resp, err := c.Service.ValidateAccessCode(ctx.Request.Context(), req.AccessCode)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, resp)
}
