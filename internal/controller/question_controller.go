package controller

import (
	"quiz_assessment_backend/internal/middleware"
	"quiz_assessment_backend/internal/service"
	"quiz_assessment_backend/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

type QuestionController struct {
	Service *service.QuestionService
}

func NewQuestionController(svc *service.QuestionService) *QuestionController {
	return &QuestionController{Service: svc}
}

// @Summary 题目列表
// @Description 管理员可见正确答案和解析，匿名访问按 quiz.reveal_answers 决定
// @Tags 题库
// @Produce json
// @Param project_id query int false "项目ID"
// @Success 200 {array} model.PublicQuestion
// @Router /questions [get]
func (c *QuestionController) List(ctx *gin.Context) {
	projectID, ok := optionalProjectID(ctx)
	if !ok {
		return
	}

	if middleware.IsAdmin(ctx) {
		qs, err := c.Service.List(ctx.Request.Context(), projectID)
		if err != nil {
			util.HandleError(ctx, err)
			return
		}
		util.Success(ctx, qs)
		return
	}

	qs, err := c.Service.ListPublic(ctx.Request.Context(), projectID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, qs)
}

// @Summary 新建题目
// @Description 不传题号时取项目内最大题号 +1
// @Tags 题库
// @Accept json
// @Produce json
// @Security AdminPassword
// @Param body body service.QuestionRequest true "题目"
// @Success 201 {object} model.Question
// @Failure 409 {object} util.ErrorResponse
// @Router /questions [post]
func (c *QuestionController) Create(ctx *gin.Context) {
	var req service.QuestionRequest
	if err := ctx.ShouldBindBodyWith(&req, binding.JSON); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	q, err := c.Service.Create(ctx.Request.Context(), req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, q)
}

// @Summary 更新题目
// @Tags 题库
// @Accept json
// @Produce json
// @Security AdminPassword
// @Param id path int true "题目ID"
// @Param body body service.QuestionRequest true "题目"
// @Success 200 {object} model.Question
// @Router /questions/{id} [put]
func (c *QuestionController) Update(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	var req service.QuestionRequest
	if err := ctx.ShouldBindBodyWith(&req, binding.JSON); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	q, err := c.Service.Update(ctx.Request.Context(), id, req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, q)
}

// @Summary 删除题目
// @Tags 题库
// @Produce json
// @Security AdminPassword
// @Param id path int true "题目ID"
// @Success 200 {object} util.MessageResponse
// @Router /questions/{id} [delete]
func (c *QuestionController) Delete(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	if err := c.Service.Delete(ctx.Request.Context(), id); err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Success(ctx, util.MessageResponse{Success: true, Message: "Question deleted"})
}

// @Summary 复制题目
// @Description 复制到目标项目，题号接在目标项目最大题号之后
// @Tags 题库
// @Accept json
// @Produce json
// @Security AdminPassword
// @Param body body service.CopyQuestionsRequest true "复制参数"
// @Success 201 {array} model.Question
// @Router /questions/copy [post]
func (c *QuestionController) Copy(ctx *gin.Context) {
	var req service.CopyQuestionsRequest
	if err := ctx.ShouldBindBodyWith(&req, binding.JSON); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	qs, err := c.Service.Copy(ctx.Request.Context(), req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}
	util.Created(ctx, qs)
}
