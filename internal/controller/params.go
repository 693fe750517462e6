package controller

import (
	"quiz_assessment_backend/internal/util"
	"strconv"

	"github.com/gin-gonic/gin"
)

// pathID 解析路径中的正整数 ID，失败时直接返回 400
func pathID(ctx *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param(name), 10, 32)
	if err != nil || id == 0 {
		util.BadRequest(ctx, "invalid "+name)
		return 0, false
	}
	return uint(id), true
}

// optionalProjectID 路径参数优先，其次 query；均为空表示全部项目
func optionalProjectID(ctx *gin.Context) (uint, bool) {
	raw := ctx.Param("project_id")
	if raw == "" {
		raw = ctx.Query("project_id")
	}
	if raw == "" || raw == "all" {
		return 0, true
	}
	id, err := util.ParseOptionalUint(raw)
	if err != nil {
		util.BadRequest(ctx, "invalid project_id")
		return 0, false
	}
	return id, true
}
