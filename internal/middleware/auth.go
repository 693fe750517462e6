package middleware

import (
	"quiz_assessment_backend/internal/service"
	"quiz_assessment_backend/internal/util"
	"quiz_assessment_backend/pkg/logger"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"go.uber.org/zap"
)

const (
	AdminPasswordHeader = "X-Admin-Password"
	adminContextKey     = "admin"
)

type passwordBody struct {
	Password string `json:"password"`
}

// authenticate 依次尝试 Bearer token、X-Admin-Password 头、JSON body 中的 password 字段
//
// body 通过 ShouldBindBodyWith 读取并缓存，后续 handler 需同样使用 ShouldBindBodyWith。
func authenticate(c *gin.Context, auth *service.AuthService) (*util.Claims, bool) {
	if header := c.GetHeader("Authorization"); strings.HasPrefix(header, "Bearer ") {
		claims, err := auth.ValidateToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			logger.Log.Debug("admin token rejected", zap.Error(err))
			return nil, false
		}
		return claims, true
	}

	password := c.GetHeader(AdminPasswordHeader)
	if password == "" && c.Request.ContentLength != 0 && strings.Contains(c.ContentType(), "json") {
		var body passwordBody
		if err := c.ShouldBindBodyWith(&body, binding.JSON); err == nil {
			password = body.Password
		}
	}
	if !auth.CheckPassword(password) {
		return nil, false
	}
	return &util.Claims{Role: util.RoleAdmin}, true
}

// AdminMiddleware 未通过管理员认证时返回 401
func AdminMiddleware(auth *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := authenticate(c, auth)
		if !ok {
			logger.Log.Warn("admin authentication failed",
				zap.String("path", c.FullPath()),
				zap.String("ip", c.ClientIP()),
			)
			util.Unauthorized(c)
			c.Abort()
			return
		}
		c.Set(adminContextKey, claims)
		c.Next()
	}
}

// TryAdminMiddleware 可选认证，凭据有效时标记为管理员，否则按匿名访问继续
func TryAdminMiddleware(auth *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims, ok := authenticate(c, auth); ok {
			c.Set(adminContextKey, claims)
		}
		c.Next()
	}
}

// IsAdmin 当前请求是否已通过管理员认证
func IsAdmin(c *gin.Context) bool {
	_, ok := c.Get(adminContextKey)
	return ok
}
