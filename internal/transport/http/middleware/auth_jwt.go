package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"go-eshop-api/internal/core/auth"
	resp "go-eshop-api/internal/transport/http/response"
)

// AuthJWT 解析 Bearer 令牌并把 userId / isAdmin 放进请求上下文。
// adminOnly 为 true 时要求管理员标记。
func AuthJWT(j *auth.JWTer, adminOnly bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		ah := c.GetHeader("Authorization")
		if !strings.HasPrefix(ah, "Bearer ") {
			resp.AbortFail(c, http.StatusUnauthorized, "missing token")
			return
		}
		claims, err := j.Parse(strings.TrimPrefix(ah, "Bearer "))
		if err != nil {
			resp.AbortFail(c, http.StatusUnauthorized, "invalid token")
			return
		}
		if adminOnly && !claims.IsAdmin {
			resp.AbortFail(c, http.StatusForbidden, "forbidden")
			return
		}
		c.Set("userId", claims.UserID)
		c.Set("isAdmin", claims.IsAdmin)
		c.Next()
	}
}
