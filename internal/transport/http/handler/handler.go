package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"go-eshop-api/internal/domain"
	resp "go-eshop-api/internal/transport/http/response"
)

// writeError 统一把业务错误映射到状态码：
// ErrNotFound→404，业务校验类→400，其余→500（细节只进日志）。
func writeError(c *gin.Context, log *zap.Logger, err error, notFoundMsg string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		resp.NotFound(c, notFoundMsg)
	case errors.Is(err, domain.ErrInvalidCategory),
		errors.Is(err, domain.ErrInvalidProduct),
		errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, domain.ErrDuplicateEmail):
		resp.BadRequest(c, err.Error())
	default:
		log.Error("storage failure",
			zap.String("path", c.FullPath()),
			zap.String("method", c.Request.Method),
			zap.Error(err),
		)
		resp.ServerError(c)
	}
}
