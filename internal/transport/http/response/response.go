package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Envelope 用于无记录体的确认/错误响应
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func OK(c *gin.Context, data any)      { c.JSON(http.StatusOK, data) }
func Created(c *gin.Context, data any) { c.JSON(http.StatusCreated, data) }

// Success 200 + 确认信息
func Success(c *gin.Context, msg string) {
	c.JSON(http.StatusOK, Envelope{Success: true, Message: msg})
}

func Fail(c *gin.Context, status int, msg string) {
	c.JSON(status, Envelope{Success: false, Message: msg})
}

// AbortFail 供中间件使用，终止后续 handler
func AbortFail(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, Envelope{Success: false, Message: msg})
}

func BadRequest(c *gin.Context, msg string)   { Fail(c, http.StatusBadRequest, msg) }
func Unauthorized(c *gin.Context, msg string) { Fail(c, http.StatusUnauthorized, msg) }
func NotFound(c *gin.Context, msg string)     { Fail(c, http.StatusNotFound, msg) }

// ServerError 统一 500；底层错误只进日志，不下发客户端
func ServerError(c *gin.Context) {
	Fail(c, http.StatusInternalServerError, "server error")
}
