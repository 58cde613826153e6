package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"go-eshop-api/internal/domain"
	"go-eshop-api/internal/service"
	resp "go-eshop-api/internal/transport/http/response"
)

const userNotFound = "User not found"

type UserHandler struct {
	svc *service.UserService
	log *zap.Logger
}

func NewUserHandler(svc *service.UserService, log *zap.Logger) *UserHandler {
	return &UserHandler{svc: svc, log: log}
}

func (h *UserHandler) Register(g *gin.RouterGroup, authed gin.HandlerFunc) {
	g.POST("/login", h.Login)
	g.POST("/register", h.Create) // register 是 create 的公开别名
	g.GET("", authed, h.List)
	g.GET("/:id", authed, h.Get)
	g.GET("/get/count", authed, h.Count)
	g.POST("", authed, h.Create)
	g.PUT("/:id", authed, h.Update)
	g.DELETE("/:id", authed, h.Delete)
}

type userReq struct {
	Name      string `json:"name" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password"`
	Phone     string `json:"phone"`
	IsAdmin   bool   `json:"isAdmin"`
	Street    string `json:"street"`
	Apartment string `json:"apartment"`
	Zip       string `json:"zip"`
	City      string `json:"city"`
	Country   string `json:"country"`
}

func (r *userReq) toDomain(id string) *domain.User {
	return &domain.User{
		ID:        id,
		Name:      r.Name,
		Email:     r.Email,
		Phone:     r.Phone,
		IsAdmin:   r.IsAdmin,
		Street:    r.Street,
		Apartment: r.Apartment,
		Zip:       r.Zip,
		City:      r.City,
		Country:   r.Country,
	}
}

type loginReq struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// List/Get 永不下发 passwordHash（模型层 json:"-"）
func (h *UserHandler) List(c *gin.Context) {
	us, err := h.svc.List(c.Request.Context())
	if err != nil {
		writeError(c, h.log, err, userNotFound)
		return
	}
	resp.OK(c, us)
}

func (h *UserHandler) Get(c *gin.Context) {
	u, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, h.log, err, userNotFound)
		return
	}
	resp.OK(c, u)
}

func (h *UserHandler) Create(c *gin.Context) {
	var req userReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	if req.Password == "" {
		resp.BadRequest(c, "password is required")
		return
	}
	u := req.toDomain("")
	if err := h.svc.Create(c.Request.Context(), u, req.Password); err != nil {
		writeError(c, h.log, err, userNotFound)
		return
	}
	resp.Created(c, u)
}

// Update 不带密码时沿用旧散列
func (h *UserHandler) Update(c *gin.Context) {
	var req userReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	u := req.toDomain(c.Param("id"))
	if err := h.svc.Update(c.Request.Context(), u, req.Password); err != nil {
		writeError(c, h.log, err, userNotFound)
		return
	}
	resp.OK(c, u)
}

func (h *UserHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, h.log, err, userNotFound)
		return
	}
	resp.Success(c, "The user is deleted!")
}

func (h *UserHandler) Count(c *gin.Context) {
	n, err := h.svc.Count(c.Request.Context())
	if err != nil {
		writeError(c, h.log, err, userNotFound)
		return
	}
	resp.OK(c, gin.H{"userCount": n})
}

// Login 未知邮箱与密码错误返回同一个 400，不泄露账号是否存在
func (h *UserHandler) Login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	u, token, err := h.svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeError(c, h.log, err, userNotFound)
		return
	}
	resp.OK(c, gin.H{"user": u.Email, "token": token})
}
