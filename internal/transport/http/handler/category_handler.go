package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"go-eshop-api/internal/domain"
	"go-eshop-api/internal/service"
	resp "go-eshop-api/internal/transport/http/response"
)

const categoryNotFound = "The category with the given ID was not found."

type CategoryHandler struct {
	svc *service.CategoryService
	log *zap.Logger
}

func NewCategoryHandler(svc *service.CategoryService, log *zap.Logger) *CategoryHandler {
	return &CategoryHandler{svc: svc, log: log}
}

func (h *CategoryHandler) Register(g *gin.RouterGroup, authed gin.HandlerFunc) {
	g.GET("", h.List)
	g.GET("/:id", h.Get)
	g.POST("", authed, h.Create)
	g.PUT("/:id", authed, h.Update)
	g.DELETE("/:id", authed, h.Delete)
}

type categoryReq struct {
	Name  string `json:"name" binding:"required"`
	Icon  string `json:"icon"`
	Color string `json:"color"`
}

func (h *CategoryHandler) List(c *gin.Context) {
	cats, err := h.svc.List(c.Request.Context())
	if err != nil {
		writeError(c, h.log, err, categoryNotFound)
		return
	}
	resp.OK(c, cats)
}

func (h *CategoryHandler) Get(c *gin.Context) {
	cat, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, h.log, err, categoryNotFound)
		return
	}
	resp.OK(c, cat)
}

func (h *CategoryHandler) Create(c *gin.Context) {
	var req categoryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	cat := &domain.Category{Name: req.Name, Icon: req.Icon, Color: req.Color}
	if err := h.svc.Create(c.Request.Context(), cat); err != nil {
		writeError(c, h.log, err, categoryNotFound)
		return
	}
	resp.Created(c, cat)
}

func (h *CategoryHandler) Update(c *gin.Context) {
	var req categoryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	cat := &domain.Category{ID: c.Param("id"), Name: req.Name, Icon: req.Icon, Color: req.Color}
	if err := h.svc.Update(c.Request.Context(), cat); err != nil {
		writeError(c, h.log, err, categoryNotFound)
		return
	}
	resp.OK(c, cat)
}

func (h *CategoryHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, h.log, err, "Category not found!")
		return
	}
	resp.Success(c, "The category is deleted!")
}
