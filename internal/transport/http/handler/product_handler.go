package handler

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"go-eshop-api/internal/domain"
	"go-eshop-api/internal/service"
	resp "go-eshop-api/internal/transport/http/response"
)

const productNotFound = "Product not found"

type ProductHandler struct {
	svc *service.ProductService
	log *zap.Logger
}

func NewProductHandler(svc *service.ProductService, log *zap.Logger) *ProductHandler {
	return &ProductHandler{svc: svc, log: log}
}

func (h *ProductHandler) Register(g *gin.RouterGroup, authed gin.HandlerFunc) {
	g.GET("", h.List)
	g.GET("/:id", h.Get)
	g.GET("/get/count", h.Count)
	g.GET("/get/featured/:count", h.Featured)
	g.POST("", authed, h.Create)
	g.PUT("/:id", authed, h.Update)
	g.DELETE("/:id", authed, h.Delete)
}

type productReq struct {
	Name            string          `json:"name" binding:"required"`
	Description     string          `json:"description"`
	RichDescription string          `json:"richDescription"`
	Image           string          `json:"image"`
	Brand           string          `json:"brand"`
	Price           decimal.Decimal `json:"price"`
	Category        string          `json:"category" binding:"required"`
	CountInStock    int             `json:"countInStock"`
	Rating          float64         `json:"rating"`
	NumReviews      int             `json:"numReviews"`
	IsFeatured      bool            `json:"isFeatured"`
}

func (r *productReq) toDomain(id string) *domain.Product {
	return &domain.Product{
		ID:              id,
		Name:            r.Name,
		Description:     r.Description,
		RichDescription: r.RichDescription,
		Image:           r.Image,
		Brand:           r.Brand,
		Price:           r.Price,
		CategoryID:      r.Category,
		CountInStock:    r.CountInStock,
		Rating:          r.Rating,
		NumReviews:      r.NumReviews,
		IsFeatured:      r.IsFeatured,
	}
}

// List 支持 ?categories=a,b,c：按分类集合过滤，缺省返回全部
func (h *ProductHandler) List(c *gin.Context) {
	var categoryIDs []string
	if raw := c.Query("categories"); raw != "" {
		categoryIDs = strings.Split(raw, ",")
	}
	ps, err := h.svc.List(c.Request.Context(), categoryIDs)
	if err != nil {
		writeError(c, h.log, err, productNotFound)
		return
	}
	resp.OK(c, ps)
}

func (h *ProductHandler) Get(c *gin.Context) {
	p, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, h.log, err, productNotFound)
		return
	}
	resp.OK(c, p)
}

func (h *ProductHandler) Create(c *gin.Context) {
	var req productReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	p := req.toDomain("")
	if err := h.svc.Create(c.Request.Context(), p); err != nil {
		writeError(c, h.log, err, productNotFound)
		return
	}
	resp.Created(c, p)
}

func (h *ProductHandler) Update(c *gin.Context) {
	var req productReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	p := req.toDomain(c.Param("id"))
	if err := h.svc.Update(c.Request.Context(), p); err != nil {
		writeError(c, h.log, err, productNotFound)
		return
	}
	resp.OK(c, p)
}

func (h *ProductHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, h.log, err, "Product not found!")
		return
	}
	resp.Success(c, "The product is deleted!")
}

func (h *ProductHandler) Count(c *gin.Context) {
	n, err := h.svc.Count(c.Request.Context())
	if err != nil {
		writeError(c, h.log, err, productNotFound)
		return
	}
	resp.OK(c, gin.H{"productCount": n})
}

func (h *ProductHandler) Featured(c *gin.Context) {
	limit, err := strconv.Atoi(c.Param("count"))
	if err != nil || limit < 0 {
		resp.BadRequest(c, "invalid count")
		return
	}
	ps, err := h.svc.Featured(c.Request.Context(), limit)
	if err != nil {
		writeError(c, h.log, err, productNotFound)
		return
	}
	if ps == nil {
		ps = []domain.Product{}
	}
	resp.OK(c, ps)
}
