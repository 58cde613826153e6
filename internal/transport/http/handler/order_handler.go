package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"go-eshop-api/internal/service"
	resp "go-eshop-api/internal/transport/http/response"
)

const orderNotFound = "Order not found"

type OrderHandler struct {
	svc *service.OrderService
	log *zap.Logger
}

func NewOrderHandler(svc *service.OrderService, log *zap.Logger) *OrderHandler {
	return &OrderHandler{svc: svc, log: log}
}

// 订单全部路由要求登录
func (h *OrderHandler) Register(g *gin.RouterGroup, authed gin.HandlerFunc) {
	g.Use(authed)
	g.GET("", h.List)
	g.GET("/:id", h.Get)
	g.GET("/get/totalsales", h.TotalSales)
	g.GET("/get/count", h.Count)
	g.GET("/get/userorders/:userid", h.ListByUser)
	g.POST("", h.Create)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
}

type orderItemReq struct {
	Product  string `json:"product" binding:"required"`
	Quantity int    `json:"quantity" binding:"required,gt=0"`
}

type orderReq struct {
	OrderItems       []orderItemReq `json:"orderItems" binding:"required,min=1,dive"`
	ShippingAddress1 string         `json:"shippingAddress1"`
	ShippingAddress2 string         `json:"shippingAddress2"`
	City             string         `json:"city"`
	Zip              string         `json:"zip"`
	Country          string         `json:"country"`
	Phone            string         `json:"phone"`
	Status           string         `json:"status"`
	User             string         `json:"user"`
}

type orderStatusReq struct {
	Status string `json:"status" binding:"required"`
}

func (h *OrderHandler) List(c *gin.Context) {
	os, err := h.svc.List(c.Request.Context())
	if err != nil {
		writeError(c, h.log, err, orderNotFound)
		return
	}
	resp.OK(c, os)
}

func (h *OrderHandler) Get(c *gin.Context) {
	o, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, h.log, err, orderNotFound)
		return
	}
	resp.OK(c, o)
}

func (h *OrderHandler) Create(c *gin.Context) {
	var req orderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	userID := req.User
	if userID == "" {
		userID = c.GetString("userId")
	}
	in := service.CreateOrderInput{
		Items:            make([]service.OrderItemInput, 0, len(req.OrderItems)),
		ShippingAddress1: req.ShippingAddress1,
		ShippingAddress2: req.ShippingAddress2,
		City:             req.City,
		Zip:              req.Zip,
		Country:          req.Country,
		Phone:            req.Phone,
		Status:           req.Status,
		UserID:           userID,
	}
	for _, it := range req.OrderItems {
		in.Items = append(in.Items, service.OrderItemInput{ProductID: it.Product, Quantity: it.Quantity})
	}
	o, err := h.svc.Create(c.Request.Context(), in)
	if err != nil {
		writeError(c, h.log, err, orderNotFound)
		return
	}
	resp.Created(c, o)
}

// Update 只改 status
func (h *OrderHandler) Update(c *gin.Context) {
	var req orderStatusReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	o, err := h.svc.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		writeError(c, h.log, err, orderNotFound)
		return
	}
	resp.OK(c, o)
}

func (h *OrderHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, h.log, err, orderNotFound)
		return
	}
	resp.Success(c, "The order is deleted!")
}

func (h *OrderHandler) TotalSales(c *gin.Context) {
	total, err := h.svc.TotalSales(c.Request.Context())
	if err != nil {
		writeError(c, h.log, err, orderNotFound)
		return
	}
	resp.OK(c, gin.H{"totalsales": total})
}

func (h *OrderHandler) Count(c *gin.Context) {
	n, err := h.svc.Count(c.Request.Context())
	if err != nil {
		writeError(c, h.log, err, orderNotFound)
		return
	}
	resp.OK(c, gin.H{"orderCount": n})
}

func (h *OrderHandler) ListByUser(c *gin.Context) {
	os, err := h.svc.ListByUser(c.Request.Context(), c.Param("userid"))
	if err != nil {
		writeError(c, h.log, err, orderNotFound)
		return
	}
	resp.OK(c, os)
}
