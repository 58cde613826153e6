package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"go-eshop-api/internal/core/auth"
	"go-eshop-api/internal/core/cache"
	"go-eshop-api/internal/repo"
	"go-eshop-api/internal/service"
	"go-eshop-api/internal/transport/http/handler"
	mdw "go-eshop-api/internal/transport/http/middleware"
)

func NewAPIEngine(l *zap.Logger, db *gorm.DB, ch *cache.Cache, jwter *auth.JWTer) *gin.Engine {
	categories := repo.NewCategoryRepo(db)
	products := repo.NewProductRepo(db)
	users := repo.NewUserRepo(db)
	orders := repo.NewOrderRepo(db)
	items := repo.NewOrderItemRepo(db)

	categoryH := handler.NewCategoryHandler(service.NewCategoryService(categories), l)
	productH := handler.NewProductHandler(service.NewProductService(products, categories, ch), l)
	userH := handler.NewUserHandler(service.NewUserService(users, jwter), l)
	orderH := handler.NewOrderHandler(service.NewOrderService(orders, items, l), l)

	return Assemble(l, jwter, categoryH, productH, userH, orderH)
}

// Assemble 组装引擎；handler 依赖由调用方注入，测试可换内存仓储。
func Assemble(
	l *zap.Logger,
	jwter *auth.JWTer,
	categoryH *handler.CategoryHandler,
	productH *handler.ProductHandler,
	userH *handler.UserHandler,
	orderH *handler.OrderHandler,
) *gin.Engine {
	r := gin.New()

	r.Use(
		mdw.RequestID(),
		mdw.RateLimit(200, 400),
		mdw.ConcurrencyLimit(300),
		mdw.MaxBodyBytes(16<<20),
		mdw.Timeout(10*time.Second),
		ginzap.RecoveryWithZap(l, true),
		mdw.Metrics(),
		mdw.AccessLog(l),
		cors.Default(),
	)

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api/v1")
	authed := mdw.AuthJWT(jwter, false)

	categoryH.Register(api.Group("/categories"), authed)
	productH.Register(api.Group("/products"), authed)
	userH.Register(api.Group("/users"), authed)
	orderH.Register(api.Group("/orders"), authed)

	return r
}
