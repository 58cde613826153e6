package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"go-eshop-api/internal/core/auth"
	"go-eshop-api/internal/repo"
	"go-eshop-api/internal/service"
	mdw "go-eshop-api/internal/transport/http/middleware"
)

func init() { gin.SetMode(gin.TestMode) }

type testAPI struct {
	engine *gin.Engine
	jwter  *auth.JWTer
	store  *repo.MemoryStore
}

// 与生产路由同构，仓储换成内存实现
func setupAPI(t *testing.T) *testAPI {
	t.Helper()
	log := zap.NewNop()
	jwter := &auth.JWTer{Secret: []byte("test-secret"), Issuer: "test", TTL: 24 * time.Hour}
	store := repo.NewMemoryStore()

	categoryH := NewCategoryHandler(service.NewCategoryService(store.Categories()), log)
	productH := NewProductHandler(service.NewProductService(store.Products(), store.Categories(), nil), log)
	userH := NewUserHandler(service.NewUserService(store.Users(), jwter), log)
	orderH := NewOrderHandler(service.NewOrderService(store.Orders(), store.Items(), log), log)

	r := gin.New()
	api := r.Group("/api/v1")
	authed := mdw.AuthJWT(jwter, false)
	categoryH.Register(api.Group("/categories"), authed)
	productH.Register(api.Group("/products"), authed)
	userH.Register(api.Group("/users"), authed)
	orderH.Register(api.Group("/orders"), authed)

	return &testAPI{engine: r, jwter: jwter, store: store}
}

func (a *testAPI) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}

func (a *testAPI) token(t *testing.T) string {
	t.Helper()
	tok, err := a.jwter.Issue("test-user", false)
	require.NoError(t, err)
	return tok
}

func (a *testAPI) createCategory(t *testing.T, token, name string) string {
	t.Helper()
	w := a.do(t, http.MethodPost, "/api/v1/categories", token, gin.H{
		"name": name, "icon": "icon-" + name, "color": "#abc",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var cat map[string]any
	decode(t, w, &cat)
	return cat["id"].(string)
}

func (a *testAPI) createProduct(t *testing.T, token, name, catID, price string, featured bool) string {
	t.Helper()
	w := a.do(t, http.MethodPost, "/api/v1/products", token, gin.H{
		"name": name, "category": catID, "price": price, "isFeatured": featured,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var p map[string]any
	decode(t, w, &p)
	return p["id"].(string)
}

func TestWritesRequireToken(t *testing.T) {
	a := setupAPI(t)
	w := a.do(t, http.MethodPost, "/api/v1/categories", "", gin.H{"name": "x"})
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w = a.do(t, http.MethodGet, "/api/v1/orders", "", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	// 商品读接口公开
	w = a.do(t, http.MethodGet, "/api/v1/products", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestCategoryCRUD(t *testing.T) {
	a := setupAPI(t)
	tok := a.token(t)

	id := a.createCategory(t, tok, "electronics")

	w := a.do(t, http.MethodGet, "/api/v1/categories/"+id, "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = a.do(t, http.MethodPut, "/api/v1/categories/"+id, tok, gin.H{"name": "gadgets"})
	require.Equal(t, http.StatusOK, w.Code)

	w = a.do(t, http.MethodGet, "/api/v1/categories/missing", "", nil)
	require.Equal(t, http.StatusNotFound, w.Code)

	w = a.do(t, http.MethodDelete, "/api/v1/categories/"+id, tok, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var env map[string]any
	decode(t, w, &env)
	require.Equal(t, true, env["success"])

	w = a.do(t, http.MethodDelete, "/api/v1/categories/"+id, tok, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestProductFilterAndInvalidCategory(t *testing.T) {
	a := setupAPI(t)
	tok := a.token(t)

	catA := a.createCategory(t, tok, "a")
	catB := a.createCategory(t, tok, "b")
	a.createProduct(t, tok, "pa", catA, "10", false)
	a.createProduct(t, tok, "pb", catB, "20", false)

	var ps []map[string]any
	w := a.do(t, http.MethodGet, "/api/v1/products", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &ps)
	require.Len(t, ps, 2)

	w = a.do(t, http.MethodGet, "/api/v1/products?categories="+catA, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &ps)
	require.Len(t, ps, 1)
	require.Equal(t, "pa", ps[0]["name"])
	require.NotNil(t, ps[0]["category"], "category populated")

	// 外键校验 fail-fast
	w = a.do(t, http.MethodPost, "/api/v1/products", tok, gin.H{
		"name": "bad", "category": "missing", "price": "1",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	var count map[string]any
	w = a.do(t, http.MethodGet, "/api/v1/products/get/count", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &count)
	require.EqualValues(t, 2, count["productCount"])
}

func TestFeaturedListing(t *testing.T) {
	a := setupAPI(t)
	tok := a.token(t)
	cat := a.createCategory(t, tok, "a")
	a.createProduct(t, tok, "f1", cat, "1", true)
	a.createProduct(t, tok, "f2", cat, "1", true)
	a.createProduct(t, tok, "plain", cat, "1", false)

	var ps []map[string]any
	w := a.do(t, http.MethodGet, "/api/v1/products/get/featured/1", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &ps)
	require.Len(t, ps, 1)

	w = a.do(t, http.MethodGet, "/api/v1/products/get/featured/5", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &ps)
	require.Len(t, ps, 2)
}

func TestUserResponsesNeverLeakHash(t *testing.T) {
	a := setupAPI(t)
	tok := a.token(t)

	w := a.do(t, http.MethodPost, "/api/v1/users/register", "", gin.H{
		"name": "alice", "email": "alice@example.com", "password": "s3cret",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created map[string]any
	decode(t, w, &created)
	_, leaked := created["passwordHash"]
	require.False(t, leaked)

	var us []map[string]any
	w = a.do(t, http.MethodGet, "/api/v1/users", tok, nil)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &us)
	require.Len(t, us, 1)
	for _, key := range []string{"passwordHash", "password_hash", "password"} {
		_, ok := us[0][key]
		require.False(t, ok, "leaked %s", key)
	}

	w = a.do(t, http.MethodGet, "/api/v1/users/"+created["id"].(string), tok, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var u map[string]any
	decode(t, w, &u)
	_, leaked = u["passwordHash"]
	require.False(t, leaked)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	a := setupAPI(t)
	tok := a.token(t)

	body := gin.H{"name": "alice", "email": "alice@example.com", "password": "s3cret"}
	w := a.do(t, http.MethodPost, "/api/v1/users/register", "", body)
	require.Equal(t, http.StatusCreated, w.Code)

	// 同邮箱再注册：400，且不产生第二个账号
	w = a.do(t, http.MethodPost, "/api/v1/users/register", "", body)
	require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
	var env map[string]any
	decode(t, w, &env)
	require.Equal(t, false, env["success"])

	var count map[string]any
	w = a.do(t, http.MethodGet, "/api/v1/users/get/count", tok, nil)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &count)
	require.EqualValues(t, 1, count["userCount"])
}

func TestLoginFlow(t *testing.T) {
	a := setupAPI(t)

	w := a.do(t, http.MethodPost, "/api/v1/users/register", "", gin.H{
		"name": "alice", "email": "alice@example.com", "password": "s3cret",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = a.do(t, http.MethodPost, "/api/v1/users/login", "", gin.H{
		"email": "alice@example.com", "password": "s3cret",
	})
	require.Equal(t, http.StatusOK, w.Code)
	var out map[string]any
	decode(t, w, &out)
	require.Equal(t, "alice@example.com", out["user"])
	token := out["token"].(string)
	require.NotEmpty(t, token)

	// 登录返回的令牌能直接访问受保护路由
	w = a.do(t, http.MethodGet, "/api/v1/orders", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	// 密码错误与未知邮箱同一个状态类
	w = a.do(t, http.MethodPost, "/api/v1/users/login", "", gin.H{
		"email": "alice@example.com", "password": "wrong",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	wrongPassBody := w.Body.String()

	w = a.do(t, http.MethodPost, "/api/v1/users/login", "", gin.H{
		"email": "nobody@example.com", "password": "s3cret",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, wrongPassBody, w.Body.String())
}

func TestOrderLifecycle(t *testing.T) {
	a := setupAPI(t)
	tok := a.token(t)
	cat := a.createCategory(t, tok, "a")
	pa := a.createProduct(t, tok, "A", cat, "10", false)
	pb := a.createProduct(t, tok, "B", cat, "5", false)

	w := a.do(t, http.MethodPost, "/api/v1/orders", tok, gin.H{
		"orderItems": []gin.H{
			{"product": pa, "quantity": 2},
			{"product": pb, "quantity": 1},
		},
		"shippingAddress1": "1 Main St",
		"city":             "Springfield",
		"user":             "customer-1",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var o map[string]any
	decode(t, w, &o)
	require.True(t, decimal.RequireFromString(o["totalPrice"].(string)).
		Equal(decimal.RequireFromString("25")))
	require.Equal(t, "Pending", o["status"])
	orderID := o["id"].(string)

	w = a.do(t, http.MethodGet, "/api/v1/orders/get/userorders/customer-1", tok, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var os []map[string]any
	decode(t, w, &os)
	require.Len(t, os, 1)
	items := os[0]["orderItems"].([]any)
	require.Len(t, items, 2)
	first := items[0].(map[string]any)
	require.NotNil(t, first["product"], "items expanded with product")

	w = a.do(t, http.MethodPut, "/api/v1/orders/"+orderID, tok, gin.H{"status": "Shipped"})
	require.Equal(t, http.StatusOK, w.Code)

	var sales map[string]any
	w = a.do(t, http.MethodGet, "/api/v1/orders/get/totalsales", tok, nil)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &sales)
	require.True(t, decimal.RequireFromString(sales["totalsales"].(string)).
		Equal(decimal.RequireFromString("25")))

	var count map[string]any
	w = a.do(t, http.MethodGet, "/api/v1/orders/get/count", tok, nil)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &count)
	require.EqualValues(t, 1, count["orderCount"])

	w = a.do(t, http.MethodDelete, "/api/v1/orders/"+orderID, tok, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = a.do(t, http.MethodGet, "/api/v1/orders/"+orderID, tok, nil)
	require.Equal(t, http.StatusNotFound, w.Code)

	w = a.do(t, http.MethodDelete, "/api/v1/orders/"+orderID, tok, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestTotalSalesEmpty(t *testing.T) {
	a := setupAPI(t)
	tok := a.token(t)
	var sales map[string]any
	w := a.do(t, http.MethodGet, "/api/v1/orders/get/totalsales", tok, nil)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &sales)
	require.True(t, decimal.RequireFromString(sales["totalsales"].(string)).IsZero())
}
