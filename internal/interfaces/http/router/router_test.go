package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(engine *gin.Engine, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(method, path, nil))
	return w
}

func reply(body string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.String(http.StatusOK, body)
	}
}

func TestNewRouter(t *testing.T) {
	r := NewRouter(gin.New())
	assert.Equal(t, "v1", r.apiVersion)
	assert.Empty(t, r.registrars)

	r = NewRouter(gin.New(), WithAPIVersion("v2"))
	assert.Equal(t, "v2", r.apiVersion)
}

func TestRouterSetup(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine, WithAPIVersion("v2"))
	r.Register(NewDomainGroup("orders", "/orders").GET("/:id", reply("order"))).
		Register(NewDomainGroup("warehouse", "/warehouse").GET("", reply("warehouse")))
	assert.Len(t, r.registrars, 2)

	r.Setup()

	w := serve(engine, http.MethodGet, "/api/v2/orders/7")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "order", w.Body.String())
	assert.Equal(t, "warehouse", serve(engine, http.MethodGet, "/api/v2/warehouse").Body.String())
	assert.Equal(t, http.StatusNotFound, serve(engine, http.MethodGet, "/api/v1/orders/7").Code)
}

func TestDomainGroup_Methods(t *testing.T) {
	engine := gin.New()
	g := NewDomainGroup("orders", "/orders").
		GET("", reply("get")).
		POST("", reply("post")).
		PUT("/:id", reply("put")).
		PATCH("/:id/status", reply("patch")).
		DELETE("/:id", reply("delete"))
	g.RegisterRoutes(engine.Group("/api/v1"))

	assert.Equal(t, "orders", g.Name())
	assert.Equal(t, "/orders", g.Prefix())

	tests := []struct {
		method string
		path   string
		want   string
	}{
		{http.MethodGet, "/api/v1/orders", "get"},
		{http.MethodPost, "/api/v1/orders", "post"},
		{http.MethodPut, "/api/v1/orders/1", "put"},
		{http.MethodPatch, "/api/v1/orders/1/status", "patch"},
		{http.MethodDelete, "/api/v1/orders/1", "delete"},
	}
	for _, tt := range tests {
		t.Run(tt.method, func(t *testing.T) {
			w := serve(engine, tt.method, tt.path)
			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, tt.want, w.Body.String())
		})
	}
}

func TestDomainGroup_SubgroupsAndMiddleware(t *testing.T) {
	engine := gin.New()
	var seen []string
	tag := func(name string) gin.HandlerFunc {
		return func(c *gin.Context) {
			seen = append(seen, name)
			c.Next()
		}
	}

	warehouse := NewDomainGroup("warehouse", "/warehouse").Use(tag("warehouse"))
	warehouse.Group("receiving", "/receiving-slips").
		POST("/:id/confirm", tag("route"), reply("confirmed"))
	warehouse.RegisterRoutes(engine.Group("/api/v1"))

	w := serve(engine, http.MethodPost, "/api/v1/warehouse/receiving-slips/3/confirm")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "confirmed", w.Body.String())
	assert.Equal(t, []string{"warehouse", "route"}, seen)
}
