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

func TestRouterDefaults(t *testing.T) {
	r := NewRouter(gin.New())

	assert.Equal(t, "v1", r.apiVersion)
	assert.Empty(t, r.registrars)
}

func TestRouterWithAPIVersion(t *testing.T) {
	r := NewRouter(gin.New(), WithAPIVersion("v2"))
	assert.Equal(t, "v2", r.apiVersion)
}

func TestRouterSetup(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine)

	group := NewDomainGroup("/requirements")
	group.GET("", func(c *gin.Context) {
		c.String(http.StatusOK, "listed")
	})

	r.Register(group).Setup()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/requirements", nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "listed", w.Body.String())
}

func TestRouterUseAppliesToAllGroups(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine)

	r.Use(func(c *gin.Context) {
		c.Header("X-Marker", "set")
		c.Next()
	})

	group := NewDomainGroup("/orders")
	group.GET("", func(c *gin.Context) { c.Status(http.StatusOK) })

	r.Register(group).Setup()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders", nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, "set", w.Header().Get("X-Marker"))
}

func TestDomainGroup(t *testing.T) {
	register := func(g *DomainGroup) *gin.Engine {
		engine := gin.New()
		g.RegisterRoutes(engine.Group("/api/v1"))
		return engine
	}

	t.Run("registers all methods", func(t *testing.T) {
		g := NewDomainGroup("/bids")
		g.GET("/:id", func(c *gin.Context) { c.String(http.StatusOK, "get") }).
			POST("", func(c *gin.Context) { c.String(http.StatusCreated, "post") }).
			PUT("/:id", func(c *gin.Context) { c.String(http.StatusOK, "put") }).
			DELETE("/:id", func(c *gin.Context) { c.Status(http.StatusNoContent) })

		engine := register(g)

		tests := []struct {
			method string
			path   string
			want   int
		}{
			{http.MethodGet, "/api/v1/bids/123", http.StatusOK},
			{http.MethodPost, "/api/v1/bids", http.StatusCreated},
			{http.MethodPut, "/api/v1/bids/123", http.StatusOK},
			{http.MethodDelete, "/api/v1/bids/123", http.StatusNoContent},
		}
		for _, tt := range tests {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			w := httptest.NewRecorder()
			engine.ServeHTTP(w, req)
			assert.Equal(t, tt.want, w.Code, "%s %s", tt.method, tt.path)
		}
	})

	t.Run("applies group middleware", func(t *testing.T) {
		g := NewDomainGroup("/orders")
		g.Use(func(c *gin.Context) {
			c.Header("X-Group-Middleware", "applied")
			c.Next()
		})
		g.GET("", func(c *gin.Context) { c.Status(http.StatusOK) })

		engine := register(g)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/orders", nil)
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		assert.Equal(t, "applied", w.Header().Get("X-Group-Middleware"))
	})
}

func TestMultipleDomainGroups(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine)

	requirements := NewDomainGroup("/requirements")
	requirements.GET("", func(c *gin.Context) {
		c.String(http.StatusOK, "requirements")
	})

	orders := NewDomainGroup("/orders")
	orders.GET("", func(c *gin.Context) {
		c.String(http.StatusOK, "orders")
	})

	r.Register(requirements).Register(orders).Setup()

	req1 := httptest.NewRequest(http.MethodGet, "/api/v1/requirements", nil)
	w1 := httptest.NewRecorder()
	engine.ServeHTTP(w1, req1)
	assert.Equal(t, "requirements", w1.Body.String())

	req2 := httptest.NewRequest(http.MethodGet, "/api/v1/orders", nil)
	w2 := httptest.NewRecorder()
	engine.ServeHTTP(w2, req2)
	assert.Equal(t, "orders", w2.Body.String())
}
