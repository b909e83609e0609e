package routes

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qpsphere/paperbank/internal/app/controllers"
)

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	SetupRouter(router,
		controllers.NewPaperController(nil),
		controllers.NewUploadController(nil),
		controllers.NewContactController(nil),
	)
	return router
}

func TestHealthEndpoint(t *testing.T) {
	router := setupTestRouter()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestRouteRegistration(t *testing.T) {
	router := setupTestRouter()

	type route struct{ method, path string }
	want := []route{
		{http.MethodGet, "/api/papers"},
		{http.MethodGet, "/api/papers/suggest"},
		{http.MethodGet, "/api/papers/stats"},
		{http.MethodGet, "/api/papers/:id"},
		{http.MethodPost, "/api/upload"},
		{http.MethodPost, "/send"},
		{http.MethodGet, "/health"},
	}

	registered := make(map[route]bool)
	for _, r := range router.Routes() {
		registered[route{r.Method, r.Path}] = true
	}

	for _, r := range want {
		assert.True(t, registered[r], "route %s %s not registered", r.method, r.path)
	}
}
