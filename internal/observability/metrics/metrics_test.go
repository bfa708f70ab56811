package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestObserveUseCase(t *testing.T) {
	before := testutil.ToFloat64(useCaseTotal.WithLabelValues("login", "invalid_credentials"))
	ObserveUseCase("login", "invalid_credentials")
	require.Equal(t, before+1, testutil.ToFloat64(useCaseTotal.WithLabelValues("login", "invalid_credentials")))
}

func TestConnectionsGauge(t *testing.T) {
	before := testutil.ToFloat64(wsConnections)
	IncrementConnections()
	IncrementConnections()
	DecrementConnections()
	require.Equal(t, before+1, testutil.ToFloat64(wsConnections))
}

func TestGinMiddlewareUsesRouteTemplate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(GinMiddleware())
	r.GET("/groups/:groupID", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	counter := httpRequestsTotal.WithLabelValues(http.MethodGet, "/groups/:groupID", "204")
	before := testutil.ToFloat64(counter)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/groups/abc", nil))

	require.Equal(t, http.StatusNoContent, w.Code)
	require.Equal(t, before+1, testutil.ToFloat64(counter))
}
