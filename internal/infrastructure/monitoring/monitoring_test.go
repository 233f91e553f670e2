package monitoring

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveCommand(t *testing.T) {
	m := NewMetrics()

	m.ObserveCommand("ls", "ok", time.Millisecond)
	m.ObserveCommand("ls", "ok", time.Millisecond)
	m.ObserveCommand("cat", "error", time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.CommandsTotal.WithLabelValues("ls", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CommandsTotal.WithLabelValues("cat", "error")))

	stats := m.Stats()
	assert.Equal(t, int64(3), stats.TotalCommands)
	assert.Equal(t, int64(1), stats.FailedCommands)
}

func TestIndependentRegistries(t *testing.T) {
	a := NewMetrics()
	b := NewMetrics()

	a.IncSessionsCreated()
	assert.Equal(t, 1.0, testutil.ToFloat64(a.SessionsCreated))
	assert.Equal(t, 0.0, testutil.ToFloat64(b.SessionsCreated))
}

func TestSessionsAndSockets(t *testing.T) {
	m := NewMetrics()

	m.SetSessionsActive(3)
	m.IncWSConnections()
	m.IncWSConnections()
	m.DecWSConnections()
	m.RecordWSMessage("in", "exec")

	assert.Equal(t, 3.0, testutil.ToFloat64(m.SessionsActive))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.WSConnections))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.WSMessages.WithLabelValues("in", "exec")))
	assert.Equal(t, int64(3), m.Stats().ActiveSessions)
}

func TestRecordStoreOp(t *testing.T) {
	m := NewMetrics()

	m.RecordStoreOp("save", "success", time.Millisecond)
	m.RecordStoreOp("load", "error", time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.StoreOps.WithLabelValues("save", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.StoreOps.WithLabelValues("load", "error")))
}

func TestMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := NewMetrics()

	router := gin.New()
	router.Use(Middleware(m))
	router.GET("/sessions/:id", func(c *gin.Context) {
		c.String(http.StatusNotFound, "missing")
	})

	for _, id := range []string{"a", "b"} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/sessions/"+id, nil)
		router.ServeHTTP(w, req)
		require.Equal(t, http.StatusNotFound, w.Code)
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(m.RequestsTotal.WithLabelValues("GET", "/sessions/:id", "404")))
	stats := m.Stats()
	assert.Equal(t, int64(2), stats.TotalRequests)
	assert.Equal(t, int64(2), stats.TotalErrors)
}
