package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectorsAreIndependentPerInstance(t *testing.T) {
	a, b := New(), New()
	a.LoginAttempts.WithLabelValues("success").Inc()

	assert.Equal(t, 1.0, testutil.ToFloat64(a.LoginAttempts.WithLabelValues("success")))
	assert.Equal(t, 0.0, testutil.ToFloat64(b.LoginAttempts.WithLabelValues("success")))
}

func TestHandlerExposesCounters(t *testing.T) {
	m := New()
	m.AuthzDecisions.WithLabelValues("permission", "courses", DecisionDeny).Inc()

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `backoffice_authz_decisions_total{decision="deny",gate="permission",subject="courses"} 1`)
	assert.Contains(t, w.Body.String(), "go_goroutines")
}
