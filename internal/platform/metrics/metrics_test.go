package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveWorkflow_CountsByResult(t *testing.T) {
	m := New()

	m.ObserveWorkflow("process_adoption", "ok")
	m.ObserveWorkflow("process_adoption", "ok")
	m.ObserveWorkflow("process_adoption", "PetNotAvailable")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.workflowOps.WithLabelValues("process_adoption", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.workflowOps.WithLabelValues("process_adoption", "PetNotAvailable")))
}

func TestHandler_ExposesCollectors(t *testing.T) {
	m := New()
	m.ObserveHTTP(http.MethodGet, "/pets/{petID}", http.StatusOK, 15*time.Millisecond)
	m.ObserveWorkflow("delete_pet", "ok")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, `petadopt_http_requests_total{method="GET",route="/pets/{petID}",status="200"} 1`), body)
	assert.True(t, strings.Contains(body, `petadopt_workflow_operations_total{operation="delete_pet",result="ok"} 1`), body)
}

func TestNilMetrics_IsSafe(t *testing.T) {
	var m *Metrics

	m.ObserveHTTP(http.MethodGet, "/health", http.StatusOK, time.Millisecond)
	m.ObserveWorkflow("transfer_pet", "ok")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
