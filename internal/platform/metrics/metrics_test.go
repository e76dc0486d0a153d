package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNilMetrics_IsSafe(t *testing.T) {
	var m *Metrics
	m.MedicineCreated()
	m.DoseTaken()
	m.RemindersScheduled(3)
	m.ReminderDispatched("sent")
	assert.Nil(t, m.Registry())
}

func TestCounters(t *testing.T) {
	m := New()
	m.MedicineCreated()
	m.MedicineCreated()
	m.DoseTaken()
	m.RemindersScheduled(3)
	m.RemindersScheduled(0)
	m.ReminderDispatched("sent")
	m.ReminderDispatched("failed")
	m.ReminderDispatched("sent")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.medicinesCreated))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.dosesTaken))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.remindersScheduled))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.remindersDispatched.WithLabelValues("sent")))
}

func TestMiddleware_UsesRoutePattern(t *testing.T) {
	m := New()

	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Get("/medicines/{medicineID}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	r.Handle("/metrics", m.Handler())

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/medicines/abc", nil))
	require.Equal(t, http.StatusTeapot, rec.Code)

	got := testutil.ToFloat64(m.httpRequests.WithLabelValues("/medicines/{medicineID}", "GET", "418"))
	assert.Equal(t, 1.0, got)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body, _ := io.ReadAll(rec.Body)
	assert.Contains(t, string(body), "doseagil_http_requests_total")
}
