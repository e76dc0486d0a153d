// Package metrics expone contadores Prometheus del servicio.
// Todos los métodos aceptan receptor nil para que los servicios no dependan de él.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "doseagil"

type Metrics struct {
	registry *prometheus.Registry

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec

	medicinesCreated prometheus.Counter
	medicinesDeleted prometheus.Counter
	dosesTaken       prometheus.Counter

	remindersScheduled  prometheus.Counter
	remindersCanceled   prometheus.Counter
	remindersDispatched *prometheus.CounterVec
}

// New crea un registry propio (no el global) para poder instanciar varios en tests.
func New() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		registry: reg,
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route, method and status.",
		}, []string{"route", "method", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
		medicinesCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "medicines_created_total",
			Help:      "Medicines created.",
		}),
		medicinesDeleted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "medicines_deleted_total",
			Help:      "Medicines deleted.",
		}),
		dosesTaken: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "doses_taken_total",
			Help:      "Doses confirmed as taken.",
		}),
		remindersScheduled: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reminders_scheduled_total",
			Help:      "Reminder notifications scheduled.",
		}),
		remindersCanceled: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reminders_canceled_total",
			Help:      "Reminder notifications canceled.",
		}),
		remindersDispatched: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reminders_dispatched_total",
			Help:      "Reminder notifications processed by the dispatcher, by result.",
		}, []string{"result"}),
	}

	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.httpRequests,
		m.httpDuration,
		m.medicinesCreated,
		m.medicinesDeleted,
		m.dosesTaken,
		m.remindersScheduled,
		m.remindersCanceled,
		m.remindersDispatched,
	)
	return m
}

func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// Handler sirve /metrics.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Middleware cuenta requests por route pattern de chi (no por path crudo).
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	if m == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if p := rctx.RoutePattern(); p != "" {
				route = p
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		m.httpRequests.WithLabelValues(route, r.Method, strconv.Itoa(status)).Inc()
		m.httpDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	})
}

func (m *Metrics) MedicineCreated() {
	if m != nil {
		m.medicinesCreated.Inc()
	}
}

func (m *Metrics) MedicineDeleted() {
	if m != nil {
		m.medicinesDeleted.Inc()
	}
}

func (m *Metrics) DoseTaken() {
	if m != nil {
		m.dosesTaken.Inc()
	}
}

func (m *Metrics) RemindersScheduled(n int) {
	if m != nil && n > 0 {
		m.remindersScheduled.Add(float64(n))
	}
}

func (m *Metrics) RemindersCanceled(n int) {
	if m != nil && n > 0 {
		m.remindersCanceled.Add(float64(n))
	}
}

// ReminderDispatched: result = sent | failed | expired.
func (m *Metrics) ReminderDispatched(result string) {
	if m != nil {
		m.remindersDispatched.WithLabelValues(result).Inc()
	}
}
