// Package metrics exposes organization activity as Prometheus metrics.
package metrics

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Keatongull/wackywidget/internal/org"
)

const namespace = "wackywidget"

// ResultOK labels operations that succeeded. Failures are labelled with the
// org error kind.
const ResultOK = "ok"

// Recorder owns a private registry so several interpreters (and tests) can
// coexist in one process. A nil Recorder records nothing.
type Recorder struct {
	registry   *prometheus.Registry
	operations *prometheus.CounterVec
	headcount  *prometheus.GaugeVec
	vacancies  *prometheus.GaugeVec
}

// NewRecorder registers the wackywidget collectors on a fresh registry.
func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	return &Recorder{
		registry: reg,
		operations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operations_total",
			Help:      "Organization commands by operation and result",
		}, []string{"operation", "result"}),
		headcount: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "headcount",
			Help:      "Registered people by rank, including those under vacancies",
		}, []string{"rank"}),
		vacancies: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "vacancies",
			Help:      "Open vacancies by rank",
		}, []string{"rank"}),
	}
}

// Registry returns the registry backing this recorder.
func (r *Recorder) Registry() *prometheus.Registry {
	if r == nil {
		return nil
	}
	return r.registry
}

// Observe counts one operation. err is nil on success.
func (r *Recorder) Observe(operation string, err error) {
	if r == nil {
		return
	}
	result := ResultOK
	if err != nil {
		if kind := org.KindOf(err); kind != 0 {
			result = kind.String()
		} else {
			result = "error"
		}
	}
	r.operations.WithLabelValues(operation, result).Inc()
}

// SetStats publishes the current shape of the organization.
func (r *Recorder) SetStats(stats org.Stats) {
	if r == nil {
		return
	}
	for _, rank := range org.Ranks {
		r.headcount.WithLabelValues(rank.String()).Set(float64(stats.Headcount[rank]))
		r.vacancies.WithLabelValues(rank.String()).Set(float64(stats.Vacancies[rank]))
	}
}

// Handler serves the recorder's registry in the Prometheus text format.
func (r *Recorder) Handler() http.Handler {
	if r == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// Serve exposes /metrics on addr until ctx is cancelled.
func (r *Recorder) Serve(ctx context.Context, addr string) error {
	ln, err := Listen(addr)
	if err != nil {
		return err
	}
	return r.ServeListener(ctx, ln)
}

// Listen opens the TCP listener for the metrics endpoint. Callers that want
// bind errors before starting other work listen first and then call
// ServeListener.
func Listen(addr string) (net.Listener, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("metrics: listen %s: %w", addr, err)
	}
	return ln, nil
}

// ServeListener serves /metrics on ln until ctx is cancelled. The listener
// is closed on return.
func (r *Recorder) ServeListener(ctx context.Context, ln net.Listener) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", r.Handler())
	srv := &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("metrics: shutdown: %w", err)
		}
		<-errCh
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("metrics: serve: %w", err)
	}
}
