// Package metrics exposes ledger counters through Prometheus
package metrics

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/trebuchet-org/txledger/internal/domain/models"
	"github.com/trebuchet-org/txledger/internal/usecase"
)

const namespace = "txledger"

// PrometheusMetrics records ledger activity on its own registry
type PrometheusMetrics struct {
	registry  *prometheus.Registry
	added     *prometheus.CounterVec
	finalized *prometheus.CounterVec
	cancelled *prometheus.CounterVec
	pending   *prometheus.GaugeVec
}

// NewPrometheusMetrics creates the collectors and registers them
func NewPrometheusMetrics() *PrometheusMetrics {
	m := &PrometheusMetrics{
		registry: prometheus.NewRegistry(),
		added: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transactions_added_total",
			Help:      "Transactions recorded as pending.",
		}, []string{"chain_id"}),
		finalized: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transactions_finalized_total",
			Help:      "Pending transactions moved to a terminal status.",
		}, []string{"chain_id", "status"}),
		cancelled: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transactions_cancelled_total",
			Help:      "Transactions replaced by a cancellation.",
		}, []string{"chain_id"}),
		pending: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "transactions_pending",
			Help:      "Pending transactions seen by the last watcher pass.",
		}, []string{"chain_id"}),
	}
	m.registry.MustRegister(m.added, m.finalized, m.cancelled, m.pending)
	return m
}

func chainLabel(chainID uint64) string {
	return strconv.FormatUint(chainID, 10)
}

func (m *PrometheusMetrics) TransactionAdded(chainID uint64) {
	m.added.WithLabelValues(chainLabel(chainID)).Inc()
}

func (m *PrometheusMetrics) TransactionFinalized(chainID uint64, status models.TransactionStatus) {
	m.finalized.WithLabelValues(chainLabel(chainID), string(status)).Inc()
}

func (m *PrometheusMetrics) TransactionCancelled(chainID uint64) {
	m.cancelled.WithLabelValues(chainLabel(chainID)).Inc()
}

func (m *PrometheusMetrics) PendingObserved(chainID uint64, pending int) {
	m.pending.WithLabelValues(chainLabel(chainID)).Set(float64(pending))
}

// Registry returns the registry holding the ledger collectors
func (m *PrometheusMetrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus text format
func (m *PrometheusMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Serve exposes /metrics on addr until ctx is done
func (m *PrometheusMetrics) Serve(ctx context.Context, addr string, log *slog.Logger) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("serving metrics", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

var _ usecase.LedgerMetrics = (*PrometheusMetrics)(nil)
