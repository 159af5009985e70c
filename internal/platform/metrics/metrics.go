package metrics

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	rpcRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "payroll_grpc_requests_total",
		Help: "Total number of gRPC requests by method and status code",
	}, []string{"method", "code"})

	rpcRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "payroll_grpc_request_duration_seconds",
		Help:    "Duration of gRPC requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"method"})

	newHireLogsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "payroll_new_hire_logs_total",
		Help: "Employee log rows handled by new-hire runs, by outcome",
	}, []string{"outcome"})

	bonusRunsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "payroll_bonus_runs_total",
		Help: "Bonus calculation runs by result",
	}, []string{"result"})

	bonusRowsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "payroll_bonus_rows_total",
		Help: "Employee bonus rows committed",
	})
)

// ObserveRPC は gRPC リクエストの件数と所要時間を記録します。
func ObserveRPC(method, code string, duration time.Duration) {
	rpcRequestsTotal.WithLabelValues(method, code).Inc()
	rpcRequestDuration.WithLabelValues(method).Observe(duration.Seconds())
}

// ObserveNewHires は入社者処理で追記・スキップした件数を記録します。
func ObserveNewHires(processed, skipped int) {
	newHireLogsTotal.WithLabelValues("processed").Add(float64(processed))
	newHireLogsTotal.WithLabelValues("skipped").Add(float64(skipped))
}

// ObserveBonusRun は賞与計算の結果を記録します。rows はコミットした行数です。
func ObserveBonusRun(err error, rows int) {
	if err != nil {
		bonusRunsTotal.WithLabelValues("rolled_back").Inc()
		return
	}
	bonusRunsTotal.WithLabelValues("committed").Inc()
	bonusRowsTotal.Add(float64(rows))
}

// Serve は /metrics を公開する HTTP サーバーを起動し、ctx のキャンセルで停止します。
func Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("metrics: serve on %s: %w", addr, err)
	}
	return nil
}
