package metrics_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bione-api/internal/domain"
	"github.com/jhoicas/bione-api/internal/infrastructure/metrics"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want string
	}{
		{"ok", nil, metrics.ResultOK},
		{"deadline", context.DeadlineExceeded, metrics.ResultTimeout},
		{"unique", &pgconn.PgError{Code: "23505"}, metrics.ResultDuplicate},
		{"columna", fmt.Errorf("insert: %w", &pgconn.PgError{Code: "42703"}), metrics.ResultMissingColumn},
		{"not_found", fmt.Errorf("x: %w", domain.ErrNotFound), metrics.ResultNotFound},
		{"validacion", domain.Required("titulo"), metrics.ResultInvalid},
		{"otro", errors.New("boom"), metrics.ResultBackend},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, metrics.Classify(tc.err))
		})
	}
}

func TestMetrics_StoreYHandler(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg, "test")

	m.ObserveOp("chamados", "update", nil, 10*time.Millisecond)
	m.ObserveOp("chamados", "update", errors.New("boom"), time.Millisecond)
	m.ObserveRollback("chamados", "update")
	m.ObserveSize("chamados", 4)
	m.DecodeDropped("financeiro")
	m.ObserveHTTP("GET", "/api/chamados", 200, time.Millisecond)

	assert.Equal(t, 1, testutil.CollectAndCount(reg, "test_store_rollbacks_total"))

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `test_store_operations_total{op="update",result="backend",store="chamados"} 1`)
	assert.Contains(t, string(body), `test_store_items{store="chamados"} 4`)
	assert.Contains(t, string(body), `test_postgres_decode_dropped_total{table="financeiro"} 1`)
}

func TestMetrics_NilEsSeguro(t *testing.T) {
	var m *metrics.Metrics
	assert.NotPanics(t, func() {
		m.ObserveOp("x", "y", nil, 0)
		m.ObserveRollback("x", "y")
		m.ObserveSize("x", 1)
		m.DecodeDropped("x")
		m.ObserveHTTP("GET", "/", 200, 0)
	})
}
