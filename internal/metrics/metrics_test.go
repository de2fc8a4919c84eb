package metrics

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatementMetrics_Observe(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := NewStatementMetrics(reg, nil)
	require.NoError(t, err)

	m.Observe("insert", 2*time.Millisecond, nil)
	m.Observe("insert", time.Millisecond, nil)
	m.Observe("select", time.Millisecond, errors.New("boom"))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.statementsTotal.WithLabelValues("insert", StatusOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.statementsTotal.WithLabelValues("select", StatusError)))
	assert.Equal(t, 2, testutil.CollectAndCount(m.statementDuration))
}

func TestStatementMetrics_CacheCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewStatementMetrics(reg, func() (uint64, uint64) { return 3, 1 })
	require.NoError(t, err)

	expected := `
# HELP likesql_stmt_cache_hits_total Prepared statement cache hits
# TYPE likesql_stmt_cache_hits_total counter
likesql_stmt_cache_hits_total 3
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "likesql_stmt_cache_hits_total"))
}

func TestStatementMetrics_DuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewStatementMetrics(reg, nil)
	require.NoError(t, err)

	_, err = NewStatementMetrics(reg, nil)
	assert.Error(t, err)
}

func TestStatementMetrics_NilSafe(t *testing.T) {
	var m *StatementMetrics
	assert.NotPanics(t, func() {
		m.Observe("count", time.Millisecond, nil)
	})
}
