package core

import (
	"context"
	"database/sql"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/coregx/likesql/internal/cache"
	"github.com/coregx/likesql/internal/logger"
	"github.com/coregx/likesql/internal/metrics"
)

// ExecSink is a Sink that runs statements on a *sql.DB.
//
// Schema statements go through ExecContext. Every other statement is
// prepared once and reused from an LRU statement cache. Results are:
//
//	Select        *sql.Rows (the caller closes it)
//	SelectOne     *sql.Row
//	Exists        bool
//	Count         int64
//	everything    sql.Result
type ExecSink struct {
	db        *sql.DB
	stmtCache *cache.StmtCache
	logger    logger.Logger
	sanitizer *logger.Sanitizer
	name      string
	registry  prometheus.Registerer
	metrics   *metrics.StatementMetrics
}

// ExecOption configures an ExecSink.
type ExecOption func(*ExecSink)

// WithExecLogger logs every executed statement at Info and failures at Error.
func WithExecLogger(l logger.Logger) ExecOption {
	return func(s *ExecSink) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithExecSanitizer replaces the sanitizer used to mask logged values.
func WithExecSanitizer(sz *logger.Sanitizer) ExecOption {
	return func(s *ExecSink) {
		if sz != nil {
			s.sanitizer = sz
		}
	}
}

// WithStmtCacheCapacity sets the prepared statement cache capacity.
func WithStmtCacheCapacity(capacity int) ExecOption {
	return func(s *ExecSink) {
		s.stmtCache = cache.NewStmtCacheWithCapacity(capacity)
	}
}

// WithDriverName labels log entries with the driver in use.
func WithDriverName(name string) ExecOption {
	return func(s *ExecSink) {
		s.name = name
	}
}

// WithMetrics registers Prometheus statement and cache metrics on reg.
func WithMetrics(reg prometheus.Registerer) ExecOption {
	return func(s *ExecSink) {
		s.registry = reg
	}
}

// NewExecSink wraps db. The caller keeps ownership of db; Close releases
// only the cached statements.
func NewExecSink(db *sql.DB, opts ...ExecOption) *ExecSink {
	s := &ExecSink{
		db:        db,
		stmtCache: cache.NewStmtCache(),
		logger:    &logger.NoopLogger{},
		sanitizer: logger.NewSanitizer(nil),
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.registry != nil {
		m, err := metrics.NewStatementMetrics(s.registry, func() (uint64, uint64) {
			stats := s.stmtCache.Stats()
			return stats.Hits, stats.Misses
		})
		if err != nil {
			s.logger.Warn("statement metrics disabled", "error", err)
		} else {
			s.metrics = m
		}
	}
	return s
}

// DB returns the underlying database.
func (s *ExecSink) DB() *sql.DB {
	return s.db
}

// CacheStats returns prepared statement cache statistics.
func (s *ExecSink) CacheStats() cache.Stats {
	return s.stmtCache.Stats()
}

// Close closes all cached prepared statements.
func (s *ExecSink) Close() error {
	s.stmtCache.Clear()
	return nil
}

// prepare returns the cached statement for stmt.SQL, preparing it on a miss.
func (s *ExecSink) prepare(ctx context.Context, stmt *Statement) (*sql.Stmt, error) {
	if prepared, ok := s.stmtCache.Get(stmt.SQL); ok {
		return prepared, nil
	}

	prepared, err := s.db.PrepareContext(ctx, stmt.SQL)
	if err != nil {
		s.recordFailure("statement preparation failed", stmt, err)
		return nil, WrapError(err, "prepare "+string(stmt.Verb))
	}
	return s.stmtCache.Store(stmt.SQL, prepared), nil
}

func (s *ExecSink) exec(ctx context.Context, stmt *Statement) (any, error) {
	start := time.Now()

	var (
		result sql.Result
		err    error
	)
	if stmt.IsDDL() {
		result, err = s.db.ExecContext(ctx, stmt.SQL)
	} else {
		var prepared *sql.Stmt
		prepared, err = s.prepare(ctx, stmt)
		if err != nil {
			return nil, err
		}
		result, err = prepared.ExecContext(ctx, stmt.Values...)
	}

	if err != nil {
		s.recordFailure("statement execution failed", stmt, err)
		return nil, WrapError(err, string(stmt.Verb)+" failed")
	}

	var rowsAffected int64
	if !stmt.IsDDL() {
		rowsAffected, _ = result.RowsAffected()
	}
	s.recordExecuted(stmt, time.Since(start), "rows_affected", rowsAffected)
	return result, nil
}

func (s *ExecSink) recordExecuted(stmt *Statement, elapsed time.Duration, extra ...any) {
	s.metrics.Observe(string(stmt.Verb), elapsed, nil)

	args := []any{
		"verb", string(stmt.Verb),
		"sql", stmt.SQL,
		"values", s.sanitizer.FormatValues(s.sanitizer.MaskValues(stmt.SQL, stmt.Values)),
		"duration_ms", elapsed.Milliseconds(),
		"database", s.name,
	}
	s.logger.Info("statement executed", append(args, extra...)...)
}

func (s *ExecSink) recordFailure(msg string, stmt *Statement, err error) {
	s.metrics.Observe(string(stmt.Verb), 0, err)

	s.logger.Error(msg,
		"verb", string(stmt.Verb),
		"sql", stmt.SQL,
		"values", s.sanitizer.FormatValues(s.sanitizer.MaskValues(stmt.SQL, stmt.Values)),
		"database", s.name,
		"error", err,
	)
}

// CreateDatabase executes stmt.
func (s *ExecSink) CreateDatabase(ctx context.Context, stmt *Statement) (any, error) {
	return s.exec(ctx, stmt)
}

// DropDatabase executes stmt.
func (s *ExecSink) DropDatabase(ctx context.Context, stmt *Statement) (any, error) {
	return s.exec(ctx, stmt)
}

// CreateTable executes stmt.
func (s *ExecSink) CreateTable(ctx context.Context, stmt *Statement) (any, error) {
	return s.exec(ctx, stmt)
}

// DropTable executes stmt.
func (s *ExecSink) DropTable(ctx context.Context, stmt *Statement) (any, error) {
	return s.exec(ctx, stmt)
}

// Insert executes stmt and returns its sql.Result.
func (s *ExecSink) Insert(ctx context.Context, stmt *Statement) (any, error) {
	return s.exec(ctx, stmt)
}

// Update executes stmt and returns its sql.Result.
func (s *ExecSink) Update(ctx context.Context, stmt *Statement) (any, error) {
	return s.exec(ctx, stmt)
}

// Delete executes stmt and returns its sql.Result.
func (s *ExecSink) Delete(ctx context.Context, stmt *Statement) (any, error) {
	return s.exec(ctx, stmt)
}

// Select runs stmt and returns the open *sql.Rows.
func (s *ExecSink) Select(ctx context.Context, stmt *Statement) (any, error) {
	start := time.Now()
	prepared, err := s.prepare(ctx, stmt)
	if err != nil {
		return nil, err
	}

	rows, err := prepared.QueryContext(ctx, stmt.Values...)
	if err != nil {
		s.recordFailure("statement execution failed", stmt, err)
		return nil, WrapError(err, "select failed")
	}
	s.recordExecuted(stmt, time.Since(start))
	return rows, nil
}

// SelectOne returns the *sql.Row for stmt. Errors, including sql.ErrNoRows,
// surface from Row.Scan.
func (s *ExecSink) SelectOne(ctx context.Context, stmt *Statement) (any, error) {
	start := time.Now()
	prepared, err := s.prepare(ctx, stmt)
	if err != nil {
		return nil, err
	}

	row := prepared.QueryRowContext(ctx, stmt.Values...)
	s.recordExecuted(stmt, time.Since(start))
	return row, nil
}

// Exists returns whether stmt matched any row.
func (s *ExecSink) Exists(ctx context.Context, stmt *Statement) (any, error) {
	var exists bool
	if err := s.scanOne(ctx, stmt, &exists); err != nil {
		return nil, err
	}
	return exists, nil
}

// Count returns the counted rows as int64.
func (s *ExecSink) Count(ctx context.Context, stmt *Statement) (any, error) {
	var n int64
	if err := s.scanOne(ctx, stmt, &n); err != nil {
		return nil, err
	}
	return n, nil
}

func (s *ExecSink) scanOne(ctx context.Context, stmt *Statement, dest any) error {
	start := time.Now()
	prepared, err := s.prepare(ctx, stmt)
	if err != nil {
		return err
	}

	if err := prepared.QueryRowContext(ctx, stmt.Values...).Scan(dest); err != nil {
		s.recordFailure("row scanning failed", stmt, err)
		return WrapError(err, string(stmt.Verb)+" failed")
	}
	s.recordExecuted(stmt, time.Since(start))
	return nil
}
