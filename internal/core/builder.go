package core

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/coregx/likesql/internal/dialects"
	"github.com/coregx/likesql/internal/logger"
	"github.com/coregx/likesql/internal/security"
	"github.com/coregx/likesql/internal/tracer"
)

// Builder compiles statements and hands each one to its Sink.
// A Builder is safe for concurrent use once constructed, provided its
// Sink is.
type Builder struct {
	config    Config
	dialect   dialects.Dialect
	database  DatabaseNamer
	sink      Sink
	logger    logger.Logger
	sanitizer *logger.Sanitizer
	tracer    tracer.Tracer
	validator *security.Validator
	ctx       context.Context
}

// Option is a functional option for configuring a Builder.
type Option func(*Builder)

// WithCharset sets the default character set for databases and tables.
func WithCharset(charset string) Option {
	return func(b *Builder) {
		b.config.Charset = charset
	}
}

// WithCollate sets the default collation for databases and tables.
func WithCollate(collate string) Option {
	return func(b *Builder) {
		b.config.Collate = collate
	}
}

// WithEngine sets the default table engine.
func WithEngine(engine string) Option {
	return func(b *Builder) {
		b.config.Engine = engine
	}
}

// WithConfig replaces all instance defaults at once.
func WithConfig(cfg Config) Option {
	return func(b *Builder) {
		b.config = cfg
	}
}

// WithDialect selects a registered backend by name ("mysql", "sqlite", "rqlite").
// Panics if the dialect is not registered.
func WithDialect(name string) Option {
	return func(b *Builder) {
		b.dialect = dialects.GetDialect(name)
	}
}

// WithDatabase attaches the source of the active database name used by
// CreateTable and DropTable.
func WithDatabase(namer DatabaseNamer) Option {
	return func(b *Builder) {
		b.database = namer
	}
}

// WithSink sets the Sink that receives finalized statements.
func WithSink(sink Sink) Option {
	return func(b *Builder) {
		if sink != nil {
			b.sink = sink
		}
	}
}

// WithLogger enables debug logging of compiled statements.
// Values bound to sensitive columns are masked.
func WithLogger(l logger.Logger) Option {
	return func(b *Builder) {
		if l != nil {
			b.logger = l
		}
	}
}

// WithSanitizer replaces the sanitizer used to mask logged values.
func WithSanitizer(s *logger.Sanitizer) Option {
	return func(b *Builder) {
		if s != nil {
			b.sanitizer = s
		}
	}
}

// WithTracer enables a span around every sink dispatch.
func WithTracer(t tracer.Tracer) Option {
	return func(b *Builder) {
		if t != nil {
			b.tracer = t
		}
	}
}

// WithValidator rejects statements whose identifiers, predicates or
// arithmetic expressions fail v's checks.
func WithValidator(v *security.Validator) Option {
	return func(b *Builder) {
		b.validator = v
	}
}

// New creates a Builder for the MySQL dialect that collects statements.
func New(opts ...Option) *Builder {
	b := &Builder{
		dialect:   dialects.GetDialect("mysql"),
		sink:      Collector{},
		logger:    &logger.NoopLogger{},
		sanitizer: logger.NewSanitizer(nil),
		tracer:    &tracer.NoopTracer{},
	}

	for _, opt := range opts {
		opt(b)
	}

	return b
}

// WithContext returns a copy of the Builder whose sink calls receive ctx.
func (b *Builder) WithContext(ctx context.Context) *Builder {
	nb := *b
	nb.ctx = ctx
	return &nb
}

// Config returns the instance defaults.
func (b *Builder) Config() Config {
	return b.config
}

// Dialect returns the active dialect.
func (b *Builder) Dialect() dialects.Dialect {
	return b.dialect
}

func (b *Builder) quote(s string) string {
	return b.dialect.QuoteIdentifier(s)
}

func (b *Builder) baseContext() context.Context {
	if b.ctx == nil {
		return context.Background()
	}
	return b.ctx
}

// CompileColumn compiles one column definition with the builder's dialect.
func (b *Builder) CompileColumn(col Column) (string, bool, error) {
	return CompileColumn(b.quote, col)
}

// CompileIndexes compiles index clauses with the builder's dialect.
func (b *Builder) CompileIndexes(keyword string, indexes Indexes) ([]string, error) {
	return CompileIndexes(keyword, b.quote, indexes)
}

// CreateDatabase builds CREATE DATABASE IF NOT EXISTS.
// opts may be nil.
func (b *Builder) CreateDatabase(name string, opts *DatabaseOptions) (any, error) {
	if err := b.checkIdentifiers("database", name); err != nil {
		return nil, err
	}

	s := resolveDatabase(opts, b.config)

	var sb strings.Builder
	sb.WriteString("CREATE DATABASE IF NOT EXISTS ")
	sb.WriteString(b.quote(name))
	if s.charset != "" {
		sb.WriteString(" DEFAULT CHARACTER SET ")
		sb.WriteString(s.charset)
	}
	if s.collate != "" {
		sb.WriteString(" COLLATE ")
		sb.WriteString(s.collate)
	}

	return b.finalize(&Statement{Verb: VerbCreateDatabase, Table: name, SQL: sb.String()})
}

// DropDatabase builds DROP DATABASE IF EXISTS.
func (b *Builder) DropDatabase(name string) (any, error) {
	if err := b.checkIdentifiers("database", name); err != nil {
		return nil, err
	}

	sql := "DROP DATABASE IF EXISTS " + b.quote(name)
	return b.finalize(&Statement{Verb: VerbDropDatabase, Table: name, SQL: sql})
}

// CreateTable builds CREATE TABLE IF NOT EXISTS in the active database.
// Primary-key columns are collected in column order into one PRIMARY KEY clause.
// opts may be nil.
func (b *Builder) CreateTable(name string, columns Columns, opts *TableOptions) (any, error) {
	database, err := b.activeDatabase()
	if err != nil {
		return nil, err
	}

	s := resolveTable(opts, b.config)

	if err := b.checkIdentifiers("table", name); err != nil {
		return nil, err
	}
	if len(columns) == 0 {
		return nil, fmt.Errorf("%w: table %q without columns", ErrInvalidSpecification, name)
	}
	for _, col := range columns {
		if err := b.checkIdentifiers("column", col.Name); err != nil {
			return nil, err
		}
	}

	fragments, primaryKeys, err := compileColumns(b.quote, columns)
	if err != nil {
		return nil, WrapError(err, "table "+name)
	}

	primary := ""
	if len(primaryKeys) > 0 {
		quoted := make([]string, len(primaryKeys))
		for i, pk := range primaryKeys {
			quoted[i] = b.quote(pk)
		}
		primary = ",\n  PRIMARY KEY (" + strings.Join(quoted, ", ") + ")"
	}

	unique, err := b.indexClause(KeywordUniqueKey, s.unique)
	if err != nil {
		return nil, WrapError(err, "table "+name)
	}
	index, err := b.indexClause(KeywordIndex, s.index)
	if err != nil {
		return nil, WrapError(err, "table "+name)
	}

	var sb strings.Builder
	sb.WriteString("CREATE TABLE IF NOT EXISTS ")
	sb.WriteString(b.quote(database))
	sb.WriteByte('.')
	sb.WriteString(b.quote(name))
	sb.WriteString(" (")
	sb.WriteString(strings.Join(fragments, ",\n"))
	sb.WriteString(primary)
	sb.WriteString(unique)
	sb.WriteString(index)
	sb.WriteByte(')')
	if s.engine != "" {
		sb.WriteString(" ENGINE=")
		sb.WriteString(s.engine)
	}
	if s.increment != nil {
		sb.WriteString(" AUTO_INCREMENT=")
		sb.WriteString(strconv.FormatInt(*s.increment, 10))
	}
	if s.charset != "" {
		sb.WriteString(" CHARSET=")
		sb.WriteString(s.charset)
	}
	if s.collate != "" {
		sb.WriteString(" COLLATE=")
		sb.WriteString(s.collate)
	}

	return b.finalize(&Statement{Verb: VerbCreateTable, Table: name, SQL: sb.String()})
}

// indexClause compiles indexes into ",\n"-joined clauses with a leading
// separator, or "" when there are none.
func (b *Builder) indexClause(keyword string, indexes Indexes) (string, error) {
	if len(indexes) == 0 {
		return "", nil
	}
	for _, idx := range indexes {
		if err := b.checkIdentifiers("index", idx.Name); err != nil {
			return "", err
		}
	}
	clauses, err := b.CompileIndexes(keyword, indexes)
	if err != nil {
		return "", err
	}
	return ",\n" + strings.Join(clauses, ",\n"), nil
}

// DropTable builds DROP TABLE IF EXISTS in the active database.
func (b *Builder) DropTable(name string) (any, error) {
	database, err := b.activeDatabase()
	if err != nil {
		return nil, err
	}
	if err := b.checkIdentifiers("table", name); err != nil {
		return nil, err
	}

	sql := "DROP TABLE IF EXISTS " + b.quote(database) + "." + b.quote(name)
	return b.finalize(&Statement{Verb: VerbDropTable, Table: name, SQL: sql})
}

func (b *Builder) activeDatabase() (string, error) {
	if b.database == nil {
		return "", ErrNoActiveDatabase
	}
	name := b.database.DatabaseName()
	if name == "" {
		return "", ErrNoActiveDatabase
	}
	if err := b.checkIdentifiers("database", name); err != nil {
		return "", err
	}
	return name, nil
}

// Insert builds INSERT INTO with one placeholder per field, values in field order.
// opts may be nil.
func (b *Builder) Insert(table string, data Data, opts *InsertOptions) (any, error) {
	if err := b.checkIdentifiers("table", table); err != nil {
		return nil, err
	}
	if err := b.checkIdentifiers("column", data.Columns()...); err != nil {
		return nil, err
	}

	ignore := ""
	if opts != nil && opts.Ignore {
		ignore = " OR IGNORE"
	}

	cols := make([]string, len(data))
	placeholders := make([]string, len(data))
	for i, f := range data {
		cols[i] = b.quote(f.Column)
		placeholders[i] = "?"
	}

	sql := "INSERT" + ignore + " INTO " + b.quote(table) +
		" (" + strings.Join(cols, ", ") + ") VALUES (" + strings.Join(placeholders, ", ") + ")"

	values := b.dialect.TranscodeValues(data.Values())
	if err := b.checkValues(values); err != nil {
		return nil, err
	}

	return b.finalize(&Statement{Verb: VerbInsert, Table: table, SQL: sql, Values: values})
}

// Select builds SELECT cols FROM table followed by the predicate.
// An empty cols selects *. find is nil, a string or a Predicate.
func (b *Builder) Select(table string, cols []string, find any, values ...any) (any, error) {
	stmt, err := b.selectStatement(VerbSelect, table, cols, find, values)
	if err != nil {
		return nil, err
	}
	return b.finalize(stmt)
}

// SelectOne is Select followed by LIMIT 1, even when find already has a
// trailing clause.
func (b *Builder) SelectOne(table string, cols []string, find any, values ...any) (any, error) {
	stmt, err := b.selectStatement(VerbSelectOne, table, cols, find, values)
	if err != nil {
		return nil, err
	}
	stmt.SQL += " LIMIT 1"
	return b.finalize(stmt)
}

func (b *Builder) selectStatement(verb Verb, table string, cols []string, find any, values []any) (*Statement, error) {
	if len(cols) == 0 {
		cols = []string{"*"}
	}
	if err := b.checkIdentifiers("table", table); err != nil {
		return nil, err
	}
	if err := b.checkIdentifiers("column", cols...); err != nil {
		return nil, err
	}

	where, args, err := b.predicate(find, values)
	if err != nil {
		return nil, err
	}

	quoted := make([]string, len(cols))
	for i, c := range cols {
		quoted[i] = b.quote(c)
	}

	sql := "SELECT " + strings.Join(quoted, ", ") + " FROM " + b.quote(table) + where
	return &Statement{Verb: verb, Table: table, SQL: sql, Values: args}, nil
}

// Exists builds SELECT EXISTS(SELECT 1 FROM table ... LIMIT 1).
func (b *Builder) Exists(table string, find any, values ...any) (any, error) {
	if err := b.checkIdentifiers("table", table); err != nil {
		return nil, err
	}
	where, args, err := b.predicate(find, values)
	if err != nil {
		return nil, err
	}

	sql := "SELECT EXISTS(SELECT 1 FROM " + b.quote(table) + where + " LIMIT 1)"
	return b.finalize(&Statement{Verb: VerbExists, Table: table, SQL: sql, Values: args})
}

// Count builds SELECT COUNT(1) FROM table followed by the predicate.
func (b *Builder) Count(table string, find any, values ...any) (any, error) {
	if err := b.checkIdentifiers("table", table); err != nil {
		return nil, err
	}
	where, args, err := b.predicate(find, values)
	if err != nil {
		return nil, err
	}

	sql := "SELECT COUNT(1) FROM " + b.quote(table) + where
	return b.finalize(&Statement{Verb: VerbCount, Table: table, SQL: sql, Values: args})
}

// Update builds UPDATE table SET assignments followed by the predicate.
// With Data every value is bound; with Arithmetic the expressions are
// inlined and only its Values are bound, ahead of the predicate values.
func (b *Builder) Update(table string, set Setter, find any, values ...any) (any, error) {
	if set == nil {
		return nil, fmt.Errorf("%w: update of %q without assignments", ErrInvalidSpecification, table)
	}
	if err := b.checkIdentifiers("table", table); err != nil {
		return nil, err
	}

	clause, exprs, setValues := set.setClause(b.quote)
	if err := b.checkSetter(set, exprs); err != nil {
		return nil, err
	}

	where, args, err := b.predicate(find, values)
	if err != nil {
		return nil, err
	}

	all := make([]any, 0, len(setValues)+len(args))
	all = append(all, setValues...)
	all = append(all, args...)
	all = b.dialect.TranscodeValues(all)
	if err := b.checkValues(all); err != nil {
		return nil, err
	}

	sql := "UPDATE " + b.quote(table) + " SET " + clause + where
	return b.finalize(&Statement{Verb: VerbUpdate, Table: table, SQL: sql, Values: all})
}

// Delete builds DELETE FROM table followed by the predicate.
func (b *Builder) Delete(table string, find any, values ...any) (any, error) {
	if err := b.checkIdentifiers("table", table); err != nil {
		return nil, err
	}
	where, args, err := b.predicate(find, values)
	if err != nil {
		return nil, err
	}

	sql := "DELETE FROM " + b.quote(table) + where
	return b.finalize(&Statement{Verb: VerbDelete, Table: table, SQL: sql, Values: args})
}

// predicate resolves find and validates its clause text.
func (b *Builder) predicate(find any, values []any) (string, []any, error) {
	rendered, clause, args, err := resolveFind(find, values)
	if err != nil {
		return "", nil, err
	}
	if b.validator != nil && clause != "" {
		if err := b.validator.ValidateQuery(clause); err != nil {
			return "", nil, fmt.Errorf("%w: predicate: %w", ErrUnsafeStatement, err)
		}
	}
	if err := b.checkValues(args); err != nil {
		return "", nil, err
	}
	return rendered, args, nil
}

func (b *Builder) checkIdentifiers(kind string, names ...string) error {
	if b.validator == nil {
		return nil
	}
	for _, name := range names {
		if err := b.validator.ValidateIdentifier(kind, name); err != nil {
			return fmt.Errorf("%w: %w", ErrUnsafeStatement, err)
		}
	}
	return nil
}

func (b *Builder) checkSetter(set Setter, exprs []string) error {
	if b.validator == nil {
		return nil
	}
	var cols []string
	switch s := set.(type) {
	case Data:
		cols = s.Columns()
	case Arithmetic:
		cols = s.Set.Columns()
	}
	if err := b.checkIdentifiers("column", cols...); err != nil {
		return err
	}
	for _, expr := range exprs {
		if err := b.validator.ValidateQuery(expr); err != nil {
			return fmt.Errorf("%w: assignment: %w", ErrUnsafeStatement, err)
		}
	}
	return nil
}

func (b *Builder) checkValues(values []any) error {
	if b.validator == nil {
		return nil
	}
	if err := b.validator.ValidateParams(values); err != nil {
		return fmt.Errorf("%w: %w", ErrUnsafeStatement, err)
	}
	return nil
}

// finalize hands stmt to the sink exactly once, inside a tracing span.
func (b *Builder) finalize(stmt *Statement) (any, error) {
	ctx, span := b.tracer.StartSpan(b.baseContext(), "likesql."+string(stmt.Verb))
	defer span.End()

	b.logger.Debug("statement compiled",
		"verb", string(stmt.Verb),
		"table", stmt.Table,
		"sql", stmt.SQL,
		"values", b.sanitizer.FormatValues(b.sanitizer.MaskValues(stmt.SQL, stmt.Values)),
		"dialect", b.dialect.Name(),
	)

	start := time.Now()
	result, err := Dispatch(ctx, b.sink, stmt)
	elapsed := time.Since(start)

	tracer.AddStatementAttributes(span, &tracer.StatementMetadata{
		SQL:        stmt.SQL,
		ValueCount: len(stmt.Values),
		Duration:   elapsed,
		Error:      err,
		System:     b.dialect.Name(),
		Operation:  tracer.DetectOperation(stmt.SQL),
		Table:      stmt.Table,
	})

	if err != nil {
		b.logger.Error("statement sink failed",
			"verb", string(stmt.Verb),
			"sql", stmt.SQL,
			"error", err,
		)
		return nil, err
	}
	return result, nil
}
