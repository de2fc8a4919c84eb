// Package likesql generates MySQL-family statement text and bound values
// for database and table DDL plus row CRUD. Every compiled statement is
// handed to a Sink: the default Collector returns it, ExecSink runs it on a
// *sql.DB, and any other Sink can forward it to a driver of choice.
//
//	b := likesql.New(likesql.WithDatabase(likesql.StaticDatabase("app")))
//	res, _ := b.Select("users", []string{"username"}, "id = ?", 1)
//	stmt := res.(*likesql.Statement)
//	// stmt.SQL    == "SELECT `username` FROM `users` WHERE id = ?"
//	// stmt.Values == []any{1}
package likesql

import (
	"github.com/coregx/likesql/internal/core"
	"github.com/coregx/likesql/internal/dialects"
	"github.com/coregx/likesql/internal/logger"
	"github.com/coregx/likesql/internal/security"
	"github.com/coregx/likesql/internal/tracer"
)

type (
	// Builder compiles statements and dispatches them to its Sink.
	Builder = core.Builder
	// Option is a functional option for configuring Builder.
	Option = core.Option
	// Config holds instance-wide charset, collate and engine defaults.
	Config = core.Config

	// Statement is a compiled statement with its bound values.
	Statement = core.Statement
	// Verb identifies the builder method that produced a Statement.
	Verb = core.Verb

	// Column describes one column definition.
	Column = core.Column
	// Columns is an ordered list of column definitions.
	Columns = core.Columns
	// Index is a named index over column tokens.
	Index = core.Index
	// Indexes is an ordered list of indexes.
	Indexes = core.Indexes
	// NullValue is the type of Null.
	NullValue = core.NullValue

	// DatabaseOptions are per-call options for CreateDatabase.
	DatabaseOptions = core.DatabaseOptions
	// TableOptions are per-call options for CreateTable.
	TableOptions = core.TableOptions
	// InsertOptions are per-call options for Insert.
	InsertOptions = core.InsertOptions

	// Field is one column/value pair.
	Field = core.Field
	// Data is an ordered list of column/value pairs.
	Data = core.Data
	// Arithmetic is an UPDATE assignment list of inlined expressions.
	Arithmetic = core.Arithmetic
	// Setter is implemented by Data and Arithmetic.
	Setter = core.Setter
	// Predicate is a tagged filter or trailing clause.
	Predicate = core.Predicate

	// DatabaseNamer supplies the active database name.
	DatabaseNamer = core.DatabaseNamer
	// StaticDatabase is a fixed database name.
	StaticDatabase = core.StaticDatabase

	// Sink receives finalized statements.
	Sink = core.Sink
	// Collector is the default Sink and returns each *Statement.
	Collector = core.Collector
	// SinkFunc handles one finalized statement.
	SinkFunc = core.SinkFunc
	// SinkFuncs is a Sink built from optional per-verb functions.
	SinkFuncs = core.SinkFuncs
	// ExecSink runs statements on a *sql.DB.
	ExecSink = core.ExecSink
	// ExecOption configures an ExecSink.
	ExecOption = core.ExecOption

	// Logger is the structured logging interface used by Builder and ExecSink.
	Logger = logger.Logger
	// Sanitizer masks sensitive values in logs.
	Sanitizer = logger.Sanitizer
	// Tracer starts spans around sink dispatch.
	Tracer = tracer.Tracer
	// Validator checks identifiers and predicate text.
	Validator = security.Validator
	// Dialect quotes identifiers and transcodes values for one backend.
	Dialect = dialects.Dialect
)

// Statement verbs.
const (
	VerbCreateDatabase = core.VerbCreateDatabase
	VerbDropDatabase   = core.VerbDropDatabase
	VerbCreateTable    = core.VerbCreateTable
	VerbDropTable      = core.VerbDropTable
	VerbInsert         = core.VerbInsert
	VerbSelect         = core.VerbSelect
	VerbSelectOne      = core.VerbSelectOne
	VerbExists         = core.VerbExists
	VerbCount          = core.VerbCount
	VerbUpdate         = core.VerbUpdate
	VerbDelete         = core.VerbDelete
)

// Index keywords and defaults.
const (
	KeywordUniqueKey      = core.KeywordUniqueKey
	KeywordIndex          = core.KeywordIndex
	DefaultIndexDirection = core.DefaultIndexDirection
	DefaultColumnType     = core.DefaultColumnType
)

// Errors.
var (
	ErrInvalidSpecification = core.ErrInvalidSpecification
	ErrInvalidPredicate     = core.ErrInvalidPredicate
	ErrNoActiveDatabase     = core.ErrNoActiveDatabase
	ErrUnsafeStatement      = core.ErrUnsafeStatement
	ErrUnknownVerb          = core.ErrUnknownVerb
)

// Null renders DEFAULT NULL when used as a column default.
var Null = core.Null

// Re-export core functions.
var (
	New            = core.New
	WithCharset    = core.WithCharset
	WithCollate    = core.WithCollate
	WithEngine     = core.WithEngine
	WithConfig     = core.WithConfig
	WithDialect    = core.WithDialect
	WithDatabase   = core.WithDatabase
	WithSink       = core.WithSink
	WithLogger     = core.WithLogger
	WithSanitizer  = core.WithSanitizer
	WithTracer     = core.WithTracer
	WithValidator  = core.WithValidator
	Dispatch       = core.Dispatch
	ParseFind      = core.ParseFind
	CompileColumn  = core.CompileColumn
	CompileIndexes = core.CompileIndexes

	// Column and data helpers
	Col            = core.Col
	ColumnOf       = core.ColumnOf
	Len            = core.Len
	AutoIncrement  = core.AutoIncrement
	D              = core.D
	DataFromMap    = core.DataFromMap
	DataFromStruct = core.DataFromStruct
	Expr           = core.Expr
	Filter         = core.Filter
	Trailing       = core.Trailing

	// Active database sources
	MySQLDatabase    = core.MySQLDatabase
	PostgresDatabase = core.PostgresDatabase

	// Execution
	NewExecSink           = core.NewExecSink
	WithExecLogger        = core.WithExecLogger
	WithExecSanitizer     = core.WithExecSanitizer
	WithStmtCacheCapacity = core.WithStmtCacheCapacity
	WithDriverName        = core.WithDriverName
	WithMetrics           = core.WithMetrics

	// Dialects
	RegisterDialect = dialects.RegisterDialect
	LookupDialect   = dialects.LookupDialect

	// Observability and validation
	NewSlogAdapter  = logger.NewSlogAdapter
	NewSanitizer    = logger.NewSanitizer
	NewOtelTracer   = tracer.NewOtelTracer
	NewValidator    = security.NewValidator
	WithStrict      = security.WithStrict
	WithParamChecks = security.WithParamChecks
)
