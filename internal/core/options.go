package core

// Config holds instance-wide defaults applied to every database and table
// unless a call overrides them. It is fixed when the Builder is created.
type Config struct {
	Charset string
	Collate string
	Engine  string
}

// DatabaseOptions are per-call options for CreateDatabase.
type DatabaseOptions struct {
	Charset string
	Collate string
}

// TableOptions are per-call options for CreateTable.
type TableOptions struct {
	// Unique indexes, compiled as UNIQUE KEY clauses.
	Unique Indexes
	// Index holds plain indexes, compiled as INDEX clauses.
	Index   Indexes
	Engine  string
	Charset string
	Collate string
	// Increment sets the table AUTO_INCREMENT start value when not nil.
	Increment *int64
}

// InsertOptions are per-call options for Insert.
type InsertOptions struct {
	// Ignore emits INSERT OR IGNORE.
	Ignore bool
}

// AutoIncrement returns a TableOptions.Increment value.
func AutoIncrement(n int64) *int64 {
	return &n
}

type databaseSettings struct {
	charset string
	collate string
}

type tableSettings struct {
	unique    Indexes
	index     Indexes
	engine    string
	increment *int64
	charset   string
	collate   string
}

// resolveDatabase merges per-call options over instance defaults.
func resolveDatabase(opts *DatabaseOptions, cfg Config) databaseSettings {
	s := databaseSettings{charset: cfg.Charset, collate: cfg.Collate}
	if opts == nil {
		return s
	}
	s.charset = pick(opts.Charset, s.charset)
	s.collate = pick(opts.Collate, s.collate)
	return s
}

// resolveTable merges per-call options over instance defaults.
func resolveTable(opts *TableOptions, cfg Config) tableSettings {
	s := tableSettings{engine: cfg.Engine, charset: cfg.Charset, collate: cfg.Collate}
	if opts == nil {
		return s
	}
	s.unique = opts.Unique
	s.index = opts.Index
	s.increment = opts.Increment
	s.engine = pick(opts.Engine, s.engine)
	s.charset = pick(opts.Charset, s.charset)
	s.collate = pick(opts.Collate, s.collate)
	return s
}

func pick(call, fallback string) string {
	if call != "" {
		return call
	}
	return fallback
}
