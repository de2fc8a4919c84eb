package dialects

// SQLiteDialect implements the SQLite backend.
// SQLite accepts backtick-quoted identifiers for MySQL compatibility, so the
// generated text is identical to the MySQL dialect.
type SQLiteDialect struct{}

func init() {
	RegisterDialect("sqlite", &SQLiteDialect{})
	RegisterDialect("sqlite3", &SQLiteDialect{})
}

// Name returns "sqlite".
func (d *SQLiteDialect) Name() string {
	return "sqlite"
}

// QuoteIdentifier quotes a SQLite identifier using backticks.
func (d *SQLiteDialect) QuoteIdentifier(s string) string {
	return backtick(s)
}

// TranscodeValues returns values unchanged.
func (d *SQLiteDialect) TranscodeValues(values []any) []any {
	return values
}
