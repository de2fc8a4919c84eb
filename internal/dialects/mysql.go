package dialects

// MySQLDialect implements the MySQL/MariaDB backend.
type MySQLDialect struct{}

// Name returns "mysql".
func (d *MySQLDialect) Name() string {
	return "mysql"
}

// QuoteIdentifier quotes a MySQL identifier using backticks.
func (d *MySQLDialect) QuoteIdentifier(s string) string {
	return backtick(s)
}

// TranscodeValues returns values unchanged; the MySQL protocol carries []byte natively.
func (d *MySQLDialect) TranscodeValues(values []any) []any {
	return values
}

func init() {
	RegisterDialect("mysql", &MySQLDialect{})
	RegisterDialect("mariadb", &MySQLDialect{})
}
