package core

// Verb identifies the builder that produced a Statement.
type Verb string

// Statement verbs, one per builder method.
const (
	VerbCreateDatabase Verb = "create_database"
	VerbDropDatabase   Verb = "drop_database"
	VerbCreateTable    Verb = "create_table"
	VerbDropTable      Verb = "drop_table"
	VerbInsert         Verb = "insert"
	VerbSelect         Verb = "select"
	VerbSelectOne      Verb = "select_one"
	VerbExists         Verb = "exists"
	VerbCount          Verb = "count"
	VerbUpdate         Verb = "update"
	VerbDelete         Verb = "delete"
)

// Statement is a compiled SQL statement and its bound values.
// The Nth ? placeholder in SQL binds to Values[N].
type Statement struct {
	// Verb is the builder that produced the statement.
	Verb Verb
	// Table is the target table, or the database name for database DDL.
	Table string
	// SQL is the statement text.
	SQL string
	// Values are the bind values in placeholder order. Nil for DDL.
	Values []any
}

// IsDDL reports whether the statement is a schema statement without values.
func (s *Statement) IsDDL() bool {
	switch s.Verb {
	case VerbCreateDatabase, VerbDropDatabase, VerbCreateTable, VerbDropTable:
		return true
	}
	return false
}

