package dialects

import "encoding/hex"

// RqliteDialect implements the rqlite backend.
// rqlite forwards parameters over its HTTP API as JSON, which has no binary
// type, so every []byte value is sent as its hex encoding.
type RqliteDialect struct{}

func init() {
	RegisterDialect("rqlite", &RqliteDialect{})
}

// Name returns "rqlite".
func (d *RqliteDialect) Name() string {
	return "rqlite"
}

// QuoteIdentifier quotes an identifier using backticks.
func (d *RqliteDialect) QuoteIdentifier(s string) string {
	return backtick(s)
}

// TranscodeValues replaces []byte values with lowercase hex strings.
// The input slice is not modified.
func (d *RqliteDialect) TranscodeValues(values []any) []any {
	if values == nil {
		return nil
	}
	out := make([]any, len(values))
	for i, v := range values {
		if b, ok := v.([]byte); ok {
			out[i] = hex.EncodeToString(b)
			continue
		}
		out[i] = v
	}
	return out
}
