package core

import (
	"context"
	"fmt"
)

// Sink receives every finalized statement, one method per verb. A host
// plugs a driver in by implementing Sink; whatever a method returns is what
// the builder call returns.
type Sink interface {
	CreateDatabase(ctx context.Context, stmt *Statement) (any, error)
	DropDatabase(ctx context.Context, stmt *Statement) (any, error)
	CreateTable(ctx context.Context, stmt *Statement) (any, error)
	DropTable(ctx context.Context, stmt *Statement) (any, error)
	Insert(ctx context.Context, stmt *Statement) (any, error)
	Select(ctx context.Context, stmt *Statement) (any, error)
	SelectOne(ctx context.Context, stmt *Statement) (any, error)
	Exists(ctx context.Context, stmt *Statement) (any, error)
	Count(ctx context.Context, stmt *Statement) (any, error)
	Update(ctx context.Context, stmt *Statement) (any, error)
	Delete(ctx context.Context, stmt *Statement) (any, error)
}

// Collector is the default Sink. It returns the *Statement unchanged.
type Collector struct{}

func (Collector) collect(_ context.Context, stmt *Statement) (any, error) { return stmt, nil }

// CreateDatabase returns stmt.
func (c Collector) CreateDatabase(ctx context.Context, stmt *Statement) (any, error) {
	return c.collect(ctx, stmt)
}

// DropDatabase returns stmt.
func (c Collector) DropDatabase(ctx context.Context, stmt *Statement) (any, error) {
	return c.collect(ctx, stmt)
}

// CreateTable returns stmt.
func (c Collector) CreateTable(ctx context.Context, stmt *Statement) (any, error) {
	return c.collect(ctx, stmt)
}

// DropTable returns stmt.
func (c Collector) DropTable(ctx context.Context, stmt *Statement) (any, error) {
	return c.collect(ctx, stmt)
}

// Insert returns stmt.
func (c Collector) Insert(ctx context.Context, stmt *Statement) (any, error) {
	return c.collect(ctx, stmt)
}

// Select returns stmt.
func (c Collector) Select(ctx context.Context, stmt *Statement) (any, error) {
	return c.collect(ctx, stmt)
}

// SelectOne returns stmt.
func (c Collector) SelectOne(ctx context.Context, stmt *Statement) (any, error) {
	return c.collect(ctx, stmt)
}

// Exists returns stmt.
func (c Collector) Exists(ctx context.Context, stmt *Statement) (any, error) {
	return c.collect(ctx, stmt)
}

// Count returns stmt.
func (c Collector) Count(ctx context.Context, stmt *Statement) (any, error) {
	return c.collect(ctx, stmt)
}

// Update returns stmt.
func (c Collector) Update(ctx context.Context, stmt *Statement) (any, error) {
	return c.collect(ctx, stmt)
}

// Delete returns stmt.
func (c Collector) Delete(ctx context.Context, stmt *Statement) (any, error) {
	return c.collect(ctx, stmt)
}

// SinkFunc handles one finalized statement.
type SinkFunc func(ctx context.Context, stmt *Statement) (any, error)

// SinkFuncs is a Sink assembled from optional per-verb functions.
// Verbs without a function fall back to Collector.
//
// Example:
//
//	sink := likesql.SinkFuncs{
//	    OnInsert: func(ctx context.Context, s *likesql.Statement) (any, error) {
//	        return db.ExecContext(ctx, s.SQL, s.Values...)
//	    },
//	}
type SinkFuncs struct {
	OnCreateDatabase SinkFunc
	OnDropDatabase   SinkFunc
	OnCreateTable    SinkFunc
	OnDropTable      SinkFunc
	OnInsert         SinkFunc
	OnSelect         SinkFunc
	OnSelectOne      SinkFunc
	OnExists         SinkFunc
	OnCount          SinkFunc
	OnUpdate         SinkFunc
	OnDelete         SinkFunc
}

func (s SinkFuncs) call(ctx context.Context, fn SinkFunc, stmt *Statement) (any, error) {
	if fn == nil {
		return Collector{}.collect(ctx, stmt)
	}
	return fn(ctx, stmt)
}

// CreateDatabase dispatches to OnCreateDatabase.
func (s SinkFuncs) CreateDatabase(ctx context.Context, stmt *Statement) (any, error) {
	return s.call(ctx, s.OnCreateDatabase, stmt)
}

// DropDatabase dispatches to OnDropDatabase.
func (s SinkFuncs) DropDatabase(ctx context.Context, stmt *Statement) (any, error) {
	return s.call(ctx, s.OnDropDatabase, stmt)
}

// CreateTable dispatches to OnCreateTable.
func (s SinkFuncs) CreateTable(ctx context.Context, stmt *Statement) (any, error) {
	return s.call(ctx, s.OnCreateTable, stmt)
}

// DropTable dispatches to OnDropTable.
func (s SinkFuncs) DropTable(ctx context.Context, stmt *Statement) (any, error) {
	return s.call(ctx, s.OnDropTable, stmt)
}

// Insert dispatches to OnInsert.
func (s SinkFuncs) Insert(ctx context.Context, stmt *Statement) (any, error) {
	return s.call(ctx, s.OnInsert, stmt)
}

// Select dispatches to OnSelect.
func (s SinkFuncs) Select(ctx context.Context, stmt *Statement) (any, error) {
	return s.call(ctx, s.OnSelect, stmt)
}

// SelectOne dispatches to OnSelectOne.
func (s SinkFuncs) SelectOne(ctx context.Context, stmt *Statement) (any, error) {
	return s.call(ctx, s.OnSelectOne, stmt)
}

// Exists dispatches to OnExists.
func (s SinkFuncs) Exists(ctx context.Context, stmt *Statement) (any, error) {
	return s.call(ctx, s.OnExists, stmt)
}

// Count dispatches to OnCount.
func (s SinkFuncs) Count(ctx context.Context, stmt *Statement) (any, error) {
	return s.call(ctx, s.OnCount, stmt)
}

// Update dispatches to OnUpdate.
func (s SinkFuncs) Update(ctx context.Context, stmt *Statement) (any, error) {
	return s.call(ctx, s.OnUpdate, stmt)
}

// Delete dispatches to OnDelete.
func (s SinkFuncs) Delete(ctx context.Context, stmt *Statement) (any, error) {
	return s.call(ctx, s.OnDelete, stmt)
}

// Dispatch routes stmt to the sink method matching its verb.
func Dispatch(ctx context.Context, sink Sink, stmt *Statement) (any, error) {
	switch stmt.Verb {
	case VerbCreateDatabase:
		return sink.CreateDatabase(ctx, stmt)
	case VerbDropDatabase:
		return sink.DropDatabase(ctx, stmt)
	case VerbCreateTable:
		return sink.CreateTable(ctx, stmt)
	case VerbDropTable:
		return sink.DropTable(ctx, stmt)
	case VerbInsert:
		return sink.Insert(ctx, stmt)
	case VerbSelect:
		return sink.Select(ctx, stmt)
	case VerbSelectOne:
		return sink.SelectOne(ctx, stmt)
	case VerbExists:
		return sink.Exists(ctx, stmt)
	case VerbCount:
		return sink.Count(ctx, stmt)
	case VerbUpdate:
		return sink.Update(ctx, stmt)
	case VerbDelete:
		return sink.Delete(ctx, stmt)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownVerb, stmt.Verb)
	}
}
