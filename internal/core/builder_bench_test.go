package core

import (
	"testing"
)

func BenchmarkBuilder(b *testing.B) {
	builder := New(WithDatabase(StaticDatabase("app")))

	b.Run("Select", func(b *testing.B) {
		b.ReportAllocs()
		for b.Loop() {
			_, _ = builder.Select("users", []string{"id", "username"}, "username = ? ORDER BY id", "joe")
		}
	})

	b.Run("Insert", func(b *testing.B) {
		data := D("username", "joe", "password", "123", "age", 30)
		b.ReportAllocs()
		for b.Loop() {
			_, _ = builder.Insert("users", data, nil)
		}
	})

	b.Run("UpdateArithmetic", func(b *testing.B) {
		set := Expr(D("count", "count + ?"), 1)
		b.ReportAllocs()
		for b.Loop() {
			_, _ = builder.Update("users", set, "username = ?", "bob")
		}
	})

	b.Run("CreateTable", func(b *testing.B) {
		cols := Columns{
			{Name: "id", Increment: true, Primary: true},
			{Name: "username", Type: "varchar", Length: Len(32), Required: true},
			{Name: "role", Type: "enum", Length: Len("admin", "user"), Default: "user"},
		}
		opts := &TableOptions{Index: Indexes{{Name: "idx1", Columns: []string{"role", "username DESC"}}}}
		b.ReportAllocs()
		for b.Loop() {
			_, _ = builder.CreateTable("users", cols, opts)
		}
	})
}
