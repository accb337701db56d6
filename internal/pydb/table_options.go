package pydb

type TableOption func(*Table)

// WithStrictLength makes opening a file that ends with a partial row an
// error instead of a logged warning.
func WithStrictLength(strict bool) TableOption {
	return func(t *Table) {
		t.strictLength = strict
	}
}
