package pydb

type Result struct {
	Kind         StatementKind
	RowsAffected int
	Columns      []Column
	Rows         *Rows // only set for SELECT
}
