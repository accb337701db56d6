package pydb

type StatementKind int

const (
	Insert StatementKind = iota + 1
	Select
)

func (s StatementKind) String() string {
	switch s {
	case Insert:
		return "INSERT"
	case Select:
		return "SELECT"
	default:
		return "UNKNOWN"
	}
}

type Statement struct {
	Kind StatementKind
	Row  Row // only set for INSERT
}

type StatementResult struct {
	Kind         StatementKind
	Columns      []Column
	RowsAffected int
	Rows         Iterator
}
