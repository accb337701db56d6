package pydb

const (
	IDSize       = 8
	UsernameSize = 32
	EmailSize    = 255
	RowSize      = IDSize + UsernameSize + EmailSize

	idOffset       = 0
	usernameOffset = idOffset + IDSize
	emailOffset    = usernameOffset + UsernameSize

	// MaxID is the largest id that still fits into IDSize decimal digits
	MaxID = 99999999
)

const (
	PageSize    = 4096 // 4 kilobytes
	MaxPages    = 100
	RowsPerPage = PageSize / RowSize
	// UsablePageSize is the part of a page buffer that holds row slots,
	// it is also the stride of pages in the database file so the file
	// stays a flat sequence of RowSize slots.
	UsablePageSize = RowsPerPage * RowSize
	MaxRows        = MaxPages * RowsPerPage
)

type Column struct {
	Name string
	Size int
}

var Columns = []Column{
	{
		Name: "id",
		Size: IDSize,
	},
	{
		Name: "username",
		Size: UsernameSize,
	},
	{
		Name: "email",
		Size: EmailSize,
	},
}
