package pydb

import (
	"context"
)

type Parser interface {
	Parse(context.Context, string) (Statement, error)
}

type Pager interface {
	GetPage(context.Context, PageIndex) (*Page, error)
	Loaded(PageIndex) bool
	FileSize() int64
	Flusher
}

type Flusher interface {
	Flush(context.Context, PageIndex, int) error
	Truncate(context.Context, int64) error
	Close() error
}
