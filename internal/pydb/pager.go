package pydb

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
)

type DBFile interface {
	io.ReadSeeker
	io.ReaderAt
	io.WriterAt
	io.Closer
	Truncate(size int64) error
}

type pagerImpl struct {
	logger     *zap.Logger
	path       string
	totalPages uint32 // whole or partial pages in the file at open time

	// pages is indexed by PageIndex, a nil entry is a page not loaded yet
	pages [MaxPages]*Page

	file     DBFile
	fileSize int64
}

// OpenPager opens the database file, creating it when it does not exist yet
func OpenPager(logger *zap.Logger, path string) (*pagerImpl, error) {
	dbFile, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0600)
	if err != nil {
		return nil, &IOError{Op: "open", Path: path, Err: err}
	}

	aPager, err := NewPager(logger, dbFile)
	if err != nil {
		dbFile.Close()
		return nil, err
	}

	return aPager, nil
}

func NewPager(logger *zap.Logger, file DBFile) (*pagerImpl, error) {
	aPager := &pagerImpl{
		logger: logger,
		file:   file,
	}
	if named, ok := file.(interface{ Name() string }); ok {
		aPager.path = named.Name()
	}

	fileSize, err := aPager.file.Seek(0, io.SeekEnd)
	if err != nil {
		return nil, aPager.ioError("seek", err)
	}
	aPager.fileSize = fileSize

	totalPages := fileSize / UsablePageSize
	if fileSize%UsablePageSize != 0 {
		totalPages += 1
	}
	aPager.totalPages = uint32(totalPages)

	return aPager, nil
}

func (p *pagerImpl) FileSize() int64 {
	return p.fileSize
}

func (p *pagerImpl) TotalPages() uint32 {
	return p.totalPages
}

func (p *pagerImpl) Loaded(pageIdx PageIndex) bool {
	return pageIdx < MaxPages && p.pages[pageIdx] != nil
}

func (p *pagerImpl) GetPage(ctx context.Context, pageIdx PageIndex) (*Page, error) {
	if pageIdx >= MaxPages {
		return nil, fmt.Errorf("%w: page index %d reached limit of max pages %d", ErrPageOutOfBounds, pageIdx, MaxPages)
	}

	if aPage := p.pages[pageIdx]; aPage != nil {
		return aPage, nil
	}

	aPage := &Page{Index: pageIdx}

	if uint32(pageIdx) < p.totalPages {
		// Cache miss, load the page from file. The last page can be shorter
		// than a full page, the rest of the buffer stays zeroed.
		offset := int64(pageIdx) * UsablePageSize
		n, err := p.file.ReadAt(aPage.Data[:UsablePageSize], offset)
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, p.ioError("read", fmt.Errorf("page %d: %w", pageIdx, err))
		}
		p.logger.Sugar().With(
			"page_index", int(pageIdx),
			"bytes_read", n,
		).Debug("loaded page from file")
	} else {
		p.logger.Sugar().With(
			"page_index", int(pageIdx),
		).Debug("allocated new page")
	}

	p.pages[pageIdx] = aPage

	return aPage, nil
}

// Flush writes the first size bytes of a cached page to its place in the file
func (p *pagerImpl) Flush(ctx context.Context, pageIdx PageIndex, size int) error {
	if pageIdx >= MaxPages {
		return fmt.Errorf("%w: page index %d reached limit of max pages %d", ErrPageOutOfBounds, pageIdx, MaxPages)
	}

	aPage := p.pages[pageIdx]
	if aPage == nil {
		return fmt.Errorf("%w: page %d", ErrFlushOfUnloadedPage, pageIdx)
	}

	if size < 0 || size > UsablePageSize {
		return fmt.Errorf("invalid flush size %d for page %d", size, pageIdx)
	}

	offset := int64(pageIdx) * UsablePageSize
	if _, err := p.file.WriteAt(aPage.Data[:size], offset); err != nil {
		return p.ioError("write", fmt.Errorf("page %d: %w", pageIdx, err))
	}

	p.logger.Sugar().With(
		"page_index", int(pageIdx),
		"bytes", size,
	).Debug("flushed page")

	return nil
}

func (p *pagerImpl) Truncate(ctx context.Context, size int64) error {
	if err := p.file.Truncate(size); err != nil {
		return p.ioError("truncate", err)
	}
	return nil
}

// Close releases the page cache and closes the file
func (p *pagerImpl) Close() error {
	p.pages = [MaxPages]*Page{}
	if err := p.file.Close(); err != nil {
		return p.ioError("close", err)
	}
	return nil
}

func (p *pagerImpl) ioError(op string, err error) error {
	return &IOError{Op: op, Path: p.path, Err: err}
}
