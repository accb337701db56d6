package pydb

import (
	"context"
	"fmt"
)

// Cursor is a logical position within a table. Rows are visited in
// ascending row number which is also insertion order.
type Cursor struct {
	Table      *Table
	RowNum     uint32
	EndOfTable bool
}

func TableStart(aTable *Table) *Cursor {
	return &Cursor{
		Table:      aTable,
		RowNum:     0,
		EndOfTable: aTable.numRows == 0,
	}
}

// TableEnd positions a cursor at the slot the next insert goes to
func TableEnd(aTable *Table) *Cursor {
	return &Cursor{
		Table:      aTable,
		RowNum:     aTable.numRows,
		EndOfTable: true,
	}
}

// Advance moves to the next row. It is a no-op once the end is reached.
func (c *Cursor) Advance() {
	if c.EndOfTable {
		return
	}
	c.RowNum += 1
	if c.RowNum >= c.Table.numRows {
		c.EndOfTable = true
	}
}

// Location returns the page and offset of the current row, loading the page
// into the cache if needed.
func (c *Cursor) Location(ctx context.Context) (PageIndex, uint32, error) {
	pageIdx, offset := c.Table.RowSlot(c.RowNum)
	if _, err := c.Table.pager.GetPage(ctx, pageIdx); err != nil {
		return 0, 0, err
	}
	return pageIdx, offset, nil
}

func (c *Cursor) slot(ctx context.Context) ([]byte, error) {
	pageIdx, offset := c.Table.RowSlot(c.RowNum)
	aPage, err := c.Table.pager.GetPage(ctx, pageIdx)
	if err != nil {
		return nil, err
	}
	return aPage.slot(offset), nil
}

func (c *Cursor) fetchRow(ctx context.Context) (Row, error) {
	slot, err := c.slot(ctx)
	if err != nil {
		return Row{}, err
	}

	var aRow Row
	if err := UnmarshalRow(slot, &aRow); err != nil {
		return Row{}, fmt.Errorf("row %d: %w", c.RowNum, err)
	}

	return aRow, nil
}
