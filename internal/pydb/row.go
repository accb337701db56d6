package pydb

import (
	"fmt"
	"strconv"
	"strings"
)

// Row is the single hard-coded record shape of the table.
type Row struct {
	ID       int64
	Username string
	Email    string
}

func (r Row) Validate() error {
	if r.ID < 1 || r.ID > MaxID {
		return ErrInvalidID
	}
	if r.Username == "" || r.Email == "" {
		return ErrEmptyField
	}
	if len(r.Username) > UsernameSize || len(r.Email) > EmailSize {
		return ErrStringTooLong
	}
	return nil
}

func (r Row) Values() []any {
	return []any{r.ID, r.Username, r.Email}
}

func (r Row) String() string {
	return fmt.Sprintf("(%d, %s, %s)", r.ID, r.Username, r.Email)
}

// Marshal writes the fixed width encoding of the row into the first RowSize
// bytes of buf. Fields are positional, there are no delimiters.
func (r Row) Marshal(buf []byte) error {
	if len(buf) < RowSize {
		return fmt.Errorf("row buffer too small: %d bytes, need %d", len(buf), RowSize)
	}
	if err := r.Validate(); err != nil {
		return err
	}

	serializeID(r.ID, buf[idOffset:usernameOffset])
	serializeString(r.Username, buf[usernameOffset:emailOffset])
	serializeString(r.Email, buf[emailOffset:RowSize])

	return nil
}

func UnmarshalRow(buf []byte, aRow *Row) error {
	if len(buf) < RowSize {
		return fmt.Errorf("%w: slot is %d bytes, need %d", ErrCorruptRecord, len(buf), RowSize)
	}

	id, err := deserializeID(buf[idOffset:usernameOffset])
	if err != nil {
		return err
	}

	aRow.ID = id
	aRow.Username = deserializeString(buf[usernameOffset:emailOffset])
	aRow.Email = deserializeString(buf[emailOffset:RowSize])

	return nil
}

// serializeID right-justifies the decimal id and pads it with zeros
func serializeID(value int64, buf []byte) {
	digits := strconv.FormatInt(value, 10)
	padding := len(buf) - len(digits)
	for i := 0; i < padding; i++ {
		buf[i] = '0'
	}
	copy(buf[padding:], digits)
}

func deserializeID(buf []byte) (int64, error) {
	for _, b := range buf {
		if b < '0' || b > '9' {
			return 0, fmt.Errorf("%w: id field %q is not a number", ErrCorruptRecord, buf)
		}
	}
	id, err := strconv.ParseInt(string(buf), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: id field %q: %s", ErrCorruptRecord, buf, err)
	}
	if id == 0 {
		return 0, fmt.Errorf("%w: id field is zero", ErrCorruptRecord)
	}
	return id, nil
}

// serializeString left-justifies value and pads it with spaces
func serializeString(value string, buf []byte) {
	n := copy(buf, value)
	for i := n; i < len(buf); i++ {
		buf[i] = ' '
	}
}

func deserializeString(buf []byte) string {
	return strings.TrimRight(string(buf), " ")
}
