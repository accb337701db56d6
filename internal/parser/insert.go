package parser

import (
	"fmt"
	"strconv"

	"github.com/csrgxtu/pydb/internal/pydb"
)

func (p *parser) doParseInsert() error {
	switch p.step {
	case stepInsertID:
		token := p.pop()
		id, err := strconv.ParseInt(token, 10, 64)
		if err != nil {
			return fmt.Errorf("%w: id %q is not an integer", ErrSyntax, token)
		}
		if id < 1 {
			return ErrNegativeID
		}
		if id > pydb.MaxID {
			return ErrIDTooLarge
		}
		p.Row.ID = id
		p.step = stepInsertUsername
	case stepInsertUsername:
		username := p.pop()
		if len(username) > pydb.UsernameSize {
			return ErrStringTooLong
		}
		p.Row.Username = username
		p.step = stepInsertEmail
	case stepInsertEmail:
		email := p.pop()
		if len(email) > pydb.EmailSize {
			return ErrStringTooLong
		}
		p.Row.Email = email
		p.step = stepEnd
	}
	return nil
}
