package parser

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/csrgxtu/pydb/internal/pydb"
)

var (
	ErrUnrecognizedStatement = errors.New("unrecognized keyword at start of statement")
	ErrSyntax                = errors.New("syntax error")
	ErrNegativeID            = errors.New("id must be positive")
	ErrIDTooLarge            = fmt.Errorf("id must not be greater than %d", pydb.MaxID)
	ErrStringTooLong         = pydb.ErrStringTooLong
)

type step int

const (
	stepBeginning step = iota + 1
	stepInsertID
	stepInsertUsername
	stepInsertEmail
	stepEnd
)

type parser struct {
	pydb.Statement
	tokens []string
	i      int // next token
	step   step
}

func New() *parser {
	return new(parser)
}

// Parse recognizes `insert <id> <username> <email>` and `select`. Keywords
// are case insensitive, fields are separated by whitespace.
func (p *parser) Parse(ctx context.Context, line string) (pydb.Statement, error) {
	p.reset()
	p.tokens = strings.Fields(line)

	stmt, err := p.doParse()
	if err != nil {
		return stmt, err
	}
	return stmt, p.validate()
}

func (p *parser) reset() {
	p.Statement = pydb.Statement{}
	p.tokens = nil
	p.i = 0
	p.step = stepBeginning
}

func (p *parser) doParse() (pydb.Statement, error) {
	for {
		if p.i >= len(p.tokens) {
			return p.Statement, nil
		}
		switch p.step {
		case stepBeginning:
			switch strings.ToUpper(p.peek()) {
			case "INSERT":
				p.Kind = pydb.Insert
				p.pop()
				p.step = stepInsertID
			case "SELECT":
				p.Kind = pydb.Select
				p.pop()
				p.step = stepEnd
			default:
				return p.Statement, ErrUnrecognizedStatement
			}
		case stepInsertID,
			stepInsertUsername,
			stepInsertEmail:
			if err := p.doParseInsert(); err != nil {
				return p.Statement, err
			}
		case stepEnd:
			return p.Statement, fmt.Errorf("%w: unexpected %q", ErrSyntax, p.peek())
		}
	}
}

func (p *parser) peek() string {
	if p.i >= len(p.tokens) {
		return ""
	}
	return p.tokens[p.i]
}

func (p *parser) pop() string {
	peeked := p.peek()
	p.i += 1
	return peeked
}

func (p *parser) validate() error {
	if p.Kind == 0 {
		return ErrUnrecognizedStatement
	}
	if p.Kind == pydb.Insert && p.step != stepEnd {
		return fmt.Errorf("%w: insert expects id, username and email", ErrSyntax)
	}
	return nil
}
