package cmd

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/exprengine/scalar/src/checker"
	"github.com/exprengine/scalar/src/column"
	"github.com/exprengine/scalar/src/types"
)

// This file implements the tiny textual syntax exprdemo reads its
// expressions in, e.g. plus(@a, 5u8) or not(true). There is no parser in
// the engine itself - Ast trees are meant to be built by a planner - so
// this one exists only to give the demo CLI something to type at, in the
// tokenScanner/token style of kokes-smda's query/expr/tokeniser.go.

type tokenType uint8

const (
	tokenInvalid tokenType = iota
	tokenNumber
	tokenString
	tokenIdent
	tokenLparen
	tokenRparen
	tokenComma
	tokenEOF
)

type token struct {
	ttype tokenType
	value string
}

var (
	errUnknownToken       = errors.New("unknown token")
	errUnterminatedString = errors.New("unterminated string literal")
	errUnexpectedToken    = errors.New("unexpected token")
	errInvalidNumber      = errors.New("invalid number literal")
)

type tokenScanner struct {
	code []byte
	pos  int
}

func newTokenScanner(s string) *tokenScanner {
	return &tokenScanner{code: []byte(s)}
}

func (ts *tokenScanner) peekByte() byte {
	if ts.pos >= len(ts.code) {
		return 0
	}
	return ts.code[ts.pos]
}

func (ts *tokenScanner) skipSpace() {
	for ts.pos < len(ts.code) {
		switch ts.code[ts.pos] {
		case ' ', '\t', '\n', '\r':
			ts.pos++
		default:
			return
		}
	}
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }
func isIdentStart(b byte) bool {
	return b == '_' || b == '@' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}
func isIdentPart(b byte) bool { return isIdentStart(b) || isDigit(b) }

func (ts *tokenScanner) scan() (token, error) {
	ts.skipSpace()
	if ts.pos >= len(ts.code) {
		return token{ttype: tokenEOF}, nil
	}
	b := ts.peekByte()
	switch {
	case b == '(':
		ts.pos++
		return token{ttype: tokenLparen}, nil
	case b == ')':
		ts.pos++
		return token{ttype: tokenRparen}, nil
	case b == ',':
		ts.pos++
		return token{ttype: tokenComma}, nil
	case b == '"':
		return ts.consumeStringLiteral()
	case isDigit(b) || (b == '-' && ts.pos+1 < len(ts.code) && isDigit(ts.code[ts.pos+1])):
		return ts.consumeNumber()
	case isIdentStart(b):
		return ts.consumeIdentifier()
	default:
		return token{}, fmt.Errorf("%w: %q at position %d", errUnknownToken, b, ts.pos)
	}
}

func (ts *tokenScanner) consumeStringLiteral() (token, error) {
	start := ts.pos
	ts.pos++ // opening quote
	for {
		if ts.pos >= len(ts.code) {
			return token{}, fmt.Errorf("%w: starting at position %d", errUnterminatedString, start)
		}
		if ts.code[ts.pos] == '\\' && ts.pos+1 < len(ts.code) {
			ts.pos += 2
			continue
		}
		if ts.code[ts.pos] == '"' {
			ts.pos++
			break
		}
		ts.pos++
	}
	raw := string(ts.code[start:ts.pos])
	unquoted, err := strconv.Unquote(raw)
	if err != nil {
		return token{}, fmt.Errorf("%w: %v", errUnterminatedString, err)
	}
	return token{ttype: tokenString, value: unquoted}, nil
}

func (ts *tokenScanner) consumeNumber() (token, error) {
	start := ts.pos
	if ts.peekByte() == '-' {
		ts.pos++
	}
	for ts.pos < len(ts.code) && isDigit(ts.code[ts.pos]) {
		ts.pos++
	}
	for ts.pos < len(ts.code) && isIdentPart(ts.code[ts.pos]) {
		ts.pos++
	}
	return token{ttype: tokenNumber, value: string(ts.code[start:ts.pos])}, nil
}

func (ts *tokenScanner) consumeIdentifier() (token, error) {
	start := ts.pos
	ts.pos++
	for ts.pos < len(ts.code) && isIdentPart(ts.code[ts.pos]) {
		ts.pos++
	}
	return token{ttype: tokenIdent, value: string(ts.code[start:ts.pos])}, nil
}

func tokenize(s string) ([]token, error) {
	ts := newTokenScanner(s)
	var out []token
	for {
		tok, err := ts.scan()
		if err != nil {
			return nil, err
		}
		out = append(out, tok)
		if tok.ttype == tokenEOF {
			return out, nil
		}
	}
}

// astParser turns a token stream into a checker.Ast. Column references are
// written with a leading '@' (@name); a bare identifier that isn't true,
// false or null and isn't followed by '(' is rejected rather than guessed
// at, since this syntax has no other way to tell a zero-arg call from a
// misspelled literal.
type astParser struct {
	toks []token
	pos  int
}

func parseAst(s string) (checker.Ast, error) {
	toks, err := tokenize(s)
	if err != nil {
		return nil, err
	}
	p := &astParser{toks: toks}
	a, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if p.peek().ttype != tokenEOF {
		return nil, fmt.Errorf("%w: trailing input at %q", errUnexpectedToken, p.peek().value)
	}
	return a, nil
}

func (p *astParser) peek() token { return p.toks[p.pos] }
func (p *astParser) next() token {
	t := p.toks[p.pos]
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

func (p *astParser) expect(tt tokenType) error {
	if p.peek().ttype != tt {
		return fmt.Errorf("%w: %q", errUnexpectedToken, p.peek().value)
	}
	p.next()
	return nil
}

func (p *astParser) parseExpr() (checker.Ast, error) {
	tok := p.peek()
	switch tok.ttype {
	case tokenNumber:
		p.next()
		return parseNumberLiteral(tok.value)
	case tokenString:
		p.next()
		return checker.LiteralAst{Value: column.StringScalar(tok.value), Type: types.StringType()}, nil
	case tokenIdent:
		return p.parseIdentExpr()
	default:
		return nil, fmt.Errorf("%w: %q", errUnexpectedToken, tok.value)
	}
}

func (p *astParser) parseIdentExpr() (checker.Ast, error) {
	tok := p.next()
	switch tok.value {
	case "true":
		return checker.LiteralAst{Value: column.BooleanScalar(true), Type: types.Boolean()}, nil
	case "false":
		return checker.LiteralAst{Value: column.BooleanScalar(false), Type: types.Boolean()}, nil
	case "null":
		return checker.LiteralAst{Value: column.NullScalar{}, Type: types.NullType()}, nil
	}
	if len(tok.value) > 0 && tok.value[0] == '@' {
		return checker.ColumnRefAst{Name: tok.value[1:]}, nil
	}
	if p.peek().ttype != tokenLparen {
		return nil, fmt.Errorf("%w: bare identifier %q must be a column reference (prefix it with @) or a call", errUnexpectedToken, tok.value)
	}
	p.next() // '('
	var args []checker.Ast
	if p.peek().ttype != tokenRparen {
		for {
			a, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			args = append(args, a)
			if p.peek().ttype == tokenComma {
				p.next()
				continue
			}
			break
		}
	}
	if err := p.expect(tokenRparen); err != nil {
		return nil, err
	}
	return checker.CallAst{Name: tok.value, Args: args}, nil
}

// parseNumberLiteral splits a scanned number token into its digits and
// mandatory width/signedness suffix (u8, u16, i8 or i16) - this syntax
// has no untyped integer literal, since every integer type here is a
// distinct concrete primitive.
func parseNumberLiteral(raw string) (checker.Ast, error) {
	neg := false
	rest := raw
	if len(rest) > 0 && rest[0] == '-' {
		neg = true
		rest = rest[1:]
	}
	digitsEnd := 0
	for digitsEnd < len(rest) && isDigit(rest[digitsEnd]) {
		digitsEnd++
	}
	digits, suffix := rest[:digitsEnd], rest[digitsEnd:]
	if digits == "" {
		return nil, fmt.Errorf("%w: %q", errInvalidNumber, raw)
	}

	switch suffix {
	case "u8":
		if neg {
			return nil, fmt.Errorf("%w: unsigned literal %q cannot be negative", errInvalidNumber, raw)
		}
		v, err := strconv.ParseUint(digits, 10, 8)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", errInvalidNumber, err)
		}
		return checker.LiteralAst{Value: column.IntegerScalar[uint8]{Value: uint8(v)}, Type: types.UInt8()}, nil
	case "u16":
		if neg {
			return nil, fmt.Errorf("%w: unsigned literal %q cannot be negative", errInvalidNumber, raw)
		}
		v, err := strconv.ParseUint(digits, 10, 16)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", errInvalidNumber, err)
		}
		return checker.LiteralAst{Value: column.IntegerScalar[uint16]{Value: uint16(v)}, Type: types.UInt16()}, nil
	case "i8":
		v, err := strconv.ParseInt(digits, 10, 8)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", errInvalidNumber, err)
		}
		if neg {
			v = -v
		}
		return checker.LiteralAst{Value: column.IntegerScalar[int8]{Value: int8(v)}, Type: types.Int8()}, nil
	case "i16":
		v, err := strconv.ParseInt(digits, 10, 16)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", errInvalidNumber, err)
		}
		if neg {
			v = -v
		}
		return checker.LiteralAst{Value: column.IntegerScalar[int16]{Value: int16(v)}, Type: types.Int16()}, nil
	default:
		return nil, fmt.Errorf("%w: %q needs a u8/u16/i8/i16 suffix", errInvalidNumber, raw)
	}
}
