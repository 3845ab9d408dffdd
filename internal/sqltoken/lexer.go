package sqltoken

import (
	"fmt"
	"strings"

	"github.com/koustreak/ddlgen/internal/errs"
)

type lexer struct {
	src             string
	pos             int
	backslashEscape bool
	brackets        bool
	toks            []Token
}

func newLexer(src string, opts Options) (*lexer, error) {
	lx := &lexer{src: src}
	switch strings.ToLower(opts.Dialect) {
	case "", "generic":
	case "mysql":
		lx.backslashEscape = true
	case "mssql":
		lx.brackets = true
	default:
		return nil, errs.New(errs.ErrKindInvalidInput, fmt.Sprintf("sqltoken: unknown dialect %q", opts.Dialect))
	}
	return lx, nil
}

func (lx *lexer) run() ([]Token, error) {
	for lx.pos < len(lx.src) {
		start := lx.pos
		c := lx.src[lx.pos]
		var (
			kind Kind
			err  error
		)
		switch {
		case isSpace(c):
			kind = Whitespace
			for lx.pos < len(lx.src) && isSpace(lx.src[lx.pos]) {
				lx.pos++
			}
		case c == '-' && lx.peek(1) == '-':
			kind = Comment
			if i := strings.IndexByte(lx.src[lx.pos:], '\n'); i >= 0 {
				lx.pos += i
			} else {
				lx.pos = len(lx.src)
			}
		case c == '/' && lx.peek(1) == '*':
			kind = Comment
			i := strings.Index(lx.src[lx.pos+2:], "*/")
			if i < 0 {
				return nil, unterminated("block comment", start)
			}
			lx.pos += 2 + i + 2
		case c == '\'':
			kind = String
			err = lx.quoted('\'', lx.backslashEscape, "string literal")
		case c == '"':
			kind = QuotedIdent
			err = lx.quoted('"', false, "quoted identifier")
		case c == '`':
			kind = QuotedIdent
			err = lx.quoted('`', false, "quoted identifier")
		case c == '[' && lx.brackets:
			kind = QuotedIdent
			err = lx.quoted(']', false, "bracketed identifier")
		case c == ';':
			kind = Semicolon
			lx.pos++
		case isDigit(c):
			kind = Number
			for lx.pos < len(lx.src) && (isDigit(lx.src[lx.pos]) || lx.src[lx.pos] == '.') {
				lx.pos++
			}
		case isWordStart(c):
			kind = Word
			for lx.pos < len(lx.src) && isWordPart(lx.src[lx.pos]) {
				lx.pos++
			}
		default:
			kind = Punct
			lx.pos++
		}
		if err != nil {
			return nil, err
		}
		lx.toks = append(lx.toks, Token{Kind: kind, Text: lx.src[start:lx.pos], Pos: start})
	}
	return lx.toks, nil
}

// quoted consumes a quoted run starting at lx.pos. A doubled closing quote
// is an escaped quote.
func (lx *lexer) quoted(closing byte, backslash bool, what string) error {
	start := lx.pos
	lx.pos++
	for lx.pos < len(lx.src) {
		c := lx.src[lx.pos]
		switch {
		case backslash && c == '\\':
			lx.pos += 2
			continue
		case c == closing:
			if lx.peek(1) == closing {
				lx.pos += 2
				continue
			}
			lx.pos++
			return nil
		}
		lx.pos++
	}
	return unterminated(what, start)
}

func (lx *lexer) peek(n int) byte {
	if lx.pos+n < len(lx.src) {
		return lx.src[lx.pos+n]
	}
	return 0
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' || c == '\v'
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isWordStart(c byte) bool {
	return c == '_' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= 0x80
}

func isWordPart(c byte) bool {
	return isWordStart(c) || isDigit(c) || c == '$'
}
