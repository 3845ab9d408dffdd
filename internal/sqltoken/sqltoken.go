// Package sqltoken splits SQL text into statements and tokens without
// understanding the grammar beyond quoting, comments and separators.
//
// Statements partition the input exactly: concatenating every Statement.Text
// reproduces the original text, separators and whitespace included.
package sqltoken

import (
	"fmt"
	"strings"

	"github.com/koustreak/ddlgen/internal/errs"
)

// Kind is a token class.
type Kind int

const (
	Whitespace Kind = iota
	Comment
	Word
	QuotedIdent
	String
	Number
	Punct
	Semicolon
)

var kindNames = [...]string{"whitespace", "comment", "word", "quoted_ident", "string", "number", "punct", "semicolon"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Token is one lexeme. Pos is the byte offset in the input.
type Token struct {
	Kind Kind
	Text string
	Pos  int
}

// StatementType classifies a statement by its leading keywords.
type StatementType int

const (
	Unknown StatementType = iota
	CreateTable
	CommentOn
)

func (t StatementType) String() string {
	switch t {
	case CreateTable:
		return "CREATE_TABLE"
	case CommentOn:
		return "COMMENT"
	default:
		return "UNKNOWN"
	}
}

// Statement is a contiguous slice of the input ending after its ';'
// separator (or at end of input). Leading whitespace and comments belong to
// the statement they precede.
type Statement struct {
	Start  int
	End    int
	Text   string
	Type   StatementType
	Tokens []Token
}

// Options tunes lexing for a dialect family.
type Options struct {
	// Dialect selects quoting rules: "generic" (default) accepts "ident" and
	// `ident`; "mysql" also treats backslash as an escape inside strings;
	// "mssql" also accepts [ident].
	Dialect string
}

// Identify splits sql into statements. Unterminated strings, quoted
// identifiers and block comments fail with ErrKindInvalidInput.
func Identify(sql string, opts Options) ([]Statement, error) {
	lx, err := newLexer(sql, opts)
	if err != nil {
		return nil, err
	}
	toks, err := lx.run()
	if err != nil {
		return nil, err
	}

	var (
		stmts []Statement
		start int
		cur   []Token
	)
	flush := func(end int) {
		stmts = append(stmts, Statement{
			Start:  start,
			End:    end,
			Text:   sql[start:end],
			Type:   classify(cur),
			Tokens: cur,
		})
		start, cur = end, nil
	}
	for _, tok := range toks {
		cur = append(cur, tok)
		if tok.Kind == Semicolon {
			flush(tok.Pos + len(tok.Text))
		}
	}
	if start < len(sql) {
		if significant(cur) || len(stmts) == 0 {
			flush(len(sql))
		} else {
			// Trailing whitespace or comments stay with the last statement.
			last := &stmts[len(stmts)-1]
			last.End = len(sql)
			last.Text = sql[last.Start:]
			last.Tokens = append(last.Tokens, cur...)
		}
	}
	return stmts, nil
}

// Split returns the text of each statement.
func Split(sql string, opts Options) ([]string, error) {
	stmts, err := Identify(sql, opts)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(stmts))
	for i, s := range stmts {
		out[i] = s.Text
	}
	return out, nil
}

func significant(toks []Token) bool {
	for _, t := range toks {
		if t.Kind != Whitespace && t.Kind != Comment {
			return true
		}
	}
	return false
}

func classify(toks []Token) StatementType {
	words := Keywords(toks, 2)
	if len(words) < 2 {
		return Unknown
	}
	switch {
	case words[0] == "create" && words[1] == "table":
		return CreateTable
	case words[0] == "comment" && words[1] == "on":
		return CommentOn
	}
	return Unknown
}

// Keywords returns up to n leading significant tokens, lower-cased.
func Keywords(toks []Token, n int) []string {
	var out []string
	for _, t := range toks {
		if len(out) == n {
			break
		}
		if t.Kind == Whitespace || t.Kind == Comment {
			continue
		}
		out = append(out, strings.ToLower(t.Text))
	}
	return out
}

// Significant returns the index of the n-th (zero based) significant token,
// or -1.
func (s Statement) Significant(n int) int {
	for i, t := range s.Tokens {
		if t.Kind == Whitespace || t.Kind == Comment {
			continue
		}
		if n == 0 {
			return i
		}
		n--
	}
	return -1
}

func unterminated(what string, pos int) error {
	return errs.New(errs.ErrKindInvalidInput, fmt.Sprintf("sqltoken: unterminated %s at offset %d", what, pos))
}
