package grammar

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/npillmayer/bottomup/scanner"
	"github.com/npillmayer/bottomup/scanner/lexmach"
	"github.com/timtadh/lexmachine"
)

// ErrSyntax is returned (wrapped) by Read for malformed grammar notation.
var ErrSyntax = errors.New("syntax error in grammar notation")

// Token types of the grammar notation.
const (
	tokSymbol int = iota + 1
	tokQuoted
	tokArrow
	tokBar
	tokNL
)

var notation struct {
	once    sync.Once
	adapter *lexmach.LMAdapter
	err     error
}

func notationLexer() (*lexmach.LMAdapter, error) {
	notation.once.Do(func() {
		init := func(lexer *lexmachine.Lexer) {
			lexer.Add([]byte(`#[^\n]*`), lexmach.Skip)
			lexer.Add([]byte(`( |\t|\r)+`), lexmach.Skip)
			lexer.Add([]byte(`\n`), lexmach.MakeToken("NL", tokNL))
			lexer.Add([]byte(`\-\>`), lexmach.MakeToken("ARROW", tokArrow))
			lexer.Add([]byte(`\|`), lexmach.MakeToken("BAR", tokBar))
			lexer.Add([]byte(`"([^"\\\n]|\\[^\n])*"`), lexmach.MakeToken("QUOTED", tokQuoted))
			lexer.Add([]byte(`[^ \t\r\n|"#]+`), lexmach.MakeToken("SYMBOL", tokSymbol))
		}
		notation.adapter, notation.err = lexmach.NewLMAdapter(init, nil, nil, nil)
	})
	return notation.adapter, notation.err
}

// Read reads a grammar from its textual notation. See the package documentation
// for the notation. Errors carry the line number of the offending input.
func Read(name string, r io.Reader) (*Grammar, error) {
	input, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	lm, err := notationLexer()
	if err != nil {
		return nil, fmt.Errorf("cannot create grammar lexer: %w", err)
	}
	sc, err := lm.Scanner(string(input))
	if err != nil {
		return nil, err
	}
	var scanErr error
	sc.SetErrorHandler(func(e error) {
		if scanErr == nil {
			scanErr = e
		}
	})
	rd := &reader{name: name, gb: NewGrammarBuilder(name), line: 1}
	for tok := sc.NextToken(); tok.TokType() != scanner.EOF; tok = sc.NextToken() {
		if scanErr != nil {
			return nil, rd.error("%v", scanErr)
		}
		if err := rd.consume(int(tok.TokType()), tok.Lexeme()); err != nil {
			return nil, err
		}
	}
	if scanErr != nil {
		return nil, rd.error("%v", scanErr)
	}
	if rd.state == expectArrow {
		return nil, rd.error("missing '->' after %q", rd.lhs)
	}
	rd.finish()
	g, err := rd.gb.Grammar()
	if err != nil {
		return nil, err
	}
	g.Dump()
	return g, nil
}

type readerState int

const (
	lineStart readerState = iota
	expectArrow
	inRHS
)

type reader struct {
	name  string
	gb    *GrammarBuilder
	rb    *RuleBuilder
	state readerState
	lhs   string
	has   bool // lhs is valid for continuation lines
	line  int
}

func (rd *reader) consume(tok int, lexeme string) error {
	switch rd.state {
	case lineStart:
		switch tok {
		case tokNL:
			rd.line++
		case tokSymbol, tokQuoted:
			rd.lhs, rd.has = symbol(tok, lexeme), true
			rd.state = expectArrow
		case tokBar:
			if !rd.has {
				return rd.error("alternative without left-hand side")
			}
			rd.alternative()
		default:
			return rd.error("unexpected %q at start of line", lexeme)
		}
	case expectArrow:
		if tok != tokArrow {
			return rd.error("expected '->' after %q, have %q", rd.lhs, lexeme)
		}
		rd.alternative()
	case inRHS:
		switch tok {
		case tokSymbol, tokQuoted:
			rd.rb.N(symbol(tok, lexeme))
		case tokBar:
			rd.finish()
			rd.alternative()
		case tokNL:
			rd.finish()
			rd.line++
		default:
			return rd.error("unexpected %q in right-hand side of %q", lexeme, rd.lhs)
		}
	}
	return nil
}

func (rd *reader) alternative() {
	rd.rb = rd.gb.LHS(rd.lhs)
	rd.state = inRHS
}

func (rd *reader) finish() {
	if rd.state == inRHS {
		rd.rb.End()
		rd.rb = nil
	}
	rd.state = lineStart
}

func (rd *reader) error(format string, args ...interface{}) error {
	err := fmt.Errorf("%s:%d: %w: %s", rd.name, rd.line, ErrSyntax, fmt.Sprintf(format, args...))
	tracer().Errorf(err.Error())
	return err
}

func symbol(tok int, lexeme string) string {
	if tok != tokQuoted {
		return lexeme
	}
	var b strings.Builder
	escaped := false
	for _, r := range lexeme[1 : len(lexeme)-1] {
		if !escaped && r == '\\' {
			escaped = true
			continue
		}
		escaped = false
		b.WriteRune(r)
	}
	return b.String()
}

// --- Formatting ------------------------------------------------------------

// Format writes g in textual notation to w. Consecutive rules with identical
// left-hand side are written as alternatives on a single line. The output may be
// read back with Read.
func (g *Grammar) Format(w io.Writer) error {
	var b strings.Builder
	for i, r := range g.rules {
		if i > 0 && g.rules[i-1].LHS == r.LHS {
			b.WriteString(" |")
		} else {
			if i > 0 {
				b.WriteByte('\n')
			}
			b.WriteString(quote(r.LHS))
			b.WriteString(" ->")
		}
		for _, sym := range r.RHS {
			b.WriteByte(' ')
			b.WriteString(quote(sym))
		}
	}
	if len(g.rules) > 0 {
		b.WriteByte('\n')
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func quote(sym string) string {
	if sym != "" && sym != "->" && !strings.ContainsAny(sym, " \t\r\n|\"#\\") {
		return sym
	}
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range sym {
		if r == '"' || r == '\\' {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	b.WriteByte('"')
	return b.String()
}
