package guard

import (
	"fmt"
	"strings"
	"unicode"
)

// Expr is a node of a guard expression tree.
type Expr interface {
	fmt.Stringer
}

// Const is TRUE or FALSE.
type Const struct {
	Value bool
}

// Ident refers to a manager variable.
type Ident struct {
	Name string
}

// Unary is a prefix operator; only "!" is known.
type Unary struct {
	Op string
	X  Expr
}

// Binary is one of "&", "|", "->", "<->".
type Binary struct {
	Op   string
	X, Y Expr
}

func (c Const) String() string {
	if c.Value {
		return "TRUE"
	}
	return "FALSE"
}

func (i Ident) String() string { return i.Name }

func (u Unary) String() string { return u.Op + u.X.String() }

func (b Binary) String() string {
	return "(" + b.X.String() + " " + b.Op + " " + b.Y.String() + ")"
}

// Parse parses src and translates it into a fresh guard reference.
func (m *Manager) Parse(src string) (*Guard, error) {
	e, err := ParseExpr(src)
	if err != nil {
		return nil, err
	}
	return m.Translate(e)
}

// MustParse is like Parse but panics on error.
func (m *Manager) MustParse(src string) *Guard {
	g, err := m.Parse(src)
	if err != nil {
		panic(err)
	}
	return g
}

// Translate converts an expression tree into a fresh guard reference.
// Intermediate references are released on every path.
func (m *Manager) Translate(e Expr) (*Guard, error) {
	switch n := e.(type) {
	case Const:
		return m.From(n.Value), nil
	case Ident:
		return m.Var(n.Name)
	case Unary:
		if n.Op != "!" {
			return nil, fmt.Errorf("operator %q: %w", n.Op, ErrUnhandledExpr)
		}
		x, err := m.Translate(n.X)
		if err != nil {
			return nil, err
		}
		defer x.Free()
		return x.Not(), nil
	case Binary:
		x, err := m.Translate(n.X)
		if err != nil {
			return nil, err
		}
		defer x.Free()
		y, err := m.Translate(n.Y)
		if err != nil {
			return nil, err
		}
		defer y.Free()
		switch n.Op {
		case "&":
			return x.And(y), nil
		case "|":
			return x.Or(y), nil
		case "->":
			return x.Imp(y), nil
		case "<->":
			return x.Equiv(y), nil
		}
		return nil, fmt.Errorf("operator %q: %w", n.Op, ErrUnhandledExpr)
	default:
		return nil, fmt.Errorf("%T: %w", e, ErrUnhandledExpr)
	}
}

// ParseExpr parses a guard expression. Precedence, loosest first:
// "<->", "->" (right associative), "|", "&", "!".
func ParseExpr(src string) (Expr, error) {
	toks, err := tokenize(src)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks}
	e, err := p.equiv()
	if err != nil {
		return nil, err
	}
	if p.pos != len(p.toks) {
		return nil, fmt.Errorf("unexpected %q at offset %d: %w", p.toks[p.pos].text, p.toks[p.pos].off, ErrSyntax)
	}
	return e, nil
}

type token struct {
	text string
	off  int
}

func tokenize(src string) ([]token, error) {
	var toks []token
	rs := []rune(src)
	for i := 0; i < len(rs); {
		r := rs[i]
		switch {
		case unicode.IsSpace(r):
			i++
		case strings.ContainsRune("!&|()", r):
			toks = append(toks, token{string(r), i})
			i++
		case r == '-' && i+1 < len(rs) && rs[i+1] == '>':
			toks = append(toks, token{"->", i})
			i += 2
		case r == '<' && i+2 < len(rs) && rs[i+1] == '-' && rs[i+2] == '>':
			toks = append(toks, token{"<->", i})
			i += 3
		case r == '_' || unicode.IsLetter(r):
			j := i
			for j < len(rs) && (rs[j] == '_' || rs[j] == '.' || unicode.IsLetter(rs[j]) || unicode.IsDigit(rs[j])) {
				j++
			}
			toks = append(toks, token{string(rs[i:j]), i})
			i = j
		default:
			return nil, fmt.Errorf("unexpected %q at offset %d: %w", r, i, ErrSyntax)
		}
	}
	return toks, nil
}

type parser struct {
	toks []token
	pos  int
}

func (p *parser) peek() string {
	if p.pos < len(p.toks) {
		return p.toks[p.pos].text
	}
	return ""
}

func (p *parser) equiv() (Expr, error) {
	x, err := p.imp()
	if err != nil {
		return nil, err
	}
	for p.peek() == "<->" {
		p.pos++
		y, err := p.imp()
		if err != nil {
			return nil, err
		}
		x = Binary{Op: "<->", X: x, Y: y}
	}
	return x, nil
}

func (p *parser) imp() (Expr, error) {
	x, err := p.or()
	if err != nil {
		return nil, err
	}
	if p.peek() == "->" {
		p.pos++
		y, err := p.imp()
		if err != nil {
			return nil, err
		}
		return Binary{Op: "->", X: x, Y: y}, nil
	}
	return x, nil
}

func (p *parser) or() (Expr, error) {
	x, err := p.and()
	if err != nil {
		return nil, err
	}
	for p.peek() == "|" {
		p.pos++
		y, err := p.and()
		if err != nil {
			return nil, err
		}
		x = Binary{Op: "|", X: x, Y: y}
	}
	return x, nil
}

func (p *parser) and() (Expr, error) {
	x, err := p.unary()
	if err != nil {
		return nil, err
	}
	for p.peek() == "&" {
		p.pos++
		y, err := p.unary()
		if err != nil {
			return nil, err
		}
		x = Binary{Op: "&", X: x, Y: y}
	}
	return x, nil
}

func (p *parser) unary() (Expr, error) {
	if p.pos >= len(p.toks) {
		return nil, fmt.Errorf("unexpected end of expression: %w", ErrSyntax)
	}
	tok := p.toks[p.pos]
	switch tok.text {
	case "!":
		p.pos++
		x, err := p.unary()
		if err != nil {
			return nil, err
		}
		return Unary{Op: "!", X: x}, nil
	case "(":
		p.pos++
		x, err := p.equiv()
		if err != nil {
			return nil, err
		}
		if p.peek() != ")" {
			return nil, fmt.Errorf("missing ')' for '(' at offset %d: %w", tok.off, ErrSyntax)
		}
		p.pos++
		return x, nil
	case "TRUE", "true":
		p.pos++
		return Const{Value: true}, nil
	case "FALSE", "false":
		p.pos++
		return Const{Value: false}, nil
	case "&", "|", ")", "->", "<->":
		return nil, fmt.Errorf("unexpected %q at offset %d: %w", tok.text, tok.off, ErrSyntax)
	}
	p.pos++
	return Ident{Name: tok.text}, nil
}
