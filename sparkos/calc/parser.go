package calc

import (
	"fmt"
	"math"
)

type node interface {
	eval() (float64, error)
}

type nodeNumber struct {
	v float64
}

type nodeUnary struct {
	op rune
	x  node
}

type nodeBinary struct {
	op    rune
	left  node
	right node
}

type parser struct {
	l   lexer
	cur token
}

// Parse checks text against the calculator grammar and returns an evaluable expression.
//
//	expr    := term (('+' | '-') term)*
//	term    := unary (('*' | '/' | '%') unary)*
//	unary   := ('+' | '-' | '√') unary | power
//	power   := primary ('^' unary)?
//	primary := number | 'π' | 'pi' | 'e' | '(' expr ')'
func Parse(text string) (Expr, error) {
	p := &parser{l: lexer{s: text}}
	p.next()
	if p.cur.kind == tokEOF {
		return Expr{}, fmt.Errorf("%w: empty expression", ErrSyntax)
	}
	n, err := p.parseExpr()
	if err != nil {
		return Expr{}, err
	}
	if p.cur.kind != tokEOF {
		return Expr{}, p.unexpected()
	}
	return Expr{src: text, root: n}, nil
}

// Expr is a parsed expression.
type Expr struct {
	src  string
	root node
}

// String returns the source text the expression was parsed from.
func (e Expr) String() string { return e.src }

// Eval computes the expression value.
func (e Expr) Eval() (float64, error) {
	if e.root == nil {
		return 0, fmt.Errorf("%w: empty expression", ErrSyntax)
	}
	v, err := e.root.eval()
	if err != nil {
		return 0, err
	}
	return checkResult(v)
}

func (p *parser) next() { p.cur = p.l.next() }

func (p *parser) unexpected() error {
	if p.cur.kind == tokEOF {
		return fmt.Errorf("%w: unexpected end of expression", ErrSyntax)
	}
	return fmt.Errorf("%w: unexpected %q at %d", ErrSyntax, p.cur.text, p.cur.pos)
}

func (p *parser) parseExpr() (node, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for p.cur.kind == tokPlus || p.cur.kind == tokMinus {
		op := '+'
		if p.cur.kind == tokMinus {
			op = '-'
		}
		p.next()
		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		left = nodeBinary{op: op, left: left, right: right}
	}
	return left, nil
}

func (p *parser) parseTerm() (node, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		var op rune
		switch p.cur.kind {
		case tokStar:
			op = '*'
		case tokSlash:
			op = '/'
		case tokPercent:
			op = '%'
		default:
			return left, nil
		}
		p.next()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = nodeBinary{op: op, left: left, right: right}
	}
}

func (p *parser) parseUnary() (node, error) {
	var op rune
	switch p.cur.kind {
	case tokPlus:
		op = '+'
	case tokMinus:
		op = '-'
	case tokSqrt:
		op = '√'
	default:
		return p.parsePower()
	}
	p.next()
	x, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	return nodeUnary{op: op, x: x}, nil
}

func (p *parser) parsePower() (node, error) {
	base, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	if p.cur.kind != tokCaret {
		return base, nil
	}
	p.next()
	exp, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	return nodeBinary{op: '^', left: base, right: exp}, nil
}

func (p *parser) parsePrimary() (node, error) {
	switch p.cur.kind {
	case tokNumber:
		v := p.cur.num
		p.next()
		return nodeNumber{v: v}, nil
	case tokPi:
		p.next()
		return nodeNumber{v: math.Pi}, nil
	case tokIdent:
		switch p.cur.text {
		case "pi":
			p.next()
			return nodeNumber{v: math.Pi}, nil
		case "e":
			p.next()
			return nodeNumber{v: math.E}, nil
		}
		return nil, fmt.Errorf("%w: unknown name %q at %d", ErrSyntax, p.cur.text, p.cur.pos)
	case tokLParen:
		p.next()
		ex, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if p.cur.kind != tokRParen {
			return nil, fmt.Errorf("%w: expected ')'", ErrSyntax)
		}
		p.next()
		return ex, nil
	default:
		return nil, p.unexpected()
	}
}
