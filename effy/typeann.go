package effy

import (
	"go/token"
	"strings"
	"unicode"

	"github.com/cottand/effy/frontend/ast"
	"github.com/pkg/errors"
)

// annotation grammar:
//
//	type  := atom [ arrow type ]
//	arrow := '->' | '->{' [ label { ',' label } ] [ '|' var ] '}'
//	atom  := 'unit' | var | '(' type ')'
//	var   := [ '\'' ] ident
//
// Arrows associate to the right.

type annToken struct {
	text   string
	offset int
}

func lexAnnotation(src string) ([]annToken, error) {
	var tokens []annToken
	for i := 0; i < len(src); {
		c := rune(src[i])
		switch {
		case unicode.IsSpace(c):
			i++
		case strings.HasPrefix(src[i:], "->"):
			tokens = append(tokens, annToken{"->", i})
			i += 2
		case strings.ContainsRune("{}(),|", c):
			tokens = append(tokens, annToken{string(c), i})
			i++
		case c == '\'' || c == '_' || unicode.IsLetter(c):
			start := i
			i++
			for i < len(src) && (src[i] == '_' || unicode.IsLetter(rune(src[i])) || unicode.IsDigit(rune(src[i]))) {
				i++
			}
			tokens = append(tokens, annToken{src[start:i], start})
		default:
			return nil, errors.Errorf("unexpected character %q at offset %d", c, i)
		}
	}
	return tokens, nil
}

type annParser struct {
	tokens []annToken
	i      int
	// base is the position of the first character of the annotation
	base token.Pos
}

// parseAnnotation parses src, attributing positions relative to base.
func parseAnnotation(src string, base token.Pos) (ast.TypeAnn, error) {
	tokens, err := lexAnnotation(src)
	if err != nil {
		return nil, err
	}
	p := &annParser{tokens: tokens, base: base}
	ann, err := p.parseType()
	if err != nil {
		return nil, err
	}
	if next, ok := p.peek(); ok {
		return nil, errors.Errorf("unexpected %q at offset %d", next.text, next.offset)
	}
	return ann, nil
}

func (p *annParser) peek() (annToken, bool) {
	if p.i >= len(p.tokens) {
		return annToken{}, false
	}
	return p.tokens[p.i], true
}

func (p *annParser) next() (annToken, error) {
	tok, ok := p.peek()
	if !ok {
		return tok, errors.New("unexpected end of type annotation")
	}
	p.i++
	return tok, nil
}

func (p *annParser) expect(text string) (annToken, error) {
	tok, err := p.next()
	if err != nil {
		return tok, err
	}
	if tok.text != text {
		return tok, errors.Errorf("expected %q but found %q at offset %d", text, tok.text, tok.offset)
	}
	return tok, nil
}

func (p *annParser) pos(tok annToken) token.Pos { return p.base + token.Pos(tok.offset) }

func (p *annParser) rangeOf(tok annToken) ast.Range {
	return ast.Range{PosStart: p.pos(tok), PosEnd: p.pos(tok) + token.Pos(len(tok.text))}
}

func (p *annParser) parseType() (ast.TypeAnn, error) {
	arg, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	tok, ok := p.peek()
	if !ok || tok.text != "->" {
		return arg, nil
	}
	p.i++

	var effect []string
	var tail string
	effectful := false
	if brace, ok := p.peek(); ok && brace.text == "{" {
		p.i++
		effectful = true
		if effect, tail, err = p.parseRow(); err != nil {
			return nil, err
		}
	}
	result, err := p.parseType()
	if err != nil {
		return nil, err
	}
	rng := ast.Range{PosStart: arg.Pos(), PosEnd: result.End()}
	if effectful {
		return &ast.EffArrowAnn{Range: rng, Arg: arg, Result: result, Effect: effect, Tail: tail}, nil
	}
	return &ast.PureArrowAnn{Range: rng, Arg: arg, Result: result}, nil
}

// parseRow parses the inside of an effect row, after its opening brace
func (p *annParser) parseRow() (labels []string, tail string, err error) {
	for {
		tok, err := p.next()
		if err != nil {
			return nil, "", err
		}
		switch {
		case tok.text == "}":
			return labels, tail, nil
		case tok.text == "|":
			varTok, err := p.next()
			if err != nil {
				return nil, "", err
			}
			if !isIdent(varTok.text) {
				return nil, "", errors.Errorf("expected a row variable but found %q at offset %d", varTok.text, varTok.offset)
			}
			tail = strings.TrimPrefix(varTok.text, "'")
			if _, err := p.expect("}"); err != nil {
				return nil, "", err
			}
			return labels, tail, nil
		case tok.text == ",":
			if len(labels) == 0 {
				return nil, "", errors.Errorf("unexpected ',' at offset %d", tok.offset)
			}
		case isIdent(tok.text) && !strings.HasPrefix(tok.text, "'"):
			labels = append(labels, tok.text)
		default:
			return nil, "", errors.Errorf("expected a capability but found %q at offset %d", tok.text, tok.offset)
		}
	}
}

func (p *annParser) parseAtom() (ast.TypeAnn, error) {
	tok, err := p.next()
	if err != nil {
		return nil, err
	}
	switch {
	case tok.text == "unit":
		return &ast.UnitAnn{Range: p.rangeOf(tok)}, nil
	case tok.text == "(":
		inner, err := p.parseType()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(")"); err != nil {
			return nil, err
		}
		return inner, nil
	case isIdent(tok.text):
		return &ast.VarAnn{Range: p.rangeOf(tok), Name: strings.TrimPrefix(tok.text, "'")}, nil
	default:
		return nil, errors.Errorf("expected a type but found %q at offset %d", tok.text, tok.offset)
	}
}

func isIdent(s string) bool {
	s = strings.TrimPrefix(s, "'")
	if s == "" {
		return false
	}
	r := rune(s[0])
	return r == '_' || unicode.IsLetter(r)
}
