// Package parse turns a lex.Lexer's token stream into a telast.PreExpr, by
// recursive descent over Tel's parenthesized surface syntax. spec.md §1
// treats the parser as an external collaborator specified only through the
// PreExpr it must produce; this is one concrete grammar that produces it,
// grounded in the teacher's hand-written-recursive-descent fallback style
// (parser/parser.go's helper methods around the goyacc-generated table),
// simplified here to plain recursive descent since Tel's grammar has no
// operator precedence to resolve — every form is fully parenthesized.
package parse

import (
	"strconv"

	"github.com/mverleg/tel/lex"
	"github.com/mverleg/tel/telast"
)

var binaryOps = map[string]bool{
	"+": true, "-": true, "*": true, "/": true,
	"==": true, "!=": true, "<": true, ">": true, "<=": true, ">=": true,
	"&&": true, "||": true,
}

// Parse reads the entirety of text (from file, used only for diagnostics)
// and returns the top-level Sequence of forms it contains.
func Parse(file, text string) (telast.PreExpr, error) {
	p := &parser{file: file, lx: lex.New(file, text)}
	p.advance()

	var exprs []telast.PreExpr
	for p.cur.Kind != lex.EOF {
		e, err := p.parseForm()
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, e)
	}
	if len(exprs) == 0 {
		return nil, &telast.EmptyExpression{File: file}
	}
	return telast.Sequence{Exprs: exprs, Span: telast.Span{File: file, Line: 1, Col: 1}}, nil
}

type parser struct {
	file string
	lx   *lex.Lexer
	cur  lex.Token
}

func (p *parser) advance() {
	p.cur = p.lx.Next()
}

func (p *parser) span() telast.Span {
	return telast.Span{File: p.file, Line: p.cur.Line, Col: p.cur.Col}
}

func (p *parser) expect(k lex.Kind) (lex.Token, error) {
	if p.cur.Kind != k {
		return lex.Token{}, &telast.UnexpectedToken{
			File: p.file,
			Span: p.span(),
			Got:  p.cur.Text,
			Want: k.String(),
		}
	}
	tok := p.cur
	p.advance()
	return tok, nil
}

// parseForm parses one top-level value: a parenthesized form, a number, or
// an identifier reference.
func (p *parser) parseForm() (telast.PreExpr, error) {
	switch p.cur.Kind {
	case lex.EOF:
		return nil, &telast.UnexpectedEOF{File: p.file}
	case lex.Number:
		return p.parseNumber()
	case lex.Atom:
		return p.parseIdent()
	case lex.LParen:
		return p.parseList()
	default:
		return nil, &telast.UnexpectedToken{File: p.file, Span: p.span(), Got: p.cur.Text, Want: "expression"}
	}
}

func (p *parser) parseNumber() (telast.PreExpr, error) {
	span := p.span()
	text := p.cur.Text
	v, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return nil, &telast.InvalidNumber{Span: span, Text: text}
	}
	p.advance()
	return telast.Number{Value: v, Span: span}, nil
}

func (p *parser) parseIdent() (telast.PreExpr, error) {
	span := p.span()
	name := p.cur.Text
	p.advance()
	return telast.Ident{Name: name, Span: span}, nil
}

func (p *parser) parseList() (telast.PreExpr, error) {
	span := p.span()
	if _, err := p.expect(lex.LParen); err != nil {
		return nil, err
	}
	if p.cur.Kind == lex.RParen {
		return nil, &telast.EmptyExpression{File: p.file}
	}

	head := p.cur
	if head.Kind != lex.Atom {
		return nil, &telast.UnexpectedToken{File: p.file, Span: p.span(), Got: head.Text, Want: "form keyword or operator"}
	}
	p.advance()

	var result telast.PreExpr
	var err error
	switch head.Text {
	case "import":
		result, err = p.parseImport(span)
	case "let":
		result, err = p.parseLet(span)
	case "set":
		result, err = p.parseSet(span)
	case "if":
		result, err = p.parseIf(span)
	case "print":
		result, err = p.parseUnary(span, func(e telast.PreExpr) telast.PreExpr { return telast.Print{Expr: e, Span: span} })
	case "return":
		result, err = p.parseUnary(span, func(e telast.PreExpr) telast.PreExpr { return telast.Return{Expr: e, Span: span} })
	case "panic":
		result = telast.Panic{Span: span}
	case "unreachable":
		result = telast.Unreachable{Span: span}
	case "function":
		result, err = p.parseFunctionDef(span)
	case "call":
		result, err = p.parseCall(span)
	case "arg":
		result, err = p.parseArg(span)
	default:
		if binaryOps[head.Text] {
			result, err = p.parseBinary(span, head.Text)
		} else {
			result, err = nil, &telast.UnexpectedToken{File: p.file, Span: span, Got: head.Text, Want: "known form"}
		}
	}
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lex.RParen); err != nil {
		return nil, err
	}
	return result, nil
}

func (p *parser) parseImport(span telast.Span) (telast.PreExpr, error) {
	name, err := p.parseNameAtom()
	if err != nil {
		return nil, err
	}
	return telast.Import{Name: name, Span: span}, nil
}

func (p *parser) parseLet(span telast.Span) (telast.PreExpr, error) {
	name, err := p.parseNameAtom()
	if err != nil {
		return nil, err
	}
	value, err := p.parseForm()
	if err != nil {
		return nil, err
	}
	return telast.Let{Name: name, Value: value, Span: span}, nil
}

func (p *parser) parseSet(span telast.Span) (telast.PreExpr, error) {
	name, err := p.parseNameAtom()
	if err != nil {
		return nil, err
	}
	value, err := p.parseForm()
	if err != nil {
		return nil, err
	}
	return telast.Set{Name: name, Value: value, Span: span}, nil
}

func (p *parser) parseIf(span telast.Span) (telast.PreExpr, error) {
	cond, err := p.parseForm()
	if err != nil {
		return nil, err
	}
	then, err := p.parseForm()
	if err != nil {
		return nil, err
	}
	var elseBranch telast.PreExpr
	if p.cur.Kind != lex.RParen {
		elseBranch, err = p.parseForm()
		if err != nil {
			return nil, err
		}
	}
	return telast.If{Cond: cond, Then: then, Else: elseBranch, Span: span}, nil
}

func (p *parser) parseUnary(span telast.Span, build func(telast.PreExpr) telast.PreExpr) (telast.PreExpr, error) {
	e, err := p.parseForm()
	if err != nil {
		return nil, err
	}
	return build(e), nil
}

func (p *parser) parseBinary(span telast.Span, op string) (telast.PreExpr, error) {
	left, err := p.parseForm()
	if err != nil {
		return nil, err
	}
	right, err := p.parseForm()
	if err != nil {
		return nil, err
	}
	return telast.BinaryOp{Op: op, Left: left, Right: right, Span: span}, nil
}

func (p *parser) parseFunctionDef(span telast.Span) (telast.PreExpr, error) {
	name, err := p.parseNameAtom()
	if err != nil {
		return nil, err
	}
	body, err := p.parseForm()
	if err != nil {
		return nil, err
	}
	return telast.FunctionDef{Name: name, Body: body, Span: span}, nil
}

func (p *parser) parseCall(span telast.Span) (telast.PreExpr, error) {
	name, err := p.parseNameAtom()
	if err != nil {
		return nil, err
	}
	var args []telast.PreExpr
	for p.cur.Kind != lex.RParen {
		a, err := p.parseForm()
		if err != nil {
			return nil, err
		}
		args = append(args, a)
	}
	return telast.Call{FuncName: name, Args: args, Span: span}, nil
}

func (p *parser) parseArg(span telast.Span) (telast.PreExpr, error) {
	tok, err := p.expect(lex.Number)
	if err != nil {
		return nil, err
	}
	n, convErr := strconv.Atoi(tok.Text)
	if convErr != nil || n < 0 || n > 255 {
		return nil, &telast.InvalidNumber{Span: span, Text: tok.Text}
	}
	return telast.Arg{N: uint8(n), Span: span}, nil
}

// parseNameAtom consumes a bare atom used as a name (import/let/set/function/
// call target), rather than a full expression.
func (p *parser) parseNameAtom() (string, error) {
	tok, err := p.expect(lex.Atom)
	if err != nil {
		return "", err
	}
	return tok.Text, nil
}
