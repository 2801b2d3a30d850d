package lex_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mverleg/tel/lex"
)

func collect(file, src string) []lex.Token {
	l := lex.New(file, src)
	var toks []lex.Token
	for {
		tok := l.Next()
		toks = append(toks, tok)
		if tok.Kind == lex.EOF {
			return toks
		}
	}
}

func TestLexParensAndAtoms(t *testing.T) {
	toks := collect("main.telsb", "(call add 1 2)")
	kinds := make([]lex.Kind, 0, len(toks))
	for _, tok := range toks {
		kinds = append(kinds, tok.Kind)
	}
	assert.Equal(t, []lex.Kind{
		lex.LParen, lex.Atom, lex.Atom, lex.Number, lex.Number, lex.RParen, lex.EOF,
	}, kinds)
}

func TestLexNegativeNumber(t *testing.T) {
	toks := collect("main.telsb", "-5")
	tok := toks[0]
	assert.Equal(t, lex.Number, tok.Kind)
	assert.Equal(t, "-5", tok.Text)
}

func TestLexSkipsCommentsAndWhitespace(t *testing.T) {
	toks := collect("main.telsb", "  ; a comment\n(let n 1) ; trailing\n")
	assert.Equal(t, lex.LParen, toks[0].Kind)
	assert.Equal(t, lex.Atom, toks[1].Kind)
	assert.Equal(t, "let", toks[1].Text)
	assert.Equal(t, lex.EOF, toks[len(toks)-1].Kind)
}

func TestLexTracksLineAndColumn(t *testing.T) {
	toks := collect("main.telsb", "(a)\n(b)")
	// second '(' starts line 2, column 1.
	var second lex.Token
	open := 0
	for _, tok := range toks {
		if tok.Kind == lex.LParen {
			open++
			if open == 2 {
				second = tok
				break
			}
		}
	}
	assert.Equal(t, 2, second.Line)
	assert.Equal(t, 1, second.Col)
}

func TestLexDashAloneIsAtomNotNumber(t *testing.T) {
	toks := collect("main.telsb", "-")
	assert.Equal(t, lex.Atom, toks[0].Kind)
	assert.Equal(t, "-", toks[0].Text)
}

func TestPositionFormatsLikeSpan(t *testing.T) {
	assert.Equal(t, "main.telsb:3:7", lex.Position("main.telsb", 3, 7))
}
