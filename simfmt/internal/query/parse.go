// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package query

import (
	"regexp"
	"strconv"
	"unicode"
	"unicode/utf8"
)

// token kinds other than single-character operators.
const (
	tEOF  = 0
	tWord = 'w'
	tAnd  = 'A'
	tOr   = 'O'
)

type token struct {
	kind byte
	off  int
	text string
}

func isOp(c byte) bool {
	switch c {
	case '(', ')', ':':
		return true
	}
	return false
}

// lex splits q into tokens. "-" and "*" are operators only at the
// start of a word, so "mean-heads" is one word.
func lex(q string) ([]token, error) {
	var toks []token
	for off := 0; off < len(q); {
		c := q[off]
		switch {
		case isOp(c) || c == '-' || c == '*':
			toks = append(toks, token{c, off, q[off : off+1]})
			off++
		case c == '"':
			end := off + 1
			for end < len(q) && q[end] != '"' {
				end++
			}
			if end == len(q) {
				return nil, &SyntaxError{q, off, "missing end quote"}
			}
			// Quoted words are never AND or OR.
			toks = append(toks, token{tWord, off, q[off+1 : end]})
			off = end + 1
		default:
			r, size := utf8.DecodeRuneInString(q[off:])
			if unicode.IsSpace(r) {
				off += size
				continue
			}
			end := off
			for end < len(q) {
				r, size := utf8.DecodeRuneInString(q[end:])
				if unicode.IsSpace(r) || isOp(q[end]) {
					break
				}
				end += size
			}
			tok := token{tWord, off, q[off:end]}
			switch tok.text {
			case "AND":
				tok.kind = tAnd
			case "OR":
				tok.kind = tOr
			}
			toks = append(toks, tok)
			off = end
		}
	}
	// The EOF token saves bounds checks and gives the end a
	// position for errors.
	return append(toks, token{tEOF, len(q), ""}), nil
}

// Parse parses a query.
func Parse(q string) (Node, error) {
	toks, err := lex(q)
	if err != nil {
		return nil, err
	}
	p := parser{q: q, toks: toks}
	n, i := p.orExpr(0)
	if p.toks[i].kind != tEOF {
		p.fail(i, "unexpected "+strconv.Quote(p.toks[i].text))
	}
	if p.err != nil {
		return nil, p.err
	}
	return n, nil
}

type parser struct {
	q    string
	toks []token
	err  *SyntaxError
}

// fail records the earliest error and returns the index of the EOF
// token so parsing unwinds.
func (p *parser) fail(i int, msg string) int {
	if off := p.toks[i].off; p.err == nil || off < p.err.Off {
		p.err = &SyntaxError{p.q, off, msg}
	}
	return len(p.toks) - 1
}

func (p *parser) orExpr(i int) (Node, int) {
	return p.binary(i, tOr, Or, p.andExpr)
}

func (p *parser) andExpr(i int) (Node, int) {
	return p.binary(i, tAnd, And, p.phrase)
}

func (p *parser) binary(i int, sep byte, kind OpKind, operand func(int) (Node, int)) (Node, int) {
	n, i := operand(i)
	if p.toks[i].kind != sep {
		return n, i
	}
	args := []Node{n}
	for p.toks[i].kind == sep {
		n, i = operand(i + 1)
		args = append(args, n)
	}
	return &Op{kind, args}, i
}

func (p *parser) phrase(i int) (Node, int) {
	var args []Node
	for {
		switch p.toks[i].kind {
		case '(', '-', '*', tWord:
			var n Node
			n, i = p.match(i)
			args = append(args, n)
			continue
		case ')', tAnd, tOr, tEOF:
		default:
			return nil, p.fail(i, "unexpected "+strconv.Quote(p.toks[i].text))
		}
		break
	}
	switch len(args) {
	case 0:
		return nil, p.fail(i, "nothing to match")
	case 1:
		return args[0], i
	}
	return &Op{And, args}, i
}

func (p *parser) match(i int) (Node, int) {
	switch p.toks[i].kind {
	case '(':
		n, i := p.orExpr(i + 1)
		if p.toks[i].kind != ')' {
			return nil, p.fail(i, `missing ")"`)
		}
		return n, i + 1
	case '-':
		n, i := p.match(i + 1)
		return &Op{Not, []Node{n}}, i
	case '*':
		return &Op{And, nil}, i + 1
	case tWord:
		key, off := p.toks[i].text, p.toks[i].off
		if p.toks[i+1].kind != ':' {
			return nil, p.fail(i, "expected key:value")
		}
		switch p.toks[i+2].kind {
		case tWord:
			return p.matchWord(i+2, off, key)
		case '(':
			var alts []Node
			for i += 3; p.toks[i].kind == tWord; {
				var n Node
				n, i = p.matchWord(i, off, key)
				alts = append(alts, n)
			}
			if p.toks[i].kind != ')' {
				return nil, p.fail(i, "expected value")
			}
			if len(alts) == 0 {
				return nil, p.fail(i, "nothing to match")
			}
			return &Op{Or, alts}, i + 1
		}
		return nil, p.fail(i, "expected key:value")
	}
	return nil, p.fail(i, "expected key:value or subexpression")
}

func (p *parser) matchWord(i, keyOff int, key string) (Node, int) {
	pat := p.toks[i].text
	// Check the pattern alone so errors don't mention the anchors.
	if _, err := regexp.Compile(pat); err != nil {
		return nil, p.fail(i, err.Error())
	}
	re := regexp.MustCompile("^(?:" + pat + ")$")
	return &Match{Off: keyOff, Key: key, pattern: pat, re: re}, i + 1
}
