// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package query parses boolean key/value queries over report records.
//
// Syntax:
//
//	expr    = andExpr {"OR" andExpr} .
//	andExpr = phrase {"AND" phrase} .
//	phrase  = match {match} .
//	match   = "(" expr ")"
//	        | "-" match
//	        | "*"
//	        | word ":" (word | "(" {word} ")") .
//	word    = [^ ():]* | "\"" [^"]* "\""
//
// The value side of a match is a regular expression anchored at both
// ends.
package query

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// A Node is a node of a parsed query: either an *Op or a *Match.
type Node interface {
	String() string
	node()
}

// OpKind is a boolean operator.
type OpKind int

const (
	And OpKind = 1 + iota
	Or
	Not
)

// An Op combines its operands. Not has exactly one operand. An And
// with no operands is true and an Or with no operands is false.
type Op struct {
	Kind OpKind
	Args []Node
}

func (*Op) node() {}

func (o *Op) String() string {
	if o.Kind == Not {
		return "-" + o.Args[0].String()
	}
	if o.Kind == And && len(o.Args) == 0 {
		return "*"
	}
	sep := " AND "
	if o.Kind == Or {
		sep = " OR "
	}
	parts := make([]string, len(o.Args))
	for i, a := range o.Args {
		parts[i] = a.String()
	}
	return "(" + strings.Join(parts, sep) + ")"
}

// A Match tests the value of one key.
type Match struct {
	Off int // Byte offset of Key in the query
	Key string

	pattern string
	re      *regexp.Regexp
}

func (*Match) node() {}

func (m *Match) String() string {
	return quote(m.Key) + ":" + quote(m.pattern)
}

// Match reports whether val matches m's pattern.
func (m *Match) Match(val string) bool {
	return m.re.MatchString(val)
}

func quote(s string) string {
	if strings.ContainsAny(s, `"():`) || strings.IndexFunc(s, unicode.IsSpace) >= 0 {
		return strconv.Quote(s)
	}
	return s
}

// SyntaxError is a malformed query.
type SyntaxError struct {
	Query string
	Off   int // Byte offset of the error in Query
	Msg   string
}

func (e *SyntaxError) Error() string {
	col := 0
	for i, r := range e.Query {
		if i >= e.Off {
			break
		}
		if unicode.IsGraphic(r) {
			col++
		}
	}
	return fmt.Sprintf("syntax error: %s\n\t%s\n\t%*s^", e.Msg, e.Query, col, "")
}

// Walk calls f on every Match in n.
func Walk(n Node, f func(*Match) error) error {
	switch n := n.(type) {
	case *Op:
		for _, a := range n.Args {
			if err := Walk(a, f); err != nil {
				return err
			}
		}
	case *Match:
		return f(n)
	}
	return nil
}
