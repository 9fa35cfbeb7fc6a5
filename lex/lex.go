// Package lex turns Cirno source text into a singly-linked list of
// Lexemes, splicing #include directives into the stream as it goes.
//
// The scanning loop is a hand-rolled byte-at-a-time classifier: no
// text/scanner here, because Cirno's lexemes carry payload kinds
// (int/float/ident/string) that need to survive as a linked list the
// parser consumes destructively, not a channel of tokens.
package lex

import (
	"github.com/vv4t/cirno/diag"
	"github.com/vv4t/cirno/internal/source"
)

// Lexeme is a single token with its source location and optional payload.
type Lexeme struct {
	Kind  Kind
	Path  string
	Line  int
	Ival  int32
	Fval  float32
	Ident string
	Str   string
	Next  *Lexeme
}

// Lexer turns a *source.Set into a Lexeme stream, reporting lexical
// errors (unterminated strings, unrecognized bytes) into Diags.
type Lexer struct {
	Diags *diag.List

	set  *source.Set
	buf  []byte
	path string
	pos  int
	line int
}

// New creates a Lexer that reads files through set; the entry file is
// given to Lex. Diagnostics are collected into diags.
func New(set *source.Set, diags *diag.List) *Lexer {
	return &Lexer{Diags: diags, set: set}
}

// Lex tokenizes path (and, transitively, every file it #includes at most
// once) and returns the head of the Lexeme list, terminated by an EOF
// Lexeme. On a read failure for the entry file it returns a non-nil error;
// lexical errors for included/root text are reported into Diags and
// tokenizing continues (matching the source's "skip and warn" policy for
// unrecognized bytes).
func (lx *Lexer) Lex(path string) (*Lexeme, error) {
	buf, err := lx.set.Load(path)
	if err != nil {
		return nil, err
	}

	var head, tail *Lexeme
	emit := func(l *Lexeme) {
		if head == nil {
			head = l
		} else {
			tail.Next = l
		}
		tail = l
	}

	lx.scanFile(path, buf, emit)

	emit(&Lexeme{Kind: EOF, Path: path, Line: lx.line})
	return head, nil
}

func (lx *Lexer) scanFile(path string, buf []byte, emit func(*Lexeme)) {
	saveBuf, savePath, savePos, saveLine := lx.buf, lx.path, lx.pos, lx.line
	lx.buf, lx.path, lx.pos, lx.line = buf, path, 0, 1
	defer func() { lx.buf, lx.path, lx.pos, lx.line = saveBuf, savePath, savePos, saveLine }()

	for {
		lx.skipSpace()
		if lx.pos >= len(lx.buf) {
			return
		}

		c := lx.buf[lx.pos]
		switch {
		case c == '#':
			lx.scanDirective(emit)
		case isDigit(c):
			emit(lx.scanNumber())
		case isIdentStart(c):
			emit(lx.scanIdentOrKeyword())
		case c == '"':
			emit(lx.scanString())
		default:
			if l, ok := lx.scanOperator(); ok {
				emit(l)
			} else {
				lx.Diags.Warnf(lx.path, lx.line, "unrecognized character %q skipped", c)
				lx.pos++
			}
		}
	}
}

func (lx *Lexer) skipSpace() {
	for lx.pos < len(lx.buf) {
		switch lx.buf[lx.pos] {
		case '\n':
			lx.line++
			lx.pos++
		case ' ', '\t', '\r':
			lx.pos++
		default:
			return
		}
	}
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
func isIdentCont(c byte) bool { return isIdentStart(c) || isDigit(c) }

func (lx *Lexer) scanNumber() *Lexeme {
	start := lx.pos
	line := lx.line
	for lx.pos < len(lx.buf) && isDigit(lx.buf[lx.pos]) {
		lx.pos++
	}
	isFloat := false
	if lx.pos+1 < len(lx.buf) && lx.buf[lx.pos] == '.' && isDigit(lx.buf[lx.pos+1]) {
		isFloat = true
		lx.pos++
		for lx.pos < len(lx.buf) && isDigit(lx.buf[lx.pos]) {
			lx.pos++
		}
	}
	text := string(lx.buf[start:lx.pos])
	if isFloat {
		f := parseFloat(text)
		return &Lexeme{Kind: ConstFloat, Path: lx.path, Line: line, Fval: f}
	}
	return &Lexeme{Kind: ConstInteger, Path: lx.path, Line: line, Ival: parseInt(text)}
}

func (lx *Lexer) scanIdentOrKeyword() *Lexeme {
	start := lx.pos
	line := lx.line
	for lx.pos < len(lx.buf) && isIdentCont(lx.buf[lx.pos]) {
		lx.pos++
	}
	text := string(lx.buf[start:lx.pos])
	if kind, ok := keywords[text]; ok {
		return &Lexeme{Kind: kind, Path: lx.path, Line: line, Ident: text}
	}
	return &Lexeme{Kind: Identifier, Path: lx.path, Line: line, Ident: text}
}

func (lx *Lexer) scanString() *Lexeme {
	line := lx.line
	lx.pos++ // opening quote
	var out []byte
	for {
		if lx.pos >= len(lx.buf) {
			lx.Diags.Errorf(lx.path, line, "unterminated string literal")
			break
		}
		c := lx.buf[lx.pos]
		if c == '"' {
			lx.pos++
			break
		}
		if c == '\n' {
			lx.Diags.Errorf(lx.path, line, "unterminated string literal")
			break
		}
		if c == '\\' && lx.pos+1 < len(lx.buf) {
			lx.pos++
			out = append(out, unescape(lx.buf[lx.pos]))
			lx.pos++
			continue
		}
		out = append(out, c)
		lx.pos++
	}
	return &Lexeme{Kind: ConstString, Path: lx.path, Line: line, Str: string(out)}
}

func unescape(c byte) byte {
	switch c {
	case 'n':
		return '\n'
	case 't':
		return '\t'
	case '"':
		return '"'
	case '\\':
		return '\\'
	default:
		return c
	}
}

func (lx *Lexer) scanOperator() (*Lexeme, bool) {
	line := lx.line
	rest := lx.buf[lx.pos:]
	for _, op := range operators {
		if len(rest) >= len(op.text) && string(rest[:len(op.text)]) == op.text {
			lx.pos += len(op.text)
			return &Lexeme{Kind: op.kind, Path: lx.path, Line: line}, true
		}
	}
	return nil, false
}

// scanDirective handles `#include "path"`; any other `#...` line is a
// lexical warning and is skipped to end of line.
func (lx *Lexer) scanDirective(emit func(*Lexeme)) {
	line := lx.line
	start := lx.pos
	for lx.pos < len(lx.buf) && lx.buf[lx.pos] != '\n' {
		lx.pos++
	}
	directive := string(lx.buf[start:lx.pos])
	const prefix = "#include"
	if !hasPrefix(directive, prefix) {
		lx.Diags.Warnf(lx.path, line, "unrecognized preprocessor directive skipped")
		return
	}
	rest := directive[len(prefix):]
	path, ok := extractQuoted(rest)
	if !ok {
		lx.Diags.Errorf(lx.path, line, "expected quoted path after #include")
		return
	}

	resolved, buf, isNew, err := lx.set.Include(lx.path, path)
	if err != nil {
		lx.Diags.Errorf(lx.path, line, "could not include %q: %v", path, err)
		return
	}
	if !isNew {
		return // already included once: a silent no-op, breaking cycles
	}
	lx.scanFile(resolved, buf, emit)
}

func hasPrefix(s, p string) bool { return len(s) >= len(p) && s[:len(p)] == p }

func extractQuoted(s string) (string, bool) {
	i := 0
	for i < len(s) && (s[i] == ' ' || s[i] == '\t') {
		i++
	}
	if i >= len(s) || s[i] != '"' {
		return "", false
	}
	i++
	start := i
	for i < len(s) && s[i] != '"' {
		i++
	}
	if i >= len(s) {
		return "", false
	}
	return s[start:i], true
}

func parseInt(s string) int32 {
	var v int32
	for i := 0; i < len(s); i++ {
		v = v*10 + int32(s[i]-'0')
	}
	return v
}

func parseFloat(s string) float32 {
	var intPart, fracPart int64
	var fracDigits int
	i := 0
	for ; i < len(s) && s[i] != '.'; i++ {
		intPart = intPart*10 + int64(s[i]-'0')
	}
	if i < len(s) && s[i] == '.' {
		i++
		for ; i < len(s); i++ {
			fracPart = fracPart*10 + int64(s[i]-'0')
			fracDigits++
		}
	}
	f := float64(intPart)
	if fracDigits > 0 {
		div := 1.0
		for k := 0; k < fracDigits; k++ {
			div *= 10
		}
		f += float64(fracPart) / div
	}
	return float32(f)
}
