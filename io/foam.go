package io

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/phil-mansfield/tabular/math/interpolate"
	"github.com/phil-mansfield/tabular/math/mat"
)

// FoamReader reads tables written in OpenFOAM's list syntax:
//
//	fileName "cp.dat";   // optional dictionary entries
//	outOfBounds warn;
//	(
//	    (300 ((1e5 1005) (2e5 1010)))
//	    (400 2((1e5 1010) (2e5 1015)))
//	)
//
// Any list may be preceded by its length, and non-scalar values are written
// as lists of components, e.g. (1e5 (1 0 0)).
type FoamReader struct{}

type tokenKind int

const (
	eofTok tokenKind = iota
	openTok
	closeTok
	endTok
	numTok
	wordTok
	stringTok
)

func (k tokenKind) String() string {
	switch k {
	case eofTok:
		return "the end of the file"
	case openTok:
		return "'('"
	case closeTok:
		return "')'"
	case endTok:
		return "';'"
	case numTok:
		return "a number"
	case wordTok:
		return "a word"
	case stringTok:
		return "a string"
	}
	panic("Impossible")
}

type token struct {
	kind tokenKind
	text string
	num  float64
	line int
}

// lexer splits a stream into tokens. Comments are C++ style.
type lexer struct {
	rd   *bufio.Reader
	line int
	peek *token
	err  error
}

func newLexer(rd io.Reader) *lexer {
	return &lexer{rd: bufio.NewReader(rd), line: 1}
}

func (lx *lexer) read() (byte, bool) {
	if lx.err != nil {
		return 0, false
	}
	c, err := lx.rd.ReadByte()
	if err != nil {
		if err != io.EOF {
			lx.err = err
		}
		return 0, false
	}
	if c == '\n' {
		lx.line++
	}
	return c, true
}

func (lx *lexer) unread(c byte) {
	_ = lx.rd.UnreadByte()
	if c == '\n' {
		lx.line--
	}
}

// skip discards whitespace and comments.
func (lx *lexer) skip() error {
	for {
		bs, _ := lx.rd.Peek(2)
		if len(bs) == 0 {
			return nil
		}

		switch {
		case bs[0] == ' ' || bs[0] == '\t' || bs[0] == '\n' || bs[0] == '\r':
			lx.read()
		case len(bs) == 2 && bs[0] == '/' && bs[1] == '/':
			for c, ok := lx.read(); ok && c != '\n'; c, ok = lx.read() {
			}
		case len(bs) == 2 && bs[0] == '/' && bs[1] == '*':
			start := lx.line
			lx.read()
			lx.read()
			for prev := byte(0); ; {
				c, ok := lx.read()
				if !ok {
					return fmt.Errorf(
						"The comment opened on line %d is never closed.", start,
					)
				}
				if prev == '*' && c == '/' {
					break
				}
				prev = c
			}
		default:
			return nil
		}
	}
}

func isDelim(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '(', ')', ';', '"':
		return true
	}
	return false
}

func (lx *lexer) scan() (token, error) {
	if err := lx.skip(); err != nil {
		return token{}, err
	}
	line := lx.line
	c, ok := lx.read()
	if !ok {
		return token{kind: eofTok, line: line}, lx.err
	}

	switch c {
	case '(':
		return token{kind: openTok, text: "(", line: line}, nil
	case ')':
		return token{kind: closeTok, text: ")", line: line}, nil
	case ';':
		return token{kind: endTok, text: ";", line: line}, nil
	case '"':
		sb := &strings.Builder{}
		for {
			c, ok = lx.read()
			if !ok {
				return token{}, fmt.Errorf(
					"The string started on line %d is never closed.", line,
				)
			}
			if c == '"' {
				break
			}
			sb.WriteByte(c)
		}
		return token{kind: stringTok, text: sb.String(), line: line}, nil
	}

	sb := &strings.Builder{}
	for ok && !isDelim(c) {
		sb.WriteByte(c)
		c, ok = lx.read()
	}
	if ok {
		lx.unread(c)
	}

	text := sb.String()
	if x, err := strconv.ParseFloat(text, 64); err == nil {
		return token{kind: numTok, text: text, num: x, line: line}, nil
	}
	return token{kind: wordTok, text: text, line: line}, nil
}

// Next returns the next token.
func (lx *lexer) Next() (token, error) {
	if lx.peek != nil {
		tok := *lx.peek
		lx.peek = nil
		return tok, nil
	}
	return lx.scan()
}

// Peek returns the next token without consuming it.
func (lx *lexer) Peek() (token, error) {
	if lx.peek == nil {
		tok, err := lx.scan()
		if err != nil {
			return tok, err
		}
		lx.peek = &tok
	}
	return *lx.peek, nil
}

func unexpected(tok token, want string) error {
	found := tok.text
	if tok.kind == eofTok {
		found = "the end of the file"
	} else {
		found = "'" + found + "'"
	}
	return fmt.Errorf(
		"I could not parse line %d of the table because I expected %s, "+
			"but found %s.", tok.line, want, found,
	)
}

func (lx *lexer) expect(kind tokenKind) (token, error) {
	tok, err := lx.Next()
	if err != nil {
		return tok, err
	}
	if tok.kind != kind {
		return tok, unexpected(tok, kind.String())
	}
	return tok, nil
}

// openList consumes an optional list length and the '(' after it. The length
// is -1 if there wasn't one.
func (lx *lexer) openList() (int, error) {
	tok, err := lx.Next()
	if err != nil {
		return -1, err
	}
	switch tok.kind {
	case openTok:
		return -1, nil
	case numTok:
		n, err := strconv.Atoi(tok.text)
		if err != nil || n < 0 {
			return -1, unexpected(tok, "a list length")
		}
		if _, err := lx.expect(openTok); err != nil {
			return -1, err
		}
		return n, nil
	}
	return -1, unexpected(tok, "a list")
}

// list calls elem for every element of a list, stopping at its ')'.
func (lx *lexer) list(elem func() error) error {
	start := lx.line
	n, err := lx.openList()
	if err != nil {
		return err
	}
	return lx.elements(n, start, elem)
}

// elements calls elem for the elements of a list whose '(' has already been
// read. n is the length the list claims to have, or -1.
func (lx *lexer) elements(n, start int, elem func() error) error {
	count := 0
	for {
		tok, err := lx.Peek()
		if err != nil {
			return err
		}
		if tok.kind == closeTok {
			lx.Next()
			break
		}
		if err := elem(); err != nil {
			return err
		}
		count++
	}

	if n >= 0 && n != count {
		return fmt.Errorf(
			"The list starting on line %d says it has %d elements, but "+
				"it has %d.", start, n, count,
		)
	}
	return nil
}

func (lx *lexer) number() (float64, error) {
	tok, err := lx.expect(numTok)
	return tok.num, err
}

// value reads a scalar or a list of components.
func (lx *lexer) value() ([]float64, error) {
	tok, err := lx.Next()
	if err != nil {
		return nil, err
	}

	n := -1
	switch tok.kind {
	case openTok:
	case numTok:
		next, err := lx.Peek()
		if err != nil {
			return nil, err
		}
		if next.kind != openTok {
			return []float64{tok.num}, nil
		}
		n, err = strconv.Atoi(tok.text)
		if err != nil || n < 0 {
			return nil, unexpected(tok, "a list length")
		}
		lx.Next()
	default:
		return nil, unexpected(tok, "a value")
	}

	var out []float64
	err = lx.elements(n, tok.line, func() error {
		x, err := lx.number()
		out = append(out, x)
		return err
	})
	return out, err
}

func (lx *lexer) column() (RawColumn, error) {
	col := RawColumn{}
	if _, err := lx.expect(openTok); err != nil {
		return col, err
	}
	var err error
	if col.Y, err = lx.number(); err != nil {
		return col, err
	}
	if col.Val, err = lx.value(); err != nil {
		return col, err
	}
	_, err = lx.expect(closeTok)
	return col, err
}

func (lx *lexer) row() (RawRow, error) {
	row := RawRow{}
	if _, err := lx.expect(openTok); err != nil {
		return row, err
	}
	var err error
	if row.X, err = lx.number(); err != nil {
		return row, err
	}
	err = lx.list(func() error {
		col, err := lx.column()
		row.Cols = append(row.Cols, col)
		return err
	})
	if err != nil {
		return row, err
	}
	_, err = lx.expect(closeTok)
	return row, err
}

// entry reads the value of a dictionary entry up to its ';'.
func (lx *lexer) entry() (string, error) {
	var words []string
	for {
		tok, err := lx.Next()
		if err != nil {
			return "", err
		}
		switch tok.kind {
		case endTok:
			return strings.Join(words, " "), nil
		case numTok, wordTok, stringTok:
			words = append(words, tok.text)
		default:
			return "", unexpected(tok, "';'")
		}
	}
}

// ReadTable reads a table in OpenFOAM's list syntax.
func (r *FoamReader) ReadTable(rd io.Reader) (*RawTable, error) {
	lx := newLexer(rd)
	raw := &RawTable{Header: map[string]interface{}{}}

	for {
		tok, err := lx.Peek()
		if err != nil {
			return nil, err
		}
		if tok.kind != wordTok {
			break
		}
		lx.Next()
		val, err := lx.entry()
		if err != nil {
			return nil, err
		}
		raw.Header[tok.text] = val
	}

	err := lx.list(func() error {
		row, err := lx.row()
		raw.Rows = append(raw.Rows, row)
		return err
	})
	if err != nil {
		return nil, err
	}

	tok, err := lx.Next()
	if err != nil {
		return nil, err
	}
	if tok.kind == endTok {
		tok, err = lx.Next()
		if err != nil {
			return nil, err
		}
	}
	if tok.kind != eofTok {
		return nil, unexpected(tok, "the end of the file")
	}

	return raw, nil
}

func formatFloat(x float64) string {
	return strconv.FormatFloat(x, 'g', -1, 64)
}

// WriteDict writes t as a dictionary: its fileName and outOfBounds entries
// followed by its rows in OpenFOAM's list syntax. Vector and tensor values
// are written as lists of components.
func WriteDict[T any](
	wr io.Writer, t *interpolate.Table[T], space mat.Space[T],
) error {
	return writeFoam(wr, Encode(t, space), space.Len() == 1)
}

func writeFoam(wr io.Writer, raw *RawTable, scalar bool) error {
	w := bufio.NewWriter(wr)

	keys := make([]string, 0, len(raw.Header))
	for key := range raw.Header {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		return headerRank(keys[i]) < headerRank(keys[j]) ||
			(headerRank(keys[i]) == headerRank(keys[j]) && keys[i] < keys[j])
	})
	for _, key := range keys {
		val := fmt.Sprint(raw.Header[key])
		if key == "fileName" {
			val = strconv.Quote(val)
		}
		fmt.Fprintf(w, "%-12s%s;\n", key, val)
	}
	if len(keys) > 0 {
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "%d\n(\n", len(raw.Rows))
	for _, row := range raw.Rows {
		fmt.Fprintf(w, "    (%s\n        %d\n        (\n",
			formatFloat(row.X), len(row.Cols))
		for _, col := range row.Cols {
			fmt.Fprintf(w, "            (%s %s)\n",
				formatFloat(col.Y), formatValue(col.Val, scalar))
		}
		fmt.Fprint(w, "        )\n    )\n")
	}
	fmt.Fprint(w, ")\n")

	return w.Flush()
}

func headerRank(key string) int {
	switch key {
	case "fileName":
		return 0
	case "outOfBounds":
		return 1
	}
	return 2
}

func formatValue(val []float64, scalar bool) string {
	if scalar && len(val) == 1 {
		return formatFloat(val[0])
	}
	toks := make([]string, len(val))
	for i := range val {
		toks[i] = formatFloat(val[i])
	}
	return "(" + strings.Join(toks, " ") + ")"
}
