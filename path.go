// Package nodepath addresses, mutates and orders locations inside
// yaml.v3 node trees using a compact JSONPath-subset syntax.
//
// A path starts at the root marker '$' and descends through object fields
// (".name", letters only) and array indexes ("[2]"). Indexes may count
// backward from a virtual end-of-array marker: "[#-1]" is the last element
// and "[#]" is the append position one past it. A bare digit sequence such
// as "3" is shorthand for "$[3]".
package nodepath

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	rootMarker   = '$'
	fieldDot     = '.'
	indexOpen    = '['
	indexClose   = ']'
	reverseIndex = '#'
)

// Element is a single path step: either an object field or an array index.
// The zero Element is Field("").
type Element struct {
	key     string
	index   int
	isIndex bool
	fromEnd bool
}

// Field returns an element addressing the object key name.
func Field(name string) Element {
	return Element{key: name}
}

// FromStart returns an element addressing the zero-based array position n.
func FromStart(n int) Element {
	return Element{index: n, isIndex: true}
}

// FromEnd returns an element addressing the array position n places before
// the virtual end marker: FromEnd(1) is the last element, FromEnd(0) the
// append position one past it (valid only for Insert).
func FromEnd(n int) Element {
	return Element{index: n, isIndex: true, fromEnd: true}
}

// IsIndex reports whether the element is an array index.
func (e Element) IsIndex() bool { return e.isIndex }

func (e Element) String() string {
	if !e.isIndex {
		return e.key
	}
	if e.fromEnd {
		if e.index == 0 {
			return "#"
		}
		return "#-" + strconv.Itoa(e.index)
	}
	return strconv.Itoa(e.index)
}

// Path is an immutable root-to-leaf element sequence. The empty Path
// addresses the root value itself. Sub-slices of a Path are valid Paths;
// parent resolution uses them as views without copying.
type Path []Element

// Last returns the final element, if any.
func (p Path) Last() (Element, bool) {
	if len(p) == 0 {
		return Element{}, false
	}
	return p[len(p)-1], true
}

func (p Path) String() string {
	var b strings.Builder
	b.WriteByte(rootMarker)
	for _, e := range p {
		if e.isIndex {
			b.WriteByte(indexOpen)
			b.WriteString(e.String())
			b.WriteByte(indexClose)
		} else {
			b.WriteByte(fieldDot)
			b.WriteString(e.key)
		}
	}
	return b.String()
}

// splitLast separates the parent view from the final element.
func (p Path) splitLast() (rest Path, last Element, ok bool) {
	if len(p) == 0 {
		return nil, Element{}, false
	}
	return p[:len(p)-1], p[len(p)-1], true
}

// scanner is a minimal peekable rune reader over the path source.
type scanner struct {
	src string
	pos int
}

func (s *scanner) peek() (rune, bool) {
	if s.pos >= len(s.src) {
		return 0, false
	}
	r, _ := utf8.DecodeRuneInString(s.src[s.pos:])
	return r, true
}

func (s *scanner) next() (rune, bool) {
	r, ok := s.peek()
	if !ok {
		return 0, false
	}
	s.pos += utf8.RuneLen(r)
	return r, true
}

func (s *scanner) nextIf(pred func(rune) bool) (rune, bool) {
	r, ok := s.peek()
	if !ok || !pred(r) {
		return 0, false
	}
	s.pos += utf8.RuneLen(r)
	return r, true
}

func (s *scanner) nextIfEq(want rune) bool {
	r, ok := s.peek()
	if !ok || r != want {
		return false
	}
	s.pos += utf8.RuneLen(r)
	return true
}

// takeWhile consumes and returns the longest prefix satisfying pred.
func (s *scanner) takeWhile(pred func(rune) bool) string {
	start := s.pos
	for {
		if _, ok := s.nextIf(pred); !ok {
			return s.src[start:s.pos]
		}
	}
}

// parseCount converts a digit run into a non-negative count. Empty or
// unparseable digit runs (including overflow) deliberately yield 0 rather
// than an error; ParsePath documents this leniency.
func parseCount(digits string) int {
	u, err := strconv.ParseUint(digits, 10, 63)
	if err != nil {
		return 0
	}
	return int(u)
}

// ParsePath parses a path expression.
//
// Two leniencies are intentional and kept for compatibility: field scanning
// stops at the first non-letter (so "$.a1" parses as field "a"), and a
// malformed or empty index body defaults to 0 (so "[]" means "[0]").
// Malformed structure fails with ErrSyntax: a leading character other than
// '$' or a digit, an unclosed '[', or any character where '.' or '[' was
// expected.
func ParsePath(s string) (Path, error) {
	sc := &scanner{src: s}

	r, ok := sc.peek()
	switch {
	case ok && r == rootMarker:
		sc.next()
	case ok && unicode.IsDigit(r):
		// Bare digits: shorthand for a root-level array index.
		digits := sc.takeWhile(unicode.IsDigit)
		return Path{FromStart(parseCount(digits))}, nil
	default:
		return nil, fmt.Errorf("%w: expected '$' or digit", ErrSyntax)
	}

	p := Path{}
	for {
		r, ok := sc.next()
		if !ok {
			return p, nil
		}
		switch r {
		case fieldDot:
			name := sc.takeWhile(unicode.IsLetter)
			p = append(p, Field(name))
		case indexOpen:
			fromEnd := sc.nextIfEq(reverseIndex)
			if fromEnd {
				sc.nextIfEq('-')
			}
			digits := sc.takeWhile(unicode.IsDigit)
			if !sc.nextIfEq(indexClose) {
				return nil, fmt.Errorf("%w: expected ']'", ErrSyntax)
			}
			if fromEnd {
				p = append(p, FromEnd(parseCount(digits)))
			} else {
				p = append(p, FromStart(parseCount(digits)))
			}
		default:
			return nil, fmt.Errorf("%w: expected '.' or '['", ErrSyntax)
		}
	}
}

// MustParsePath is ParsePath for statically known expressions; it panics on
// syntax errors.
func MustParsePath(s string) Path {
	p, err := ParsePath(s)
	if err != nil {
		panic(err)
	}
	return p
}
