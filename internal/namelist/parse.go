package namelist

import (
	"strconv"
	"strings"

	"github.com/zclconf/go-cty/cty"
)

// Kind classifies the literal written for a namelist value.
type Kind int

const (
	KindUnknown Kind = iota
	KindString
	KindLogical
	KindInteger
	KindReal
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindLogical:
		return "logical"
	case KindInteger:
		return "integer"
	case KindReal:
		return "real"
	}
	return "unknown"
}

// Entry is one "name = values" assignment.
type Entry struct {
	Name   string
	Index  string // array section such as "(1)", empty for whole variables
	Tokens []string
	Kind   Kind // kind of the first value token

	// Start and End delimit the value text in the source.
	Start, End int
}

// Group is one "&name ... /" block.
type Group struct {
	Name    string
	Start   int // offset of the leading '&' or '$'
	End     int // offset of the terminator
	Entries []*Entry
}

// File is a parsed namelist file. It keeps the source so it can be patched.
type File struct {
	src    []byte
	Groups []*Group
}

// Parse reads every group in src. Text outside groups is ignored.
func Parse(src []byte) (*File, error) {
	s := &scanner{src: src}
	f := &File{src: src}
	for {
		s.skipSpace()
		if s.eof() {
			return f, nil
		}
		c := s.peek()
		if c != '&' && c != '$' {
			// free text between groups
			for !s.eof() && s.src[s.pos] != '\n' {
				s.pos++
			}
			continue
		}
		g, err := parseGroup(s)
		if err != nil {
			return nil, err
		}
		f.Groups = append(f.Groups, g)
	}
}

func parseGroup(s *scanner) (*Group, error) {
	g := &Group{Start: s.pos}
	s.pos++
	g.Name = s.name()
	if g.Name == "" || strings.EqualFold(g.Name, "end") {
		return nil, s.errorf(g.Start, "expected group name")
	}
	for {
		s.skipSeparators()
		if s.eof() {
			return nil, s.errorf(g.Start, "group %s is not terminated", g.Name)
		}
		if n, ok := s.atTerminator(); ok {
			g.End = s.pos
			s.pos += n
			return g, nil
		}
		e, err := parseEntry(s)
		if err != nil {
			return nil, err
		}
		g.Entries = append(g.Entries, e)
	}
}

func parseEntry(s *scanner) (*Entry, error) {
	keyStart := s.pos
	e := &Entry{Name: s.name()}
	if e.Name == "" {
		return nil, s.errorf(keyStart, "expected variable name, found %q", s.peek())
	}
	index, err := s.parens()
	if err != nil {
		return nil, err
	}
	e.Index = index
	for !s.eof() && (s.peek() == ' ' || s.peek() == '\t') {
		s.pos++
	}
	if s.peek() != '=' {
		return nil, s.errorf(keyStart, "expected '=' after %s", e.Name)
	}
	s.pos++
	e.Start, e.End = s.pos, s.pos

	first := true
	for {
		s.skipSeparators()
		if s.eof() {
			break
		}
		if _, ok := s.atTerminator(); ok || s.atAssignment() {
			break
		}
		start := s.pos
		if err := s.valueToken(); err != nil {
			return nil, err
		}
		if first {
			e.Start = start
			first = false
		}
		e.End = s.pos
		e.Tokens = append(e.Tokens, string(s.src[start:s.pos]))
	}
	if len(e.Tokens) > 0 {
		e.Kind = classify(e.Tokens[0])
	}
	return e, nil
}

// valueToken consumes one value, including an optional "r*" repeat prefix.
func (s *scanner) valueToken() error {
	for !s.eof() {
		c := s.src[s.pos]
		switch {
		case c == '\'' || c == '"':
			if err := s.quoted(); err != nil {
				return err
			}
		case c == ' ' || c == '\t' || c == '\r' || c == '\n' || c == ',' || c == '/' || c == '!':
			return nil
		default:
			s.pos++
		}
	}
	return nil
}

// splitRepeat separates "3*1.0" into 3 and "1.0".
func splitRepeat(tok string) (int, string) {
	if tok == "" || tok[0] == '\'' || tok[0] == '"' {
		return 1, tok
	}
	i := strings.IndexByte(tok, '*')
	if i <= 0 {
		return 1, tok
	}
	n, err := strconv.Atoi(tok[:i])
	if err != nil || n < 1 {
		return 1, tok
	}
	return n, tok[i+1:]
}

func classify(tok string) Kind {
	_, tok = splitRepeat(tok)
	if tok == "" {
		return KindUnknown
	}
	if tok[0] == '\'' || tok[0] == '"' {
		return KindString
	}
	if _, ok := parseLogical(tok); ok {
		return KindLogical
	}
	if _, err := strconv.ParseInt(tok, 10, 64); err == nil {
		return KindInteger
	}
	if _, err := parseReal(tok); err == nil {
		return KindReal
	}
	return KindUnknown
}

func parseLogical(tok string) (bool, bool) {
	t := strings.ToLower(tok)
	t = strings.TrimPrefix(t, ".")
	switch {
	case t == "t" || strings.HasPrefix(t, "t.") || t == "true" || strings.HasPrefix(t, "true."):
		return true, true
	case t == "f" || strings.HasPrefix(t, "f.") || t == "false" || strings.HasPrefix(t, "false."):
		return false, true
	}
	return false, false
}

func parseReal(tok string) (float64, error) {
	return strconv.ParseFloat(strings.NewReplacer("d", "e", "D", "e").Replace(tok), 64)
}

func unquote(tok string) string {
	quote := tok[:1]
	body := tok[1 : len(tok)-1]
	return strings.ReplaceAll(body, quote+quote, quote)
}

func tokenValue(tok string) cty.Value {
	switch classify(tok) {
	case KindString:
		return cty.StringVal(unquote(tok))
	case KindLogical:
		b, _ := parseLogical(tok)
		return cty.BoolVal(b)
	case KindInteger:
		n, _ := strconv.ParseInt(tok, 10, 64)
		return cty.NumberIntVal(n)
	case KindReal:
		f, _ := parseReal(tok)
		return cty.NumberFloatVal(f)
	}
	return cty.StringVal(tok)
}

// Value decodes the entry. A single value yields a scalar, several values
// (after expanding repeat counts) a tuple. An empty assignment is null.
func (e *Entry) Value() cty.Value {
	var values []cty.Value
	for _, tok := range e.Tokens {
		n, lit := splitRepeat(tok)
		v := tokenValue(lit)
		for i := 0; i < n; i++ {
			values = append(values, v)
		}
	}
	switch len(values) {
	case 0:
		return cty.NullVal(cty.DynamicPseudoType)
	case 1:
		return values[0]
	}
	return cty.TupleVal(values)
}

// Group returns the first group called name, or nil.
func (f *File) Group(name string) *Group {
	for _, g := range f.Groups {
		if strings.EqualFold(g.Name, name) {
			return g
		}
	}
	return nil
}

// Lookup returns every whole-variable assignment of key in the group.
func (g *Group) Lookup(key string) []*Entry {
	var entries []*Entry
	for _, e := range g.Entries {
		if e.Index == "" && strings.EqualFold(e.Name, key) {
			entries = append(entries, e)
		}
	}
	return entries
}

// Get returns the value of the last whole-variable assignment of key in
// group, and whether one exists.
func (f *File) Get(group, key string) (cty.Value, bool) {
	g := f.Group(group)
	if g == nil {
		return cty.NilVal, false
	}
	entries := g.Lookup(key)
	if len(entries) == 0 {
		return cty.NilVal, false
	}
	return entries[len(entries)-1].Value(), true
}
