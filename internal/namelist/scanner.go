package namelist

import (
	"fmt"
	"strings"
)

// SyntaxError reports malformed namelist input.
type SyntaxError struct {
	Line int
	Msg  string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("namelist syntax error on line %d: %s", e.Line, e.Msg)
}

type scanner struct {
	src []byte
	pos int
}

func (s *scanner) eof() bool { return s.pos >= len(s.src) }

func (s *scanner) peek() byte {
	if s.eof() {
		return 0
	}
	return s.src[s.pos]
}

func (s *scanner) errorf(pos int, format string, args ...any) error {
	line := 1 + strings.Count(string(s.src[:min(pos, len(s.src))]), "\n")
	return &SyntaxError{Line: line, Msg: fmt.Sprintf(format, args...)}
}

// skipSpace skips whitespace and '!' comments.
func (s *scanner) skipSpace() {
	for !s.eof() {
		c := s.src[s.pos]
		switch {
		case c == ' ' || c == '\t' || c == '\r' || c == '\n':
			s.pos++
		case c == '!':
			for !s.eof() && s.src[s.pos] != '\n' {
				s.pos++
			}
		default:
			return
		}
	}
}

// skipSeparators skips whitespace, comments and commas.
func (s *scanner) skipSeparators() {
	for {
		s.skipSpace()
		if s.peek() != ',' {
			return
		}
		s.pos++
	}
}

func isNameStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isNameChar(c byte) bool {
	return isNameStart(c) || (c >= '0' && c <= '9') || c == '%'
}

// name reads an identifier at the current position.
func (s *scanner) name() string {
	start := s.pos
	if s.eof() || !isNameStart(s.src[s.pos]) {
		return ""
	}
	for !s.eof() && isNameChar(s.src[s.pos]) {
		s.pos++
	}
	return string(s.src[start:s.pos])
}

// parens reads a balanced "( ... )" suffix such as an array index.
func (s *scanner) parens() (string, error) {
	if s.peek() != '(' {
		return "", nil
	}
	start := s.pos
	depth := 0
	for !s.eof() {
		switch s.src[s.pos] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				s.pos++
				return string(s.src[start:s.pos]), nil
			}
		case '\n':
			return "", s.errorf(start, "unterminated index")
		}
		s.pos++
	}
	return "", s.errorf(start, "unterminated index")
}

// quoted reads a quoted string token, honouring doubled quotes.
func (s *scanner) quoted() error {
	start := s.pos
	quote := s.src[s.pos]
	s.pos++
	for !s.eof() {
		if s.src[s.pos] == quote {
			if s.pos+1 < len(s.src) && s.src[s.pos+1] == quote {
				s.pos += 2
				continue
			}
			s.pos++
			return nil
		}
		s.pos++
	}
	return s.errorf(start, "unterminated string")
}

// atAssignment reports whether an "name [(index)] =" sequence starts at the
// current position. The position is left unchanged.
func (s *scanner) atAssignment() bool {
	save := s.pos
	defer func() { s.pos = save }()
	if s.name() == "" {
		return false
	}
	if _, err := s.parens(); err != nil {
		return false
	}
	for !s.eof() && (s.peek() == ' ' || s.peek() == '\t') {
		s.pos++
	}
	return s.peek() == '=' && !(s.pos+1 < len(s.src) && s.src[s.pos+1] == '=')
}

// atTerminator reports whether the current position ends a group: "/",
// "&end", "$end" or "&" alone.
func (s *scanner) atTerminator() (int, bool) {
	switch s.peek() {
	case '/':
		return 1, true
	case '&', '$':
		rest := strings.ToLower(string(s.src[s.pos+1 : min(s.pos+4, len(s.src))]))
		if rest == "end" && (s.pos+4 >= len(s.src) || !isNameChar(s.src[s.pos+4])) {
			return 4, true
		}
		if s.pos+1 >= len(s.src) || !isNameStart(s.src[s.pos+1]) {
			return 1, true
		}
	}
	return 0, false
}
