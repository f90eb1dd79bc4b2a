package token

import (
	"bytes"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Tokenize scans a complete KDL source into a token slice ending with a
// TEOF token. A leading byte order mark is skipped; one anywhere else is
// an error.
func Tokenize(d []byte) ([]Token, error) {
	s := &scanner{d: d, doc: &PosDoc{d: d}, ready: true}
	if bytes.HasPrefix(d, []byte{0xef, 0xbb, 0xbf}) {
		s.i = 3
	}
	for s.i < len(s.d) {
		if err := s.next(); err != nil {
			return nil, err
		}
	}
	s.push(TEOF, s.i, 0)
	return s.toks, nil
}

type scanner struct {
	d    []byte
	i    int
	doc  *PosDoc
	toks []Token

	// ready records whether a new value may begin at the cursor; two
	// values must be separated by node space, so `1"x"` is an error.
	ready bool
}

func (s *scanner) pos(start, n int) *Pos {
	return &Pos{I: start, Len: n, D: s.doc}
}

func (s *scanner) push(t TokenType, start, n int) {
	s.toks = append(s.toks, Token{Type: t, Pos: s.pos(start, n)})
}

func (s *scanner) pushStr(t TokenType, start int, v string) {
	s.toks = append(s.toks, Token{Type: t, Pos: s.pos(start, s.i-start), Str: v})
}

func (s *scanner) errAt(err error, start int) error {
	n := s.i - start
	if n <= 0 {
		n = 1
	}
	return NewTokenizeErr(err, s.pos(start, n))
}

func (s *scanner) rune() (rune, int) {
	return utf8.DecodeRune(s.d[s.i:])
}

// consumeNewline advances past the newline rune beginning at s.i, merging
// \r\n into one line break, and records it for line/column mapping.
func (s *scanner) consumeNewline(r rune, size int) {
	if r == '\r' && s.i+1 < len(s.d) && s.d[s.i+1] == '\n' {
		s.doc.nl(s.i + 1)
		s.i += 2
		return
	}
	s.doc.nl(s.i + size - 1)
	s.i += size
}

// skipSpaceRun consumes whitespace, newlines included.
func (s *scanner) skipSpaceRun() {
	for s.i < len(s.d) {
		r, size := s.rune()
		if IsNewline(r) {
			s.consumeNewline(r, size)
			continue
		}
		if !unicode.IsSpace(r) {
			return
		}
		s.i += size
	}
}

// postValueChar reports whether r may directly follow a value without
// intervening node space.
func postValueChar(r rune) bool {
	if unicode.IsSpace(r) || IsNewline(r) {
		return true
	}
	switch r {
	case '\\', '/', ')', '}', ';', '[', ']', '=':
		return true
	}
	return false
}

func signedNumberStart(d []byte) bool {
	if len(d) < 2 || (d[0] != '+' && d[0] != '-') {
		return false
	}
	if asciiDigit(d[1]) {
		return true
	}
	return d[1] == '.' && len(d) > 2 && asciiDigit(d[2])
}

func (s *scanner) next() error {
	start := s.i
	r, size := s.rune()
	if r == utf8.RuneError && size == 1 {
		return s.errAt(ErrDisallowedChar, start)
	}
	if IsDisallowed(r) {
		return s.errAt(ErrDisallowedChar, start)
	}
	if !s.ready && !postValueChar(r) {
		return s.errAt(fmt.Errorf("%w: expected whitespace after value", ErrUnexpectedChar), start)
	}
	if IsNewline(r) {
		s.consumeNewline(r, size)
		s.push(TNewline, start, s.i-start)
		s.ready = true
		return nil
	}
	if r == '\\' {
		return s.lineContinuation(start)
	}
	if r == 0xfeff {
		return s.errAt(ErrDisallowedChar, start)
	}
	if unicode.IsSpace(r) {
		s.i += size
		s.ready = true
		return nil
	}
	switch r {
	case '{':
		s.i++
		s.push(TLBrace, start, 1)
		s.ready = true
		return nil
	case '}':
		s.i++
		s.push(TRBrace, start, 1)
		s.ready = false
		return nil
	case '=':
		s.i++
		s.push(TEquals, start, 1)
		s.ready = true
		return nil
	case ';':
		s.i++
		s.push(TSemicolon, start, 1)
		s.ready = true
		return nil
	case '(':
		s.i++
		s.push(TLParen, start, 1)
		s.ready = true
		return nil
	case ')':
		s.i++
		s.ready = true
		return s.closeParen(start)
	case '#':
		return s.hash(start)
	case '/':
		return s.slash(start)
	case '"':
		if bytes.HasPrefix(s.d[s.i:], []byte(`"""`)) {
			return s.blockString(start, 0, false)
		}
		return s.quotedString(start)
	}
	if (r >= '0' && r <= '9') || signedNumberStart(s.d[s.i:]) {
		return s.number(start)
	}
	if identChar(r) {
		return s.identifier(start)
	}
	return s.errAt(ErrUnexpectedChar, start)
}

// lineContinuation handles a backslash that joins two physical lines:
// whitespace and a trailing // comment may precede the newline, which is
// swallowed along with the backslash.
func (s *scanner) lineContinuation(start int) error {
	s.i++
	sawNewline := false
	inComment := false
	for s.i < len(s.d) {
		r, size := s.rune()
		if IsNewline(r) {
			s.consumeNewline(r, size)
			sawNewline = true
			break
		}
		if inComment || unicode.IsSpace(r) {
			s.i += size
			continue
		}
		if bytes.HasPrefix(s.d[s.i:], []byte("//")) {
			inComment = true
			s.i += 2
			continue
		}
		break
	}
	if !sawNewline && s.i < len(s.d) {
		return s.errAt(fmt.Errorf("%w: line continuation must end its line", ErrUnexpectedChar), start)
	}
	return nil
}

// closeParen folds a (name) token pair into a single TTag. The name must
// be a string or identifier, so (1) and () are rejected.
func (s *scanner) closeParen(start int) error {
	n := len(s.toks)
	switch {
	case n >= 2 && s.toks[n-2].Type == TLParen:
		name := s.toks[n-1]
		if name.Type != TString {
			return s.errAt(fmt.Errorf("%w: invalid type annotation", ErrUnexpectedChar), start)
		}
		s.toks = s.toks[:n-2]
		s.toks = append(s.toks, Token{Type: TTag, Pos: name.Pos, Str: name.Str})
	case n >= 1 && s.toks[n-1].Type == TLParen:
		return s.errAt(fmt.Errorf("%w: empty type annotation", ErrUnexpectedChar), start)
	default:
		s.push(TRParen, start, 1)
	}
	return nil
}

var hashKeywords = []string{"true", "false", "null", "-inf", "inf", "nan"}

func (s *scanner) hash(start int) error {
	rest := s.d[s.i+1:]
	for _, kw := range hashKeywords {
		if bytes.HasPrefix(rest, []byte(kw)) {
			s.i += 1 + len(kw)
			s.pushStr(TKeyword, start, kw)
			s.ready = false
			return nil
		}
	}
	hashes := 0
	for s.i+hashes < len(s.d) && s.d[s.i+hashes] == '#' {
		hashes++
	}
	j := s.i + hashes
	if bytes.HasPrefix(s.d[j:], []byte(`"""`)) {
		s.i = j
		return s.blockString(start, hashes, true)
	}
	if j < len(s.d) && s.d[j] == '"' {
		s.i = j
		return s.rawString(start, hashes)
	}
	return s.errAt(ErrUnexpectedChar, start)
}

func (s *scanner) slash(start int) error {
	if bytes.HasPrefix(s.d[s.i:], []byte("//")) {
		s.i += 2
		for s.i < len(s.d) {
			r, size := s.rune()
			if IsNewline(r) {
				break
			}
			s.i += size
		}
		s.ready = true
		return nil
	}
	if bytes.HasPrefix(s.d[s.i:], []byte("/*")) {
		s.i += 2
		depth := 1
		for s.i < len(s.d) {
			if bytes.HasPrefix(s.d[s.i:], []byte("*/")) {
				s.i += 2
				depth--
				if depth == 0 {
					s.ready = true
					return nil
				}
				continue
			}
			if bytes.HasPrefix(s.d[s.i:], []byte("/*")) {
				s.i += 2
				depth++
				continue
			}
			r, size := s.rune()
			if IsNewline(r) {
				s.consumeNewline(r, size)
				continue
			}
			s.i += size
		}
		return s.errAt(ErrUnterminatedComment, start)
	}
	if bytes.HasPrefix(s.d[s.i:], []byte("/-")) {
		s.i += 2
		s.push(TSlashdash, start, 2)
		s.ready = true
		return nil
	}
	return s.errAt(ErrUnexpectedChar, start)
}

func (s *scanner) number(start int) error {
	d := s.d[s.i:]
	j := 0
	if d[0] == '+' || d[0] == '-' {
		j = 1
	}
	var num *Number
	if len(d) > j+1 && d[j] == '0' && (d[j+1] == 'x' || d[j+1] == 'o' || d[j+1] == 'b') {
		var digit func(byte) bool
		var base int
		switch d[j+1] {
		case 'x':
			digit, base = hexDigit, 16
		case 'o':
			digit, base = octDigit, 8
		case 'b':
			digit, base = binDigit, 2
		}
		n, err := scanPrefixed(d[j+2:], digit)
		if err != nil {
			return s.errAt(ErrMalformedNumber, start)
		}
		num = decodeInt(string(d[:j])+string(d[j+2:j+2+n]), base)
		s.i += j + 2 + n
	} else {
		n, isFloat, err := scanDecimal(d)
		if err != nil {
			return s.errAt(ErrMalformedNumber, start)
		}
		text := string(d[:n])
		if isFloat {
			num, err = decodeFloat(text)
			if err != nil {
				return s.errAt(ErrMalformedNumber, start)
			}
		} else {
			num = decodeInt(text, 10)
		}
		s.i += n
	}
	if s.i < len(s.d) {
		r, _ := s.rune()
		if !unicode.IsSpace(r) && !IsNewline(r) && r != ';' && r != ')' && r != '}' {
			return s.errAt(fmt.Errorf("%w: junk after number", ErrMalformedNumber), start)
		}
	}
	s.toks = append(s.toks, Token{Type: TNumber, Pos: s.pos(start, s.i-start), Num: num})
	s.ready = false
	return nil
}

func (s *scanner) identifier(start int) error {
	for s.i < len(s.d) {
		r, size := s.rune()
		if r == utf8.RuneError && size == 1 {
			return NewTokenizeErr(ErrDisallowedChar, s.pos(s.i, size))
		}
		if unicode.IsSpace(r) || IsNewline(r) || nonIdentChar(r) {
			break
		}
		if IsDisallowed(r) || r == 0xfeff {
			return NewTokenizeErr(ErrDisallowedChar, s.pos(s.i, size))
		}
		s.i += size
	}
	name := string(s.d[start:s.i])
	if reservedIdent(name) {
		err := fmt.Errorf("%w: %q must be quoted, or prefixed with '#' for the keyword value", ErrReservedIdentifier, name)
		return NewTokenizeErr(err, s.pos(start, s.i-start))
	}
	if len(name) > 1 && name[0] == '.' && asciiDigit(name[1]) {
		return NewTokenizeErr(ErrMalformedNumber, s.pos(start, s.i-start))
	}
	s.pushStr(TString, start, name)
	s.ready = false
	return nil
}

func (s *scanner) quotedString(start int) error {
	s.i++
	bodyStart := s.i
	for s.i < len(s.d) {
		r, size := s.rune()
		if (r == utf8.RuneError && size == 1) || IsDisallowed(r) {
			return NewTokenizeErr(ErrDisallowedChar, s.pos(s.i, size))
		}
		if r == '"' {
			body := string(s.d[bodyStart:s.i])
			s.i++
			v, err := decodeEscapes(body)
			if err != nil {
				return NewTokenizeErr(err, s.pos(start, s.i-start))
			}
			s.pushStr(TString, start, v)
			s.ready = false
			return nil
		}
		if IsNewline(r) {
			return s.errAt(ErrUnterminatedString, start)
		}
		if r == '\\' {
			s.i += size
			if s.i >= len(s.d) {
				break
			}
			r2, size2 := s.rune()
			if unicode.IsSpace(r2) || IsNewline(r2) {
				s.skipSpaceRun()
			} else {
				s.i += size2
			}
			continue
		}
		s.i += size
	}
	return s.errAt(ErrUnterminatedString, start)
}

// blockString scans a multi-line string, raw when hashes > 0. The cursor
// sits on the opening triple quote; dedenting and escape resolution happen
// in dedentBlock once the closing quotes are found.
func (s *scanner) blockString(start, hashes int, raw bool) error {
	s.i += 3
	if s.i >= len(s.d) {
		return s.errAt(ErrUnterminatedString, start)
	}
	r, size := s.rune()
	if !IsNewline(r) {
		return s.errAt(fmt.Errorf("%w: expected newline after opening quotes", ErrUnexpectedChar), start)
	}
	s.consumeNewline(r, size)
	bodyStart := s.i
	closer := []byte(`"""` + strings.Repeat("#", hashes))
	for {
		if s.i >= len(s.d) {
			return s.errAt(ErrUnterminatedString, start)
		}
		if bytes.HasPrefix(s.d[s.i:], closer) {
			break
		}
		r, size := s.rune()
		if (r == utf8.RuneError && size == 1) || IsDisallowed(r) {
			return NewTokenizeErr(ErrDisallowedChar, s.pos(s.i, size))
		}
		if IsNewline(r) {
			s.consumeNewline(r, size)
			continue
		}
		if r == '\\' && !raw {
			s.i += size
			if s.i >= len(s.d) {
				return s.errAt(ErrUnterminatedString, start)
			}
			r2, size2 := s.rune()
			if unicode.IsSpace(r2) || IsNewline(r2) {
				s.skipSpaceRun()
			} else {
				s.i += size2
			}
			continue
		}
		s.i += size
	}
	body := string(s.d[bodyStart:s.i])
	s.i += len(closer)
	v, err := dedentBlock(body, raw)
	if err != nil {
		return NewTokenizeErr(err, s.pos(start, s.i-start))
	}
	s.pushStr(TString, start, v)
	s.ready = false
	return nil
}

func (s *scanner) rawString(start, hashes int) error {
	s.i++
	bodyStart := s.i
	closer := []byte(`"` + strings.Repeat("#", hashes))
	for s.i < len(s.d) {
		if bytes.HasPrefix(s.d[s.i:], closer) {
			v := string(s.d[bodyStart:s.i])
			s.i += len(closer)
			s.pushStr(TString, start, v)
			s.ready = false
			return nil
		}
		r, size := s.rune()
		if (r == utf8.RuneError && size == 1) || IsDisallowed(r) {
			return NewTokenizeErr(ErrDisallowedChar, s.pos(s.i, size))
		}
		if IsNewline(r) {
			return s.errAt(ErrUnterminatedString, start)
		}
		s.i += size
	}
	return s.errAt(ErrUnterminatedString, start)
}
