package token

import "fmt"

type TokenType int

const (
	// TString carries quoted, raw and multi-line strings as well as bare
	// identifiers, already decoded.
	TString TokenType = iota
	TNumber
	// TKeyword carries #true, #false, #null, #inf, #-inf and #nan,
	// without the leading '#'.
	TKeyword
	// TTag is a (name) type annotation, decoded to its name.
	TTag
	TLBrace
	TRBrace
	TLParen
	TRParen
	TEquals
	TSemicolon
	TNewline
	TSlashdash
	TEOF
)

func (t TokenType) String() string {
	return map[TokenType]string{
		TString:    "TString",
		TNumber:    "TNumber",
		TKeyword:   "TKeyword",
		TTag:       "TTag",
		TLBrace:    "TLBrace",
		TRBrace:    "TRBrace",
		TLParen:    "TLParen",
		TRParen:    "TRParen",
		TEquals:    "TEquals",
		TSemicolon: "TSemicolon",
		TNewline:   "TNewline",
		TSlashdash: "TSlashdash",
		TEOF:       "TEOF",
	}[t]
}

type Token struct {
	Type TokenType
	Pos  *Pos
	Str  string  // decoded payload for TString, TTag, TKeyword
	Num  *Number // decoded payload for TNumber
}

func (t *Token) Info() string {
	return fmt.Sprintf("%s %s", t.Type, t.Pos.String())
}
