package parse

import (
	"fmt"
	"math"

	"github.com/mwh/kdly/ir"
	"github.com/mwh/kdly/token"
)

// Parse builds a document tree from KDL source. The first error aborts
// the parse; no partial document is returned.
func Parse(d []byte, opts ...Option) (*ir.Document, error) {
	pOpts := &parseOpts{}
	for _, f := range opts {
		f(pOpts)
	}
	toks, err := token.Tokenize(d)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks, opts: pOpts}
	return p.document(false)
}

func ParseString(s string, opts ...Option) (*ir.Document, error) {
	return Parse([]byte(s), opts...)
}

type parser struct {
	toks []token.Token
	i    int
	opts *parseOpts
}

// cur is always valid: the token slice ends with TEOF and advance stops
// there.
func (p *parser) cur() *token.Token {
	return &p.toks[p.i]
}

func (p *parser) advance() {
	if p.i < len(p.toks)-1 {
		p.i++
	}
}

func (p *parser) document(nested bool) (*ir.Document, error) {
	doc := ir.New()
	for {
		t := p.cur()
		switch t.Type {
		case token.TNewline, token.TSemicolon:
			p.advance()
		case token.TEOF:
			if nested {
				return nil, newParseErr(ErrUnexpectedEOF, t.Pos)
			}
			return doc, nil
		case token.TRBrace:
			if nested {
				p.advance()
				return doc, nil
			}
			return nil, newParseErr(ErrUnexpectedToken, t.Pos)
		case token.TSlashdash:
			p.advance()
			// between a slashdash and the node it comments out, any
			// amount of line space is fine
			for p.cur().Type == token.TNewline {
				p.advance()
			}
			switch p.cur().Type {
			case token.TEOF, token.TRBrace:
				return nil, newParseErr(ErrDanglingSlashdash, t.Pos)
			}
			if _, err := p.node(); err != nil {
				return nil, err
			}
		default:
			n, err := p.node()
			if err != nil {
				return nil, err
			}
			doc.Append(n)
		}
	}
}

func (p *parser) node() (*ir.Node, error) {
	t := p.cur()
	n := ir.NewNode("")
	n.Pos = t.Pos
	if t.Type == token.TTag {
		n.Tag = t.Str
		p.advance()
		t = p.cur()
	}
	switch t.Type {
	case token.TString:
		n.Name = t.Str
		p.advance()
	case token.TKeyword:
		return nil, newParseErr(ErrKeywordIdentifier, t.Pos)
	case token.TEOF:
		return nil, newParseErr(ErrUnexpectedEOF, t.Pos)
	default:
		return nil, newParseErr(ErrUnexpectedToken, t.Pos)
	}
	if err := p.entries(n); err != nil {
		return nil, err
	}
	return p.transform(n)
}

// entries consumes a node's arguments, properties and child block up to
// and including its terminator. Child blocks come last: once any block
// has been seen, real or slashdashed, only further slashdashed blocks
// may follow.
func (p *parser) entries(n *ir.Node) error {
	haveBlock := false
	for {
		t := p.cur()
		switch t.Type {
		case token.TNewline, token.TSemicolon:
			p.advance()
			return nil
		case token.TEOF, token.TRBrace:
			return nil
		case token.TSlashdash:
			p.advance()
			if p.cur().Type == token.TLBrace {
				if _, err := p.children(); err != nil {
					return err
				}
				haveBlock = true
				break
			}
			if haveBlock {
				return newParseErr(fmt.Errorf("%w: entry after child block", ErrUnexpectedToken), t.Pos)
			}
			if err := p.skipEntry(t.Pos); err != nil {
				return err
			}
		case token.TLBrace:
			if n.Children != nil {
				return newParseErr(fmt.Errorf("%w: second child block", ErrUnexpectedToken), t.Pos)
			}
			children, err := p.children()
			if err != nil {
				return err
			}
			n.Children = children
			haveBlock = true
		case token.TEquals:
			return newParseErr(ErrBadPropertyKey, t.Pos)
		default:
			if haveBlock {
				return newParseErr(fmt.Errorf("%w: entry after child block", ErrUnexpectedToken), t.Pos)
			}
			isProp, key, v, err := p.entry()
			if err != nil {
				return err
			}
			if isProp {
				n.SetProp(key, v)
			} else {
				n.Args = append(n.Args, v)
			}
		}
	}
}

// entry parses one argument or property. Every token except the final
// TEOF has a successor, so peeking one ahead of a non-EOF token is safe.
func (p *parser) entry() (isProp bool, key string, v *ir.Value, err error) {
	t := p.cur()
	if t.Type == token.TString && p.toks[p.i+1].Type == token.TEquals {
		key = t.Str
		p.advance()
		p.advance()
		v, err = p.value()
		if err != nil {
			return false, "", nil, err
		}
		return true, key, v, nil
	}
	if t.Type == token.TKeyword && p.toks[p.i+1].Type == token.TEquals {
		return false, "", nil, newParseErr(ErrKeywordIdentifier, t.Pos)
	}
	v, err = p.value()
	if err != nil {
		return false, "", nil, err
	}
	if p.cur().Type == token.TEquals {
		// a tagged string or a number cannot be a property key
		return false, "", nil, newParseErr(ErrBadPropertyKey, t.Pos)
	}
	return false, "", v, nil
}

// skipEntry discards one slashdashed argument or property. Slashdashed
// child blocks are handled by the caller.
func (p *parser) skipEntry(pos *token.Pos) error {
	switch p.cur().Type {
	case token.TNewline, token.TSemicolon, token.TEOF, token.TRBrace:
		return newParseErr(ErrDanglingSlashdash, pos)
	case token.TEquals:
		return newParseErr(ErrBadPropertyKey, p.cur().Pos)
	default:
		_, _, _, err := p.entry()
		return err
	}
}

func (p *parser) children() (*ir.Document, error) {
	p.advance()
	return p.document(true)
}

func (p *parser) value() (*ir.Value, error) {
	t := p.cur()
	tag := ""
	if t.Type == token.TTag {
		tag = t.Str
		p.advance()
		t = p.cur()
	}
	var v *ir.Value
	switch t.Type {
	case token.TString:
		v = ir.FromString(t.Str)
	case token.TNumber:
		v = ir.FromNumber(t.Num)
	case token.TKeyword:
		switch t.Str {
		case "true":
			v = ir.FromBool(true)
		case "false":
			v = ir.FromBool(false)
		case "null":
			v = ir.Null()
		case "inf":
			v = ir.FromFloat(math.Inf(1))
		case "-inf":
			v = ir.FromFloat(math.Inf(-1))
		default:
			v = ir.FromFloat(math.NaN())
		}
	case token.TEOF:
		return nil, newParseErr(ErrUnexpectedEOF, t.Pos)
	default:
		return nil, newParseErr(ErrUnexpectedToken, t.Pos)
	}
	v.Tag = tag
	v.Pos = t.Pos
	p.advance()
	if tag != "" && p.opts.typeMap != nil {
		if fn, ok := p.opts.typeMap[tag]; ok {
			out, err := fn(v.Interface())
			if err != nil {
				return nil, &TransformErr{Err: err, Pos: *t.Pos}
			}
			v.Custom = out
		}
	}
	return v, nil
}

// transform applies the registered node converters once a node is fully
// parsed. Children have already been transformed by their own parse, so
// conversion runs bottom-up.
func (p *parser) transform(n *ir.Node) (*ir.Node, error) {
	if p.opts.nodeMap != nil {
		if fn, ok := p.opts.nodeMap[n.Name]; ok {
			res, err := fn(n.Children, n.Args, n.Props)
			if err != nil {
				return nil, &TransformErr{Err: err, Pos: *n.Pos}
			}
			if repl, ok := res.(*ir.Node); ok {
				if repl.Pos == nil {
					repl.Pos = n.Pos
				}
				n = repl
			} else {
				n.Custom = res
			}
		}
	}
	if n.Tag != "" && p.opts.typeMap != nil {
		if fn, ok := p.opts.typeMap[n.Tag]; ok {
			res, err := fn(n)
			if err != nil {
				return nil, &TransformErr{Err: err, Pos: *n.Pos}
			}
			n.Custom = res
		}
	}
	return n, nil
}
