package main

import (
	"bytes"
	"context"

	"github.com/mwh/kdly/encode"
	"go.lsp.dev/protocol"
)

func (s *Server) Formatting(ctx context.Context, params *protocol.DocumentFormattingParams) ([]protocol.TextEdit, error) {
	doc := s.docs.get(string(params.TextDocument.URI))
	if doc == nil || doc.err != nil || doc.doc == nil {
		return nil, nil
	}

	indent := 2
	if params.Options.TabSize > 0 {
		indent = int(params.Options.TabSize)
	}
	formatted, err := encode.String(doc.doc, encode.Indent(indent))
	if err != nil {
		return nil, nil
	}

	if formatted == doc.content {
		return []protocol.TextEdit{}, nil
	}

	lines := bytes.Count([]byte(doc.content), []byte("\n"))
	if len(doc.content) > 0 && doc.content[len(doc.content)-1] != '\n' {
		lines++
	}

	// one edit replacing the whole document
	return []protocol.TextEdit{
		{
			Range: protocol.Range{
				Start: protocol.Position{Line: 0, Character: 0},
				End: protocol.Position{
					Line:      uint32(lines),
					Character: 0,
				},
			},
			NewText: formatted,
		},
	}, nil
}
