package main

import (
	"context"
	"errors"
	"sync"

	"github.com/mwh/kdly/ir"
	"github.com/mwh/kdly/parse"
	"github.com/mwh/kdly/token"
	"go.lsp.dev/protocol"
)

type documentStore struct {
	mu   sync.RWMutex
	docs map[string]*document
}

type document struct {
	uri     string
	content string
	version int32
	doc     *ir.Document
	err     error
}

func (ds *documentStore) get(uri string) *document {
	ds.mu.RLock()
	defer ds.mu.RUnlock()
	return ds.docs[uri]
}

func (ds *documentStore) put(uri string, content string, version int32) {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	doc, err := parse.Parse([]byte(content))
	ds.docs[uri] = &document{
		uri:     uri,
		content: content,
		version: version,
		doc:     doc,
		err:     err,
	}
}

func (ds *documentStore) remove(uri string) {
	ds.mu.Lock()
	defer ds.mu.Unlock()
	delete(ds.docs, uri)
}

func (s *Server) publishDiagnostics(ctx context.Context, uri string) {
	doc := s.docs.get(uri)
	if doc == nil {
		return
	}

	diagnostics := validateDocument(doc)

	if s.conn != nil {
		s.conn.Notify(ctx, protocol.MethodTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
			URI:         protocol.DocumentURI(uri),
			Diagnostics: diagnostics,
		})
	}
}

func validateDocument(doc *document) []protocol.Diagnostic {
	diagnostics := []protocol.Diagnostic{}
	if doc.err == nil {
		return diagnostics
	}
	diagnostics = append(diagnostics, protocol.Diagnostic{
		Range:    errRange(doc.err),
		Severity: protocol.DiagnosticSeverityError,
		Message:  doc.err.Error(),
		Source:   "kdl",
	})
	return diagnostics
}

// errRange recovers the source span carried by a lex or parse error.
func errRange(err error) protocol.Range {
	var pos *token.Pos
	var te *token.TokenizeErr
	var pe *parse.ParseErr
	var xe *parse.TransformErr
	switch {
	case errors.As(err, &te):
		pos = &te.Pos
	case errors.As(err, &pe):
		pos = &pe.Pos
	case errors.As(err, &xe):
		pos = &xe.Pos
	default:
		return protocol.Range{}
	}
	line, col := pos.LineCol()
	length := pos.Len
	if length < 1 {
		length = 1
	}
	return protocol.Range{
		Start: protocol.Position{Line: uint32(line), Character: uint32(col)},
		End:   protocol.Position{Line: uint32(line), Character: uint32(col + length)},
	}
}

func (s *Server) DidOpen(ctx context.Context, params *protocol.DidOpenTextDocumentParams) error {
	s.docs.put(string(params.TextDocument.URI), params.TextDocument.Text, params.TextDocument.Version)
	s.publishDiagnostics(ctx, string(params.TextDocument.URI))
	return nil
}

func (s *Server) DidChange(ctx context.Context, params *protocol.DidChangeTextDocumentParams) error {
	doc := s.docs.get(string(params.TextDocument.URI))
	if doc == nil {
		return nil
	}

	content := doc.content
	for _, change := range params.ContentChanges {
		rangeVal := change.Range
		if rangeVal.Start.Line == 0 && rangeVal.Start.Character == 0 && rangeVal.End.Line == 0 && rangeVal.End.Character == 0 {
			// full document replacement
			content = change.Text
		} else {
			start := rangeVal.Start
			end := rangeVal.End
			contentRunes := []rune(content)
			startOffset := lineColToOffset(content, int(start.Line), int(start.Character))
			endOffset := lineColToOffset(content, int(end.Line), int(end.Character))
			if startOffset < len(contentRunes) && endOffset <= len(contentRunes) {
				content = string(contentRunes[:startOffset]) + change.Text + string(contentRunes[endOffset:])
			}
		}
	}

	s.docs.put(string(params.TextDocument.URI), content, params.TextDocument.Version)
	s.publishDiagnostics(ctx, string(params.TextDocument.URI))
	return nil
}

func (s *Server) DidClose(ctx context.Context, params *protocol.DidCloseTextDocumentParams) error {
	s.docs.remove(string(params.TextDocument.URI))
	return nil
}

// lineColToOffset returns the rune offset of a line/column pair.
func lineColToOffset(content string, line, col int) int {
	currentLine := 0
	currentCol := 0
	idx := 0
	for _, r := range content {
		if currentLine == line && currentCol == col {
			return idx
		}
		if r == '\n' {
			currentLine++
			currentCol = 0
		} else {
			currentCol++
		}
		idx++
	}
	return idx
}
