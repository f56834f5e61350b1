package lsp

import (
	"io"
	"log/slog"
	"testing"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/stretchr/testify/require"
)

func silentLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNewServerRegistersHandlers(t *testing.T) {
	s := New(nil, silentLogger())
	require.NotNil(t, s.handler.Initialize)
	require.NotNil(t, s.handler.TextDocumentDidOpen)
	require.NotNil(t, s.handler.TextDocumentDidChange)
	require.NotNil(t, s.handler.TextDocumentDidClose)
}

func TestDiagnosticFromErrorMismatchedTag(t *testing.T) {
	s := New(nil, silentLogger())

	_, err := s.cache.Compile(`<div></span>`, s.opts)
	require.Error(t, err)

	diag := diagnosticFromError(err)
	require.Equal(t, protocol.DiagnosticSeverityError, *diag.Severity)
	require.Contains(t, diag.Message, "mismatched closing tag")
}

func TestServerCacheCompilesValidSourceWithoutError(t *testing.T) {
	s := New(nil, silentLogger())

	_, err := s.cache.Compile(`const x = <div/>;`, s.opts)
	require.NoError(t, err)
}
