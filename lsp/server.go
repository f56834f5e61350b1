// Package lsp exposes the compiler as a Language Server Protocol
// server, built directly on tliron/glsp + glsp/protocol_3_16, the way
// escalier-lang/escalier's cmd/lsp-server/main.go wires a
// protocol.Handler by hand. Unlike a gopls-proxying design, which
// forwards an LSP session to an external gopls process, this server
// handles requests itself: there is no external JavaScript language
// server in scope to proxy to, and diagnostics are just the compiler's
// own CompileError values reported at their line/column.
package lsp

import (
	"log/slog"
	"sync"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	glspserver "github.com/tliron/glsp/server"

	"github.com/jsx-go/jsxc"
	"github.com/jsx-go/jsxc/errutil"
	"github.com/jsx-go/jsxc/internal/cache"
)

const languageName = "jsxc"

// Name and Version are reported to clients during initialize.
var (
	Name    = "jsxc"
	Version = "0.1.0"
)

// Server is a stdio Language Server for JSX source, publishing
// diagnostics derived from jsxc.Compile.
type Server struct {
	handler protocol.Handler
	cache   *cache.Cache
	opts    *jsxc.Options
	logger  *slog.Logger

	mu        sync.Mutex
	documents map[protocol.DocumentUri]string
}

// New builds a Server. opts configures every Compile call the server
// makes; a nil opts compiles with the default React pragmas.
func New(opts *jsxc.Options, logger *slog.Logger) *Server {
	c, err := cache.New(cache.DefaultSize)
	if err != nil {
		// cache.DefaultSize is a compile-time constant known to be valid.
		panic(err)
	}

	s := &Server{
		cache:     c,
		opts:      opts,
		logger:    logger,
		documents: map[protocol.DocumentUri]string{},
	}
	s.handler = protocol.Handler{
		Initialize:            s.initialize,
		Initialized:           s.initialized,
		Shutdown:              s.shutdown,
		TextDocumentDidOpen:   s.textDocumentDidOpen,
		TextDocumentDidChange: s.textDocumentDidChange,
		TextDocumentDidClose:  s.textDocumentDidClose,
	}
	return s
}

// Run starts the server over stdio and blocks until the client closes
// the connection or an unrecoverable error occurs.
func (s *Server) Run() error {
	server := glspserver.NewServer(s, Name, false)
	return server.RunStdio()
}

// Handle implements glsp.Server by delegating to the registered
// protocol.Handler.
func (s *Server) Handle(ctx *glsp.Context) (r any, validMethod bool, validParams bool, err error) {
	return s.handler.Handle(ctx)
}

func (s *Server) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	capabilities := s.handler.CreateServerCapabilities()
	capabilities.TextDocumentSync = protocol.TextDocumentSyncKindFull

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    Name,
			Version: &Version,
		},
	}, nil
}

func (s *Server) initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	s.logger.Info("lsp: initialized")
	return nil
}

func (s *Server) shutdown(ctx *glsp.Context) error {
	protocol.SetTraceValue(protocol.TraceValueOff)
	return nil
}

func (s *Server) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	s.mu.Lock()
	s.documents[params.TextDocument.URI] = params.TextDocument.Text
	s.mu.Unlock()
	s.validate(ctx, params.TextDocument.URI, params.TextDocument.Text)
	return nil
}

func (s *Server) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	var text string
	for _, change := range params.ContentChanges {
		if whole, ok := change.(protocol.TextDocumentContentChangeEventWhole); ok {
			text = whole.Text
		}
	}

	s.mu.Lock()
	s.documents[params.TextDocument.URI] = text
	s.mu.Unlock()

	s.validate(ctx, params.TextDocument.URI, text)
	return nil
}

func (s *Server) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	s.mu.Lock()
	delete(s.documents, params.TextDocument.URI)
	s.mu.Unlock()
	return nil
}

// validate compiles contents and publishes either an empty diagnostics
// list (success) or a single diagnostic built from the CompileError.
func (s *Server) validate(ctx *glsp.Context, uri protocol.DocumentUri, contents string) {
	_, err := s.cache.Compile(contents, s.opts)

	diagnostics := []protocol.Diagnostic{}
	if err != nil {
		diagnostics = append(diagnostics, diagnosticFromError(err))
	}

	go ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diagnostics,
	})
}

// diagnosticFromError converts a jsxc.CompileError into a single-line
// LSP diagnostic. Errors without a known position (ParserUnbalanced)
// are reported at the start of the document.
func diagnosticFromError(err error) protocol.Diagnostic {
	severity := protocol.DiagnosticSeverityError
	source := languageName
	message := err.Error()

	line, col := 0, 0
	if ce, ok := err.(*errutil.CompileError); ok && ce.HasPos {
		line = max(ce.Line-1, 0)
		col = max(ce.Column-1, 0)
	}

	pos := protocol.Position{Line: protocol.UInteger(line), Character: protocol.UInteger(col)}
	return protocol.Diagnostic{
		Range:    protocol.Range{Start: pos, End: pos},
		Severity: &severity,
		Source:   &source,
		Message:  message,
	}
}
