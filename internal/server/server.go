package server

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/ironsheep/icon-tools-mcp/internal/imaging"
	"github.com/ironsheep/icon-tools-mcp/internal/transparency"
)

// Version is reported in the initialize handshake.
const Version = "0.2.0"

const (
	jsonrpcVersion  = "2.0"
	protocolVersion = "2024-11-05"
)

// maxRequestBytes bounds a single request line.
const maxRequestBytes = 1 << 20

// JSON-RPC error codes.
const (
	codeParseError     = -32700
	codeMethodNotFound = -32601
	codeInvalidParams  = -32602
	codeToolFailed     = -32000
)

// Config controls a Server.
type Config struct {
	// Defaults are the stripper thresholds used when a tool call does not
	// override them.
	Defaults transparency.Options

	// OutputDir receives stripped images when a call gives no output_path.
	// Empty means os.TempDir().
	OutputDir string

	// Debug enables per-call logging to the standard logger.
	Debug bool
}

// DefaultConfig returns a Config with the default stripper thresholds.
func DefaultConfig() Config {
	return Config{Defaults: transparency.DefaultOptions()}
}

// Server handles MCP protocol communication
type Server struct {
	cache *imaging.ImageCache
	cfg   Config
}

// MCPRequest represents an incoming JSON-RPC request
type MCPRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      interface{}     `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// MCPResponse represents an outgoing JSON-RPC response
type MCPResponse struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      interface{} `json:"id"`
	Result  interface{} `json:"result,omitempty"`
	Error   *MCPError   `json:"error,omitempty"`
}

// MCPError represents a JSON-RPC error
type MCPError struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// New creates a server with DefaultConfig.
func New() *Server {
	return NewWithConfig(DefaultConfig())
}

// NewWithConfig creates a server with the given configuration.
func NewWithConfig(cfg Config) *Server {
	if cfg.OutputDir == "" {
		cfg.OutputDir = os.TempDir()
	}
	return &Server{
		cache: imaging.NewImageCache(),
		cfg:   cfg,
	}
}

// Run serves requests from stdin and writes responses to stdout.
func (s *Server) Run() error {
	return s.Serve(os.Stdin, os.Stdout)
}

// Serve reads one JSON-RPC request per line from r until EOF and writes each
// response as a line to w. A line that is not valid JSON gets a parse error
// response with a null id.
func (s *Server) Serve(r io.Reader, w io.Writer) error {
	in := bufio.NewScanner(r)
	in.Buffer(make([]byte, 0, 64*1024), maxRequestBytes)
	out := json.NewEncoder(w)

	for in.Scan() {
		line := bytes.TrimSpace(in.Bytes())
		if len(line) == 0 {
			continue
		}

		var resp *MCPResponse
		var req MCPRequest
		if err := json.Unmarshal(line, &req); err != nil {
			log.Printf("Failed to parse request: %v", err)
			resp = s.errorResponse(nil, codeParseError, "Parse error", err.Error())
		} else {
			resp = s.handleRequest(&req)
		}
		if resp == nil {
			continue
		}
		if err := out.Encode(resp); err != nil {
			return fmt.Errorf("failed to write response: %w", err)
		}
	}

	if err := in.Err(); err != nil {
		return fmt.Errorf("failed to read request: %w", err)
	}
	return nil
}

// handleRequest dispatches on method. Notifications yield nil.
func (s *Server) handleRequest(req *MCPRequest) *MCPResponse {
	s.debugf("<- %s", req.Method)

	switch req.Method {
	case "initialize":
		return s.result(req.ID, map[string]interface{}{
			"protocolVersion": protocolVersion,
			"capabilities": map[string]interface{}{
				"tools": map[string]interface{}{},
			},
			"serverInfo": map[string]interface{}{
				"name":    "icon-tools-mcp",
				"version": Version,
			},
		})
	case "notifications/initialized":
		return nil
	case "tools/list":
		return s.result(req.ID, map[string]interface{}{"tools": GetToolDefinitions()})
	case "tools/call":
		return s.handleToolsCall(req)
	case "ping":
		return s.result(req.ID, map[string]interface{}{})
	default:
		return s.errorResponse(req.ID, codeMethodNotFound, "Method not found: "+req.Method, "")
	}
}

func (s *Server) result(id interface{}, v interface{}) *MCPResponse {
	return &MCPResponse{JSONRPC: jsonrpcVersion, ID: id, Result: v}
}

func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	e := &MCPError{Code: code, Message: message}
	if data != "" {
		e.Data = data
	}
	return &MCPResponse{JSONRPC: jsonrpcVersion, ID: id, Error: e}
}

func (s *Server) debugf(format string, args ...interface{}) {
	if s.cfg.Debug {
		log.Printf(format, args...)
	}
}
