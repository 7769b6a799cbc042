package transport

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	osmcp "github.com/dshills/opensearch-mcp/internal/mcp"
)

const (
	// SessionHeader carries the session identifier on every call after
	// initialization.
	SessionHeader = "Mcp-Session-Id"

	// DefaultHeartbeatInterval is the server-push heartbeat period.
	DefaultHeartbeatInterval = 30 * time.Second

	// maxBodyBytes bounds a single JSON-RPC message.
	maxBodyBytes = 4 << 20
)

// JSON-RPC error codes surfaced by the transport
const (
	errCodeParse           = -32700 // Malformed JSON message
	errCodeInternalError   = -32603 // Internal JSON-RPC error
	errCodeSessionNotFound = -32001 // Unknown session on terminate
)

// StreamableHTTP multiplexes JSON-RPC exchanges over a single HTTP
// endpoint: POST dispatches one message, GET opens a server-push event
// stream, DELETE terminates a session. Sessions are correlated through the
// Mcp-Session-Id header. Responses on a connection are delivered in the
// order requests were received on it; net/http serializes the exchanges
// per connection and nothing here reorders them.
type StreamableHTTP struct {
	server   *osmcp.Server
	sessions *Registry
	logger   *slog.Logger

	// HeartbeatInterval is the period between heartbeat events on the
	// server-push stream. Tests shorten it.
	HeartbeatInterval time.Duration
}

// NewStreamableHTTP creates the transport adapter around an MCP server.
func NewStreamableHTTP(srv *osmcp.Server, logger *slog.Logger) *StreamableHTTP {
	return &StreamableHTTP{
		server:            srv,
		sessions:          NewRegistry(),
		logger:            logger,
		HeartbeatInterval: DefaultHeartbeatInterval,
	}
}

// Sessions exposes the registry, primarily for tests.
func (t *StreamableHTTP) Sessions() *Registry {
	return t.sessions
}

// Handler returns the HTTP handler serving the MCP endpoint plus health
// and metrics, wrapped in recovery and logging middleware.
func (t *StreamableHTTP) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/mcp", t.handleMCP)
	mux.HandleFunc("/health", t.handleHealth)
	mux.Handle("/metrics", promhttp.Handler())
	return recoveryMiddleware(t.logger, loggingMiddleware(t.logger, mux))
}

func (t *StreamableHTTP) handleMCP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		t.handlePost(w, r)
	case http.MethodGet:
		t.handleStream(w, r)
	case http.MethodDelete:
		t.handleTerminate(w, r)
	default:
		w.Header().Set("Allow", "POST, GET, DELETE")
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// handlePost dispatches exactly one JSON-RPC message and writes the
// correlated response on the same exchange.
func (t *StreamableHTTP) handlePost(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		writeRPCError(w, http.StatusBadRequest, nil, errCodeParse, "failed to read request body")
		return
	}

	var base struct {
		JSONRPC string          `json:"jsonrpc"`
		ID      json.RawMessage `json:"id"`
		Method  string          `json:"method"`
	}
	if err := json.Unmarshal(body, &base); err != nil {
		writeRPCError(w, http.StatusBadRequest, nil, errCodeParse, "parse error: invalid JSON")
		return
	}

	sessionID := r.Header.Get(SessionHeader)

	// Initialization with no identifier opens a new session; the caller
	// echoes the identifier on subsequent calls.
	if base.Method == string(mcp.MethodInitialize) && sessionID == "" {
		sess, err := t.sessions.Create()
		if err != nil {
			t.logger.Error("failed to create session", "error", err)
			writeRPCError(w, http.StatusInternalServerError, base.ID, errCodeInternalError, "internal server error")
			return
		}
		sessionID = sess.ID
		t.logger.Info("session created", "session", sess.ID)
	} else if sessionID != "" {
		// Unknown identifiers are tolerated on non-terminate calls:
		// simple request/response use works session-less.
		if _, ok := t.sessions.Get(sessionID); !ok {
			t.logger.Debug("request for unregistered session", "session", sessionID, "method", base.Method)
		}
	}

	response := t.server.MCP().HandleMessage(r.Context(), body)

	if sessionID != "" {
		w.Header().Set(SessionHeader, sessionID)
	}
	if response == nil {
		// Notification: nothing to correlate.
		w.WriteHeader(http.StatusAccepted)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		t.logger.Error("failed to write response", "error", err)
	}
}

// handleStream opens the companion server-push channel: one
// connection-established event immediately, then heartbeats at a fixed
// interval until the consumer disconnects, then a best-effort
// disconnection event. The send, ping and disconnect-watch concerns run as
// a supervised group; the first to exit cancels the rest.
func (t *StreamableHTTP) handleStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	sessionID := r.Header.Get(SessionHeader)
	if sessionID != "" {
		w.Header().Set(SessionHeader, sessionID)
	}
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	writeEvent(w, "connected", map[string]interface{}{
		"server":  osmcp.ServerName,
		"session": sessionID,
	})
	flusher.Flush()

	events := make(chan map[string]interface{})
	g, ctx := errgroup.WithContext(r.Context())

	// Ping loop: one heartbeat per interval.
	g.Go(func() error {
		ticker := time.NewTicker(t.HeartbeatInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case now := <-ticker.C:
				select {
				case events <- map[string]interface{}{"time": now.UTC().Format(time.RFC3339)}:
				case <-ctx.Done():
					return ctx.Err()
				}
			}
		}
	})

	// Send loop: sole writer to the response after the group starts.
	g.Go(func() error {
		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case payload := <-events:
				writeEvent(w, "heartbeat", payload)
				flusher.Flush()
			}
		}
	})

	// Disconnect listener: transport closure ends the stream.
	g.Go(func() error {
		<-r.Context().Done()
		return r.Context().Err()
	})

	err := g.Wait()
	t.logger.Info("event stream closed", "session", sessionID, "reason", err)

	// The peer is usually gone by now; the disconnection event is best
	// effort.
	writeEvent(w, "disconnected", map[string]interface{}{"session": sessionID})
	flusher.Flush()
}

// handleTerminate removes the session named by the header. Unknown
// identifiers yield a not-found error and leave the registry untouched.
func (t *StreamableHTTP) handleTerminate(w http.ResponseWriter, r *http.Request) {
	sessionID := r.Header.Get(SessionHeader)
	if sessionID == "" || !t.sessions.Remove(sessionID) {
		writeRPCError(w, http.StatusNotFound, nil, errCodeSessionNotFound, "session not found")
		return
	}

	t.logger.Info("session terminated", "session", sessionID)
	w.WriteHeader(http.StatusOK)
}

// handleHealth returns a fixed status document.
func (t *StreamableHTTP) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"status":  "ok",
		"service": osmcp.ServerName,
		"version": osmcp.ServerVersion,
	})
}

// writeEvent writes one SSE frame.
func writeEvent(w io.Writer, event string, payload map[string]interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		data = []byte("{}")
	}
	fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, data)
}

// writeRPCError writes a JSON-RPC error body with the given HTTP status.
func writeRPCError(w http.ResponseWriter, status int, id json.RawMessage, code int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if len(id) == 0 {
		id = json.RawMessage("null")
	}
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"jsonrpc": "2.0",
		"id":      id,
		"error": map[string]interface{}{
			"code":    code,
			"message": message,
		},
	})
}
