// Package transport implements session-correlated streamable HTTP dispatch
// for the MCP server.
//
// A single endpoint multiplexes many logically independent request/response
// exchanges:
//
//	POST   /mcp  submit one JSON-RPC message, receive the correlated response
//	GET    /mcp  open a server-push event stream (heartbeats)
//	DELETE /mcp  terminate a session
//	GET    /health  fixed JSON status document
//	GET    /metrics prometheus instruments
//
// # Sessions
//
// An initialize call with no Mcp-Session-Id header registers a new session
// under a 256-bit random URL-safe identifier, returned in the response
// header; the caller echoes it on subsequent calls. Only termination
// requires a known identifier — every other call works session-less, so
// one-shot request/response clients need no bookkeeping. Session records
// live in memory only and die with the process.
//
// # Ordering
//
// Responses on a given connection are delivered in the order requests were
// received on that connection. No ordering holds across connections.
//
// # Failure semantics
//
// Handler-level failures become error content items inside a well-formed
// response; protocol-level failures (malformed message, unknown session on
// terminate) become JSON-RPC error bodies; panics are recovered at the
// outermost middleware and surfaced as a generic internal error. Only
// transport-level disconnection ends a stream.
package transport
