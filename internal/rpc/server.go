// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package rpc

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/bureau-foundation/toolrouter/lib/toolerror"
)

// Handler processes one method call's params and returns a JSON-encodable
// result, or an error. Handlers returning a *toolerror.ToolError get their
// Category mapped to the matching JSON-RPC error code; any other error
// maps to CodeServerError.
type Handler func(params json.RawMessage) (any, error)

// Server dispatches JSON-RPC 2.0 requests read from a newline-delimited
// stream to registered method handlers.
type Server struct {
	log *slog.Logger

	mu       sync.RWMutex
	handlers map[string]Handler

	maxBatchSize int
}

// NewServer creates a Server. maxBatchSize <= 0 means unbounded.
func NewServer(log *slog.Logger, maxBatchSize int) *Server {
	return &Server{
		log:          log,
		handlers:     make(map[string]Handler),
		maxBatchSize: maxBatchSize,
	}
}

// Register installs a handler for method. Registering the same method
// twice replaces the previous handler.
func (s *Server) Register(method string, h Handler) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handlers[method] = h
}

func (s *Server) handlerFor(method string) (Handler, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	h, ok := s.handlers[method]
	return h, ok
}

// Serve reads newline-delimited JSON-RPC requests from r and writes
// newline-delimited responses to w until r is exhausted or ctx-independent
// I/O error occurs. Each line may be a single request object or a batch
// array. Notifications produce no response; an all-notification batch
// produces no output line at all.
func (s *Server) Serve(r io.Reader, w io.Writer) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	enc := json.NewEncoder(w)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(bytesTrimSpace(line)) == 0 {
			continue
		}

		responses := s.handleLine(line)
		for _, resp := range responses {
			if err := enc.Encode(resp); err != nil {
				return fmt.Errorf("rpc: encoding response: %w", err)
			}
		}
	}
	return scanner.Err()
}

func bytesTrimSpace(b []byte) []byte {
	start, end := 0, len(b)
	for start < end && isSpace(b[start]) {
		start++
	}
	for end > start && isSpace(b[end-1]) {
		end--
	}
	return b[start:end]
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n'
}

// handleLine dispatches one line, which may be a single request or a
// batch array, returning the responses to write (possibly none).
func (s *Server) handleLine(line []byte) []Response {
	trimmed := bytesTrimSpace(line)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var raws []json.RawMessage
		if err := json.Unmarshal(line, &raws); err != nil {
			return []Response{newErrorResponse(nil, CodeParseError, "parse error: "+err.Error())}
		}
		if len(raws) == 0 {
			return []Response{newErrorResponse(nil, CodeInvalidRequest, "empty batch")}
		}
		if s.maxBatchSize > 0 && len(raws) > s.maxBatchSize {
			return []Response{newErrorResponse(nil, CodeInvalidRequest, fmt.Sprintf("batch exceeds max size %d", s.maxBatchSize))}
		}

		var out []Response
		for _, raw := range raws {
			if resp, ok := s.handleOne(raw); ok {
				out = append(out, resp)
			}
		}
		return out
	}

	if resp, ok := s.handleOne(line); ok {
		return []Response{resp}
	}
	return nil
}

// handleOne processes a single request object, returning (response, true)
// unless the request was a valid notification, in which case (zero, false).
func (s *Server) handleOne(raw json.RawMessage) (Response, bool) {
	var req Request
	if err := json.Unmarshal(raw, &req); err != nil {
		return newErrorResponse(nil, CodeParseError, "parse error: "+err.Error()), true
	}
	if req.JSONRPC != "2.0" || req.Method == "" {
		return newErrorResponse(req.ID, CodeInvalidRequest, "invalid request: missing jsonrpc/method"), !req.IsNotification()
	}

	handler, ok := s.handlerFor(req.Method)
	if !ok {
		if req.IsNotification() {
			s.log.Warn("unknown method for notification", "method", req.Method)
			return Response{}, false
		}
		return newErrorResponse(req.ID, CodeMethodNotFound, "method not found: "+req.Method), true
	}

	result, err := handler(req.Params)
	if err != nil {
		if req.IsNotification() {
			s.log.Warn("notification handler failed", "method", req.Method, "error", err)
			return Response{}, false
		}
		return newErrorResponse(req.ID, codeForError(err), err.Error()), true
	}

	if req.IsNotification() {
		return Response{}, false
	}

	data, err := json.Marshal(result)
	if err != nil {
		return newErrorResponse(req.ID, CodeInternalError, "encoding result: "+err.Error()), true
	}
	return newResultResponse(req.ID, data), true
}

// codeForError maps a *toolerror.ToolError's Category to the matching
// JSON-RPC error code; CategoryInternal and any other error type map to
// CodeServerError.
func codeForError(err error) int {
	toolErr, ok := toolerror.As(err)
	if !ok {
		return CodeServerError
	}
	switch toolErr.Category {
	case toolerror.CategoryValidation:
		return CodeInvalidParams
	case toolerror.CategoryNotFound:
		return CodeNotFound
	case toolerror.CategoryForbidden:
		return CodeForbidden
	case toolerror.CategoryConflict:
		return CodeConflict
	case toolerror.CategoryTransient:
		return CodeTransient
	default:
		return CodeServerError
	}
}
