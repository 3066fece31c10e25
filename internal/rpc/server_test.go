// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package rpc

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/bureau-foundation/toolrouter/lib/toolerror"
)

func testServer() *Server {
	return NewServer(slog.New(slog.NewTextHandler(io.Discard, nil)), 0)
}

func TestSingleRequestRoundTrip(t *testing.T) {
	s := testServer()
	s.Register("echo", func(params json.RawMessage) (any, error) {
		return map[string]string{"got": string(params)}, nil
	})

	var out bytes.Buffer
	in := strings.NewReader(`{"jsonrpc":"2.0","method":"echo","params":{"a":1},"id":1}` + "\n")
	if err := s.Serve(in, &out); err != nil {
		t.Fatal(err)
	}

	var resp Response
	if err := json.Unmarshal(out.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if resp.Error != nil {
		t.Fatalf("unexpected error: %+v", resp.Error)
	}
}

func TestNotificationProducesNoResponse(t *testing.T) {
	s := testServer()
	called := false
	s.Register("ping", func(json.RawMessage) (any, error) {
		called = true
		return "pong", nil
	})

	var out bytes.Buffer
	in := strings.NewReader(`{"jsonrpc":"2.0","method":"ping"}` + "\n")
	if err := s.Serve(in, &out); err != nil {
		t.Fatal(err)
	}
	if !called {
		t.Error("handler should still run for a notification")
	}
	if out.Len() != 0 {
		t.Errorf("expected no output for a notification, got %q", out.String())
	}
}

func TestMethodNotFound(t *testing.T) {
	s := testServer()

	var out bytes.Buffer
	in := strings.NewReader(`{"jsonrpc":"2.0","method":"nope","id":1}` + "\n")
	if err := s.Serve(in, &out); err != nil {
		t.Fatal(err)
	}

	var resp Response
	if err := json.Unmarshal(out.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Error == nil || resp.Error.Code != CodeMethodNotFound {
		t.Fatalf("resp = %+v, want CodeMethodNotFound", resp)
	}
}

func TestBatchMixedNotificationsAndRequests(t *testing.T) {
	s := testServer()
	s.Register("add", func(params json.RawMessage) (any, error) {
		return "ok", nil
	})

	var out bytes.Buffer
	in := strings.NewReader(`[{"jsonrpc":"2.0","method":"add","id":1},{"jsonrpc":"2.0","method":"add"}]` + "\n")
	if err := s.Serve(in, &out); err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected exactly one response line for a 2-item batch with 1 notification, got %d: %v", len(lines), lines)
	}
}

func TestAllNotificationBatchProducesNoOutput(t *testing.T) {
	s := testServer()
	s.Register("add", func(json.RawMessage) (any, error) { return "ok", nil })

	var out bytes.Buffer
	in := strings.NewReader(`[{"jsonrpc":"2.0","method":"add"},{"jsonrpc":"2.0","method":"add"}]` + "\n")
	if err := s.Serve(in, &out); err != nil {
		t.Fatal(err)
	}
	if out.Len() != 0 {
		t.Errorf("expected no output, got %q", out.String())
	}
}

func TestToolErrorMapsToCode(t *testing.T) {
	s := testServer()
	s.Register("fail", func(json.RawMessage) (any, error) {
		return nil, toolerror.NotFound("tool %q not found", "x")
	})

	var out bytes.Buffer
	in := strings.NewReader(`{"jsonrpc":"2.0","method":"fail","id":1}` + "\n")
	if err := s.Serve(in, &out); err != nil {
		t.Fatal(err)
	}

	var resp Response
	if err := json.Unmarshal(out.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Error == nil || resp.Error.Code != CodeNotFound {
		t.Fatalf("resp = %+v, want CodeNotFound", resp)
	}
}

func TestParseErrorOnMalformedJSON(t *testing.T) {
	s := testServer()

	var out bytes.Buffer
	in := strings.NewReader(`{not json` + "\n")
	if err := s.Serve(in, &out); err != nil {
		t.Fatal(err)
	}

	var resp Response
	if err := json.Unmarshal(out.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Error == nil || resp.Error.Code != CodeParseError {
		t.Fatalf("resp = %+v, want CodeParseError", resp)
	}
}
