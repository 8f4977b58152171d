package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
)

func TestLevelFiltersScopes(t *testing.T) {
	tests := []struct {
		level Level
		scope Scope
		want  bool
	}{
		{LevelOff, ScopeDriver, false},
		{LevelError, ScopeDriver, false},
		{LevelPhase, ScopeDriver, true},
		{LevelPhase, ScopeFile, false},
		{LevelDetail, ScopeFile, true},
		{LevelDetail, ScopeRule, false},
		{LevelDebug, ScopeRule, true},
	}
	for _, tt := range tests {
		if got := tt.level.ShouldEmit(tt.scope); got != tt.want {
			t.Errorf("%s.ShouldEmit(%s) = %v, want %v", tt.level, tt.scope, got, tt.want)
		}
	}
}

func TestParseLevel(t *testing.T) {
	if l, err := ParseLevel("DETAIL"); err != nil || l != LevelDetail {
		t.Fatalf("ParseLevel(DETAIL) = %v, %v", l, err)
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}

func TestStreamTracerText(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDetail, FormatText)

	span := Begin(tr, ScopeFile, "check:a.go", 0)
	Point(tr, ScopeRule, "rule:BN1001", "filtered out")
	span.WithExtra("diagnostics", "2").End("ok")

	out := buf.String()
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %q", out)
	}
	if !strings.Contains(lines[0], "→ check:a.go") {
		t.Errorf("begin line = %q", lines[0])
	}
	if !strings.Contains(lines[1], "← check:a.go (ok) {diagnostics=2}") {
		t.Errorf("end line = %q", lines[1])
	}
}

func TestErrorBypassesLevel(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelError, FormatNDJSON)
	Begin(tr, ScopeDriver, "run", 0).End("")
	Error(tr, "malformed", "a.go: Method name x is malformed.")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected only the error event, got %q", buf.String())
	}
	var ev map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &ev); err != nil {
		t.Fatalf("bad ndjson: %v", err)
	}
	if ev["name"] != "malformed" || ev["kind"] != "point" {
		t.Fatalf("event = %v", ev)
	}
}

func TestContextPropagation(t *testing.T) {
	if FromContext(context.Background()) != Nop {
		t.Fatalf("empty context must yield Nop")
	}
	tr := NewStreamTracer(&bytes.Buffer{}, LevelDebug, FormatText)
	ctx := WithParent(WithTracer(context.Background(), tr), 7)
	if FromContext(ctx) != Tracer(tr) {
		t.Fatalf("tracer not propagated")
	}
	if ParentSpan(ctx) != 7 {
		t.Fatalf("parent span = %d", ParentSpan(ctx))
	}
}

func TestInertSpan(t *testing.T) {
	s := Begin(Nop, ScopeDriver, "run", 0)
	if s.ID() != 0 || s.End("") != 0 {
		t.Fatalf("nop span must be inert")
	}
}
