package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{
		"off":    LevelOff,
		"":       LevelOff,
		"error":  LevelError,
		"PHASE":  LevelPhase,
		"detail": LevelDetail,
		"debug":  LevelDebug,
	}
	for in, want := range cases {
		got, err := ParseLevel(in)
		if err != nil {
			t.Fatalf("ParseLevel(%q): %v", in, err)
		}
		if got != want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Fatalf("ParseLevel accepted an unknown level")
	}
}

func TestShouldEmit(t *testing.T) {
	if LevelPhase.ShouldEmit(ScopeFile) {
		t.Fatalf("phase level must not emit file scope")
	}
	if !LevelDetail.ShouldEmit(ScopeFile) {
		t.Fatalf("detail level must emit file scope")
	}
	if LevelDetail.ShouldEmit(ScopeDir) {
		t.Fatalf("detail level must not emit dir scope")
	}
	if !LevelError.ShouldEmit(ScopeError) || LevelError.ShouldEmit(ScopePass) {
		t.Fatalf("error level must emit only error scope")
	}
	if LevelOff.ShouldEmit(ScopeError) {
		t.Fatalf("off level emitted")
	}
	for _, scope := range []Scope{ScopeDriver, ScopePass, ScopeFile, ScopeDir, ScopeError} {
		if !LevelDebug.ShouldEmit(scope) {
			t.Fatalf("debug level dropped %v", scope)
		}
	}
}

func TestNames(t *testing.T) {
	if LevelDetail.String() != "detail" || Level(99).String() != "unknown" {
		t.Fatalf("level names: %v %v", LevelDetail, Level(99))
	}
	if ScopeDir.String() != "dir" || Scope(0).String() != "unknown" {
		t.Fatalf("scope names: %v %v", ScopeDir, Scope(0))
	}
	if KindPoint.String() != "point" || Kind(0).String() != "unknown" {
		t.Fatalf("kind names: %v %v", KindPoint, Kind(0))
	}
}

func TestStreamTracerText(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDetail, FormatText)

	root := Begin(tr, ScopePass, "compile", 0)
	file := Begin(tr, ScopeFile, "a.vert", root.ID())
	file.WithExtra("exit", "0").End("ok")
	Point(tr, ScopeDir, "shaders", "", root.ID())
	root.End("")

	out := buf.String()
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines, want 4:\n%s", len(lines), out)
	}
	if !strings.Contains(lines[2], "file:a.vert (ok) {exit=0}") {
		t.Fatalf("unexpected end line %q", lines[2])
	}
}

func TestStreamTracerNDJSON(t *testing.T) {
	var buf bytes.Buffer
	tr, err := New(Config{Level: LevelPhase, Format: FormatNDJSON, Output: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	Begin(tr, ScopeDriver, "build", 0).End("done")

	dec := json.NewDecoder(&buf)
	var kinds []string
	for dec.More() {
		var ev map[string]any
		if err := dec.Decode(&ev); err != nil {
			t.Fatalf("decode: %v", err)
		}
		kinds = append(kinds, ev["kind"].(string))
	}
	if strings.Join(kinds, ",") != "begin,end" {
		t.Fatalf("kinds = %v", kinds)
	}
}

func TestContextDefaultsToNop(t *testing.T) {
	if FromContext(context.Background()) != Nop {
		t.Fatalf("expected Nop tracer")
	}
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDebug, FormatText)
	ctx := WithTracer(context.Background(), tr)
	if FromContext(ctx) != Tracer(tr) {
		t.Fatalf("tracer not propagated")
	}
	span := Begin(Nop, ScopeDriver, "noop", 0)
	if span.End("") != 0 || span.ID() != 0 {
		t.Fatalf("nop span recorded work")
	}
}

func TestNewOffReturnsNop(t *testing.T) {
	tr, err := New(Config{Level: LevelOff})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if tr.Enabled() {
		t.Fatalf("off tracer enabled")
	}
}
