package logs

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/reusee/dscope"
)

func TestHandler(t *testing.T) {
	buf := new(bytes.Buffer)
	dscope.New(new(Module)).Fork(
		func() Writer {
			return buf
		},
	).Call(func(
		logger Logger,
	) {
		ctx := context.WithValue(context.Background(), SpanKey, Span("foo"))
		logger.InfoContext(ctx, "run", "program", "MAIN")
		logger.With("verb", "bar").InfoContext(ctx, "call")
	})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %q", buf.String())
	}
	if !strings.Contains(lines[0], "program=MAIN") ||
		!strings.Contains(lines[0], "logs.span=foo") {
		t.Fatalf("got %v", lines[0])
	}
	if !strings.Contains(lines[1], "verb=bar") ||
		!strings.Contains(lines[1], "logs.span=foo") {
		t.Fatalf("got %v", lines[1])
	}
}

func TestToJournalKey(t *testing.T) {
	if got := toJournalKey("logs.span"); got != "LOGS_SPAN" {
		t.Fatalf("got %v", got)
	}
}

func TestWrapSpan(t *testing.T) {
	err := context.Canceled
	if got := WrapSpan(context.Background(), err); got != err {
		t.Fatalf("got %v", got)
	}
	ctx := context.WithValue(context.Background(), SpanKey, Span("abc"))
	wrapped := WrapSpan(ctx, err)
	if !strings.Contains(wrapped.Error(), "span: abc") {
		t.Fatalf("got %v", wrapped)
	}
	if wrapped == err {
		t.Fatal("should wrap")
	}
	if WrapSpan(ctx, nil) != nil {
		t.Fatal("nil should stay nil")
	}
}

func TestSetDefaultLevel(t *testing.T) {
	defer SetLevel(slog.LevelInfo)
	SetDefaultLevel(slog.LevelWarn)
	if level.Level() != slog.LevelWarn {
		t.Fatalf("got %v", level.Level())
	}
	levelFromFlag = true
	defer func() {
		levelFromFlag = false
	}()
	SetDefaultLevel(slog.LevelDebug)
	if level.Level() != slog.LevelWarn {
		t.Fatalf("got %v", level.Level())
	}
}
