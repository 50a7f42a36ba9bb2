package log

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"slices"
	"strings"
	"testing"
)

func TestMake_Defaults(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf)

	if logger.Level() != LevelInfo {
		t.Errorf("expected default level info, got %v", logger.Level())
	}

	if logger.Format() != FormatText {
		t.Errorf("expected default format text, got %v", logger.Format())
	}

	if !logger.cfg.pretty || logger.cfg.caller {
		t.Errorf("unexpected defaults: pretty=%v caller=%v",
			logger.cfg.pretty, logger.cfg.caller)
	}
}

func TestLogger_LevelFiltering(t *testing.T) {
	tests := []struct {
		name  string
		level Level
		emit  func(Logger)
		want  bool
	}{
		{"trace below debug", LevelDebug, func(l Logger) { l.Trace("m") }, false},
		{"trace at trace", LevelTrace, func(l Logger) { l.Trace("m") }, true},
		{"debug at info", LevelInfo, func(l Logger) { l.Debug("m") }, false},
		{"info at info", LevelInfo, func(l Logger) { l.Info("m") }, true},
		{"warn at error", LevelError, func(l Logger) { l.Warn("m") }, false},
		{"error at error", LevelError, func(l Logger) { l.Error("m") }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer

			tt.emit(Make(&buf, WithLevel(tt.level), WithPretty(false)))

			if got := buf.Len() > 0; got != tt.want {
				t.Errorf("expected output=%v, got %q", tt.want, buf.String())
			}
		})
	}
}

func TestLogger_JSON(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf,
		WithFormat(FormatJSON),
		WithPretty(false),
		WithTimeLayout("none"),
		WithLevel(LevelTrace),
	)

	logger.Trace("expanded", slog.Int("line", 3))

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("invalid JSON %q: %v", buf.String(), err)
	}

	if rec["level"] != "TRACE" {
		t.Errorf("expected level TRACE, got %v", rec["level"])
	}

	if _, ok := rec["time"]; ok {
		t.Errorf("expected no time field, got %v", rec["time"])
	}

	if rec["line"] != float64(3) {
		t.Errorf("expected line 3, got %v", rec["line"])
	}
}

func TestLogger_With(t *testing.T) {
	for _, pretty := range []bool{false, true} {
		var buf bytes.Buffer

		logger := Make(&buf, WithPretty(pretty)).With(slog.String("arch", "x86_64"))
		logger.Info("walk")

		if !strings.Contains(buf.String(), "arch") ||
			!strings.Contains(buf.String(), "x86_64") {
			t.Errorf("pretty=%v: expected attribute in %q", pretty, buf.String())
		}
	}
}

func TestLogger_Wrap(t *testing.T) {
	var buf bytes.Buffer

	base := Make(&buf, WithLevel(LevelError))
	wrapped := base.Wrap(WithLevel(LevelDebug))

	if base.Level() != LevelError || wrapped.Level() != LevelDebug {
		t.Fatalf("unexpected levels base=%v wrapped=%v",
			base.Level(), wrapped.Level())
	}

	wrapped.Debug("visible")

	if !strings.Contains(buf.String(), "visible") {
		t.Errorf("expected wrapped logger to share output, got %q", buf.String())
	}
}

func TestLogger_ZeroValue(t *testing.T) {
	var logger Logger

	logger.Info("discarded")
	logger.With(slog.String("k", "v")).Error("discarded")

	if logger.Level() != DefaultLevel {
		t.Errorf("expected default level, got %v", logger.Level())
	}
}

func TestLogger_Caller(t *testing.T) {
	var buf bytes.Buffer

	Make(&buf, WithCaller(true), WithPretty(false)).Info("here")

	if !strings.Contains(buf.String(), "log_test.go") {
		t.Errorf("expected caller file in %q", buf.String())
	}
}

type valuer struct{}

func (valuer) LogValue() slog.Value {
	return slog.GroupValue(slog.String("error", "boom"))
}

func TestPrettyHandler(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		want   []string
	}{
		{"text", FormatText, []string{"msg", "hello", "INFO", "error", "boom"}},
		{"json", FormatJSON, []string{"{\n", "msg", "hello", "\n}"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer

			Make(&buf, WithFormat(tt.format), WithTimeLayout("")).
				Info("hello", slog.Any("err", valuer{}))

			for _, want := range tt.want {
				if !strings.Contains(buf.String(), want) {
					t.Errorf("expected %q in %q", want, buf.String())
				}
			}
		})
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"trace", LevelTrace},
		{"TRACE", LevelTrace},
		{"debug", LevelDebug},
		{"warn", LevelWarn},
		{"error", LevelError},
		{"bogus", DefaultLevel},
	}

	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseFormat(t *testing.T) {
	if ParseFormat(" JSON ") != FormatJSON {
		t.Error("expected json")
	}

	if ParseFormat("yaml") != DefaultFormat {
		t.Error("expected default for unknown format")
	}

	if got := slices.Collect(Formats()); !slices.Equal(got, []string{"text", "json"}) {
		t.Errorf("unexpected formats %v", got)
	}

	if got := slices.Collect(Levels()); len(got) != 5 || got[0] != "trace" {
		t.Errorf("unexpected levels %v", got)
	}
}

func TestPackageFunctions(t *testing.T) {
	original := Default()

	t.Cleanup(func() {
		defaultMu.Lock()
		defaultLog = original
		defaultMu.Unlock()
	})

	var buf bytes.Buffer

	Config(WithOutput(&buf), WithLevel(LevelDebug), WithPretty(false),
		WithFormat(FormatJSON))

	tests := []struct {
		name  string
		fn    func(string, ...slog.Attr)
		level string
	}{
		{"Debug", Debug, "DEBUG"},
		{"Info", Info, "INFO"},
		{"Warn", Warn, "WARN"},
		{"Error", Error, "ERROR"},
	}

	for _, tt := range tests {
		buf.Reset()
		tt.fn("message", slog.Any("error", errors.New("cause")))

		out := buf.String()
		if !strings.Contains(out, tt.level) || !strings.Contains(out, `"error":"cause"`) {
			t.Errorf("%s: unexpected output %q", tt.name, out)
		}
	}
}
