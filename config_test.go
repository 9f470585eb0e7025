package popover

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/vango-dev/popover/pkg/dom"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func captureLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return slog.New(slog.NewTextHandler(&buf, nil)), &buf
}

func baseConfig() Config {
	return Config{
		Target:  dom.Button("open"),
		Content: dom.Div("hello"),
	}
}

func TestReconcileAliasPrecedence(t *testing.T) {
	tests := []struct {
		name        string
		canonical   *bool
		deprecated  *bool
		wantEnabled bool
	}{
		{"both unset", nil, nil, false},
		{"deprecated only", nil, Bool(true), true},
		{"canonical only", Bool(true), nil, true},
		{"canonical false beats deprecated true", Bool(false), Bool(true), false},
		{"canonical true beats deprecated false", Bool(true), Bool(false), true},
	}

	for _, tt := range tests {
		t.Run("backdrop/"+tt.name, func(t *testing.T) {
			cfg := baseConfig()
			cfg.HasBackdrop = tt.canonical
			cfg.IsModal = tt.deprecated

			o, err := reconcile(cfg, quietLogger())
			if err != nil {
				t.Fatalf("reconcile: %v", err)
			}
			if o.HasBackdrop != tt.wantEnabled {
				t.Errorf("HasBackdrop = %v, want %v", o.HasBackdrop, tt.wantEnabled)
			}
		})
		t.Run("disabled/"+tt.name, func(t *testing.T) {
			cfg := baseConfig()
			cfg.Disabled = tt.canonical
			cfg.IsDisabled = tt.deprecated

			o, err := reconcile(cfg, quietLogger())
			if err != nil {
				t.Fatalf("reconcile: %v", err)
			}
			if o.Disabled != tt.wantEnabled {
				t.Errorf("Disabled = %v, want %v", o.Disabled, tt.wantEnabled)
			}
		})
	}
}

func TestReconcileDefaults(t *testing.T) {
	o, err := reconcile(baseConfig(), quietLogger())
	if err != nil {
		t.Fatalf("reconcile: %v", err)
	}

	if !o.CanEscapeKeyClose {
		t.Error("CanEscapeKeyClose must default to true")
	}
	if !o.OpenOnTargetFocus {
		t.Error("OpenOnTargetFocus must default to true")
	}
	if o.HoverOpenDelay != DefaultHoverOpenDelay {
		t.Errorf("HoverOpenDelay = %v, want %v", o.HoverOpenDelay, DefaultHoverOpenDelay)
	}
	if o.HoverCloseDelay != DefaultHoverCloseDelay {
		t.Errorf("HoverCloseDelay = %v, want %v", o.HoverCloseDelay, DefaultHoverCloseDelay)
	}
	if o.Controlled {
		t.Error("popover without IsOpen must be uncontrolled")
	}
	if o.IsOpen {
		t.Error("uncontrolled popover must start closed by default")
	}
}

func TestReconcileControlledByPresence(t *testing.T) {
	cfg := baseConfig()
	cfg.IsOpen = Bool(false)

	o, err := reconcile(cfg, quietLogger())
	if err != nil {
		t.Fatalf("reconcile: %v", err)
	}
	if !o.Controlled {
		t.Error("a non-nil IsOpen must switch the popover into controlled mode")
	}
}

func TestReconcileNegativeDelayClamped(t *testing.T) {
	logger, buf := captureLogger()
	cfg := baseConfig()
	cfg.HoverOpenDelay = Duration(-50 * time.Millisecond)

	o, err := reconcile(cfg, logger)
	if err != nil {
		t.Fatalf("reconcile: %v", err)
	}
	if o.HoverOpenDelay != 0 {
		t.Errorf("HoverOpenDelay = %v, want 0", o.HoverOpenDelay)
	}
	if !strings.Contains(buf.String(), "code=P006") {
		t.Errorf("missing P006 warning, got %q", buf.String())
	}
}

func TestReconcileChildrenResolution(t *testing.T) {
	t.Run("first child wins over Target", func(t *testing.T) {
		logger, buf := captureLogger()
		child := dom.Button("child target")
		cfg := Config{
			Target:   dom.Button("explicit"),
			Content:  dom.Div("body"),
			Children: []*dom.VNode{child},
		}

		o, err := reconcile(cfg, logger)
		if err != nil {
			t.Fatalf("reconcile: %v", err)
		}
		if o.Target != child {
			t.Error("first child must win over the explicit Target")
		}
		if !strings.Contains(buf.String(), "code=P002") {
			t.Errorf("missing P002 warning, got %q", buf.String())
		}
	})

	t.Run("second child wins over Content", func(t *testing.T) {
		logger, buf := captureLogger()
		second := dom.Div("child body")
		cfg := Config{
			Content:  dom.Div("explicit body"),
			Children: []*dom.VNode{dom.Button("t"), second},
		}

		o, err := reconcile(cfg, logger)
		if err != nil {
			t.Fatalf("reconcile: %v", err)
		}
		if o.Content != second {
			t.Error("second child must win over the explicit Content")
		}
		if !strings.Contains(buf.String(), "code=P003") {
			t.Errorf("missing P003 warning, got %q", buf.String())
		}
	})

	t.Run("more than two children warns", func(t *testing.T) {
		logger, buf := captureLogger()
		cfg := Config{
			Children: []*dom.VNode{dom.Button("t"), dom.Div("c"), dom.Div("extra")},
		}

		if _, err := reconcile(cfg, logger); err != nil {
			t.Fatalf("reconcile: %v", err)
		}
		if !strings.Contains(buf.String(), "code=P004") {
			t.Errorf("missing P004 warning, got %q", buf.String())
		}
	})
}

func TestReconcileMissingTarget(t *testing.T) {
	_, err := reconcile(Config{Content: dom.Div("body")}, quietLogger())
	if !errors.Is(err, ErrNoTarget) {
		t.Errorf("err = %v, want ErrNoTarget", err)
	}
}

func TestReconcileEmptyContentDegrades(t *testing.T) {
	tests := []struct {
		name    string
		content *dom.VNode
	}{
		{"nil content", nil},
		{"whitespace text", dom.Text("  \n\t ")},
		{"fragment of empties", dom.Fragment(dom.Text(""), dom.Text("   "))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, buf := captureLogger()
			cfg := Config{Target: dom.Button("t"), Content: tt.content, DefaultIsOpen: true}

			o, err := reconcile(cfg, logger)
			if err != nil {
				t.Fatalf("reconcile: %v", err)
			}
			if !o.Degraded {
				t.Error("empty content must degrade the popover")
			}
			if !o.Disabled || o.IsOpen {
				t.Error("degraded popover must be disabled and closed")
			}
			if !strings.Contains(buf.String(), "code=P005") {
				t.Errorf("missing P005 warning, got %q", buf.String())
			}
		})
	}
}

func TestReconcileRealContentNotDegraded(t *testing.T) {
	o, err := reconcile(baseConfig(), quietLogger())
	if err != nil {
		t.Fatalf("reconcile: %v", err)
	}
	if o.Degraded {
		t.Error("non-empty content must not degrade")
	}
}
