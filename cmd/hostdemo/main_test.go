package main

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/gogpu/hostapp"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{"debug", slog.LevelDebug, false},
		{"", slog.LevelInfo, false},
		{"WARN", slog.LevelWarn, false},
		{"error", slog.LevelError, false},
		{"loud", 0, true},
	}
	for _, tt := range tests {
		got, err := parseLevel(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("parseLevel(%q) = %v, %v", tt.in, got, err)
		}
	}
}

func TestApplyFlags(t *testing.T) {
	if err := rootCmd.Flags().Parse([]string{"--width", "300", "--msaa", "1", "--input", "none"}); err != nil {
		t.Fatal(err)
	}
	cfg := applyFlags(rootCmd, hostapp.DefaultConfig())
	if cfg.Width != 300 || cfg.SampleCount != 1 || cfg.Input.Source != "none" {
		t.Errorf("flags not applied: %+v", cfg)
	}
	if cfg.Height != hostapp.DefaultConfig().Height {
		t.Errorf("unset flag changed height to %d", cfg.Height)
	}
}

func TestDemoConfig(t *testing.T) {
	dir := t.TempDir()
	write := func(name, data string) string {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
			t.Fatal(err)
		}
		return path
	}

	tests := []struct {
		name      string
		path      string
		wantTitle string
		wantWidth int
	}{
		{"no file", "", demoTitle, hostapp.DefaultConfig().Width},
		{"file without title", write("size.yaml", "width: 300\n"), demoTitle, 300},
		{"file with title", write("title.yaml", "title: my game\n"), "my game", hostapp.DefaultConfig().Width},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := demoConfig(tt.path)
			if err != nil {
				t.Fatal(err)
			}
			if cfg.Title != tt.wantTitle || cfg.Width != tt.wantWidth {
				t.Errorf("config = %q %d, want %q %d", cfg.Title, cfg.Width, tt.wantTitle, tt.wantWidth)
			}
		})
	}

	if _, err := demoConfig(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("missing config file accepted")
	}
}

func TestDemoIcon(t *testing.T) {
	if err := demoIcon().Validate(); err != nil {
		t.Fatal(err)
	}
}

func TestGradientAt(t *testing.T) {
	for _, sec := range []float64{0, 1.3, 7, 100} {
		top, bottom := gradientAt(sec)
		for _, c := range []float64{top.R, top.G, top.B, bottom.R, bottom.G, bottom.B} {
			if c < 0 || c > 1 {
				t.Fatalf("gradientAt(%v) component %v out of range", sec, c)
			}
		}
		if top.A != 1 || bottom.A != 1 {
			t.Errorf("gradientAt(%v) not opaque", sec)
		}
	}
}

func TestFPSCounter(t *testing.T) {
	var f fpsCounter
	for i := 0; i < 40; i++ {
		f.add(1.0 / 60)
	}
	if f.rate < 59 || f.rate > 61 {
		t.Errorf("rate = %v, want ~60", f.rate)
	}
}
