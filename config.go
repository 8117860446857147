package hostapp

import (
	"fmt"
	"os"
	"strings"

	"github.com/gogpu/gputypes"
	"gopkg.in/yaml.v3"
)

// Config holds application settings. The zero value is not usable; start
// from DefaultConfig, LoadConfig or ParseConfig.
type Config struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`

	// SampleCount is the MSAA sample count: 1 or 4.
	SampleCount uint32 `yaml:"sample_count"`

	// PresentMode is one of "fifo", "mailbox", "immediate".
	PresentMode string `yaml:"present_mode"`

	// DepthFormat is one of "depth32float", "depth24plus".
	DepthFormat string `yaml:"depth_format"`

	// Backends is one of "primary", "all", "vulkan", "metal", "dx12", "gl".
	Backends string `yaml:"backends"`

	// PowerPreference is one of "high-performance", "low-power", "none".
	PowerPreference string `yaml:"power_preference"`

	Resizable  bool `yaml:"resizable"`
	Fullscreen bool `yaml:"fullscreen"`

	UI    UIConfig    `yaml:"ui"`
	Input InputConfig `yaml:"input"`
}

// UIConfig configures the overlay.
type UIConfig struct {
	// IniFile is where the overlay persists window layout. Empty disables
	// persistence.
	IniFile string `yaml:"ini_file"`

	// FontScale scales the overlay font on top of the display scale.
	FontScale float32 `yaml:"font_scale"`
}

// InputConfig configures the secondary input source.
type InputConfig struct {
	// Source names an input source ("sdl", "none"). Empty picks the best
	// registered one.
	Source string `yaml:"source"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Title:           "hostapp",
		Width:           1280,
		Height:          720,
		SampleCount:     4,
		PresentMode:     "fifo",
		DepthFormat:     "depth32float",
		Backends:        "primary",
		PowerPreference: "high-performance",
		Resizable:       true,
		UI: UIConfig{
			FontScale: 1,
		},
	}
}

// WithTitle returns a copy of c with the given window title.
func (c Config) WithTitle(title string) Config {
	c.Title = title
	return c
}

// WithSize returns a copy of c with the given initial window size.
func (c Config) WithSize(width, height int) Config {
	c.Width = width
	c.Height = height
	return c
}

// LoadConfig reads a YAML config file and applies it on top of
// DefaultConfig.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("hostapp: read config: %w", err)
	}
	return ParseConfig(data)
}

// ParseConfig parses YAML config data on top of DefaultConfig and
// validates the result.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: window size %dx%d", ErrInvalidConfig, c.Width, c.Height)
	}
	if c.SampleCount != 1 && c.SampleCount != 4 {
		return fmt.Errorf("%w: sample_count %d (want 1 or 4)", ErrInvalidConfig, c.SampleCount)
	}
	if _, ok := presentModes[strings.ToLower(c.PresentMode)]; !ok {
		return fmt.Errorf("%w: present_mode %q", ErrInvalidConfig, c.PresentMode)
	}
	if _, ok := depthFormats[strings.ToLower(c.DepthFormat)]; !ok {
		return fmt.Errorf("%w: depth_format %q", ErrInvalidConfig, c.DepthFormat)
	}
	if _, ok := backendSets[strings.ToLower(c.Backends)]; !ok {
		return fmt.Errorf("%w: backends %q", ErrInvalidConfig, c.Backends)
	}
	if _, ok := powerPreferences[strings.ToLower(c.PowerPreference)]; !ok {
		return fmt.Errorf("%w: power_preference %q", ErrInvalidConfig, c.PowerPreference)
	}
	if c.UI.FontScale < 0 {
		return fmt.Errorf("%w: ui.font_scale %v", ErrInvalidConfig, c.UI.FontScale)
	}
	return nil
}

var presentModes = map[string]gputypes.PresentMode{
	"fifo":      gputypes.PresentModeFifo,
	"mailbox":   gputypes.PresentModeMailbox,
	"immediate": gputypes.PresentModeImmediate,
}

var depthFormats = map[string]gputypes.TextureFormat{
	"depth32float": gputypes.TextureFormatDepth32Float,
	"depth24plus":  gputypes.TextureFormatDepth24Plus,
}

var backendSets = map[string]gputypes.Backends{
	"primary": gputypes.BackendsPrimary,
	"all":     gputypes.BackendsAll,
	"vulkan":  gputypes.BackendsVulkan,
	"metal":   gputypes.BackendsMetal,
	"dx12":    gputypes.BackendsDX12,
	"gl":      gputypes.BackendsGL,
}

var powerPreferences = map[string]gputypes.PowerPreference{
	"high-performance": gputypes.PowerPreferenceHighPerformance,
	"low-power":        gputypes.PowerPreferenceLowPower,
	"none":             gputypes.PowerPreferenceNone,
}

// GPUPresentMode returns the present mode. Unknown values map to FIFO,
// which every surface supports.
func (c Config) GPUPresentMode() gputypes.PresentMode {
	if m, ok := presentModes[strings.ToLower(c.PresentMode)]; ok {
		return m
	}
	return gputypes.PresentModeFifo
}

// GPUDepthFormat returns the depth target format.
func (c Config) GPUDepthFormat() gputypes.TextureFormat {
	if f, ok := depthFormats[strings.ToLower(c.DepthFormat)]; ok {
		return f
	}
	return gputypes.TextureFormatDepth32Float
}

// GPUBackends returns the set of backends the instance may use.
func (c Config) GPUBackends() gputypes.Backends {
	if b, ok := backendSets[strings.ToLower(c.Backends)]; ok {
		return b
	}
	return gputypes.BackendsPrimary
}

// GPUPowerPreference returns the adapter power preference.
func (c Config) GPUPowerPreference() gputypes.PowerPreference {
	if p, ok := powerPreferences[strings.ToLower(c.PowerPreference)]; ok {
		return p
	}
	return gputypes.PowerPreferenceHighPerformance
}
