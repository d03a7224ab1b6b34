package grove

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"gopkg.in/yaml.v3"
)

// Config holds the renderer settings that are not part of a frame.
type Config struct {
	PanelModelURI         string        `yaml:"panel_model_uri"`
	PanelInvertedModelURI string        `yaml:"panel_inverted_model_uri"`
	FixedOrigins          []FixedOrigin `yaml:"fixed_origins"`
	Debug                 bool          `yaml:"debug"`
	MetricsNamespace      string        `yaml:"metrics_namespace"`
}

// FixedOrigin is a named reference frame that does not move.
type FixedOrigin struct {
	Path     string     `yaml:"path"`
	Position [3]float64 `yaml:"position"`
	// Rotation is a quaternion as x, y, z, w. Empty means no rotation.
	Rotation []float64 `yaml:"rotation"`
}

// Matrix returns the universe-from-origin matrix.
func (o FixedOrigin) Matrix() mgl64.Mat4 {
	t := TRS{Position: &mgl64.Vec3{o.Position[0], o.Position[1], o.Position[2]}}
	if len(o.Rotation) == 4 {
		q := mgl64.Quat{W: o.Rotation[3], V: mgl64.Vec3{o.Rotation[0], o.Rotation[1], o.Rotation[2]}}
		t.Rotation = &q
	}
	return localMatrix(&t)
}

// DefaultConfig returns the settings used when no config file is given.
func DefaultConfig() *Config {
	return &Config{
		PanelModelURI:         "models/panel/panel.glb",
		PanelInvertedModelURI: "models/panel/panel_inverted.glb",
		MetricsNamespace:      "grove",
	}
}

// LoadConfig reads a YAML config file over DefaultConfig.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// ParseConfig parses YAML config data over DefaultConfig and validates it.
func ParseConfig(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	cfg.applyDefaults()
	return cfg, cfg.Validate()
}

// applyDefaults fills fields an explicit empty value in the file cleared.
func (c *Config) applyDefaults() {
	def := DefaultConfig()
	if c.PanelModelURI == "" {
		c.PanelModelURI = def.PanelModelURI
	}
	if c.PanelInvertedModelURI == "" {
		c.PanelInvertedModelURI = c.PanelModelURI
	}
	if c.MetricsNamespace == "" {
		c.MetricsNamespace = def.MetricsNamespace
	}
}

// Validate checks fixed origins.
func (c *Config) Validate() error {
	seen := make(map[string]bool, len(c.FixedOrigins))
	for i, o := range c.FixedOrigins {
		if !strings.HasPrefix(o.Path, "/") {
			return fmt.Errorf("fixed_origins[%d]: path %q must start with /", i, o.Path)
		}
		if o.Path == PathStage {
			return fmt.Errorf("fixed_origins[%d]: %s is always identity", i, PathStage)
		}
		if seen[o.Path] {
			return fmt.Errorf("fixed_origins[%d]: duplicate path %q", i, o.Path)
		}
		seen[o.Path] = true
		if n := len(o.Rotation); n != 0 && n != 4 {
			return fmt.Errorf("fixed_origins[%d]: rotation needs 4 components, got %d", i, n)
		}
	}
	return nil
}

// fixedOrigins returns the fixed origin matrices keyed by path.
func (c *Config) fixedOrigins() map[string]mgl64.Mat4 {
	out := make(map[string]mgl64.Mat4, len(c.FixedOrigins))
	for _, o := range c.FixedOrigins {
		out[o.Path] = o.Matrix()
	}
	return out
}
