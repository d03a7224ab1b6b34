package grove

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should be valid: %v", err)
	}
	if cfg.PanelModelURI == "" || cfg.MetricsNamespace != "grove" {
		t.Errorf("defaults = %+v", cfg)
	}
}

func TestLoadConfig(t *testing.T) {
	data := `
panel_model_uri: "assets/panel.glb"
debug: true
metrics_namespace: "vr"
fixed_origins:
  - path: /space/table
    position: [0, 0.8, -1]
  - path: /space/wall
    position: [0, 1.5, -3]
    rotation: [0, 0.7071067811865476, 0, 0.7071067811865476]
`
	path := filepath.Join(t.TempDir(), "grove.yaml")
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.PanelModelURI != "assets/panel.glb" {
		t.Errorf("PanelModelURI = %q", cfg.PanelModelURI)
	}
	// Not set in the file: keeps its default.
	if cfg.PanelInvertedModelURI != DefaultConfig().PanelInvertedModelURI {
		t.Errorf("PanelInvertedModelURI = %q", cfg.PanelInvertedModelURI)
	}
	if !cfg.Debug || cfg.MetricsNamespace != "vr" {
		t.Errorf("cfg = %+v", cfg)
	}

	origins := cfg.fixedOrigins()
	assertMatrix(t, "table", origins["/space/table"], mgl64.Translate3D(0, 0.8, -1))
	wall := origins["/space/wall"]
	assertVec(t, "wall position", translationOf(wall), mgl64.Vec3{0, 1.5, -3})
	assertVec(t, "wall x axis", transformDirection(wall, mgl64.Vec3{1, 0, 0}), mgl64.Vec3{0, 0, -1})
}

func TestParseConfigEmptyValuesDefaulted(t *testing.T) {
	cfg, err := ParseConfig([]byte(`panel_model_uri: ""` + "\n" + `metrics_namespace: ""`))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.PanelModelURI != DefaultConfig().PanelModelURI || cfg.MetricsNamespace != "grove" {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestValidateRejects(t *testing.T) {
	cases := map[string]string{
		"relative path":  "fixed_origins: [{path: table}]",
		"stage override": "fixed_origins: [{path: /space/stage}]",
		"duplicate path": "fixed_origins: [{path: /a}, {path: /a}]",
		"short rotation": "fixed_origins: [{path: /a, rotation: [0, 0, 1]}]",
		"malformed yaml": "fixed_origins: [",
	}
	for name, data := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := ParseConfig([]byte(data)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error")
	}
}
