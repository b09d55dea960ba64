package depot

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeFile(t, "depot.toml", `
workers = 4
initial_rows = 16

[logging]
level = "debug"
format = "json"
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Workers != 4 || cfg.InitialRows != 16 {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.InitialCapacity != DefaultConfig().InitialCapacity {
		t.Errorf("unset field lost its default: %d", cfg.InitialCapacity)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "json" {
		t.Errorf("logging = %+v", cfg.Logging)
	}
	log, err := NewLogger(cfg.Logging)
	if err != nil || log == nil {
		t.Fatalf("NewLogger: %v", err)
	}

	w, err := Factory.NewWorld(WithConfig(cfg), WithLogger(log))
	if err != nil {
		t.Fatalf("NewWorld: %v", err)
	}
	if w.cfg.Workers != 4 {
		t.Errorf("world workers = %d", w.cfg.Workers)
	}
}

func TestLoadConfigRejects(t *testing.T) {
	tests := map[string]string{
		"too many workers": "workers = 9",
		"no workers":       "workers = 0",
		"negative rows":    "initial_rows = -1",
		"not toml":         "workers = [",
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := LoadConfig(writeFile(t, "bad.toml", body)); err == nil {
				t.Errorf("LoadConfig accepted %q", body)
			}
		})
	}
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Errorf("LoadConfig accepted a missing file")
	}
	if _, err := Factory.NewWorld(WithConfig(Config{})); err == nil {
		t.Errorf("NewWorld accepted a zero Config")
	}
}

func TestManifest(t *testing.T) {
	path := writeFile(t, "components.yaml", `
components:
  - name: pos
    size: 16
  - name: vel
    size: 16
  - name: tag
    size: 1
`)
	m, err := LoadManifest(path)
	if err != nil {
		t.Fatalf("LoadManifest: %v", err)
	}
	if len(m.Components) != 3 || m.Components[2] != (ComponentSpec{Name: "tag", Size: 1}) {
		t.Fatalf("manifest = %+v", m)
	}

	w, _ := Factory.NewWorld()
	if err := w.RegisterManifest(m); err != nil {
		t.Fatalf("RegisterManifest: %v", err)
	}
	for i, cs := range m.Components {
		c, ok := w.Component(cs.Name)
		if !ok || c.Size() != cs.Size || c.Bit() != uint32(i) {
			t.Errorf("component %s = %+v, %v", cs.Name, c, ok)
		}
	}
	if err := w.RegisterManifest(m); err == nil {
		t.Errorf("registering a manifest twice succeeded")
	}
	if _, err := ParseManifest([]byte("components: [")); err == nil {
		t.Errorf("ParseManifest accepted broken yaml")
	}
}
