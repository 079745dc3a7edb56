package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"go.viam.com/test"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	test.That(t, cfg.Validate(), test.ShouldBeNil)
	test.That(t, cfg.Port, test.ShouldEqual, 8080)
	test.That(t, cfg.BroadcastInterval(), test.ShouldEqual, 16*time.Millisecond)
}

func TestValidateCombinesErrors(t *testing.T) {
	cfg := &Config{Port: -1, Theme: "sepia", BroadcastIntervalMS: -5}
	err := cfg.Validate()
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "port -1 out of range")
	test.That(t, err.Error(), test.ShouldContainSubstring, `unknown theme "sepia"`)
	test.That(t, err.Error(), test.ShouldContainSubstring, "must not be negative")
}

func TestRead(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "armviz.json")
	err := os.WriteFile(path, []byte(`{"port": 9000, "theme": "light"}`), 0o600)
	test.That(t, err, test.ShouldBeNil)

	cfg, err := Read(path)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, cfg.Port, test.ShouldEqual, 9000)
	test.That(t, cfg.Theme, test.ShouldEqual, "light")
	// unset fields keep defaults
	test.That(t, cfg.BroadcastIntervalMS, test.ShouldEqual, 16)

	_, err = Read(filepath.Join(dir, "missing.json"))
	test.That(t, err, test.ShouldNotBeNil)

	bad := filepath.Join(dir, "bad.json")
	test.That(t, os.WriteFile(bad, []byte(`{"port": 9000`), 0o600), test.ShouldBeNil)
	_, err = Read(bad)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "cannot parse")
}

func TestThemePalette(t *testing.T) {
	for _, name := range []string{"dark", "light"} {
		p, err := ThemePalette(name)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, p.Name, test.ShouldEqual, name)
		test.That(t, p.Links, test.ShouldHaveLength, 5)
		for _, hex := range append([]string{p.Background, p.Ground, p.Pedestal, p.Accent}, p.Links...) {
			test.That(t, strings.HasPrefix(hex, "#"), test.ShouldBeTrue)
			test.That(t, hex, test.ShouldHaveLength, 7)
		}
	}

	dark, _ := ThemePalette("dark")
	light, _ := ThemePalette("light")
	test.That(t, dark.Background, test.ShouldNotEqual, light.Background)

	_, err := ThemePalette("solarized")
	test.That(t, err, test.ShouldNotBeNil)
}
