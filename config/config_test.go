package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/RyanBlaney/sonido-samples/algorithms/windowing"
	"github.com/RyanBlaney/sonido-samples/samplefile"
)

func TestDefaultIsValid(t *testing.T) {
	c := Default()
	if err := c.Validate(); err != nil {
		t.Fatal(err)
	}
	w, err := c.File.Writer()
	if err != nil {
		t.Fatal(err)
	}
	if w.Mode != samplefile.Scatter || w.Precision != samplefile.DefaultPrecision {
		t.Fatalf("writer %+v", w)
	}
	if wt, _ := c.Spectrum.WindowType(); wt != windowing.Hamming {
		t.Fatalf("window %v", wt)
	}
}

func TestLoadDefaults(t *testing.T) {
	c, err := Load(NewViper(), "")
	if err != nil {
		t.Fatal(err)
	}
	if *c != *Default() {
		t.Fatalf("got %+v, want %+v", c, Default())
	}
}

func TestLoadFileAndEnvironment(t *testing.T) {
	name := filepath.Join(t.TempDir(), "samples.yaml")
	text := "file:\n  mode: binary\n  gzip_level: 5\nfilter:\n  width: 2.5\n  passes: 2\nspectrum:\n  window: sine2\n"
	if err := os.WriteFile(name, []byte(text), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("SAMPLES_FILTER_PASSES", "4")

	c, err := Load(NewViper(), name)
	if err != nil {
		t.Fatal(err)
	}
	if c.File.Mode != "binary" || c.File.GzipLevel != 5 || c.Filter.Width != 2.5 {
		t.Fatalf("file values not applied: %+v", c)
	}
	if c.Filter.Passes != 4 {
		t.Fatalf("environment override: passes = %d", c.Filter.Passes)
	}
	if c.Filter.Decay != DefaultFilterConfig().Decay {
		t.Fatalf("default lost: decay = %v", c.Filter.Decay)
	}
	if wt, err := c.Spectrum.WindowType(); err != nil || wt != windowing.Sine2 {
		t.Fatalf("window %v, %v", wt, err)
	}
}

func TestValidateReportsEveryProblem(t *testing.T) {
	c := Default()
	c.File.Mode = "x"
	c.Filter.Decay = 1.5
	c.Spectrum.Window = "triangle"
	err := c.Validate()
	if err == nil {
		t.Fatal("invalid config accepted")
	}
	for _, key := range []string{"file.mode", "filter.decay", "spectrum.window"} {
		if !strings.Contains(err.Error(), key) {
			t.Errorf("error %q does not mention %s", err, key)
		}
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(NewViper(), filepath.Join(t.TempDir(), "none.yaml")); err == nil {
		t.Fatal("missing config file accepted")
	}
}
