package term

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/backmassage/genretrends/internal/config"
)

func TestStderrColor_ExplicitModes(t *testing.T) {
	if !StderrColor(config.ColorAlways) {
		t.Error("ColorAlways should enable colors")
	}
	if StderrColor(config.ColorNever) {
		t.Error("ColorNever should disable colors")
	}
}

func TestResolve_Auto(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "plain"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	if resolve(config.ColorAuto, f) {
		t.Error("auto mode should stay off for a regular file")
	}
	if !resolve(config.ColorAlways, f) {
		t.Error("always mode ignores the sink")
	}
}

func TestIsTerminal(t *testing.T) {
	if IsTerminal(nil) {
		t.Error("nil file is not a terminal")
	}
	f, err := os.Create(filepath.Join(t.TempDir(), "plain"))
	if err != nil {
		t.Fatal(err)
	}
	f.Close()
	if IsTerminal(f) {
		t.Error("closed regular file is not a terminal")
	}
}
