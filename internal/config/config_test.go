package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "settings.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultSettings(t *testing.T) {
	t.Parallel()

	s := DefaultSettings()
	if s.PageSize != "a4" || s.Orientation != "portrait" || s.Filename != "document.pdf" {
		t.Errorf("DefaultSettings() = %+v", s)
	}
	if s.MarginMm() != DefaultMargin {
		t.Errorf("MarginMm() = %v for absent key, want %v", s.MarginMm(), DefaultMargin)
	}
	if !s.Fonts() {
		t.Errorf("Fonts() = false for absent key, want true")
	}
	if !s.CodeBlocks() {
		t.Errorf("CodeBlocks() = false for absent key, want true")
	}
}

func TestLoad(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `
pageSize: letter
orientation: landscape
margin: 20
filename: report.pdf
includeFonts: false
`)

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}

	if s.PageSize != "letter" {
		t.Errorf("PageSize = %q, want letter", s.PageSize)
	}
	if s.Orientation != "landscape" {
		t.Errorf("Orientation = %q, want landscape", s.Orientation)
	}
	if s.MarginMm() != 20 {
		t.Errorf("MarginMm() = %v, want 20", s.MarginMm())
	}
	if s.Filename != "report.pdf" {
		t.Errorf("Filename = %q, want report.pdf", s.Filename)
	}
	if s.Fonts() {
		t.Errorf("Fonts() = true, want false (explicitly disabled)")
	}
	if !s.CodeBlocks() {
		t.Errorf("CodeBlocks() = false for absent key, want true")
	}
}

func TestLoad_AbsentKeysGetDefaults(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, "pageSize: a3\n")

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}
	if s.PageSize != "a3" {
		t.Errorf("PageSize = %q, want a3", s.PageSize)
	}
	if s.Orientation != DefaultOrientation {
		t.Errorf("Orientation = %q, want default %q", s.Orientation, DefaultOrientation)
	}
	if s.MarginMm() != DefaultMargin {
		t.Errorf("MarginMm() = %v, want default %v", s.MarginMm(), DefaultMargin)
	}
	if s.Filename != DefaultFilename {
		t.Errorf("Filename = %q, want default %q", s.Filename, DefaultFilename)
	}
}

func TestLoad_ExplicitZeroMargin(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, "margin: 0\n")

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}
	if s.MarginMm() != 0 {
		t.Errorf("explicit margin: 0 loaded as %v, want 0", s.MarginMm())
	}
}

func TestLoad_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		nameOrPath func(t *testing.T) string
		wantErr    error
	}{
		{
			name:       "empty name",
			nameOrPath: func(*testing.T) string { return "" },
			wantErr:    ErrEmptyConfigName,
		},
		{
			name: "missing file path",
			nameOrPath: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "nope.yaml")
			},
			wantErr: ErrConfigNotFound,
		},
		{
			name: "unknown name",
			nameOrPath: func(*testing.T) string {
				return "definitely-not-a-config-name"
			},
			wantErr: ErrConfigNotFound,
		},
		{
			name: "unknown key rejected",
			nameOrPath: func(t *testing.T) string {
				return writeConfig(t, "paperSize: a4\n")
			},
			wantErr: ErrConfigParse,
		},
		{
			name: "malformed yaml",
			nameOrPath: func(t *testing.T) string {
				return writeConfig(t, "pageSize: [unclosed\n")
			},
			wantErr: ErrConfigParse,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(tt.nameOrPath(t))
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Load() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Parallel()

	off := false
	margin := 25.0
	original := Settings{
		PageSize:         "legal",
		Orientation:      "landscape",
		Margin:           &margin,
		Filename:         "contract.pdf",
		IncludeFonts:     &off,
		RenderCodeBlocks: &off,
	}

	path := filepath.Join(t.TempDir(), "nested", "settings.yaml")
	if err := Save(path, original); err != nil {
		t.Fatalf("Save() unexpected error: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}

	if loaded.PageSize != original.PageSize ||
		loaded.Orientation != original.Orientation ||
		loaded.MarginMm() != margin ||
		loaded.Filename != original.Filename {
		t.Errorf("round trip mismatch: %+v != %+v", loaded, original)
	}
	if loaded.Fonts() || loaded.CodeBlocks() {
		t.Errorf("round trip lost explicit false values: fonts=%v code=%v", loaded.Fonts(), loaded.CodeBlocks())
	}
}
