package conversion

import (
	"os"
	"path/filepath"
	"testing"
)

func TestTextPath(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"foo.mp3", "foo.txt"},
		{"greet.mp3", "greet.txt"},
		{"/tmp/out/speech.wav", "/tmp/out/speech.txt"},
		{"archive.tar.mp3", "archive.tar.txt"},
		{"noext", "noext.txt"},
		{filepath.Join("dir.v2", "out"), filepath.Join("dir.v2", "out.txt")},
		{"trailing.", "trailing.txt"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := TextPath(tt.input); got != tt.expected {
				t.Errorf("TextPath(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestLoadTextFile(t *testing.T) {
	content := "Zeile eins\n  Zeile zwei mit Leerzeichen  \n\n"
	path := filepath.Join(t.TempDir(), "input.txt")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := LoadTextFile(path)
	if err != nil {
		t.Fatalf("LoadTextFile() error = %v", err)
	}
	if got != content {
		t.Errorf("LoadTextFile() = %q, want %q", got, content)
	}
}

func TestLoadTextFile_Missing(t *testing.T) {
	if _, err := LoadTextFile(filepath.Join(t.TempDir(), "missing.txt")); err == nil {
		t.Error("LoadTextFile() should fail for missing file")
	}
}
