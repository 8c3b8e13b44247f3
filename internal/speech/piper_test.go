package speech

import (
	"context"
	"encoding/binary"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// fakePiper writes a shell script that records its arguments and
// prints fixed PCM bytes
func fakePiper(t *testing.T) (bin, dir string) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake piper needs a POSIX shell")
	}

	dir = t.TempDir()
	bin = filepath.Join(dir, "piper")
	script := "#!/bin/sh\n" +
		"echo \"$@\" > \"" + filepath.Join(dir, "args.txt") + "\"\n" +
		"cat > \"" + filepath.Join(dir, "stdin.txt") + "\"\n" +
		"printf 'abcd'\n"
	if err := os.WriteFile(bin, []byte(script), 0o755); err != nil {
		t.Fatal(err)
	}
	return bin, dir
}

func TestNewPiper_MissingBinary(t *testing.T) {
	if _, err := NewPiper(PiperConfig{}); err == nil {
		t.Error("NewPiper() should require a binary path")
	}
	if _, err := NewPiper(PiperConfig{BinaryPath: filepath.Join(t.TempDir(), "nope")}); err == nil {
		t.Error("NewPiper() should fail for missing binary")
	}
}

func TestPiper_Synthesize(t *testing.T) {
	bin, dir := fakePiper(t)

	model := filepath.Join(dir, "thorsten.onnx")
	os.WriteFile(model, []byte("model"), 0o644)
	os.WriteFile(model+".json", []byte("{}"), 0o644)

	p, err := NewPiper(PiperConfig{BinaryPath: bin, SampleRate: 16000})
	if err != nil {
		t.Fatalf("NewPiper() error = %v", err)
	}

	rc, err := p.Synthesize(context.Background(), Request{Voice: model, Speed: 2.0, Input: "Hallo Welt"})
	if err != nil {
		t.Fatalf("Synthesize() error = %v", err)
	}
	wav, _ := io.ReadAll(rc)
	rc.Close()

	if string(wav[0:4]) != "RIFF" || string(wav[8:12]) != "WAVE" {
		t.Fatalf("output is not a WAV container: %q", wav[:12])
	}
	if rate := binary.LittleEndian.Uint32(wav[24:28]); rate != 16000 {
		t.Errorf("sample rate = %d, want 16000", rate)
	}
	if string(wav[wavHeaderSize:]) != "abcd" {
		t.Errorf("data chunk = %q, want abcd", wav[wavHeaderSize:])
	}

	args, _ := os.ReadFile(filepath.Join(dir, "args.txt"))
	for _, want := range []string{"--model " + model, "--output_raw", "--config " + model + ".json", "--length_scale 0.500"} {
		if !strings.Contains(string(args), want) {
			t.Errorf("args %q missing %q", args, want)
		}
	}

	stdin, _ := os.ReadFile(filepath.Join(dir, "stdin.txt"))
	if string(stdin) != "Hallo Welt" {
		t.Errorf("stdin = %q, want Hallo Welt", stdin)
	}
}

func TestPiper_NormalSpeedOmitsLengthScale(t *testing.T) {
	bin, dir := fakePiper(t)
	model := filepath.Join(dir, "anna.onnx")
	os.WriteFile(model, []byte("model"), 0o644)

	p, _ := NewPiper(PiperConfig{BinaryPath: bin})
	rc, err := p.Synthesize(context.Background(), Request{Voice: model, Speed: 1.0, Input: "x"})
	if err != nil {
		t.Fatalf("Synthesize() error = %v", err)
	}
	rc.Close()

	args, _ := os.ReadFile(filepath.Join(dir, "args.txt"))
	if strings.Contains(string(args), "--length_scale") {
		t.Errorf("args %q should not contain --length_scale", args)
	}
}

func TestPiper_MissingModel(t *testing.T) {
	bin, dir := fakePiper(t)
	p, _ := NewPiper(PiperConfig{BinaryPath: bin})

	if _, err := p.Synthesize(context.Background(), Request{Voice: filepath.Join(dir, "missing.onnx"), Input: "x"}); err == nil {
		t.Error("Synthesize() should fail for a missing model")
	}
	if _, err := p.Synthesize(context.Background(), Request{Input: "x"}); err == nil {
		t.Error("Synthesize() should fail without a model")
	}
}
