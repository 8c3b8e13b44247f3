package conversion

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/msto63/sprachwerk/internal/speech"
	"github.com/msto63/sprachwerk/pkg/core/config"
)

// fakeSynth is a substitute speech client
type fakeSynth struct {
	mu      sync.Mutex
	calls   []speech.Request
	audio   string
	err     error
	readErr error
	release chan struct{}
}

func (f *fakeSynth) Name() string { return "fake" }

func (f *fakeSynth) Synthesize(ctx context.Context, req speech.Request) (io.ReadCloser, error) {
	f.mu.Lock()
	f.calls = append(f.calls, req)
	f.mu.Unlock()

	if f.release != nil {
		select {
		case <-f.release:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if f.err != nil {
		return nil, f.err
	}
	if f.readErr != nil {
		return io.NopCloser(&failingReader{data: f.audio, err: f.readErr}), nil
	}
	return io.NopCloser(strings.NewReader(f.audio)), nil
}

func (f *fakeSynth) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

type failingReader struct {
	data string
	err  error
	done bool
}

func (r *failingReader) Read(p []byte) (int, error) {
	if r.done {
		return 0, r.err
	}
	r.done = true
	return copy(p, r.data), nil
}

func testOptions() Options {
	return Options{
		Model:  "tts-1",
		Format: "mp3",
		Voices: map[Voice]string{VoicePrimary: "alloy", VoiceSecondary: "onyx"},
	}
}

func testRequest(t *testing.T, name string) Request {
	t.Helper()
	req, err := Validate(FormInput{
		Text:       "Hello world",
		Voice:      "secondary",
		Speed:      "1.0",
		OutputPath: filepath.Join(t.TempDir(), name),
	})
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	return req
}

func TestConverter_Convert(t *testing.T) {
	synth := &fakeSynth{audio: "ID3-audio-bytes"}
	conv := NewConverter(synth, testOptions(), nil)
	req := testRequest(t, "greet.mp3")

	res := conv.Convert(context.Background(), req)
	if !res.OK() {
		t.Fatalf("Convert() error = %v", res.Err)
	}

	audio, err := os.ReadFile(req.OutputPath)
	if err != nil || string(audio) != "ID3-audio-bytes" {
		t.Errorf("audio file = %q, %v", audio, err)
	}

	wantText := filepath.Join(filepath.Dir(req.OutputPath), "greet.txt")
	if res.TextPath != wantText {
		t.Errorf("TextPath = %v, want %v", res.TextPath, wantText)
	}
	text, err := os.ReadFile(wantText)
	if err != nil || string(text) != "Hello world" {
		t.Errorf("text file = %q, %v", text, err)
	}

	if res.Bytes != int64(len("ID3-audio-bytes")) {
		t.Errorf("Bytes = %d", res.Bytes)
	}

	if synth.callCount() != 1 {
		t.Fatalf("calls = %d, want 1", synth.callCount())
	}
	call := synth.calls[0]
	if call.Model != "tts-1" || call.Voice != "onyx" || call.Speed != 1.0 || call.Input != "Hello world" || call.Format != "mp3" {
		t.Errorf("synthesis request = %+v", call)
	}
}

func TestConverter_OverwritesExistingText(t *testing.T) {
	conv := NewConverter(&fakeSynth{audio: "a"}, testOptions(), nil)
	req := testRequest(t, "out.mp3")
	os.WriteFile(req.TextPath(), []byte("old content that is longer"), 0o644)

	if res := conv.Convert(context.Background(), req); !res.OK() {
		t.Fatalf("Convert() error = %v", res.Err)
	}
	text, _ := os.ReadFile(req.TextPath())
	if string(text) != "Hello world" {
		t.Errorf("text file = %q, want overwritten content", text)
	}
}

func TestConverter_ServiceError(t *testing.T) {
	synth := &fakeSynth{err: errors.New("401 invalid api key")}
	conv := NewConverter(synth, testOptions(), nil)
	req := testRequest(t, "fail.mp3")

	res := conv.Convert(context.Background(), req)
	if res.OK() {
		t.Fatal("Convert() should fail")
	}
	if CodeOf(res.Err) != CodeServiceError {
		t.Errorf("code = %v, want %v", CodeOf(res.Err), CodeServiceError)
	}
	if !strings.Contains(res.Err.Error(), "401 invalid api key") {
		t.Errorf("error %q should carry the service message", res.Err)
	}

	if _, err := os.Stat(req.OutputPath); !os.IsNotExist(err) {
		t.Error("no audio file should be written on service error")
	}
	if _, err := os.Stat(req.TextPath()); !os.IsNotExist(err) {
		t.Error("no text file should be written on service error")
	}
	if conv.Busy() {
		t.Error("converter should be idle after failure")
	}
}

func TestConverter_StreamErrorLeavesPartialAudio(t *testing.T) {
	synth := &fakeSynth{audio: "partial", readErr: errors.New("connection reset")}
	conv := NewConverter(synth, testOptions(), nil)
	req := testRequest(t, "partial.mp3")

	res := conv.Convert(context.Background(), req)
	if CodeOf(res.Err) != CodeServiceError {
		t.Fatalf("code = %v, want %v", CodeOf(res.Err), CodeServiceError)
	}

	audio, err := os.ReadFile(req.OutputPath)
	if err != nil || string(audio) != "partial" {
		t.Errorf("partial audio = %q, %v", audio, err)
	}
	if _, err := os.Stat(req.TextPath()); !os.IsNotExist(err) {
		t.Error("text file should not be written after a failed stream")
	}
}

func TestConverter_FileWriteError(t *testing.T) {
	conv := NewConverter(&fakeSynth{audio: "a"}, testOptions(), nil)
	req := testRequest(t, "x.mp3")
	req.OutputPath = filepath.Join(t.TempDir(), "missing-dir", "x.mp3")

	res := conv.Convert(context.Background(), req)
	if CodeOf(res.Err) != CodeFileWriteError {
		t.Errorf("code = %v, want %v", CodeOf(res.Err), CodeFileWriteError)
	}
}

func TestConverter_MissingBackendVoice(t *testing.T) {
	synth := &fakeSynth{audio: "a"}
	opts := testOptions()
	delete(opts.Voices, VoiceSecondary)
	conv := NewConverter(synth, opts, nil)

	res := conv.Convert(context.Background(), testRequest(t, "v.mp3"))
	if CodeOf(res.Err) != CodeInvalidVoice {
		t.Errorf("code = %v, want %v", CodeOf(res.Err), CodeInvalidVoice)
	}
	if synth.callCount() != 0 {
		t.Error("no synthesis call expected")
	}
}

func TestConverter_StartDeliversOneResult(t *testing.T) {
	conv := NewConverter(&fakeSynth{audio: "a"}, testOptions(), nil)

	results, err := conv.Start(context.Background(), testRequest(t, "s.mp3"))
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	select {
	case res := <-results:
		if !res.OK() {
			t.Errorf("result error = %v", res.Err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for result")
	}

	if _, open := <-results; open {
		t.Error("channel should be closed after the result")
	}
}

func TestConverter_GuardRejectsSecondStart(t *testing.T) {
	synth := &fakeSynth{audio: "a", release: make(chan struct{})}
	conv := NewConverter(synth, testOptions(), nil)

	first, err := conv.Start(context.Background(), testRequest(t, "first.mp3"))
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if !conv.Busy() {
		t.Error("Busy() = false while a conversion runs")
	}

	if _, err := conv.Start(context.Background(), testRequest(t, "second.mp3")); !errors.Is(err, ErrConversionInProgress) {
		t.Errorf("second Start() error = %v, want ErrConversionInProgress", err)
	}
	if res := conv.Convert(context.Background(), testRequest(t, "third.mp3")); !errors.Is(res.Err, ErrConversionInProgress) {
		t.Errorf("Convert() during run error = %v, want ErrConversionInProgress", res.Err)
	}

	close(synth.release)
	<-first

	if synth.callCount() != 1 {
		t.Errorf("calls = %d, want 1", synth.callCount())
	}
	if conv.Busy() {
		t.Error("Busy() = true after the result was delivered")
	}

	// The guard is released, a new conversion may start
	again, err := conv.Start(context.Background(), testRequest(t, "again.mp3"))
	if err != nil {
		t.Fatalf("Start() after completion error = %v", err)
	}
	<-again
}

// panicSynth fails by panicking inside Synthesize
type panicSynth struct{}

func (panicSynth) Name() string { return "panic" }

func (panicSynth) Synthesize(ctx context.Context, req speech.Request) (io.ReadCloser, error) {
	panic("backend exploded")
}

func TestConverter_BackendPanic(t *testing.T) {
	t.Run("Convert", func(t *testing.T) {
		conv := NewConverter(panicSynth{}, testOptions(), nil)
		req := testRequest(t, "p.mp3")

		res := conv.Convert(context.Background(), req)
		if CodeOf(res.Err) != CodeServiceError {
			t.Errorf("code = %v, want %v (err %v)", CodeOf(res.Err), CodeServiceError, res.Err)
		}
		if !strings.Contains(res.Err.Error(), "backend exploded") {
			t.Errorf("error %q should carry the panic value", res.Err)
		}
		if conv.Busy() {
			t.Error("converter should be idle after a panic")
		}
		if _, err := os.Stat(req.TextPath()); !os.IsNotExist(err) {
			t.Error("text file must not be written")
		}
	})

	t.Run("Start", func(t *testing.T) {
		conv := NewConverter(panicSynth{}, testOptions(), nil)

		results, err := conv.Start(context.Background(), testRequest(t, "p.mp3"))
		if err != nil {
			t.Fatalf("Start() error = %v", err)
		}

		select {
		case res := <-results:
			if CodeOf(res.Err) != CodeServiceError {
				t.Errorf("code = %v, want %v", CodeOf(res.Err), CodeServiceError)
			}
		case <-time.After(5 * time.Second):
			t.Fatal("timed out waiting for result")
		}

		if conv.Busy() {
			t.Error("converter should be idle after a panic")
		}
		if _, err := conv.Start(context.Background(), testRequest(t, "q.mp3")); err != nil {
			t.Errorf("Start() after panic error = %v", err)
		}
	})
}

func TestConverter_Timeout(t *testing.T) {
	synth := &fakeSynth{release: make(chan struct{})}
	opts := testOptions()
	opts.Timeout = 20 * time.Millisecond
	conv := NewConverter(synth, opts, nil)

	res := conv.Convert(context.Background(), testRequest(t, "slow.mp3"))
	if !errors.Is(res.Err, context.DeadlineExceeded) {
		t.Errorf("error = %v, want deadline exceeded", res.Err)
	}
}

func TestOptionsFromConfig(t *testing.T) {
	cfg := config.Default()
	opts := OptionsFromConfig(cfg)
	if opts.Voices[VoicePrimary] != "alloy" || opts.Voices[VoiceSecondary] != "onyx" {
		t.Errorf("openai voices = %v", opts.Voices)
	}
	if opts.Model != "tts-1" || opts.Format != "mp3" {
		t.Errorf("opts = %+v", opts)
	}

	cfg.Speech.Backend = config.BackendPiper
	cfg.Voices.PrimaryModel = "/m/a.onnx"
	cfg.Voices.SecondaryModel = "/m/b.onnx"
	opts = OptionsFromConfig(cfg)
	if opts.Voices[VoiceSecondary] != "/m/b.onnx" {
		t.Errorf("piper voices = %v", opts.Voices)
	}

	cfg.Speech.Backend = config.BackendSay
	opts = OptionsFromConfig(cfg)
	if opts.Voices[VoicePrimary] != "Anna" || opts.Voices[VoiceSecondary] != "Markus" {
		t.Errorf("say voices = %v", opts.Voices)
	}
}
