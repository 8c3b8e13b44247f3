// ============================================================================
// Sprachwerk - Text-to-Speech Formular
// ============================================================================
//
// Package:     conversion
// Description: Conversion worker: one synthesis call, two output files
// Author:      Mike Stoffels
// Created:     2026-10-18
// License:     MIT
// ============================================================================

package conversion

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync/atomic"
	"time"

	"github.com/msto63/sprachwerk/internal/speech"
	"github.com/msto63/sprachwerk/pkg/core/config"
	"github.com/msto63/sprachwerk/pkg/core/logging"
)

// Options holds the fixed parameters of every synthesis call
type Options struct {
	// Model is the fixed model identifier
	Model string

	// Format is the requested audio container
	Format string

	// Voices maps logical voices to backend voices
	Voices map[Voice]string

	// Timeout bounds a single conversion (0 = no limit)
	Timeout time.Duration
}

// OptionsFromConfig builds Options for the configured backend
func OptionsFromConfig(cfg *config.Config) Options {
	voices := map[Voice]string{
		VoicePrimary:   cfg.Voices.Primary,
		VoiceSecondary: cfg.Voices.Secondary,
	}
	switch cfg.Speech.Backend {
	case config.BackendPiper:
		voices = map[Voice]string{
			VoicePrimary:   cfg.Voices.PrimaryModel,
			VoiceSecondary: cfg.Voices.SecondaryModel,
		}
	case config.BackendSay:
		voices = map[Voice]string{
			VoicePrimary:   cfg.Voices.PrimarySay,
			VoiceSecondary: cfg.Voices.SecondarySay,
		}
	}

	return Options{
		Model:   cfg.Speech.Model,
		Format:  cfg.Speech.ResponseFormat,
		Voices:  voices,
		Timeout: cfg.Speech.Timeout.Duration,
	}
}

// Result is the outcome of one conversion
type Result struct {
	Request   Request
	AudioPath string
	TextPath  string
	Bytes     int64
	Duration  time.Duration
	Err       error
}

// OK reports whether both files were written
func (r Result) OK() bool {
	return r.Err == nil
}

// Converter runs conversions against a Synthesizer, one at a time
type Converter struct {
	synth  speech.Synthesizer
	opts   Options
	logger *logging.Logger
	busy   atomic.Bool
}

// NewConverter creates a Converter. A nil logger discards log output.
func NewConverter(synth speech.Synthesizer, opts Options, logger *logging.Logger) *Converter {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Converter{
		synth:  synth,
		opts:   opts,
		logger: logger,
	}
}

// Busy reports whether a conversion is running
func (c *Converter) Busy() bool {
	return c.busy.Load()
}

// Convert runs one conversion and blocks until it is done
func (c *Converter) Convert(ctx context.Context, req Request) Result {
	if !c.busy.CompareAndSwap(false, true) {
		return Result{Request: req, Err: ErrConversionInProgress}
	}
	defer c.busy.Store(false)
	return c.safeRun(ctx, req)
}

// Start runs one conversion on its own goroutine. The returned channel
// receives exactly one Result and is then closed. A second Start while
// a conversion runs fails with ErrConversionInProgress.
func (c *Converter) Start(ctx context.Context, req Request) (<-chan Result, error) {
	if !c.busy.CompareAndSwap(false, true) {
		c.logger.Warn("Conversion rejected, another one is running", logging.String("request_id", req.ID))
		return nil, ErrConversionInProgress
	}

	results := make(chan Result, 1)
	go func() {
		defer close(results)
		res := c.safeRun(ctx, req)
		// Release before delivering so the receiver may start the next one
		c.busy.Store(false)
		results <- res
	}()
	return results, nil
}

// safeRun turns a panic in the backend into a failed Result
func (c *Converter) safeRun(ctx context.Context, req Request) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			res = Result{
				Request:   req,
				AudioPath: req.OutputPath,
				TextPath:  req.TextPath(),
				Err:       newError(CodeServiceError, "speech backend panicked", fmt.Errorf("%v", r)),
			}
			c.logger.WithRequestID(req.ID).ErrorWithErr("Conversion failed", res.Err)
		}
	}()
	return c.run(ctx, req)
}

func (c *Converter) run(ctx context.Context, req Request) Result {
	logger := c.logger.WithRequestID(req.ID)
	res := Result{Request: req, AudioPath: req.OutputPath, TextPath: req.TextPath()}
	start := time.Now()

	backendVoice := c.opts.Voices[req.Voice]
	if backendVoice == "" {
		res.Err = newError(CodeInvalidVoice, fmt.Sprintf("no backend voice configured for %s", req.Voice), nil)
		logger.ErrorWithErr("Conversion failed", res.Err)
		return res
	}

	logger.Info("Starting conversion", logging.Fields{
		"backend":     c.synth.Name(),
		"voice":       string(req.Voice),
		"voice_id":    backendVoice,
		"speed":       req.Speed,
		"text_length": len([]rune(req.Text)),
		"output":      req.OutputPath,
	})

	if c.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.opts.Timeout)
		defer cancel()
	}

	timer := logger.StartTimer("synthesize")
	audio, err := c.synth.Synthesize(ctx, speech.Request{
		Model:  c.opts.Model,
		Voice:  backendVoice,
		Speed:  req.Speed,
		Input:  req.Text,
		Format: c.opts.Format,
	})
	if err != nil {
		timer.StopWithError(err)
		res.Err = newError(CodeServiceError, "speech synthesis failed", err)
		res.Duration = time.Since(start)
		return res
	}
	defer audio.Close()

	res.Bytes, err = writeAudio(req.OutputPath, audio)
	if err != nil {
		timer.StopWithError(err)
		res.Err = err
		res.Duration = time.Since(start)
		return res
	}
	timer.Stop()

	if err := os.WriteFile(res.TextPath, []byte(req.Text), 0o644); err != nil {
		res.Err = newError(CodeFileWriteError, "failed to write text file", err)
		res.Duration = time.Since(start)
		logger.ErrorWithErr("Conversion failed", res.Err)
		return res
	}

	res.Duration = time.Since(start)
	logger.Info("Conversion completed", logging.Fields{
		"audio":       res.AudioPath,
		"text":        res.TextPath,
		"bytes":       res.Bytes,
		"duration_ms": res.Duration.Milliseconds(),
	})
	return res
}

// writeAudio streams audio into path. A partially written file is left
// in place on failure.
func writeAudio(path string, audio io.Reader) (int64, error) {
	f, err := os.Create(path)
	if err != nil {
		return 0, newError(CodeFileWriteError, "failed to create audio file", err)
	}

	w := &trackingWriter{w: f}
	n, copyErr := io.Copy(w, audio)
	closeErr := f.Close()

	switch {
	case copyErr != nil && w.err != nil:
		return n, newError(CodeFileWriteError, "failed to write audio file", copyErr)
	case copyErr != nil:
		return n, newError(CodeServiceError, "failed to read audio stream", copyErr)
	case closeErr != nil:
		return n, newError(CodeFileWriteError, "failed to write audio file", closeErr)
	}
	return n, nil
}

// trackingWriter remembers write errors so they can be told apart from
// read errors of the audio stream
type trackingWriter struct {
	w   io.Writer
	err error
}

func (t *trackingWriter) Write(p []byte) (int, error) {
	n, err := t.w.Write(p)
	if err != nil {
		t.err = err
	}
	return n, err
}
