package asr

import (
	"context"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	apperrors "github.com/sehatsaathi/voicecare/errors"
)

// Result is one recognition outcome
type Result struct {
	Text       string
	Confidence float64 // 0..1 as reported by the model
}

// Recognizer turns mono 16 kHz float32 samples into a transcript
type Recognizer interface {
	Transcribe(ctx context.Context, samples []float32, language string) (Result, error)
}

// LoaderFunc initializes a Recognizer. Loading is expensive, so the Engine
// calls it at most once per cold start.
type LoaderFunc func(ctx context.Context) (Recognizer, error)

type engineState int

const (
	stateUnloaded engineState = iota
	stateLoading
	stateReady
)

// loadAttempt is one in-flight recognizer load shared by every waiter
type loadAttempt struct {
	done       chan struct{}
	recognizer Recognizer
	err        error
}

// Engine serializes recognizer loading and fans a single loaded instance
// out to all transcription requests. Concurrent first requests trigger
// exactly one load; the rest wait on it.
type Engine struct {
	mu           sync.Mutex
	state        engineState
	recognizer   Recognizer
	attempt      *loadAttempt
	loader       LoaderFunc
	loadTimeout  time.Duration
	inferTimeout time.Duration
	logger       *zap.Logger
}

// NewEngine creates an engine around the given loader. loadTimeout bounds
// the one-time recognizer load, inferTimeout bounds each recognition call.
func NewEngine(loader LoaderFunc, loadTimeout, inferTimeout time.Duration, logger *zap.Logger) *Engine {
	if loadTimeout <= 0 {
		loadTimeout = 2 * time.Minute
	}
	if inferTimeout <= 0 {
		inferTimeout = time.Minute
	}
	return &Engine{
		loader:       loader,
		loadTimeout:  loadTimeout,
		inferTimeout: inferTimeout,
		logger:       logger,
	}
}

// Ready reports whether the recognizer is loaded
func (e *Engine) Ready() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state == stateReady
}

// Transcribe runs recognition, loading the recognizer first if needed.
// A blank transcript from a successful run maps to a no-speech error so
// the caller can prompt the worker to re-record.
func (e *Engine) Transcribe(ctx context.Context, samples []float32, language string) (Result, error) {
	rec, err := e.acquire(ctx)
	if err != nil {
		return Result{}, err
	}

	inferCtx, cancel := context.WithTimeout(ctx, e.inferTimeout)
	defer cancel()

	result, err := rec.Transcribe(inferCtx, samples, language)
	if err != nil {
		if inferCtx.Err() == context.DeadlineExceeded {
			return Result{}, apperrors.ErrTimeout("transcription", inferCtx.Err())
		}
		return Result{}, apperrors.ErrTranscriptionFailed(err)
	}

	result.Text = strings.TrimSpace(result.Text)
	if result.Text == "" {
		return Result{}, apperrors.ErrNoSpeechDetected()
	}
	return result, nil
}

// acquire returns the loaded recognizer, starting or joining a load when
// necessary. The load itself runs detached from any single waiter's
// context so one impatient caller cannot abort it for everyone else.
func (e *Engine) acquire(ctx context.Context) (Recognizer, error) {
	e.mu.Lock()

	if e.state == stateReady {
		rec := e.recognizer
		e.mu.Unlock()
		return rec, nil
	}

	if e.state == stateUnloaded {
		attempt := &loadAttempt{done: make(chan struct{})}
		e.attempt = attempt
		e.state = stateLoading
		e.mu.Unlock()

		if e.logger != nil {
			e.logger.Info("🔄 Loading speech recognizer")
		}
		go e.runLoad(attempt)

		return e.wait(ctx, attempt)
	}

	// Loading in progress, join the in-flight attempt
	attempt := e.attempt
	e.mu.Unlock()
	return e.wait(ctx, attempt)
}

func (e *Engine) runLoad(attempt *loadAttempt) {
	loadCtx, cancel := context.WithTimeout(context.Background(), e.loadTimeout)
	defer cancel()

	rec, err := e.loader(loadCtx)

	e.mu.Lock()
	if err != nil {
		e.state = stateUnloaded
		e.attempt = nil
		if e.logger != nil {
			e.logger.Error("❌ Recognizer load failed", zap.Error(err))
		}
	} else {
		e.state = stateReady
		e.recognizer = rec
		e.attempt = nil
		if e.logger != nil {
			e.logger.Info("✅ Speech recognizer ready")
		}
	}
	e.mu.Unlock()

	attempt.recognizer = rec
	attempt.err = err
	close(attempt.done)
}

func (e *Engine) wait(ctx context.Context, attempt *loadAttempt) (Recognizer, error) {
	select {
	case <-attempt.done:
		if attempt.err != nil {
			return nil, apperrors.ErrModelLoadFailed(attempt.err)
		}
		return attempt.recognizer, nil
	case <-ctx.Done():
		return nil, apperrors.ErrTimeout("recognizer load", ctx.Err())
	}
}
