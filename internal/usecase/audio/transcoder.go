package audio

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	apperrors "github.com/sehatsaathi/voicecare/errors"
	"github.com/sehatsaathi/voicecare/pkg/config"
)

// MaxClipBytes is the upload ceiling for a single voice clip
const MaxClipBytes int64 = 25 << 20

// Transcoder converts uploaded voice clips into the canonical recognition
// format: mono, 16 kHz, 32-bit float PCM.
type Transcoder struct {
	binary  string
	timeout time.Duration
	tempDir string
	logger  *zap.Logger
}

// NewTranscoder creates a transcoder that shells out to ffmpeg
func NewTranscoder(cfg *config.FFmpegConfig, logger *zap.Logger) *Transcoder {
	binary := "ffmpeg"
	timeout := 60 * time.Second
	if cfg != nil {
		if cfg.Binary != "" {
			binary = cfg.Binary
		}
		if cfg.Timeout > 0 {
			timeout = cfg.Timeout
		}
	}
	return &Transcoder{
		binary:  binary,
		timeout: timeout,
		tempDir: os.TempDir(),
		logger:  logger,
	}
}

// Transcode decodes an uploaded clip into mono 16 kHz float32 samples.
// The clip is staged to a temp file so ffmpeg can probe the container;
// the file is removed on every exit path.
func (t *Transcoder) Transcode(ctx context.Context, clip []byte) ([]float32, error) {
	if len(clip) == 0 {
		return nil, apperrors.ErrInvalidInput("Audio payload is empty")
	}
	if int64(len(clip)) > MaxClipBytes {
		return nil, apperrors.ErrAudioTooLarge(MaxClipBytes)
	}

	tempPath := filepath.Join(t.tempDir, fmt.Sprintf("voicecare_%d_%s.audio", time.Now().UnixNano(), uuid.New().String()))
	if err := os.WriteFile(tempPath, clip, 0o600); err != nil {
		return nil, apperrors.ErrTranscodeFailed(err)
	}
	defer os.Remove(tempPath)

	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, t.binary,
		"-hide_banner",
		"-loglevel", "error",
		"-i", tempPath,
		"-f", "f32le",
		"-ac", "1",
		"-ar", "16000",
		"pipe:1",
	)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if ctx.Err() == context.DeadlineExceeded {
		return nil, apperrors.ErrTimeout("audio decoding", ctx.Err())
	}
	if err != nil {
		if t.logger != nil {
			t.logger.Error("❌ ffmpeg failed",
				zap.Error(err),
				zap.String("stderr", stderr.String()))
		}
		return nil, apperrors.ErrTranscodeFailed(err)
	}

	samples := decodeF32LE(stdout.Bytes())
	if len(samples) == 0 {
		return nil, apperrors.ErrTranscodeFailed(errors.New("decoder produced no samples"))
	}

	if t.logger != nil {
		t.logger.Info("🎧 Audio decoded",
			zap.Int("input_bytes", len(clip)),
			zap.Int("samples", len(samples)),
			zap.Float64("duration_sec", float64(len(samples))/16000))
	}

	return samples, nil
}

// decodeF32LE reinterprets little-endian float32 PCM bytes as samples.
// Trailing partial frames are dropped.
func decodeF32LE(raw []byte) []float32 {
	n := len(raw) / 4
	samples := make([]float32, n)
	for i := 0; i < n; i++ {
		bits := binary.LittleEndian.Uint32(raw[i*4:])
		samples[i] = math.Float32frombits(bits)
	}
	return samples
}
