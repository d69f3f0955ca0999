package handler

import (
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	apperrors "github.com/sehatsaathi/voicecare/errors"
	"github.com/sehatsaathi/voicecare/internal/adapter/dto/voice"
	"github.com/sehatsaathi/voicecare/internal/domain/entities"
	"github.com/sehatsaathi/voicecare/internal/usecase/audio"
	"github.com/sehatsaathi/voicecare/internal/usecase/pipeline"
)

// Voice handles the voice report endpoints
type Voice struct {
	pipeline *pipeline.Service
	logger   *zap.Logger
	dev      bool
}

// NewVoice creates the voice handler
func NewVoice(p *pipeline.Service, logger *zap.Logger, dev bool) *Voice {
	return &Voice{pipeline: p, logger: logger, dev: dev}
}

// Transcribe accepts a multipart clip and returns the transcript.
// POST /v1/voice/transcribe
func (h *Voice) Transcribe(c echo.Context) error {
	fileHeader, err := c.FormFile("audio")
	if err != nil {
		return HandleError(h.logger, c, apperrors.ErrInvalidInput("Audio file is required"), h.dev)
	}
	if fileHeader.Size > audio.MaxClipBytes {
		return HandleError(h.logger, c, apperrors.ErrAudioTooLarge(audio.MaxClipBytes), h.dev)
	}

	src, err := fileHeader.Open()
	if err != nil {
		return HandleError(h.logger, c, apperrors.ErrInvalidInput("Audio file could not be read"), h.dev)
	}
	defer src.Close()

	clip, err := io.ReadAll(io.LimitReader(src, audio.MaxClipBytes+1))
	if err != nil {
		return HandleError(h.logger, c, apperrors.ErrInvalidInput("Audio file could not be read"), h.dev)
	}
	if int64(len(clip)) > audio.MaxClipBytes {
		return HandleError(h.logger, c, apperrors.ErrAudioTooLarge(audio.MaxClipBytes), h.dev)
	}

	extension := strings.TrimPrefix(filepath.Ext(fileHeader.Filename), ".")
	language := c.FormValue("language")

	result, err := h.pipeline.Transcribe(c.Request().Context(), clip, extension, language)
	if err != nil {
		return HandleError(h.logger, c, err, h.dev)
	}

	return HandleSuccess(h.logger, c, http.StatusOK, voice.TranscribeResponse{
		Transcript: result.Transcript,
		Confidence: result.Confidence,
		Language:   result.Language,
	})
}

// Process turns a transcript into structured visit data.
// POST /v1/voice/process
func (h *Voice) Process(c echo.Context) error {
	var req voice.ProcessRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, apperrors.ErrInvalidInput("Invalid request body"), h.dev)
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, apperrors.ErrInvalidInput("transcription is required"), h.dev)
	}

	workerRef := req.AshaWorkerID
	if workerRef == "" {
		workerRef = CallerID(c)
	}

	result, err := h.pipeline.Process(c.Request().Context(), req.Transcription, workerRef)
	if err != nil {
		return HandleError(h.logger, c, err, h.dev)
	}

	resp := voice.ProcessResponse{
		ExtractedData:     result.Extracted,
		Transcription:     result.Transcription,
		NeedsManualReview: result.NeedsManualReview,
	}
	if result.Resolution.Resolved() {
		s := voice.SummaryFor(*result.Resolution.Beneficiary)
		resp.Beneficiary = &s
	}
	if result.Resolution.Outcome == entities.ResolutionAmbiguous {
		for _, candidate := range result.Resolution.Candidates {
			resp.Candidates = append(resp.Candidates, voice.SummaryFor(candidate))
		}
	}

	return HandleSuccess(h.logger, c, http.StatusOK, resp)
}
