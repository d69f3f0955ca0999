package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/sehatsaathi/voicecare/internal/domain/entities"
	"github.com/sehatsaathi/voicecare/internal/infrastructure/cache"
	"github.com/sehatsaathi/voicecare/internal/usecase/alert"
	"github.com/sehatsaathi/voicecare/internal/usecase/asr"
	"github.com/sehatsaathi/voicecare/internal/usecase/audio"
	"github.com/sehatsaathi/voicecare/internal/usecase/pipeline"
	"github.com/sehatsaathi/voicecare/internal/usecase/risk"
	"github.com/sehatsaathi/voicecare/internal/usecase/visit"
	"github.com/sehatsaathi/voicecare/pkg/config"
	"github.com/sehatsaathi/voicecare/pkg/validator"
)

type stubCompleter struct{ response string }

func (s *stubCompleter) Complete(_ context.Context, _, _ string, _ float64) (string, error) {
	return s.response, nil
}

type stubRecognizer struct{ text string }

func (s *stubRecognizer) Transcribe(_ context.Context, _ []float32, _ string) (asr.Result, error) {
	return asr.Result{Text: s.text, Confidence: 0.9}, nil
}

func newVoiceTestHandler(t *testing.T, transcript, llmResponse string) (*Voice, *echo.Echo) {
	t.Helper()
	e := echo.New()
	e.Validator = validator.NewValidator()

	decoder := filepath.Join(t.TempDir(), "fake-ffmpeg")
	script := "#!/bin/sh\nprintf '\\000\\000\\200\\077'\n"
	if err := os.WriteFile(decoder, []byte(script), 0o755); err != nil {
		t.Fatalf("write fake decoder: %v", err)
	}

	transcoder := audio.NewTranscoder(&config.FFmpegConfig{Binary: decoder, Timeout: 5 * time.Second}, nil)
	engine := asr.NewEngine(func(ctx context.Context) (asr.Recognizer, error) {
		return &stubRecognizer{text: transcript}, nil
	}, time.Minute, time.Minute, nil)

	llm := &stubCompleter{response: llmResponse}
	workers := &stubWorkerRepo{worker: &entities.Worker{UserID: "user-1", Name: "Asha Didi"}}
	beneficiaries := &stubBeneficiaryRepo{}
	alerts := &stubAlertRepo{}

	svc := pipeline.NewService(
		transcoder,
		engine,
		visit.NewExtractor(llm, nil),
		visit.NewResolver(beneficiaries, nil, nil),
		risk.NewEngine(),
		risk.NewClassifier(llm, nil),
		alert.NewManager(alerts, cache.NewMemoryStore(), nil, time.Minute, nil),
		workers,
		beneficiaries,
		noLogs{},
		noVisits{},
		pipeline.Options{},
		nil,
	)

	return NewVoice(svc, nil, false), e
}

type noLogs struct{}

func (noLogs) ListRecent(_ context.Context, _ uuid.UUID, _ int) ([]entities.HealthLog, error) {
	return nil, nil
}

type noVisits struct{}

func (noVisits) ListRecent(_ context.Context, _ uuid.UUID, _ int) ([]entities.Visit, error) {
	return nil, nil
}

func multipartClip(t *testing.T, field, filename string, payload []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile(field, filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := fw.Write(payload); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	_ = w.Close()
	return &buf, w.FormDataContentType()
}

func TestTranscribeHandlerSuccess(t *testing.T) {
	h, e := newVoiceTestHandler(t, "sunita ko bukhar hai", "{}")

	body, contentType := multipartClip(t, "audio", "clip.webm", []byte("fake-audio"))
	req := httptest.NewRequest(http.MethodPost, "/v1/voice/transcribe", body)
	req.Header.Set(echo.HeaderContentType, contentType)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Transcribe(c); err != nil {
		t.Fatalf("Transcribe returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp["transcript"] != "sunita ko bukhar hai" {
		t.Errorf("unexpected transcript %v", resp["transcript"])
	}
	if resp["language"] != "hi" {
		t.Errorf("expected default language hi, got %v", resp["language"])
	}
}

func TestTranscribeHandlerMissingAudio(t *testing.T) {
	h, e := newVoiceTestHandler(t, "x", "{}")

	body, contentType := multipartClip(t, "document", "clip.webm", []byte("fake"))
	req := httptest.NewRequest(http.MethodPost, "/v1/voice/transcribe", body)
	req.Header.Set(echo.HeaderContentType, contentType)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Transcribe(c); err != nil {
		t.Fatalf("Transcribe returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "error") {
		t.Error("failure body must carry an error field")
	}
}

func TestProcessHandlerMissingTranscription(t *testing.T) {
	h, e := newVoiceTestHandler(t, "x", "{}")

	req := httptest.NewRequest(http.MethodPost, "/v1/voice/process", strings.NewReader(`{}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Process(c); err != nil {
		t.Fatalf("Process returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestProcessHandlerReturnsExtraction(t *testing.T) {
	llm := `{"patient_name": null, "symptoms": ["fever"], "vitals": {}, "services_provided": []}`
	h, e := newVoiceTestHandler(t, "x", llm)

	req := httptest.NewRequest(http.MethodPost, "/v1/voice/process", strings.NewReader(`{"transcription":"bukhar hai"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set("X-User-ID", "user-1")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Process(c); err != nil {
		t.Fatalf("Process returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp["beneficiary"] != nil {
		t.Error("expected null beneficiary without a patient name")
	}
	if resp["needs_manual_review"] != false {
		t.Error("no extracted name must not need manual review")
	}
}
