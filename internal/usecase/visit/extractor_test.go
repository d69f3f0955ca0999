package visit

import (
	"context"
	"errors"
	"reflect"
	"testing"

	apperrors "github.com/sehatsaathi/voicecare/errors"
)

type stubCompleter struct {
	response string
	err      error
	calls    int
}

func (s *stubCompleter) Complete(_ context.Context, _, _ string, _ float64) (string, error) {
	s.calls++
	return s.response, s.err
}

const sampleResponse = `{
	"patient_name": "Sunita Devi",
	"symptoms": ["dizziness", "swelling in feet"],
	"vitals": {"systolic": 140, "diastolic": 95, "weight_kg": 52.5, "temperature_c": null},
	"services_provided": ["iron tablets given"],
	"extraction_confidence": 0.9
}`

func TestExtractParsesModelResponse(t *testing.T) {
	ex := NewExtractor(&stubCompleter{response: sampleResponse}, nil)

	visit, err := ex.Extract(context.Background(), "sunita devi ko chakkar aa rahe hain")
	if err != nil {
		t.Fatalf("Extract returned error: %v", err)
	}
	if !visit.HasPatientName() || *visit.PatientName != "Sunita Devi" {
		t.Errorf("unexpected patient name %v", visit.PatientName)
	}
	if len(visit.Symptoms) != 2 {
		t.Errorf("expected 2 symptoms, got %d", len(visit.Symptoms))
	}
	if visit.Vitals.Systolic == nil || *visit.Vitals.Systolic != 140 {
		t.Errorf("unexpected systolic %v", visit.Vitals.Systolic)
	}
	if visit.Vitals.TemperatureC != nil {
		t.Errorf("expected nil temperature, got %v", *visit.Vitals.TemperatureC)
	}
	if visit.ExtractionConfidence == nil || *visit.ExtractionConfidence != 0.9 {
		t.Errorf("unexpected confidence %v", visit.ExtractionConfidence)
	}
}

func TestExtractStripsCodeFences(t *testing.T) {
	ex := NewExtractor(&stubCompleter{response: "```json\n" + sampleResponse + "\n```"}, nil)

	visit, err := ex.Extract(context.Background(), "report")
	if err != nil {
		t.Fatalf("Extract returned error: %v", err)
	}
	if !visit.HasPatientName() {
		t.Error("expected patient name from fenced response")
	}
}

func TestExtractSoftFailsOnMalformedResponse(t *testing.T) {
	ex := NewExtractor(&stubCompleter{response: "Sorry, I cannot help with that."}, nil)

	visit, err := ex.Extract(context.Background(), "report")
	if err != nil {
		t.Fatalf("parse failure must not surface as error, got %v", err)
	}
	if visit.HasPatientName() {
		t.Error("expected empty record")
	}
	if visit.Symptoms == nil || visit.ServicesProvided == nil {
		t.Error("expected initialized slices in empty record")
	}
	if visit.ExtractionConfidence != nil {
		t.Error("confidence must be nil, never fabricated")
	}
}

func TestExtractBackendFailurePropagates(t *testing.T) {
	ex := NewExtractor(&stubCompleter{err: errors.New("backend down")}, nil)

	_, err := ex.Extract(context.Background(), "report")
	if err == nil {
		t.Fatal("expected error for backend failure")
	}
	var appErr apperrors.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected AppError, got %T", err)
	}
	if appErr.Code != apperrors.ErrorCode_EXTRACTION_FAILED {
		t.Errorf("expected EXTRACTION_FAILED, got %s", appErr.Code)
	}
}

func TestExtractEmptyTranscriptRejected(t *testing.T) {
	stub := &stubCompleter{response: sampleResponse}
	ex := NewExtractor(stub, nil)

	if _, err := ex.Extract(context.Background(), "   "); err == nil {
		t.Fatal("expected error for blank transcript")
	}
	if stub.calls != 0 {
		t.Errorf("backend must not be called for blank transcript, got %d calls", stub.calls)
	}
}

func TestExtractIsDeterministicForDeterministicBackend(t *testing.T) {
	ex := NewExtractor(&stubCompleter{response: sampleResponse}, nil)

	first, err := ex.Extract(context.Background(), "same transcript")
	if err != nil {
		t.Fatalf("first extract: %v", err)
	}
	second, err := ex.Extract(context.Background(), "same transcript")
	if err != nil {
		t.Fatalf("second extract: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("expected identical records, got %+v vs %+v", first, second)
	}
}

func TestParseVisitClampsConfidence(t *testing.T) {
	visit, parsed := parseVisit(`{"patient_name": null, "extraction_confidence": 1.8}`)
	if !parsed {
		t.Fatal("expected parseable response")
	}
	if visit.ExtractionConfidence == nil || *visit.ExtractionConfidence != 1 {
		t.Errorf("expected confidence clamped to 1, got %v", visit.ExtractionConfidence)
	}
}
