package risk

import (
	"context"
	"errors"
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

func intPtr(i int) *int { return &i }

func TestClassifyParsesVerdict(t *testing.T) {
	stub := &stubCompleter{response: "```json\n" +
		`{"is_red_flag": true, "risk_score": 85, "reasons": ["heavy bleeding reported"], "recommended_action": "Refer to PHC immediately"}` +
		"\n```"}
	c := NewClassifier(stub, nil)

	got, err := c.Classify(context.Background(), ClassifyInput{
		Symptoms:      []string{"heavy bleeding", "dizziness"},
		IsPregnant:    true,
		PregnancyWeek: intPtr(34),
	})
	if err != nil {
		t.Fatalf("Classify returned error: %v", err)
	}
	if !got.IsRedFlag {
		t.Error("expected red flag")
	}
	if got.RiskScore != 85 {
		t.Errorf("expected risk score 85, got %v", got.RiskScore)
	}
	if got.RecommendedAction == "" {
		t.Error("expected recommended action")
	}
}

func TestClassifyEmptySymptomsShortCircuits(t *testing.T) {
	stub := &stubCompleter{response: `{"is_red_flag": true}`}
	c := NewClassifier(stub, nil)

	got, err := c.Classify(context.Background(), ClassifyInput{})
	if err != nil {
		t.Fatalf("Classify returned error: %v", err)
	}
	if got.IsRedFlag {
		t.Error("empty symptoms must not be flagged")
	}
	if stub.calls != 0 {
		t.Errorf("model must not be called for empty symptoms, got %d calls", stub.calls)
	}
}

func TestClassifyClampsScore(t *testing.T) {
	stub := &stubCompleter{response: `{"is_red_flag": false, "risk_score": 240, "reasons": []}`}
	c := NewClassifier(stub, nil)

	got, err := c.Classify(context.Background(), ClassifyInput{Symptoms: []string{"fever"}})
	if err != nil {
		t.Fatalf("Classify returned error: %v", err)
	}
	if got.RiskScore != 100 {
		t.Errorf("expected clamp to 100, got %v", got.RiskScore)
	}
}

func TestClassifyRedFlagAlwaysHasReasons(t *testing.T) {
	stub := &stubCompleter{response: `{"is_red_flag": true, "risk_score": 75}`}
	c := NewClassifier(stub, nil)

	got, err := c.Classify(context.Background(), ClassifyInput{Symptoms: []string{"convulsions"}})
	if err != nil {
		t.Fatalf("Classify returned error: %v", err)
	}
	if len(got.Reasons) == 0 {
		t.Error("flagged result must carry at least one reason")
	}
}

func TestClassifyMalformedResponseIsError(t *testing.T) {
	stub := &stubCompleter{response: "I think this is serious."}
	c := NewClassifier(stub, nil)

	_, err := c.Classify(context.Background(), ClassifyInput{Symptoms: []string{"fever"}})
	if err == nil {
		t.Fatal("expected error for unparseable classifier response")
	}
	var appErr apperrors.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected AppError, got %T", err)
	}
	if appErr.Code != apperrors.ErrorCode_CLASSIFICATION_FAILED {
		t.Errorf("expected CLASSIFICATION_FAILED, got %s", appErr.Code)
	}
}

func TestClassifyBackendFailure(t *testing.T) {
	stub := &stubCompleter{err: errors.New("timeout")}
	c := NewClassifier(stub, nil)

	if _, err := c.Classify(context.Background(), ClassifyInput{Symptoms: []string{"fever"}}); err == nil {
		t.Fatal("expected error for backend failure")
	}
}
