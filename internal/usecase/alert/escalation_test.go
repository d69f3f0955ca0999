package alert

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/sehatsaathi/voicecare/errors"
	"github.com/sehatsaathi/voicecare/internal/domain/entities"
	"github.com/sehatsaathi/voicecare/internal/infrastructure/cache"
	"github.com/sehatsaathi/voicecare/internal/infrastructure/notify"
)

type stubAlertRepo struct {
	created []*entities.Alert
	err     error
}

func (s *stubAlertRepo) Create(_ context.Context, a *entities.Alert) error {
	if s.err != nil {
		return s.err
	}
	s.created = append(s.created, a)
	return nil
}

func (s *stubAlertRepo) FindByID(_ context.Context, id uuid.UUID) (*entities.Alert, error) {
	for _, a := range s.created {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, nil
}

func (s *stubAlertRepo) ListOpenByBeneficiary(_ context.Context, beneficiaryID uuid.UUID) ([]entities.Alert, error) {
	var open []entities.Alert
	for _, a := range s.created {
		if a.Status == entities.AlertStatusOpen && a.BeneficiaryID != nil && *a.BeneficiaryID == beneficiaryID {
			open = append(open, *a)
		}
	}
	return open, nil
}

func (s *stubAlertRepo) UpdateStatus(_ context.Context, updated *entities.Alert) error {
	if s.err != nil {
		return s.err
	}
	for _, a := range s.created {
		if a.ID == updated.ID {
			*a = *updated
		}
	}
	return nil
}

type recordingNotifier struct {
	intents []notify.Intent
}

func (r *recordingNotifier) Notify(_ context.Context, intent notify.Intent) error {
	r.intents = append(r.intents, intent)
	return nil
}

func redFlagSignal(b *entities.Beneficiary, score float64) Signal {
	return Signal{
		Beneficiary: b,
		AlertType:   entities.AlertTypeRedFlagSymptom,
		RiskScore:   score,
		Reasons:     []string{"heavy bleeding reported"},
		Symptoms:    []string{"heavy bleeding"},
	}
}

func TestSeverityForScore(t *testing.T) {
	if got := SeverityForScore(85); got != entities.AlertSeverityCritical {
		t.Errorf("score 85: expected critical, got %s", got)
	}
	if got := SeverityForScore(80); got != entities.AlertSeverityCritical {
		t.Errorf("score 80: expected critical, got %s", got)
	}
	if got := SeverityForScore(60); got != entities.AlertSeverityHigh {
		t.Errorf("score 60: expected high, got %s", got)
	}
}

func TestEscalateCreatesOpenAlert(t *testing.T) {
	repo := &stubAlertRepo{}
	responder := uuid.New()
	b := &entities.Beneficiary{ID: uuid.New(), ResponderID: &responder}
	notifier := &recordingNotifier{}
	m := NewManager(repo, cache.NewMemoryStore(), notifier, time.Minute, nil)

	got, err := m.Escalate(context.Background(), redFlagSignal(b, 85))
	if err != nil {
		t.Fatalf("Escalate returned error: %v", err)
	}
	if !got.Created || got.Alert == nil {
		t.Fatal("expected alert to be created")
	}
	a := got.Alert
	if a.Status != entities.AlertStatusOpen {
		t.Errorf("expected open status, got %s", a.Status)
	}
	if a.SeverityLevel != entities.AlertSeverityCritical {
		t.Errorf("expected critical severity, got %s", a.SeverityLevel)
	}
	if !a.AIDetected {
		t.Error("expected ai_detected true")
	}
	if a.AIConfidenceScore != 0.85 {
		t.Errorf("expected confidence 0.85, got %v", a.AIConfidenceScore)
	}
	if len(notifier.intents) != 1 {
		t.Fatalf("expected 1 notify intent, got %d", len(notifier.intents))
	}
	if notifier.intents[0].ResponderID != responder.String() {
		t.Errorf("intent routed to wrong responder %s", notifier.intents[0].ResponderID)
	}
}

func TestEscalateWithoutResponderStillCreates(t *testing.T) {
	repo := &stubAlertRepo{}
	b := &entities.Beneficiary{ID: uuid.New()}
	notifier := &recordingNotifier{}
	m := NewManager(repo, cache.NewMemoryStore(), notifier, time.Minute, nil)

	got, err := m.Escalate(context.Background(), redFlagSignal(b, 60))
	if err != nil {
		t.Fatalf("Escalate returned error: %v", err)
	}
	if !got.Created {
		t.Fatal("alert must be created even without a responder")
	}
	if got.Alert.SeverityLevel != entities.AlertSeverityHigh {
		t.Errorf("expected high severity, got %s", got.Alert.SeverityLevel)
	}
	if len(notifier.intents) != 0 {
		t.Errorf("no intent should be recorded without a responder, got %d", len(notifier.intents))
	}
}

func TestEscalateSuppressesRepeatInWindow(t *testing.T) {
	repo := &stubAlertRepo{}
	b := &entities.Beneficiary{ID: uuid.New()}
	m := NewManager(repo, cache.NewMemoryStore(), nil, time.Minute, nil)

	first, err := m.Escalate(context.Background(), redFlagSignal(b, 85))
	if err != nil {
		t.Fatalf("first escalate: %v", err)
	}
	if !first.Created {
		t.Fatal("first signal must create an alert")
	}

	second, err := m.Escalate(context.Background(), redFlagSignal(b, 85))
	if err != nil {
		t.Fatalf("second escalate: %v", err)
	}
	if second.Created || !second.Suppressed {
		t.Error("repeat signal inside the window must be suppressed")
	}
	if len(repo.created) != 1 {
		t.Errorf("expected 1 persisted alert, got %d", len(repo.created))
	}

	// A different alert type for the same beneficiary is not a duplicate
	sos := redFlagSignal(b, 85)
	sos.AlertType = entities.AlertTypeEmergencySOS
	third, err := m.Escalate(context.Background(), sos)
	if err != nil {
		t.Fatalf("third escalate: %v", err)
	}
	if !third.Created {
		t.Error("different alert type must not be suppressed")
	}
}

func TestEscalateStoreFailure(t *testing.T) {
	repo := &stubAlertRepo{err: errors.New("insert failed")}
	b := &entities.Beneficiary{ID: uuid.New()}
	m := NewManager(repo, cache.NewMemoryStore(), nil, time.Minute, nil)

	if _, err := m.Escalate(context.Background(), redFlagSignal(b, 85)); err == nil {
		t.Fatal("expected error on store failure")
	}
}

type flakyAlertRepo struct {
	stubAlertRepo
	failures int
}

func (f *flakyAlertRepo) Create(ctx context.Context, a *entities.Alert) error {
	if f.failures > 0 {
		f.failures--
		return errors.New("connection reset")
	}
	return f.stubAlertRepo.Create(ctx, a)
}

func TestEscalateStoreFailureReleasesDedupClaim(t *testing.T) {
	repo := &flakyAlertRepo{failures: 1}
	b := &entities.Beneficiary{ID: uuid.New()}
	m := NewManager(repo, cache.NewMemoryStore(), nil, 30*time.Minute, nil)

	if _, err := m.Escalate(context.Background(), redFlagSignal(b, 85)); err == nil {
		t.Fatal("expected error while the store is down")
	}

	// The store recovers; the retry must not be suppressed by the claim
	// left over from the failed attempt.
	got, err := m.Escalate(context.Background(), redFlagSignal(b, 85))
	if err != nil {
		t.Fatalf("retry after store recovery: %v", err)
	}
	if got.Suppressed {
		t.Fatal("retry was suppressed although no alert was persisted")
	}
	if !got.Created {
		t.Fatal("retry must create the alert")
	}
	if len(repo.created) != 1 {
		t.Errorf("expected 1 persisted alert, got %d", len(repo.created))
	}
}

func TestEscalateMissingAlertType(t *testing.T) {
	m := NewManager(&stubAlertRepo{}, nil, nil, time.Minute, nil)
	signal := Signal{RiskScore: 90}
	if _, err := m.Escalate(context.Background(), signal); err == nil {
		t.Fatal("expected error for missing alert type")
	}
}

func TestAcknowledgeOpenAlert(t *testing.T) {
	repo := &stubAlertRepo{}
	b := &entities.Beneficiary{ID: uuid.New()}
	m := NewManager(repo, cache.NewMemoryStore(), nil, time.Minute, nil)

	created, err := m.Escalate(context.Background(), redFlagSignal(b, 85))
	if err != nil {
		t.Fatalf("escalate: %v", err)
	}

	acked, err := m.Acknowledge(context.Background(), created.Alert.ID)
	if err != nil {
		t.Fatalf("acknowledge: %v", err)
	}
	if acked.Status != entities.AlertStatusAcknowledged || acked.AcknowledgedAt == nil {
		t.Error("alert was not moved to acknowledged")
	}

	// Acknowledging twice violates the open-only transition
	if _, err := m.Acknowledge(context.Background(), created.Alert.ID); err == nil {
		t.Error("expected error acknowledging a non-open alert")
	}
}

func TestAcknowledgeUnknownAlert(t *testing.T) {
	m := NewManager(&stubAlertRepo{}, nil, nil, time.Minute, nil)

	_, err := m.Acknowledge(context.Background(), uuid.New())
	if err == nil {
		t.Fatal("expected not-found error")
	}
	var appErr apperrors.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected AppError, got %T", err)
	}
	if appErr.Code != apperrors.ErrorCode_NOT_FOUND {
		t.Errorf("expected NOT_FOUND, got %s", appErr.Code)
	}
}

func TestOpenAlertsOnlyListsOpen(t *testing.T) {
	repo := &stubAlertRepo{}
	b := &entities.Beneficiary{ID: uuid.New()}
	m := NewManager(repo, cache.NewMemoryStore(), nil, time.Minute, nil)

	first, err := m.Escalate(context.Background(), redFlagSignal(b, 85))
	if err != nil {
		t.Fatalf("first escalate: %v", err)
	}
	sos := redFlagSignal(b, 90)
	sos.AlertType = entities.AlertTypeEmergencySOS
	if _, err := m.Escalate(context.Background(), sos); err != nil {
		t.Fatalf("second escalate: %v", err)
	}

	if _, err := m.Acknowledge(context.Background(), first.Alert.ID); err != nil {
		t.Fatalf("acknowledge: %v", err)
	}

	open, err := m.OpenAlerts(context.Background(), b.ID)
	if err != nil {
		t.Fatalf("open alerts: %v", err)
	}
	if len(open) != 1 {
		t.Fatalf("expected 1 open alert, got %d", len(open))
	}
	if open[0].AlertType != entities.AlertTypeEmergencySOS {
		t.Errorf("unexpected open alert type %s", open[0].AlertType)
	}
}
