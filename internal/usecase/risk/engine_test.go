package risk

import (
	"testing"
	"time"

	"github.com/sehatsaathi/voicecare/internal/domain/entities"
)

func fixedEngine(now time.Time) *Engine {
	e := NewEngine()
	e.now = func() time.Time { return now }
	return e
}

func floatPtr(f float64) *float64 { return &f }

func strPtr(s string) *string { return &s }

func TestAssessClampsAndOrdersReasons(t *testing.T) {
	e := NewEngine()
	b := entities.Beneficiary{
		IsHighRisk:          true,
		AnemiaStatus:        entities.AnemiaStatusSevere,
		LastHemoglobinLevel: floatPtr(7),
	}

	// 30 + 25 + 25 + 30 (no visit) = 110, clamped to 100
	got := e.Assess(b, nil, nil)
	if got.Score != 100 {
		t.Errorf("expected score 100, got %d", got.Score)
	}
	if got.Level != entities.RiskLevelCritical {
		t.Errorf("expected critical, got %s", got.Level)
	}
	if len(got.Reasons) != 4 {
		t.Fatalf("expected 4 reasons, got %d: %v", len(got.Reasons), got.Reasons)
	}
	if got.Reasons[0] != "Profile flagged high-risk" {
		t.Errorf("unexpected first reason %q", got.Reasons[0])
	}
	if got.Reasons[1] != "Severe anemia" {
		t.Errorf("unexpected second reason %q", got.Reasons[1])
	}
	if got.Reasons[3] != "No completed visit on record" {
		t.Errorf("unexpected last reason %q", got.Reasons[3])
	}
}

func TestAssessLevelBoundaries(t *testing.T) {
	cases := []struct {
		score int
		want  entities.RiskLevel
	}{
		{100, entities.RiskLevelCritical},
		{70, entities.RiskLevelCritical},
		{69, entities.RiskLevelHigh},
		{50, entities.RiskLevelHigh},
		{49, entities.RiskLevelMedium},
		{30, entities.RiskLevelMedium},
		{29, entities.RiskLevelLow},
		{0, entities.RiskLevelLow},
	}
	for _, c := range cases {
		if got := entities.RiskLevelForScore(c.score); got != c.want {
			t.Errorf("RiskLevelForScore(%d) = %s, want %s", c.score, got, c.want)
		}
	}
}

func TestAssessVisitRecency(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	e := fixedEngine(now)

	recent := now.AddDate(0, 0, -10)
	stale := now.AddDate(0, 0, -45)
	ancient := now.AddDate(0, 0, -90)

	cases := []struct {
		name      string
		completed *time.Time
		want      int
	}{
		{"recent visit", &recent, 0},
		{"over 30 days", &stale, 20},
		{"over 60 days", &ancient, 40},
	}
	for _, c := range cases {
		visits := []entities.Visit{{Status: entities.VisitStatusCompleted, CompletedAt: c.completed}}
		got := e.Assess(entities.Beneficiary{}, nil, visits)
		if got.Score != c.want {
			t.Errorf("%s: expected score %d, got %d", c.name, c.want, got.Score)
		}
	}
}

func TestAssessVisitWithoutCompletionScoresLikeNoVisit(t *testing.T) {
	e := NewEngine()
	visits := []entities.Visit{{Status: entities.VisitStatusScheduled}}

	withScheduledOnly := e.Assess(entities.Beneficiary{}, nil, visits)
	withNone := e.Assess(entities.Beneficiary{}, nil, nil)

	if withScheduledOnly.Score != withNone.Score {
		t.Errorf("scheduled-only (%d) and no visits (%d) must score identically",
			withScheduledOnly.Score, withNone.Score)
	}
	if withNone.Score != 30 {
		t.Errorf("expected 30 for no visit, got %d", withNone.Score)
	}
}

func TestAssessLogFactors(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	e := fixedEngine(now)
	recent := now.AddDate(0, 0, -5)
	visits := []entities.Visit{{CompletedAt: &recent}}

	logs := []entities.HealthLog{
		{IsRedFlag: true, Severity: entities.SeveritySevere, LoggedAt: now.AddDate(0, 0, -1)},
		{IsRedFlag: true, Severity: entities.SeverityMild, LoggedAt: now.AddDate(0, 0, -2)},
	}

	// 15 + 15 red-flag logs, 10 severe log
	got := e.Assess(entities.Beneficiary{}, logs, visits)
	if got.Score != 40 {
		t.Errorf("expected score 40, got %d", got.Score)
	}
	if len(got.Reasons) != 3 {
		t.Errorf("expected 3 reasons, got %v", got.Reasons)
	}
}

func TestAssessAverageAIRisk(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	e := fixedEngine(now)
	recent := now.AddDate(0, 0, -5)
	visits := []entities.Visit{{CompletedAt: &recent}}

	logs := []entities.HealthLog{
		{AIRiskScore: floatPtr(80), LoggedAt: now},
		{AIRiskScore: floatPtr(40), LoggedAt: now},
		{LoggedAt: now},
	}

	// average 60 × 0.30 = 18
	got := e.Assess(entities.Beneficiary{}, logs, visits)
	if got.Score != 18 {
		t.Errorf("expected score 18, got %d", got.Score)
	}
}

func TestAssessHemoglobinBands(t *testing.T) {
	now := time.Now()
	e := NewEngine()
	recent := now.AddDate(0, 0, -5)
	visits := []entities.Visit{{CompletedAt: &recent}}

	cases := []struct {
		hb   float64
		want int
	}{
		{7.9, 25},
		{8, 15},
		{9.9, 15},
		{10, 0},
	}
	for _, c := range cases {
		b := entities.Beneficiary{LastHemoglobinLevel: floatPtr(c.hb)}
		got := e.Assess(b, nil, visits)
		if got.Score != c.want {
			t.Errorf("hb %.1f: expected %d, got %d", c.hb, c.want, got.Score)
		}
	}
}

func TestAssessPreviousComplications(t *testing.T) {
	now := time.Now()
	e := NewEngine()
	recent := now.AddDate(0, 0, -5)
	visits := []entities.Visit{{CompletedAt: &recent}}

	b := entities.Beneficiary{PreviousComplications: strPtr("postpartum hemorrhage in 2024")}
	got := e.Assess(b, nil, visits)
	if got.Score != 20 {
		t.Errorf("expected 20, got %d", got.Score)
	}

	b.PreviousComplications = strPtr("")
	got = e.Assess(b, nil, visits)
	if got.Score != 0 {
		t.Errorf("empty complications must not score, got %d", got.Score)
	}
}
