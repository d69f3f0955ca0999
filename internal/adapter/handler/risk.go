package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	apperrors "github.com/sehatsaathi/voicecare/errors"
	"github.com/sehatsaathi/voicecare/internal/adapter/dto/riskdto"
	"github.com/sehatsaathi/voicecare/internal/usecase/pipeline"
)

// Risk handles symptom classification requests
type Risk struct {
	pipeline *pipeline.Service
	logger   *zap.Logger
	dev      bool
}

// NewRisk creates the risk handler
func NewRisk(p *pipeline.Service, logger *zap.Logger, dev bool) *Risk {
	return &Risk{pipeline: p, logger: logger, dev: dev}
}

// DetectRedFlags classifies reported symptoms and escalates danger signs.
// POST /v1/risk/red-flags
func (h *Risk) DetectRedFlags(c echo.Context) error {
	var req riskdto.RedFlagRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, apperrors.ErrInvalidInput("Invalid request body"), h.dev)
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, apperrors.ErrInvalidInput("symptoms are required"), h.dev)
	}

	userID := req.UserID
	if userID == "" {
		userID = CallerID(c)
	}

	outcome, err := h.pipeline.DetectRedFlags(c.Request().Context(), pipeline.RedFlagInput{
		Symptoms:      req.Symptoms,
		IsPregnant:    req.IsPregnant,
		PregnancyWeek: req.PregnancyWeek,
		UserID:        userID,
	})
	if err != nil {
		return HandleError(h.logger, c, err, h.dev)
	}

	resp := riskdto.RedFlagResponse{
		IsRedFlag:         outcome.Result.IsRedFlag,
		RiskScore:         outcome.Result.RiskScore,
		Reasons:           outcome.Result.Reasons,
		RecommendedAction: outcome.Result.RecommendedAction,
		RiskAssessment:    outcome.Assessment,
		AlertCreated:      outcome.AlertCreated,
	}
	if outcome.AlertID != nil {
		id := outcome.AlertID.String()
		resp.AlertID = &id
	}

	return HandleSuccess(h.logger, c, http.StatusOK, resp)
}
