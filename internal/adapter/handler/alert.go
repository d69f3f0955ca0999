package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	apperrors "github.com/sehatsaathi/voicecare/errors"
	"github.com/sehatsaathi/voicecare/internal/adapter/dto/alertdto"
	"github.com/sehatsaathi/voicecare/internal/domain/entities"
	"github.com/sehatsaathi/voicecare/internal/domain/repositories"
	"github.com/sehatsaathi/voicecare/internal/usecase/alert"
)

// Alert handles caller-initiated alert creation
type Alert struct {
	manager       *alert.Manager
	workers       repositories.WorkerRepository
	beneficiaries repositories.BeneficiaryRepository
	logger        *zap.Logger
	dev           bool
}

// NewAlert creates the alert handler
func NewAlert(manager *alert.Manager, workers repositories.WorkerRepository, beneficiaries repositories.BeneficiaryRepository, logger *zap.Logger, dev bool) *Alert {
	return &Alert{
		manager:       manager,
		workers:       workers,
		beneficiaries: beneficiaries,
		logger:        logger,
		dev:           dev,
	}
}

// Create persists a caller-initiated alert, e.g. an SOS button press.
// POST /v1/alerts
func (h *Alert) Create(c echo.Context) error {
	callerID := CallerID(c)
	if callerID == "" {
		return HandleError(h.logger, c, apperrors.ErrUnauthenticated(), h.dev)
	}

	worker, err := h.workers.FindByUserID(c.Request().Context(), callerID)
	if err != nil {
		return HandleError(h.logger, c, apperrors.ErrStoreFailed("find worker", err), h.dev)
	}
	if worker == nil {
		return HandleError(h.logger, c, apperrors.ErrProfileMissing(callerID), h.dev)
	}

	var req alertdto.CreateAlertRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, apperrors.ErrInvalidInput("Invalid request body"), h.dev)
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, apperrors.ErrInvalidInput("severity_level, alert_type and description are required"), h.dev)
	}

	params := alert.CreateParams{
		Severity:    entities.AlertSeverity(req.SeverityLevel),
		AlertType:   entities.AlertType(req.AlertType),
		Description: req.Description,
		Symptoms:    req.SymptomsReported,
		Location:    req.Location,
	}

	if req.BeneficiaryID != nil {
		id, parseErr := uuid.Parse(*req.BeneficiaryID)
		if parseErr != nil {
			return HandleError(h.logger, c, apperrors.ErrInvalidInput("beneficiary_id must be a UUID"), h.dev)
		}
		beneficiary, findErr := h.beneficiaries.FindByID(c.Request().Context(), id)
		if findErr != nil {
			return HandleError(h.logger, c, apperrors.ErrStoreFailed("find beneficiary", findErr), h.dev)
		}
		if beneficiary == nil {
			return HandleError(h.logger, c, apperrors.ErrNotFound("Beneficiary"), h.dev)
		}
		params.BeneficiaryID = &beneficiary.ID
		params.ResponderID = beneficiary.ResponderID
	}

	created, err := h.manager.Create(c.Request().Context(), params)
	if err != nil {
		return HandleError(h.logger, c, err, h.dev)
	}

	return HandleSuccess(h.logger, c, http.StatusCreated, alertdto.CreateAlertResponse{
		Success:      true,
		Alert:        summaryFor(created),
		Message:      "Alert has been sent to your health worker",
		MessageHindi: "आपकी स्वास्थ्य कार्यकर्ता को सूचना भेज दी गई है",
	})
}

// Acknowledge marks an open alert as taken over by a responder.
// POST /v1/alerts/:id/acknowledge
func (h *Alert) Acknowledge(c echo.Context) error {
	if CallerID(c) == "" {
		return HandleError(h.logger, c, apperrors.ErrUnauthenticated(), h.dev)
	}

	alertID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return HandleError(h.logger, c, apperrors.ErrInvalidInput("Alert id must be a UUID"), h.dev)
	}

	acked, err := h.manager.Acknowledge(c.Request().Context(), alertID)
	if err != nil {
		return HandleError(h.logger, c, err, h.dev)
	}

	return HandleSuccess(h.logger, c, http.StatusOK, alertdto.AcknowledgeAlertResponse{
		Success: true,
		Alert:   summaryFor(acked),
	})
}

// ListOpen returns a beneficiary's open alerts for the responder view.
// GET /v1/alerts/open?beneficiary_id=...
func (h *Alert) ListOpen(c echo.Context) error {
	if CallerID(c) == "" {
		return HandleError(h.logger, c, apperrors.ErrUnauthenticated(), h.dev)
	}

	beneficiaryID, err := uuid.Parse(c.QueryParam("beneficiary_id"))
	if err != nil {
		return HandleError(h.logger, c, apperrors.ErrInvalidInput("beneficiary_id must be a UUID"), h.dev)
	}

	alerts, err := h.manager.OpenAlerts(c.Request().Context(), beneficiaryID)
	if err != nil {
		return HandleError(h.logger, c, err, h.dev)
	}

	resp := alertdto.OpenAlertsResponse{Alerts: []alertdto.AlertSummary{}}
	for i := range alerts {
		resp.Alerts = append(resp.Alerts, summaryFor(&alerts[i]))
	}
	return HandleSuccess(h.logger, c, http.StatusOK, resp)
}

func summaryFor(a *entities.Alert) alertdto.AlertSummary {
	return alertdto.AlertSummary{
		ID:            a.ID.String(),
		SeverityLevel: string(a.SeverityLevel),
		Status:        string(a.Status),
		CreatedAt:     a.CreatedAt,
	}
}
