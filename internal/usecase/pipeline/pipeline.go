package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	apperrors "github.com/sehatsaathi/voicecare/errors"
	"github.com/sehatsaathi/voicecare/internal/domain/entities"
	"github.com/sehatsaathi/voicecare/internal/domain/repositories"
	"github.com/sehatsaathi/voicecare/internal/usecase/alert"
	"github.com/sehatsaathi/voicecare/internal/usecase/asr"
	"github.com/sehatsaathi/voicecare/internal/usecase/audio"
	"github.com/sehatsaathi/voicecare/internal/usecase/risk"
	"github.com/sehatsaathi/voicecare/internal/usecase/visit"
)

// historyWindow bounds the logs/visits read for risk scoring
const historyWindow = 10

// ClipArchiver stores raw voice clips for later review. Archiving is best
// effort and never fails a request.
type ClipArchiver interface {
	UploadClip(ctx context.Context, objectName string, audio []byte, contentType string) error
}

// TranscribeResult is the outcome of one voice clip transcription
type TranscribeResult struct {
	Transcript string
	Confidence float64
	Language   string
}

// ProcessResult is the outcome of turning a transcript into structured
// visit data with a resolved beneficiary where possible
type ProcessResult struct {
	Extracted         entities.ExtractedVisit
	Resolution        entities.Resolution
	Transcription     string
	NeedsManualReview bool
}

// RedFlagInput is one symptom-classification request
type RedFlagInput struct {
	Symptoms      []string
	IsPregnant    bool
	PregnancyWeek *int
	UserID        string // beneficiary's upstream identity, optional
}

// RedFlagOutcome bundles the classifier verdict with the escalation result
type RedFlagOutcome struct {
	Result       entities.RedFlagResult
	Assessment   *entities.RiskAssessment // set when the beneficiary was identified
	AlertCreated bool
	AlertID      *uuid.UUID
}

// Service runs the voice report pipeline end to end. Stages execute in a
// strict order: transcode, transcribe, extract, resolve, risk, escalate.
type Service struct {
	transcoder *audio.Transcoder
	engine     *asr.Engine
	extractor  *visit.Extractor
	resolver   *visit.Resolver
	riskEngine *risk.Engine
	classifier *risk.Classifier
	escalation *alert.Manager

	workers       repositories.WorkerRepository
	beneficiaries repositories.BeneficiaryRepository
	healthLogs    repositories.HealthLogRepository
	visits        repositories.VisitRepository

	archive         ClipArchiver
	defaultLanguage string
	threshold       int
	logger          *zap.Logger
}

// Options carries the optional collaborators and tuning for the service
type Options struct {
	Archive         ClipArchiver
	DefaultLanguage string
	Threshold       int // deterministic score at and above which the pipeline escalates
}

// NewService wires the pipeline stages together
func NewService(
	transcoder *audio.Transcoder,
	engine *asr.Engine,
	extractor *visit.Extractor,
	resolver *visit.Resolver,
	riskEngine *risk.Engine,
	classifier *risk.Classifier,
	escalation *alert.Manager,
	workers repositories.WorkerRepository,
	beneficiaries repositories.BeneficiaryRepository,
	healthLogs repositories.HealthLogRepository,
	visits repositories.VisitRepository,
	opts Options,
	logger *zap.Logger,
) *Service {
	if opts.DefaultLanguage == "" {
		opts.DefaultLanguage = "hi"
	}
	if opts.Threshold <= 0 {
		opts.Threshold = 70
	}
	return &Service{
		transcoder:      transcoder,
		engine:          engine,
		extractor:       extractor,
		resolver:        resolver,
		riskEngine:      riskEngine,
		classifier:      classifier,
		escalation:      escalation,
		workers:         workers,
		beneficiaries:   beneficiaries,
		healthLogs:      healthLogs,
		visits:          visits,
		archive:         opts.Archive,
		defaultLanguage: opts.DefaultLanguage,
		threshold:       opts.Threshold,
		logger:          logger,
	}
}

// Transcribe decodes and transcribes one uploaded clip. The job tracks
// stage transitions and releases the audio buffer on every exit path.
func (s *Service) Transcribe(ctx context.Context, clip []byte, extension, language string) (TranscribeResult, error) {
	if language == "" {
		language = s.defaultLanguage
	}
	job := entities.NewTranscriptionJob(clip, extension, language)

	job.MarkDecoding()
	samples, err := s.transcoder.Transcode(ctx, job.Audio)
	if err != nil {
		job.Fail(err)
		return TranscribeResult{}, err
	}

	job.MarkTranscribing()
	result, err := s.engine.Transcribe(ctx, samples, language)
	if err != nil {
		job.Fail(err)
		return TranscribeResult{}, err
	}

	s.archiveClip(ctx, job.ID, clip, extension)
	job.Complete(result.Text)

	if s.logger != nil {
		s.logger.Info("🎙️ Clip transcribed",
			zap.String("job_id", job.ID.String()),
			zap.String("language", language),
			zap.Duration("elapsed", time.Since(job.StartedAt)))
	}

	return TranscribeResult{
		Transcript: result.Text,
		Confidence: result.Confidence,
		Language:   language,
	}, nil
}

// Process extracts structured visit fields from a transcript and resolves
// the spoken patient name against the worker's caseload. workerRef may be
// a worker row ID or an upstream user ID; an unknown worker skips
// resolution rather than failing the extraction.
func (s *Service) Process(ctx context.Context, transcript, workerRef string) (ProcessResult, error) {
	extracted, err := s.extractor.Extract(ctx, transcript)
	if err != nil {
		return ProcessResult{}, err
	}

	resolution := entities.Resolution{Outcome: entities.ResolutionNoNameExtracted}
	if extracted.HasPatientName() {
		resolution = entities.Resolution{Outcome: entities.ResolutionNotFound}
		if worker, lookupErr := s.findWorker(ctx, workerRef); lookupErr != nil {
			return ProcessResult{}, lookupErr
		} else if worker != nil {
			resolution, err = s.resolver.Resolve(ctx, extracted, worker.ID)
			if err != nil {
				return ProcessResult{}, err
			}
		}
	}

	return ProcessResult{
		Extracted:         extracted,
		Resolution:        resolution,
		Transcription:     transcript,
		NeedsManualReview: visit.NeedsManualReview(extracted, resolution),
	}, nil
}

// DetectRedFlags classifies reported symptoms and escalates when the
// classifier flags them or, for an identified beneficiary, when the
// deterministic score crosses the threshold.
func (s *Service) DetectRedFlags(ctx context.Context, input RedFlagInput) (RedFlagOutcome, error) {
	beneficiary, err := s.findBeneficiary(ctx, input.UserID)
	if err != nil {
		return RedFlagOutcome{}, err
	}

	classifyInput := risk.ClassifyInput{
		Symptoms:      input.Symptoms,
		IsPregnant:    input.IsPregnant,
		PregnancyWeek: input.PregnancyWeek,
	}
	if beneficiary != nil {
		// Profile context beats the caller's claims when both exist
		classifyInput.IsPregnant = classifyInput.IsPregnant || beneficiary.IsPregnant
		if classifyInput.PregnancyWeek == nil {
			classifyInput.PregnancyWeek = beneficiary.PregnancyWeek
		}
	}

	result, err := s.classifier.Classify(ctx, classifyInput)
	if err != nil {
		return RedFlagOutcome{}, err
	}

	outcome := RedFlagOutcome{Result: result}

	if beneficiary != nil {
		assessment, assessErr := s.assess(ctx, beneficiary)
		if assessErr == nil {
			outcome.Assessment = assessment
		} else if s.logger != nil {
			s.logger.Warn("⚠️ Risk assessment skipped", zap.Error(assessErr))
		}
	}

	signal, ok := s.buildSignal(beneficiary, input.Symptoms, result, outcome.Assessment)
	if !ok {
		return outcome, nil
	}

	escalated, err := s.escalation.Escalate(ctx, signal)
	if err != nil {
		return RedFlagOutcome{}, err
	}
	outcome.AlertCreated = escalated.Created
	if escalated.Alert != nil {
		id := escalated.Alert.ID
		outcome.AlertID = &id
	}
	return outcome, nil
}

// buildSignal decides whether anything is severity-worthy. Red flags win;
// otherwise a deterministic score at the threshold escalates as a
// high-risk-score alert.
func (s *Service) buildSignal(beneficiary *entities.Beneficiary, symptoms []string, result entities.RedFlagResult, assessment *entities.RiskAssessment) (alert.Signal, bool) {
	if result.IsRedFlag {
		return alert.Signal{
			Beneficiary: beneficiary,
			AlertType:   entities.AlertTypeRedFlagSymptom,
			RiskScore:   result.RiskScore,
			Reasons:     result.Reasons,
			Symptoms:    symptoms,
		}, true
	}
	if assessment != nil && assessment.Score >= s.threshold {
		return alert.Signal{
			Beneficiary: beneficiary,
			AlertType:   entities.AlertTypeHighRiskScore,
			RiskScore:   float64(assessment.Score),
			Reasons:     assessment.Reasons,
			Symptoms:    symptoms,
		}, true
	}
	return alert.Signal{}, false
}

// assess computes the deterministic risk score from profile and history
func (s *Service) assess(ctx context.Context, beneficiary *entities.Beneficiary) (*entities.RiskAssessment, error) {
	logs, err := s.healthLogs.ListRecent(ctx, beneficiary.ID, historyWindow)
	if err != nil {
		return nil, apperrors.ErrStoreFailed("list health logs", err)
	}
	visits, err := s.visits.ListRecent(ctx, beneficiary.ID, historyWindow)
	if err != nil {
		return nil, apperrors.ErrStoreFailed("list visits", err)
	}
	assessment := s.riskEngine.Assess(*beneficiary, logs, visits)
	return &assessment, nil
}

// findWorker resolves a worker by row ID or upstream user ID. A blank ref
// or unknown worker returns nil, nil.
func (s *Service) findWorker(ctx context.Context, ref string) (*entities.Worker, error) {
	if ref == "" {
		return nil, nil
	}
	if id, err := uuid.Parse(ref); err == nil {
		worker, err := s.workers.FindByID(ctx, id)
		if err != nil {
			return nil, apperrors.ErrStoreFailed("find worker", err)
		}
		if worker != nil {
			return worker, nil
		}
	}
	worker, err := s.workers.FindByUserID(ctx, ref)
	if err != nil {
		return nil, apperrors.ErrStoreFailed("find worker", err)
	}
	return worker, nil
}

func (s *Service) findBeneficiary(ctx context.Context, userID string) (*entities.Beneficiary, error) {
	if userID == "" {
		return nil, nil
	}
	beneficiary, err := s.beneficiaries.FindByUserID(ctx, userID)
	if err != nil {
		return nil, apperrors.ErrStoreFailed("find beneficiary", err)
	}
	return beneficiary, nil
}

// archiveClip uploads the raw clip for audit. Failures are logged only.
func (s *Service) archiveClip(ctx context.Context, jobID uuid.UUID, clip []byte, extension string) {
	if s.archive == nil {
		return
	}
	if extension == "" {
		extension = "bin"
	}
	objectName := fmt.Sprintf("clips/%s/%s.%s", time.Now().UTC().Format("2006-01-02"), jobID, extension)
	if err := s.archive.UploadClip(ctx, objectName, clip, ""); err != nil && s.logger != nil {
		s.logger.Warn("⚠️ Clip archive failed", zap.Error(err), zap.String("object", objectName))
	}
}
