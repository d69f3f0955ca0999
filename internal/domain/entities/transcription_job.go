package entities

import (
	"time"

	"github.com/google/uuid"
)

// TranscriptionJobStatus tracks a voice clip through the request-scoped
// transcription pipeline.
type TranscriptionJobStatus string

const (
	TranscriptionStatusPending      TranscriptionJobStatus = "pending"
	TranscriptionStatusDecoding     TranscriptionJobStatus = "decoding"
	TranscriptionStatusTranscribing TranscriptionJobStatus = "transcribing"
	TranscriptionStatusDone         TranscriptionJobStatus = "done"
	TranscriptionStatusFailed       TranscriptionJobStatus = "failed"
)

// TranscriptionJob is ephemeral state for one transcription request. It is
// never persisted; it exists so progress and failure detail have one home
// for the lifetime of the request.
type TranscriptionJob struct {
	ID           uuid.UUID
	Audio        []byte
	Extension    string
	LanguageHint string
	Status       TranscriptionJobStatus
	Transcript   string
	ErrorDetail  string
	StartedAt    time.Time
}

// NewTranscriptionJob creates a pending job for one uploaded clip.
func NewTranscriptionJob(audio []byte, extension, languageHint string) *TranscriptionJob {
	return &TranscriptionJob{
		ID:           uuid.New(),
		Audio:        audio,
		Extension:    extension,
		LanguageHint: languageHint,
		Status:       TranscriptionStatusPending,
		StartedAt:    time.Now(),
	}
}

// MarkDecoding transitions the job into the transcode stage.
func (j *TranscriptionJob) MarkDecoding() {
	j.Status = TranscriptionStatusDecoding
}

// MarkTranscribing transitions the job into the ASR stage.
func (j *TranscriptionJob) MarkTranscribing() {
	j.Status = TranscriptionStatusTranscribing
}

// Complete records the final transcript and releases the audio buffer.
func (j *TranscriptionJob) Complete(transcript string) {
	j.Status = TranscriptionStatusDone
	j.Transcript = transcript
	j.Audio = nil
}

// Fail records the failure and releases the audio buffer.
func (j *TranscriptionJob) Fail(err error) {
	j.Status = TranscriptionStatusFailed
	if err != nil {
		j.ErrorDetail = err.Error()
	}
	j.Audio = nil
}
