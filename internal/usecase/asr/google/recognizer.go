// Package google provides a Google Cloud Speech-to-Text recognizer.
package google

import (
	"context"
	"encoding/binary"
	"strings"

	speech "cloud.google.com/go/speech/apiv1"
	speechpb "google.golang.org/genproto/googleapis/cloud/speech/v1"

	"github.com/sehatsaathi/voicecare/internal/usecase/asr"
)

// Recognizer performs batch recognition against Google Cloud Speech-to-Text.
// Requires GOOGLE_APPLICATION_CREDENTIALS environment variable to be set.
type Recognizer struct {
	client          *speech.Client
	defaultLanguage string
}

// New dials the Speech API. The dial is the expensive part, so it is done
// once and the client reused for every request.
func New(ctx context.Context, defaultLanguage string) (*Recognizer, error) {
	c, err := speech.NewClient(ctx)
	if err != nil {
		return nil, err
	}
	if defaultLanguage == "" {
		defaultLanguage = "hi"
	}
	return &Recognizer{client: c, defaultLanguage: defaultLanguage}, nil
}

// Transcribe recognizes mono 16 kHz float32 samples and returns the joined
// transcript of all result alternatives with their average confidence.
func (r *Recognizer) Transcribe(ctx context.Context, samples []float32, language string) (asr.Result, error) {
	if language == "" {
		language = r.defaultLanguage
	}

	resp, err := r.client.Recognize(ctx, &speechpb.RecognizeRequest{
		Config: &speechpb.RecognitionConfig{
			Encoding:        speechpb.RecognitionConfig_LINEAR16,
			SampleRateHertz: 16000,
			LanguageCode:    LanguageCode(language),
		},
		Audio: &speechpb.RecognitionAudio{
			AudioSource: &speechpb.RecognitionAudio_Content{
				Content: encodeLinear16(samples),
			},
		},
	})
	if err != nil {
		return asr.Result{}, err
	}

	var parts []string
	var confidenceSum float64
	for _, result := range resp.Results {
		if len(result.Alternatives) == 0 {
			continue
		}
		alt := result.Alternatives[0]
		parts = append(parts, alt.Transcript)
		confidenceSum += float64(alt.Confidence)
	}

	out := asr.Result{Text: strings.Join(parts, " ")}
	if len(parts) > 0 {
		out.Confidence = confidenceSum / float64(len(parts))
	}
	return out, nil
}

// Close releases the underlying gRPC connection
func (r *Recognizer) Close() error {
	return r.client.Close()
}

// LanguageCode maps a caller language hint to a BCP-47 code. Unknown hints
// pass through unchanged so full codes like "ta-IN" keep working.
func LanguageCode(hint string) string {
	switch strings.ToLower(hint) {
	case "hi":
		return "hi-IN"
	case "en":
		return "en-IN"
	default:
		return hint
	}
}

// encodeLinear16 converts float32 samples to little-endian 16-bit PCM,
// clamping out-of-range values instead of letting them wrap.
func encodeLinear16(samples []float32) []byte {
	out := make([]byte, len(samples)*2)
	for i, s := range samples {
		if s > 1 {
			s = 1
		} else if s < -1 {
			s = -1
		}
		v := int16(s * 32767)
		binary.LittleEndian.PutUint16(out[i*2:], uint16(v))
	}
	return out
}
