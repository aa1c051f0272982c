package app

import (
	"context"
	"io"

	"github.com/rs/zerolog"
)

// AudioTranscriber is the external speech-to-text capability.
type AudioTranscriber interface {
	Transcribe(ctx context.Context, filename string, audio io.Reader) (string, error)
}

type TranscribeService struct {
	transcriber AudioTranscriber
	logger      zerolog.Logger
}

func NewTranscribeService(transcriber AudioTranscriber, logger zerolog.Logger) *TranscribeService {
	return &TranscribeService{transcriber: transcriber, logger: logger}
}

// Transcribe converts uploaded audio to text. Failures are logged and
// surface to the caller as empty text, never as a fault.
func (s *TranscribeService) Transcribe(ctx context.Context, filename string, audio io.Reader) string {
	text, err := s.transcriber.Transcribe(ctx, filename, audio)
	if err != nil {
		s.logger.Error().Err(err).Str("file", filename).Msg("transcription failed")
		return ""
	}
	return text
}
