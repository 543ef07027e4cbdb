package speech

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	openai "github.com/sashabaranov/go-openai"
)

var transcriptionDuration = promauto.NewHistogram(prometheus.HistogramOpts{
	Namespace: "voicehire",
	Subsystem: "speech",
	Name:      "transcription_duration_seconds",
	Help:      "Duration of audio transcription requests",
})

// WhisperConfig defines configuration options for the Whisper transcriber.
type WhisperConfig struct {
	APIKey   string
	Model    string
	Language string
	Timeout  time.Duration
	Logger   zerolog.Logger
}

// WhisperTranscriber implements Transcriber against the OpenAI audio API.
type WhisperTranscriber struct {
	client *openai.Client
	cfg    WhisperConfig
	logger zerolog.Logger
}

// NewWhisperTranscriber builds a transcriber using the provided configuration.
func NewWhisperTranscriber(cfg WhisperConfig) (*WhisperTranscriber, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai api key is required")
	}

	if cfg.Model == "" {
		cfg.Model = openai.Whisper1
	}

	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}

	logger := cfg.Logger
	if logger.GetLevel() == zerolog.Disabled {
		logger = zerolog.Nop()
	}

	return &WhisperTranscriber{
		client: openai.NewClientWithConfig(openai.DefaultConfig(cfg.APIKey)),
		cfg:    cfg,
		logger: logger.With().Str("component", "whisper_transcriber").Logger(),
	}, nil
}

// Transcribe sniffs the payload's content type, rejects non-audio uploads,
// and forwards the clip to the speech model.
func (t *WhisperTranscriber) Transcribe(ctx context.Context, filename string, audio io.Reader) (string, error) {
	payload, err := io.ReadAll(audio)
	if err != nil {
		return "", fmt.Errorf("read audio payload: %w", err)
	}

	if err := ValidateAudio(payload); err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, t.cfg.Timeout)
	defer cancel()

	start := time.Now()
	resp, err := t.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    t.cfg.Model,
		FilePath: filename,
		Reader:   bytes.NewReader(payload),
		Language: t.cfg.Language,
	})
	transcriptionDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		return "", fmt.Errorf("transcribe audio: %w", err)
	}

	text := strings.TrimSpace(resp.Text)
	t.logger.Debug().Int("transcript_chars", len(text)).Msg("audio transcribed")

	return text, nil
}

// ValidateAudio checks the sniffed MIME type of payload against the accepted
// audio container formats.
func ValidateAudio(payload []byte) error {
	kind := mimetype.Detect(payload)
	for accepted := kind; accepted != nil; accepted = accepted.Parent() {
		mime := accepted.String()
		if strings.HasPrefix(mime, "audio/") || strings.HasPrefix(mime, "video/webm") || mime == "video/mp4" {
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrUnsupportedAudio, kind.String())
}
