// Package speech converts recorded audio clips into plain text.
package speech

import (
	"context"
	"errors"
	"io"
)

// ErrUnsupportedAudio indicates the uploaded payload is not a recognised
// audio format.
var ErrUnsupportedAudio = errors.New("unsupported audio format")

// Transcriber turns an audio clip into its spoken text. Implementations may
// be slow; callers should pass a bounded context.
type Transcriber interface {
	Transcribe(ctx context.Context, filename string, audio io.Reader) (string, error)
}
