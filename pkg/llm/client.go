// Package llm wraps the language-model collaborator behind a narrow
// prompt-in, text-out contract.
package llm

import "context"

// Client sends a free-text prompt to a language model and returns the raw
// reply. Callers must never assume the reply is structured without
// validating it themselves.
type Client interface {
	Send(ctx context.Context, prompt string) (string, error)
}
