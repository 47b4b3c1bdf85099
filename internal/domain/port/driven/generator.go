package driven

import (
	"context"

	"pagepilot/internal/domain/model"
)

// Generator defines the driven port for the text-generation model.
// Generate is synchronous and single-shot; the adapter enforces its own
// request timeout.
type Generator interface {
	Generate(ctx context.Context, req model.GenerationRequest) (string, error)
}
