package output

import (
	"context"

	"github.com/crimson-sun/sectormatch/internal/model"
)

// Writer defines the interface for match report destinations.
type Writer interface {
	Write(ctx context.Context, report model.Report) error
	Close() error
}
