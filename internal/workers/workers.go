package workers

import (
	"context"

	"github.com/MKhiriev/med-cms/internal/config"
	"github.com/MKhiriev/med-cms/internal/logger"
)

type Workers struct {
	workers []Worker
}

// NewWorkers builds the background jobs enabled by cfg.
func NewWorkers(pruner TokenPruner, cfg config.Workers, logger *logger.Logger) *Workers {
	w := &Workers{}
	if pruner != nil && cfg.TokenPruneInterval > 0 {
		w.workers = append(w.workers, NewRevokedTokenPruner(pruner, cfg.TokenPruneInterval, logger))
	}
	return w
}

func (w *Workers) Run(ctx context.Context) {
	for _, worker := range w.workers {
		worker.Run(ctx)
	}
}
