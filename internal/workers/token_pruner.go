// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/med-cms/internal/logger"
)

// RevokedTokenPruner periodically drops revocation entries whose tokens
// have expired. Revoked tokens stay rejected until then, so the list only
// grows between runs.
type RevokedTokenPruner struct {
	pruner   TokenPruner
	interval time.Duration

	logger *logger.Logger
}

func NewRevokedTokenPruner(pruner TokenPruner, interval time.Duration, logger *logger.Logger) *RevokedTokenPruner {
	return &RevokedTokenPruner{
		pruner:   pruner,
		interval: interval,
		logger:   logger,
	}
}

// Run prunes once right away and then every interval until ctx is done.
func (p *RevokedTokenPruner) Run(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()

		p.prune(ctx)
		for {
			select {
			case <-ctx.Done():
				p.logger.Info().Msg("revoked token pruner stopped")
				return
			case <-ticker.C:
				p.prune(ctx)
			}
		}
	}()
}

func (p *RevokedTokenPruner) prune(ctx context.Context) {
	removed, err := p.pruner.PruneRevokedTokens(ctx)
	if err != nil {
		p.logger.Err(err).Str("func", "*RevokedTokenPruner.prune").Msg("error pruning revoked tokens")
		return
	}
	if removed > 0 {
		p.logger.Info().Int64("removed", removed).Msg("expired revoked tokens pruned")
	}
}
