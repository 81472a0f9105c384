package app

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"stayseed/internal/domain"
)

// SeedService runs one generate-then-upload pass.
type SeedService struct {
	gen *Generator
	up  *Uploader
}

func NewSeedService(g *Generator, u *Uploader) *SeedService {
	return &SeedService{gen: g, up: u}
}

// Run generates records for every city and uploads them under a fresh run id.
// Chunk failures are reported in the returned report, not as an error.
func (s *SeedService) Run(ctx context.Context, cities []domain.City) (string, domain.UploadReport, error) {
	runID := uuid.NewString()

	recs, err := s.gen.GenerateAll(cities)
	if err != nil {
		return runID, domain.UploadReport{}, fmt.Errorf("generate: %w", err)
	}
	log.Info().Str("run_id", runID).Int("cities", len(cities)).Int("records", len(recs)).Msg("generation complete")

	rep, err := s.up.Upload(ctx, runID, recs)
	return runID, rep, err
}
