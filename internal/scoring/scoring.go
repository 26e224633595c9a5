// Package scoring computes the 0-100 suitability score of a proposal.
// Two interchangeable strategies sit behind the Scorer interface: an
// AI-assisted one and a deterministic rubric. The Selector wraps the AI
// call in a timeout and falls back to the rubric on any failure, so the
// submission path never fails because the AI collaborator is degraded.
package scoring

import (
	"context"
	"log/slog"
	"time"

	"tender-adjudication-api/internal/entity"
)

type Input struct {
	TenderTitle     string
	Category        string
	BudgetMin       *float64
	BudgetMax       *float64
	AnnualPrice     float64
	Description     string
	TechnicalText   string
	YearsExperience int
	DocumentCount   int
	PaymentModality string
}

type Scorer interface {
	Score(ctx context.Context, in Input) (entity.ScoreBreakdown, error)
}

func clamp(v, max float64) float64 {
	if v < 0 {
		return 0
	}
	if v > max {
		return max
	}

	return v
}

// clampBreakdown bounds every component and recomputes the total as the
// clamped sum. A reported total is never trusted.
func clampBreakdown(b entity.ScoreBreakdown) entity.ScoreBreakdown {
	b.Price = clamp(b.Price, entity.MaxPriceScore)
	b.Experience = clamp(b.Experience, entity.MaxExperienceScore)
	b.Technical = clamp(b.Technical, entity.MaxTechnicalScore)
	b.Documentation = clamp(b.Documentation, entity.MaxDocumentationScore)
	b.Reputation = clamp(b.Reputation, entity.MaxReputationScore)
	b.Total = clamp(b.Price+b.Experience+b.Technical+b.Documentation+b.Reputation, entity.MaxTotalScore)

	return b
}

// Selector tries the primary scorer within a bounded timeout and falls back
// to the rubric. It never returns an error.
type Selector struct {
	primary  Scorer
	fallback *RubricScorer
	timeout  time.Duration
	log      *slog.Logger
}

func NewSelector(primary Scorer, fallback *RubricScorer, timeout time.Duration, log *slog.Logger) *Selector {
	return &Selector{primary: primary, fallback: fallback, timeout: timeout, log: log}
}

func (s *Selector) Score(ctx context.Context, in Input) (entity.ScoreBreakdown, error) {
	if s.primary != nil {
		scoreCtx, cancel := context.WithTimeout(ctx, s.timeout)
		breakdown, err := s.primary.Score(scoreCtx, in)
		cancel()
		if err == nil {
			return breakdown, nil
		}

		s.log.Warn("ai scoring unavailable, using rubric", "error", err)
	}

	return s.fallback.Score(ctx, in)
}
