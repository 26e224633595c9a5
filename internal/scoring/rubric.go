package scoring

import (
	"context"
	"unicode/utf8"

	"tender-adjudication-api/internal/common"
	"tender-adjudication-api/internal/entity"
)

const (
	rubricPriceBaseline      = 20
	rubricTechnicalBase      = 5
	rubricDescriptionPoints  = 10
	rubricTechnicalPoints    = 10
	rubricDescriptionMinLen  = 50
	rubricTechnicalMinLen    = 100
	rubricExperiencePerYear  = 4
	rubricPointsPerDocument  = 1.5
	rubricReputationModality = 5
)

// RubricScorer is the deterministic fallback strategy. It is a pure
// function of its input and never fails.
type RubricScorer struct{}

func NewRubricScorer() *RubricScorer {
	return &RubricScorer{}
}

func (s *RubricScorer) Score(_ context.Context, in Input) (entity.ScoreBreakdown, error) {
	b := entity.ScoreBreakdown{
		Strengths:      []string{},
		Weaknesses:     []string{},
		Recommendation: "Automatic rubric evaluation; review the proposal manually before adjudicating.",
		Provenance:     common.ScoredByFallback,
	}

	if in.AnnualPrice > 0 {
		b.Price = rubricPriceBaseline
		b.Strengths = append(b.Strengths, "A concrete annual price was quoted.")
	} else {
		b.Weaknesses = append(b.Weaknesses, "No positive annual price was quoted.")
	}

	// Thresholds count characters, not bytes, so accented text isn't
	// measured longer than it reads.
	if len(in.TechnicalText) > 0 {
		b.Technical += rubricTechnicalBase
	}
	if utf8.RuneCountInString(in.Description) >= rubricDescriptionMinLen {
		b.Technical += rubricDescriptionPoints
	} else {
		b.Weaknesses = append(b.Weaknesses, "The proposal description is very short.")
	}
	if utf8.RuneCountInString(in.TechnicalText) >= rubricTechnicalMinLen {
		b.Technical += rubricTechnicalPoints
		b.Strengths = append(b.Strengths, "A detailed technical approach was provided.")
	}

	b.Experience = float64(in.YearsExperience * rubricExperiencePerYear)
	if b.Experience > entity.MaxExperienceScore {
		b.Experience = entity.MaxExperienceScore
	}

	b.Documentation = float64(in.DocumentCount) * rubricPointsPerDocument
	if b.Documentation > entity.MaxDocumentationScore {
		b.Documentation = entity.MaxDocumentationScore
	}

	if in.PaymentModality != "" {
		b.Reputation = rubricReputationModality
	}

	return clampBreakdown(b), nil
}
