package entity

// Per-component maxima of a score breakdown.
const (
	MaxPriceScore         = 35
	MaxExperienceScore    = 25
	MaxTechnicalScore     = 25
	MaxDocumentationScore = 10
	MaxReputationScore    = 5
	MaxTotalScore         = 100
)

// ScoreBreakdown is immutable once attached to a proposal.
// Total is always the clamped sum of the components, never a reported value.
type ScoreBreakdown struct {
	Price          float64  `json:"price"`
	Experience     float64  `json:"experience"`
	Technical      float64  `json:"technical"`
	Documentation  float64  `json:"documentation"`
	Reputation     float64  `json:"reputation"`
	Total          float64  `json:"total"`
	Strengths      []string `json:"strengths"`
	Weaknesses     []string `json:"weaknesses"`
	Recommendation string   `json:"recommendation"`
	Provenance     string   `json:"provenance"`
}
