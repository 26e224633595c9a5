package scoring

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"tender-adjudication-api/internal/common"
	"tender-adjudication-api/internal/entity"
)

// AIScorerConfig configures the chat-completions collaborator. HTTPClient is
// injectable so tests can point the scorer at an httptest server.
type AIScorerConfig struct {
	BaseURL    string
	Model      string
	APIKey     string
	HTTPClient *http.Client
}

type AIScorer struct {
	cfg AIScorerConfig
}

func NewAIScorer(cfg AIScorerConfig) *AIScorer {
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = http.DefaultClient
	}

	return &AIScorer{cfg: cfg}
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// aiBreakdown mirrors the JSON contract with the collaborator. The reported
// total is decoded but never used.
type aiBreakdown struct {
	Price          float64  `json:"price"`
	Experience     float64  `json:"experience"`
	Technical      float64  `json:"technical"`
	Documentation  float64  `json:"documentation"`
	Reputation     float64  `json:"reputation"`
	Total          float64  `json:"total"`
	Strengths      []string `json:"strengths"`
	Weaknesses     []string `json:"weaknesses"`
	Recommendation string   `json:"recommendation"`
}

func (s *AIScorer) Score(ctx context.Context, in Input) (entity.ScoreBreakdown, error) {
	body, err := json.Marshal(chatRequest{
		Model: s.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: buildPrompt(in)},
		},
	})
	if err != nil {
		return entity.ScoreBreakdown{}, fmt.Errorf("marshal scoring request: %w", err)
	}

	url := strings.TrimSuffix(s.cfg.BaseURL, "/") + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return entity.ScoreBreakdown{}, fmt.Errorf("build scoring request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.cfg.APIKey)

	res, err := s.cfg.HTTPClient.Do(req)
	if err != nil {
		return entity.ScoreBreakdown{}, fmt.Errorf("scoring request failed: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(res.Body, 4096))
		return entity.ScoreBreakdown{}, fmt.Errorf("scoring request status %d: %s", res.StatusCode, strings.TrimSpace(string(msg)))
	}

	var payload chatResponse
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		return entity.ScoreBreakdown{}, fmt.Errorf("decode scoring response: %w", err)
	}
	if len(payload.Choices) == 0 {
		return entity.ScoreBreakdown{}, fmt.Errorf("scoring response has no choices")
	}

	raw, err := extractJSONObject(payload.Choices[0].Message.Content)
	if err != nil {
		return entity.ScoreBreakdown{}, err
	}

	var parsed aiBreakdown
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return entity.ScoreBreakdown{}, fmt.Errorf("parse scoring content: %w", err)
	}

	breakdown := entity.ScoreBreakdown{
		Price:          parsed.Price,
		Experience:     parsed.Experience,
		Technical:      parsed.Technical,
		Documentation:  parsed.Documentation,
		Reputation:     parsed.Reputation,
		Strengths:      parsed.Strengths,
		Weaknesses:     parsed.Weaknesses,
		Recommendation: parsed.Recommendation,
		Provenance:     common.ScoredByAI,
	}
	if breakdown.Strengths == nil {
		breakdown.Strengths = []string{}
	}
	if breakdown.Weaknesses == nil {
		breakdown.Weaknesses = []string{}
	}

	return clampBreakdown(breakdown), nil
}

// extractJSONObject pulls the first JSON object out of the model reply.
// Models tend to wrap the object in markdown fences or prose.
func extractJSONObject(content string) (string, error) {
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start == -1 || end == -1 || end < start {
		return "", fmt.Errorf("scoring content has no JSON object")
	}

	return content[start : end+1], nil
}

const systemPrompt = "You evaluate service proposals for property-management tenders. " +
	"Reply with a single JSON object and nothing else, with numeric fields " +
	"price (0-35), experience (0-25), technical (0-25), documentation (0-10), " +
	"reputation (0-5), total, and fields strengths (array of strings), " +
	"weaknesses (array of strings), recommendation (string)."

func buildPrompt(in Input) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Tender: %s (category %s)\n", in.TenderTitle, in.Category)
	if in.BudgetMin != nil && in.BudgetMax != nil {
		fmt.Fprintf(&sb, "Budget range: %.2f - %.2f per year\n", *in.BudgetMin, *in.BudgetMax)
	}
	fmt.Fprintf(&sb, "Quoted annual price: %.2f\n", in.AnnualPrice)
	fmt.Fprintf(&sb, "Bidder experience: %d years, %d documents on file\n", in.YearsExperience, in.DocumentCount)
	if in.PaymentModality != "" {
		fmt.Fprintf(&sb, "Payment modality: %s\n", in.PaymentModality)
	}
	fmt.Fprintf(&sb, "Proposal description:\n%s\n", in.Description)
	fmt.Fprintf(&sb, "Technical approach:\n%s\n", in.TechnicalText)

	return sb.String()
}
