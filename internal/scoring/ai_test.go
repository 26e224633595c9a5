package scoring

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"tender-adjudication-api/internal/common"
)

func newChatServer(t *testing.T, status int, content string) *httptest.Server {
	t.Helper()

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/chat/completions", r.URL.Path)
		require.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		w.WriteHeader(status)
		if status == http.StatusOK {
			body := `{"choices":[{"message":{"content":` + content + `}}]}`
			io.WriteString(w, body)
		}
	}))
}

func testInput() Input {
	return Input{
		TenderTitle:     "Annual cleaning",
		Category:        common.CategoryCleaning,
		AnnualPrice:     15000,
		Description:     "Daily cleaning of common areas",
		TechnicalText:   "Team of four with certified supplies",
		YearsExperience: 6,
		DocumentCount:   3,
	}
}

func TestAIScorerParsesAndClamps(t *testing.T) {
	// Components over their maxima must be clamped and the total recomputed.
	content := `"{\"price\": 90, \"experience\": 20, \"technical\": 25, \"documentation\": 10, \"reputation\": 5, \"total\": 3, \"strengths\": [\"good price\"], \"weaknesses\": [], \"recommendation\": \"award\"}"`
	srv := newChatServer(t, http.StatusOK, content)
	defer srv.Close()

	s := NewAIScorer(AIScorerConfig{BaseURL: srv.URL, Model: "test-model", APIKey: "test-key"})
	b, err := s.Score(context.Background(), testInput())
	require.NoError(t, err)

	require.Equal(t, float64(35), b.Price)
	require.Equal(t, float64(95), b.Total)
	require.Equal(t, common.ScoredByAI, b.Provenance)
	require.Equal(t, []string{"good price"}, b.Strengths)
	require.Equal(t, "award", b.Recommendation)
}

func TestAIScorerFencedContent(t *testing.T) {
	content := `"Here you go:\n` + "```json" + `\n{\"price\": 30, \"experience\": 20, \"technical\": 20, \"documentation\": 8, \"reputation\": 4, \"total\": 82, \"strengths\": [], \"weaknesses\": [], \"recommendation\": \"ok\"}\n` + "```" + `"`
	srv := newChatServer(t, http.StatusOK, content)
	defer srv.Close()

	s := NewAIScorer(AIScorerConfig{BaseURL: srv.URL, Model: "test-model", APIKey: "test-key"})
	b, err := s.Score(context.Background(), testInput())
	require.NoError(t, err)
	require.Equal(t, float64(82), b.Total)
}

func TestAIScorerMalformedContent(t *testing.T) {
	srv := newChatServer(t, http.StatusOK, `"the proposal looks fine to me"`)
	defer srv.Close()

	s := NewAIScorer(AIScorerConfig{BaseURL: srv.URL, Model: "test-model", APIKey: "test-key"})
	_, err := s.Score(context.Background(), testInput())
	require.Error(t, err)
}

func TestAIScorerUpstreamError(t *testing.T) {
	srv := newChatServer(t, http.StatusBadGateway, "")
	defer srv.Close()

	s := NewAIScorer(AIScorerConfig{BaseURL: srv.URL, Model: "test-model", APIKey: "test-key"})
	_, err := s.Score(context.Background(), testInput())
	require.Error(t, err)
}

func TestSelectorFallsBackOnError(t *testing.T) {
	srv := newChatServer(t, http.StatusBadGateway, "")
	defer srv.Close()

	ai := NewAIScorer(AIScorerConfig{BaseURL: srv.URL, Model: "test-model", APIKey: "test-key"})
	sel := NewSelector(ai, NewRubricScorer(), time.Second, slog.New(slog.NewTextHandler(io.Discard, nil)))

	b, err := sel.Score(context.Background(), testInput())
	require.NoError(t, err)
	require.Equal(t, common.ScoredByFallback, b.Provenance)
}

func TestSelectorFallsBackOnTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	ai := NewAIScorer(AIScorerConfig{BaseURL: srv.URL, Model: "test-model", APIKey: "test-key"})
	sel := NewSelector(ai, NewRubricScorer(), 10*time.Millisecond, slog.New(slog.NewTextHandler(io.Discard, nil)))

	start := time.Now()
	b, err := sel.Score(context.Background(), testInput())
	require.NoError(t, err)
	require.Equal(t, common.ScoredByFallback, b.Provenance)
	require.Less(t, time.Since(start), 150*time.Millisecond)
}

func TestSelectorWithoutPrimary(t *testing.T) {
	sel := NewSelector(nil, NewRubricScorer(), time.Second, slog.New(slog.NewTextHandler(io.Discard, nil)))

	b, err := sel.Score(context.Background(), testInput())
	require.NoError(t, err)
	require.Equal(t, common.ScoredByFallback, b.Provenance)
}
