// Package agents holds the coaching agents: pre-game swarm agents that
// build the full game plan from a loading screen, and the live extractor
// and coach that run against mid-game screenshots. A failed model call is
// an error to the caller; the exported Fallback helpers provide the
// deterministic local results callers substitute when a call cannot run.
package agents

import (
	"context"
	"fmt"
	"time"

	"github.com/barrios-a2i/lanesight/internal/analysis"
)

// Meta is the accounting block every agent output carries.
type Meta struct {
	Confidence float64 `json:"confidence"`
	CostUSD    float64 `json:"cost_usd"`
	LatencyMS  float64 `json:"processing_time_ms"`
}

// #region llm-call

// callJSON runs one analysis request and parses the JSON object out of
// the reply. Call failures and unparseable replies are errors so that
// breakers guarding the call site count them.
func callJSON(ctx context.Context, client analysis.Client, name string, req analysis.Request) (map[string]any, error) {
	if client == nil {
		return nil, fmt.Errorf("%s: no analysis client", name)
	}
	res, err := client.Analyze(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	data, err := analysis.ExtractJSON(res.Text)
	if err != nil {
		return nil, fmt.Errorf("%s: unparseable reply: %w", name, err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%s: empty reply object", name)
	}
	return data, nil
}

func elapsedMS(start time.Time) float64 {
	return float64(time.Since(start)) / float64(time.Millisecond)
}

// Deterministic fallbacks, exported for callers that need a total result
// when an agent cannot run at all.

func FallbackBuild() BuildOutput                          { return fallbackBuild(0) }
func FallbackLaning() LaningOutput                        { return fallbackLaning(0) }
func FallbackTeamfight(in MatchupInput) TeamfightOutput   { return fallbackTeamfight(in, 0) }
func FallbackMacro() MacroOutput                          { return fallbackMacro(0) }

// #endregion llm-call

// #region field-helpers

// Model JSON comes back loosely typed; these pull fields with defaults.

func strField(m map[string]any, key, def string) string {
	if s, ok := m[key].(string); ok && s != "" {
		return s
	}
	return def
}

func listField(m map[string]any, key string, def []string, limit int) []string {
	raw, ok := m[key].([]any)
	if !ok {
		return def
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return def
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func mapField(m map[string]any, key string) map[string]any {
	sub, _ := m[key].(map[string]any)
	return sub
}

// #endregion field-helpers
