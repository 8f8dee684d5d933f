package agents

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/barrios-a2i/lanesight/internal/analysis"
)

// #region teamfight-coach

const teamfightSystemPrompt = `You are an expert League of Legends teamfight and composition analyst.
Given team compositions, explain the user's win condition and teamfight role.

You MUST output valid JSON only. Be specific about champion interactions.

Required JSON structure:
{
  "win_condition": "Description of how this team wins",
  "your_job": "What the user's champion should do in fights",
  "target_priority": ["Enemy1 (reason)", "Enemy2 (reason)", "Enemy3 (reason)"],
  "threat_list": ["Enemy1 (why threatening)", "Enemy2 (why threatening)"],
  "fight_rules": ["Rule 1", "Rule 2", "Rule 3"]
}`

// TeamfightOutput is the composition analysis.
type TeamfightOutput struct {
	WinCondition   string   `json:"win_condition"`
	YourJob        string   `json:"your_job"`
	TargetPriority []string `json:"target_priority"`
	ThreatList     []string `json:"threat_list"`
	FightRules     []string `json:"fight_rules"`
	Meta           Meta     `json:"meta"`
}

// TeamfightCoach analyzes the two compositions.
type TeamfightCoach struct {
	client analysis.Client
}

func NewTeamfightCoach(client analysis.Client) *TeamfightCoach {
	return &TeamfightCoach{client: client}
}

const teamfightCostPerCall = 0.004

func (t *TeamfightCoach) Analyze(ctx context.Context, in MatchupInput) (TeamfightOutput, error) {
	start := time.Now()

	prompt := fmt.Sprintf(`You: %s (%s)
Your Team: %s
  Roles: TOP=%s, JG=%s, MID=%s, ADC=%s, SUP=%s

Enemy Team: %s
  Roles: TOP=%s, JG=%s, MID=%s, ADC=%s, SUP=%s

Analyze:
1. Your team's win condition (teamfight, splitpush, pick comp, siege)
2. Your specific job as %s
3. Who to target and who to avoid
4. Key threats on the enemy team
5. Positioning and engagement rules`,
		in.UserChampion, in.UserRole,
		strings.Join(in.AllyTeam[:], ", "),
		in.AllyRoles.Top, in.AllyRoles.Jungle, in.AllyRoles.Mid, in.AllyRoles.ADC, in.AllyRoles.Support,
		strings.Join(in.EnemyTeam[:], ", "),
		in.EnemyRoles.Top, in.EnemyRoles.Jungle, in.EnemyRoles.Mid, in.EnemyRoles.ADC, in.EnemyRoles.Support,
		in.UserChampion)

	data, err := callJSON(ctx, t.client, "teamfight_coach", analysis.Request{
		System:    teamfightSystemPrompt,
		Prompt:    prompt,
		MaxTokens: 1024,
	})
	if err != nil {
		return TeamfightOutput{}, err
	}

	return TeamfightOutput{
		WinCondition:   strField(data, "win_condition", "Group and teamfight around objectives"),
		YourJob:        strField(data, "your_job", "Play your role and focus priority targets"),
		TargetPriority: listField(data, "target_priority", []string{"Enemy ADC", "Enemy Mid"}, 5),
		ThreatList:     listField(data, "threat_list", []string{"Enemy assassin", "Enemy tank engage"}, 5),
		FightRules:     listField(data, "fight_rules", []string{"Wait for engage before committing", "Peel for carries", "Focus squishy targets"}, 5),
		Meta:           Meta{Confidence: 0.85, CostUSD: teamfightCostPerCall, LatencyMS: elapsedMS(start)},
	}, nil
}

func fallbackTeamfight(in MatchupInput, latencyMS float64) TeamfightOutput {
	return TeamfightOutput{
		WinCondition:   "Group and fight around objectives",
		YourJob:        fmt.Sprintf("Play %s's role effectively", in.UserChampion),
		TargetPriority: []string{"Enemy carry", "Enemy mid laner"},
		ThreatList:     []string{"Enemy burst damage", "Enemy engage"},
		FightRules:     []string{"Wait for engage", "Focus priority targets", "Peel if needed"},
		Meta:           Meta{Confidence: 0.4, CostUSD: 0, LatencyMS: latencyMS},
	}
}

// #endregion teamfight-coach
