// Package judge is the quality gate between the coaching agents and the
// assembled package. It checks categorical fields against the known-valid
// sets, repairs what it safely can in place, and records what it cannot.
package judge

import (
	"fmt"
	"time"

	"github.com/barrios-a2i/lanesight/internal/agents"
	"github.com/barrios-a2i/lanesight/internal/knowledge"
)

// maxFixesForApproval tolerates minor repairs; more than this means the
// agent outputs were too unreliable to ship unreviewed.
const maxFixesForApproval = 3

// Fix records one in-place repair.
type Fix struct {
	Field      string `json:"field"`
	Issue      string `json:"issue"`
	FixApplied string `json:"fix_applied"`
}

// Verdict is the validation outcome.
type Verdict struct {
	Approved      bool     `json:"approved"`
	Fixes         []Fix    `json:"fixes_applied"`
	Uncertainties []string `json:"remaining_uncertainty"`
	SchemaValid   bool     `json:"schema_valid"`
	Consistent    bool     `json:"cross_agent_consistent"`
	LatencyMS     float64  `json:"processing_time_ms"`
}

// #region validate

// Validate checks the four coaching outputs. Categorical fields with a
// known safe default are fixed in place; fields that might be valid on a
// newer patch are recorded as uncertainties instead of being clobbered.
func Validate(build *agents.BuildOutput, laning *agents.LaningOutput, teamfight *agents.TeamfightOutput, macro *agents.MacroOutput) Verdict {
	start := time.Now()
	var fixes []Fix
	var uncertainties []string

	// Summoner spells have stable names; replace invalid ones.
	for i, spell := range build.Summoners {
		if !knowledge.ValidSummoners[spell] {
			replacement := "Teleport"
			if i == 0 {
				replacement = "Flash"
			}
			fixes = append(fixes, Fix{
				Field:      fmt.Sprintf("build.summoners[%d]", i),
				Issue:      fmt.Sprintf("Invalid summoner: %s", spell),
				FixApplied: "Replaced with " + replacement,
			})
			build.Summoners[i] = replacement
		}
	}

	// Rune trees change between seasons, so flag rather than replace.
	if !knowledge.ValidRuneTrees[build.Runes.PrimaryTree] {
		fixes = append(fixes, Fix{
			Field:      "build.runes.primary_tree",
			Issue:      fmt.Sprintf("Invalid rune tree: %s", build.Runes.PrimaryTree),
			FixApplied: "Kept as-is, may be a new tree",
		})
		uncertainties = append(uncertainties, fmt.Sprintf("Rune tree %q not in validation set", build.Runes.PrimaryTree))
	}
	if !knowledge.ValidRuneTrees[build.Runes.SecondaryTree] {
		fixes = append(fixes, Fix{
			Field:      "build.runes.secondary_tree",
			Issue:      fmt.Sprintf("Invalid secondary tree: %s", build.Runes.SecondaryTree),
			FixApplied: "Kept as-is, may be a new tree",
		})
	}

	if len(build.Runes.Primary) > 0 {
		if keystone := build.Runes.Primary[0]; keystone != "" && !knowledge.ValidKeystones[keystone] {
			uncertainties = append(uncertainties, fmt.Sprintf("Keystone %q not in validation set, may be valid for current patch", keystone))
		}
	}

	if build.Boots != "" && !knowledge.ValidBoots[build.Boots] {
		uncertainties = append(uncertainties, fmt.Sprintf("Boots %q not in validation set", build.Boots))
	}

	for _, key := range build.SkillOrder.Levels1_6 {
		if !knowledge.ValidSkillKeys[key] {
			fixes = append(fixes, Fix{
				Field:      "build.skill_order.levels_1_6",
				Issue:      fmt.Sprintf("Invalid skill key: %s", key),
				FixApplied: "Flagged but not auto-corrected",
			})
		}
	}

	switch build.SkillOrder.Start {
	case "Q", "W", "E":
	default:
		fixes = append(fixes, Fix{
			Field:      "build.skill_order.start",
			Issue:      fmt.Sprintf("Invalid start skill: %s", build.SkillOrder.Start),
			FixApplied: "Defaulted to Q",
		})
		build.SkillOrder.Start = "Q"
	}

	if len(laning.Levels1_3) < 2 {
		uncertainties = append(uncertainties, "Laning plan has minimal detail for levels 1-3")
	}
	if len(laning.TradeWindows) < 2 {
		uncertainties = append(uncertainties, "Trade window advice is minimal")
	}

	if len(teamfight.TargetPriority) == 0 {
		fixes = append(fixes, Fix{
			Field:      "teamfight.target_priority",
			Issue:      "Missing target priority",
			FixApplied: "Added generic priority list",
		})
		teamfight.TargetPriority = []string{"Enemy carry", "Enemy mid laner"}
	}

	if len(macro.Wards) < 2 {
		uncertainties = append(uncertainties, "Ward plan is minimal, consider adding more ward locations")
	}

	schemaValid := checkSchema(build, laning, teamfight, macro, &fixes)

	return Verdict{
		Approved:      schemaValid && len(fixes) <= maxFixesForApproval,
		Fixes:         fixes,
		Uncertainties: uncertainties,
		SchemaValid:   schemaValid,
		Consistent:    len(fixes) == 0,
		LatencyMS:     float64(time.Since(start)) / float64(time.Millisecond),
	}
}

// checkSchema verifies the structural minimums each block must carry.
func checkSchema(build *agents.BuildOutput, laning *agents.LaningOutput, teamfight *agents.TeamfightOutput, macro *agents.MacroOutput, fixes *[]Fix) bool {
	missing := ""
	switch {
	case len(build.Summoners) == 0 || len(build.CoreItems) == 0:
		missing = "build missing summoners or core items"
	case len(laning.Levels1_3) == 0:
		missing = "laning missing level 1-3 plan"
	case teamfight.WinCondition == "" || teamfight.YourJob == "":
		missing = "teamfight missing win condition or job"
	case len(macro.Wards) == 0:
		missing = "macro missing ward plan"
	}
	if missing == "" {
		return true
	}
	*fixes = append(*fixes, Fix{
		Field:      "schema",
		Issue:      "Schema validation error: " + missing,
		FixApplied: "Flagged for manual review",
	})
	return false
}

// #endregion validate
