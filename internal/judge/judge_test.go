package judge

import (
	"testing"

	"github.com/barrios-a2i/lanesight/internal/agents"
)

func validOutputs() (*agents.BuildOutput, *agents.LaningOutput, *agents.TeamfightOutput, *agents.MacroOutput) {
	build := &agents.BuildOutput{
		Summoners: []string{"Flash", "Teleport"},
		Runes: agents.RuneConfig{
			PrimaryTree:   "Precision",
			Primary:       []string{"Conqueror", "Triumph"},
			SecondaryTree: "Resolve",
		},
		SkillOrder: agents.SkillOrder{Start: "Q", Levels1_6: []string{"Q", "W", "E", "Q", "Q", "R"}},
		CoreItems:  []string{"Trinity Force", "Sterak's Gage"},
		Boots:      "Plated Steelcaps",
	}
	laning := &agents.LaningOutput{
		Levels1_3:    []string{"Trade at level 2", "Shove first wave"},
		TradeWindows: []string{"After enemy Q", "When wave is even"},
	}
	teamfight := &agents.TeamfightOutput{
		WinCondition:   "Teamfight around dragon",
		YourJob:        "Frontline and peel",
		TargetPriority: []string{"Caitlyn", "Lux"},
	}
	macro := &agents.MacroOutput{
		Wards:      []string{"River at 2:50", "Tri bush after 6"},
		Objectives: []string{"First dragon at 5:00"},
	}
	return build, laning, teamfight, macro
}

func TestCleanOutputsApproved(t *testing.T) {
	v := Validate(validOutputs())
	if !v.Approved {
		t.Errorf("clean outputs rejected: fixes=%v", v.Fixes)
	}
	if !v.SchemaValid || !v.Consistent {
		t.Errorf("SchemaValid=%v Consistent=%v, want both true", v.SchemaValid, v.Consistent)
	}
	if len(v.Fixes) != 0 {
		t.Errorf("unexpected fixes on clean outputs: %v", v.Fixes)
	}
}

func TestInvalidSummonerFixedInPlace(t *testing.T) {
	build, laning, teamfight, macro := validOutputs()
	build.Summoners = []string{"Flash", "Clarity"}

	v := Validate(build, laning, teamfight, macro)

	if !v.Approved {
		t.Errorf("single fixable issue should still approve, fixes=%v", v.Fixes)
	}
	if len(v.Fixes) != 1 {
		t.Fatalf("fixes = %d, want exactly 1", len(v.Fixes))
	}
	if build.Summoners[1] != "Teleport" {
		t.Errorf("Summoners[1] = %q, want replaced with Teleport", build.Summoners[1])
	}
	if v.Consistent {
		t.Error("Consistent should be false when any fix was applied")
	}
}

func TestUnknownKeystoneIsUncertaintyNotFix(t *testing.T) {
	build, laning, teamfight, macro := validOutputs()
	build.Runes.Primary = []string{"Brand New Keystone", "Triumph"}

	v := Validate(build, laning, teamfight, macro)

	if len(v.Fixes) != 0 {
		t.Errorf("unknown keystone produced fixes %v, want uncertainty only", v.Fixes)
	}
	if len(v.Uncertainties) == 0 {
		t.Error("unknown keystone should be flagged as uncertainty")
	}
	if build.Runes.Primary[0] != "Brand New Keystone" {
		t.Error("keystone must not be clobbered")
	}
}

func TestInvalidStartSkillDefaulted(t *testing.T) {
	build, laning, teamfight, macro := validOutputs()
	build.SkillOrder.Start = "R"

	Validate(build, laning, teamfight, macro)

	if build.SkillOrder.Start != "Q" {
		t.Errorf("Start = %q, want Q", build.SkillOrder.Start)
	}
}

func TestTooManyFixesRejects(t *testing.T) {
	build, laning, teamfight, macro := validOutputs()
	build.Summoners = []string{"Clarity", "Revive"}
	build.SkillOrder.Start = "R"
	build.SkillOrder.Levels1_6 = []string{"Q", "X", "E", "Q", "Q", "R"}

	v := Validate(build, laning, teamfight, macro)

	if len(v.Fixes) <= 3 {
		t.Fatalf("expected more than 3 fixes, got %d", len(v.Fixes))
	}
	if v.Approved {
		t.Error("more than 3 fixes must reject the package")
	}
}

func TestSchemaFailureRejects(t *testing.T) {
	build, laning, teamfight, macro := validOutputs()
	teamfight.WinCondition = ""

	v := Validate(build, laning, teamfight, macro)

	if v.SchemaValid {
		t.Error("missing win condition should fail schema check")
	}
	if v.Approved {
		t.Error("schema failure must reject regardless of fix count")
	}
}

func TestMissingTargetPriorityFilled(t *testing.T) {
	build, laning, teamfight, macro := validOutputs()
	teamfight.TargetPriority = nil

	v := Validate(build, laning, teamfight, macro)

	if len(teamfight.TargetPriority) == 0 {
		t.Error("target priority should be filled with a generic list")
	}
	if !v.Approved {
		t.Errorf("one repair should still approve, fixes=%v", v.Fixes)
	}
}
