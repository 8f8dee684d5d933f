package knowledge

import "testing"

func TestPrimaryRole(t *testing.T) {
	tests := []struct {
		champion string
		want     Role
	}{
		{"Darius", RoleTop},
		{"Jinx", RoleADC},
		{"Thresh", RoleSupport},
		{"Ahri", RoleMid},
		{"Vi", RoleJungle},
		{"Lux", RoleMid},
		{"NotAChampion", RoleUnknown},
		{"", RoleUnknown},
	}
	for _, tt := range tests {
		if got := PrimaryRole(tt.champion); got != tt.want {
			t.Errorf("PrimaryRole(%q) = %s, want %s", tt.champion, got, tt.want)
		}
	}
}

func TestAmbiguous(t *testing.T) {
	tests := []struct {
		champion string
		want     bool
	}{
		{"Lux", true},      // 0.55 mid vs 0.43 support
		{"Olaf", true},     // 0.50 top vs 0.48 jungle
		{"Darius", false},  // 0.92 top
		{"Jinx", false},    // 0.95 adc
		{"NotAChampion", false},
	}
	for _, tt := range tests {
		if got := Ambiguous(tt.champion); got != tt.want {
			t.Errorf("Ambiguous(%q) = %v, want %v", tt.champion, got, tt.want)
		}
	}
}

func TestAssignRolesCleanComp(t *testing.T) {
	team := [5]string{"Darius", "Lee Sin", "Ahri", "Jinx", "Thresh"}
	a := AssignRoles(team, "", RoleUnknown)

	want := Assignment{
		Top: "Darius", Jungle: "Lee Sin", Mid: "Ahri",
		ADC: "Jinx", Support: "Thresh",
	}
	if a != want {
		t.Errorf("AssignRoles = %+v, want %+v", a, want)
	}
}

func TestAssignRolesPinnedOverride(t *testing.T) {
	// Vayne is an ADC by prior, pinned to top lane by the user.
	team := [5]string{"Vayne", "Vi", "Syndra", "Caitlyn", "Leona"}
	a := AssignRoles(team, "Vayne", RoleTop)

	if a.Top != "Vayne" {
		t.Fatalf("Top = %s, want pinned Vayne", a.Top)
	}
	if a.ADC != "Caitlyn" {
		t.Errorf("ADC = %s, want Caitlyn", a.ADC)
	}
	// Pinned champion must not appear twice.
	if a.Mid == "Vayne" || a.Jungle == "Vayne" || a.Support == "Vayne" {
		t.Errorf("Vayne assigned twice: %+v", a)
	}
}

func TestAssignRolesPinIgnoredWhenAbsent(t *testing.T) {
	// The pinned champion is not on this roster; pin must be a no-op.
	team := [5]string{"Garen", "Hecarim", "Zed", "Draven", "Nami"}
	a := AssignRoles(team, "Darius", RoleTop)

	if a.Top != "Garen" {
		t.Errorf("Top = %s, want Garen", a.Top)
	}
}

func TestAssignRolesPartialRoster(t *testing.T) {
	team := [5]string{"Darius", "", "Ahri", "", ""}
	a := AssignRoles(team, "", RoleUnknown)

	if a.Top != "Darius" || a.Mid != "Ahri" {
		t.Errorf("assignment = %+v", a)
	}
	filled := 0
	for _, r := range []Role{RoleTop, RoleJungle, RoleMid, RoleADC, RoleSupport} {
		if a.Slot(r) != "" {
			filled++
		}
	}
	if filled != 2 {
		t.Errorf("filled %d slots from a 2-champion roster: %+v", filled, a)
	}
}

func TestAssignRolesUnknownChampionGetsLeftoverSlot(t *testing.T) {
	team := [5]string{"Darius", "Lee Sin", "Ahri", "Jinx", "Zoeyx"}
	a := AssignRoles(team, "", RoleUnknown)

	if a.Support != "Zoeyx" {
		t.Errorf("Support = %s, want leftover Zoeyx (full: %+v)", a.Support, a)
	}
}

func TestLaneOpponent(t *testing.T) {
	enemy := [5]string{"Garen", "Vi", "Syndra", "Caitlyn", "Leona"}

	tests := []struct {
		role Role
		want string
	}{
		{RoleTop, "Garen"},
		{RoleJungle, "Vi"},
		{RoleMid, "Syndra"},
		{RoleADC, "Caitlyn"},
		{RoleSupport, "Leona"},
		{RoleUnknown, "Unknown"},
	}
	for _, tt := range tests {
		if got := LaneOpponent(tt.role, enemy); got != tt.want {
			t.Errorf("LaneOpponent(%s) = %s, want %s", tt.role, got, tt.want)
		}
	}

	empty := [5]string{}
	if got := LaneOpponent(RoleTop, empty); got != "Unknown" {
		t.Errorf("LaneOpponent on empty roster = %s, want Unknown", got)
	}
}

func TestKitFor(t *testing.T) {
	kit := KitFor("Darius")
	if kit.Name != "Darius" || len(kit.Tags) == 0 || kit.Tags[0] != "Fighter" {
		t.Errorf("KitFor(Darius) = %+v", kit)
	}

	unknown := KitFor("NotAChampion")
	if unknown.Name != "NotAChampion" || len(unknown.Tags) != 1 || unknown.Tags[0] != "Fighter" {
		t.Errorf("unknown kit = %+v, want generic Fighter", unknown)
	}
}
