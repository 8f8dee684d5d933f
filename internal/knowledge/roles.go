package knowledge

import "sort"

// #region role

// Role is a lane assignment.
type Role string

const (
	RoleTop     Role = "Top"
	RoleJungle  Role = "Jungle"
	RoleMid     Role = "Mid"
	RoleADC     Role = "ADC"
	RoleSupport Role = "Support"
	RoleUnknown Role = "Unknown"
)

// roleOrder is the slot-filling order for team assignment.
var roleOrder = []Role{RoleTop, RoleJungle, RoleMid, RoleADC, RoleSupport}

// #endregion role

// #region priors

// rolePriors maps champion → role probability, sourced from meta statistics.
// Extend from Data Dragon / op.gg exports per patch.
var rolePriors = map[string]map[Role]float64{
	// Marksmen
	"Jinx":    {RoleADC: 0.95, RoleMid: 0.03, RoleSupport: 0.02},
	"Caitlyn": {RoleADC: 0.92, RoleMid: 0.05, RoleSupport: 0.03},
	"Ashe":    {RoleADC: 0.80, RoleSupport: 0.18, RoleMid: 0.02},
	"Ezreal":  {RoleADC: 0.90, RoleMid: 0.08, RoleJungle: 0.02},
	"Jhin":    {RoleADC: 0.93, RoleMid: 0.05, RoleSupport: 0.02},
	"Kai'Sa":  {RoleADC: 0.92, RoleMid: 0.06, RoleSupport: 0.02},
	"Vayne":   {RoleADC: 0.75, RoleTop: 0.22, RoleMid: 0.03},
	"Draven":  {RoleADC: 0.97, RoleMid: 0.02, RoleTop: 0.01},
	"Lucian":  {RoleADC: 0.60, RoleMid: 0.35, RoleTop: 0.05},
	"Samira":  {RoleADC: 0.95, RoleMid: 0.04, RoleSupport: 0.01},

	// Supports
	"Thresh":     {RoleSupport: 0.97, RoleTop: 0.02, RoleJungle: 0.01},
	"Leona":      {RoleSupport: 0.98, RoleJungle: 0.01, RoleTop: 0.01},
	"Lulu":       {RoleSupport: 0.88, RoleMid: 0.08, RoleTop: 0.04},
	"Nami":       {RoleSupport: 0.98, RoleMid: 0.01, RoleTop: 0.01},
	"Nautilus":   {RoleSupport: 0.85, RoleJungle: 0.08, RoleTop: 0.07},
	"Blitzcrank": {RoleSupport: 0.95, RoleMid: 0.03, RoleTop: 0.02},
	"Soraka":     {RoleSupport: 0.92, RoleMid: 0.05, RoleTop: 0.03},
	"Pyke":       {RoleSupport: 0.88, RoleMid: 0.10, RoleTop: 0.02},
	"Senna":      {RoleSupport: 0.65, RoleADC: 0.33, RoleMid: 0.02},

	// Top laners
	"Darius":     {RoleTop: 0.92, RoleMid: 0.05, RoleJungle: 0.03},
	"Garen":      {RoleTop: 0.90, RoleMid: 0.08, RoleSupport: 0.02},
	"Fiora":      {RoleTop: 0.95, RoleMid: 0.04, RoleJungle: 0.01},
	"Aatrox":     {RoleTop: 0.90, RoleMid: 0.08, RoleJungle: 0.02},
	"Ornn":       {RoleTop: 0.95, RoleSupport: 0.04, RoleJungle: 0.01},
	"Renekton":   {RoleTop: 0.88, RoleMid: 0.10, RoleJungle: 0.02},
	"Malphite":   {RoleTop: 0.70, RoleSupport: 0.20, RoleMid: 0.08, RoleJungle: 0.02},
	"Jax":        {RoleTop: 0.75, RoleJungle: 0.22, RoleMid: 0.03},
	"K'Sante":    {RoleTop: 0.93, RoleMid: 0.05, RoleJungle: 0.02},
	"Mordekaiser": {RoleTop: 0.85, RoleMid: 0.08, RoleJungle: 0.07},

	// Mid laners
	"Ahri":      {RoleMid: 0.95, RoleSupport: 0.03, RoleADC: 0.02},
	"Syndra":    {RoleMid: 0.92, RoleADC: 0.05, RoleSupport: 0.03},
	"Zed":       {RoleMid: 0.90, RoleJungle: 0.05, RoleTop: 0.05},
	"Yasuo":     {RoleMid: 0.60, RoleTop: 0.25, RoleADC: 0.15},
	"Katarina":  {RoleMid: 0.95, RoleTop: 0.03, RoleJungle: 0.02},
	"Orianna":   {RoleMid: 0.95, RoleSupport: 0.03, RoleADC: 0.02},
	"Viktor":    {RoleMid: 0.90, RoleADC: 0.05, RoleTop: 0.05},
	"Kassadin":  {RoleMid: 0.95, RoleTop: 0.04, RoleJungle: 0.01},
	"Azir":      {RoleMid: 0.97, RoleADC: 0.02, RoleTop: 0.01},
	"Lux":       {RoleMid: 0.55, RoleSupport: 0.43, RoleADC: 0.02},

	// Junglers
	"Lee Sin":   {RoleJungle: 0.90, RoleTop: 0.06, RoleMid: 0.04},
	"Vi":        {RoleJungle: 0.95, RoleTop: 0.04, RoleMid: 0.01},
	"Elise":     {RoleJungle: 0.97, RoleSupport: 0.02, RoleMid: 0.01},
	"Kha'Zix":   {RoleJungle: 0.96, RoleTop: 0.03, RoleMid: 0.01},
	"Hecarim":   {RoleJungle: 0.92, RoleTop: 0.07, RoleMid: 0.01},
	"Sejuani":   {RoleJungle: 0.93, RoleTop: 0.06, RoleSupport: 0.01},
	"Warwick":   {RoleJungle: 0.85, RoleTop: 0.14, RoleMid: 0.01},
	"Nocturne":  {RoleJungle: 0.90, RoleMid: 0.08, RoleTop: 0.02},
	"Volibear":  {RoleTop: 0.55, RoleJungle: 0.42, RoleMid: 0.03},
	"Olaf":      {RoleTop: 0.50, RoleJungle: 0.48, RoleMid: 0.02},
}

// #endregion priors

// #region primary-role

// PrimaryRole returns the highest-prior role for a champion, RoleUnknown if
// the champion has no priors.
func PrimaryRole(champion string) Role {
	priors, ok := rolePriors[champion]
	if !ok {
		return RoleUnknown
	}
	best := RoleUnknown
	bestP := -1.0
	for _, r := range roleOrder {
		if p, ok := priors[r]; ok && p > bestP {
			bestP = p
			best = r
		}
	}
	return best
}

// Ambiguous reports whether a champion's top two role priors are within
// 0.15 of each other, meaning the assignment deserves a note.
func Ambiguous(champion string) bool {
	priors, ok := rolePriors[champion]
	if !ok {
		return false
	}
	var ps []float64
	for _, p := range priors {
		ps = append(ps, p)
	}
	if len(ps) < 2 {
		return false
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(ps)))
	return ps[0]-ps[1] < 0.15
}

// #endregion primary-role

// #region assignment

// Assignment maps each lane slot to a champion name.
type Assignment struct {
	Top     string `json:"TOP"`
	Jungle  string `json:"JG"`
	Mid     string `json:"MID"`
	ADC     string `json:"ADC"`
	Support string `json:"SUP"`
}

// Slot returns the champion assigned to a role.
func (a Assignment) Slot(r Role) string {
	switch r {
	case RoleTop:
		return a.Top
	case RoleJungle:
		return a.Jungle
	case RoleMid:
		return a.Mid
	case RoleADC:
		return a.ADC
	case RoleSupport:
		return a.Support
	}
	return ""
}

func (a *Assignment) setSlot(r Role, champion string) {
	switch r {
	case RoleTop:
		a.Top = champion
	case RoleJungle:
		a.Jungle = champion
	case RoleMid:
		a.Mid = champion
	case RoleADC:
		a.ADC = champion
	case RoleSupport:
		a.Support = champion
	}
}

// AssignRoles greedily fills the five lane slots from role priors: each
// slot takes the unassigned champion with the highest prior for it, in
// Top/Jungle/Mid/ADC/Support order. pinned optionally forces one champion
// into a role (the user's declared role).
func AssignRoles(team [5]string, pinnedChampion string, pinnedRole Role) Assignment {
	var out Assignment
	used := make(map[string]bool)

	if pinnedChampion != "" && pinnedRole != RoleUnknown && pinnedRole != "" {
		for _, c := range team {
			if c == pinnedChampion {
				out.setSlot(pinnedRole, pinnedChampion)
				used[pinnedChampion] = true
			}
		}
	}

	for _, r := range roleOrder {
		if out.Slot(r) != "" {
			continue
		}
		best := ""
		bestP := 0.0
		for _, c := range team {
			if c == "" || used[c] {
				continue
			}
			if p := rolePriors[c][r]; p > bestP {
				bestP = p
				best = c
			}
		}
		if best != "" {
			out.setSlot(r, best)
			used[best] = true
		}
	}

	// Champions without priors still get a lane: fill leftover slots in
	// roster order.
	for _, c := range team {
		if c == "" || used[c] {
			continue
		}
		for _, r := range roleOrder {
			if out.Slot(r) == "" {
				out.setSlot(r, c)
				used[c] = true
				break
			}
		}
	}
	return out
}

// #endregion assignment

// #region lane-opponent

// LaneOpponent finds the enemy champion whose primary role matches the
// user's role. "Unknown" when no enemy fits.
func LaneOpponent(role Role, enemyTeam [5]string) string {
	if role == RoleUnknown || role == "" {
		return "Unknown"
	}
	for _, c := range enemyTeam {
		if c != "" && PrimaryRole(c) == role {
			return c
		}
	}
	return "Unknown"
}

// #endregion lane-opponent
