// Package knowledge holds the static game priors the pipeline consults:
// champion role priors, item categories, and the validation vocabularies.
// Everything here is loaded once and read-only afterwards.
package knowledge

// #region item-categories

// ArmorItems are purchases that signal the enemy is stacking physical
// mitigation. Lowercase, matched as substrings of reported item names.
var ArmorItems = []string{
	"plated steelcaps", "warden's mail", "bramble vest",
	"frozen heart", "thornmail", "randuin's omen",
}

// MagicResistItems signal magic mitigation.
var MagicResistItems = []string{
	"mercury's treads", "spectre's cowl", "hexdrinker",
	"maw of malmortius", "spirit visage", "force of nature",
}

// #endregion item-categories

// #region validation-sets

var ValidRuneTrees = map[string]bool{
	"Precision": true, "Domination": true, "Sorcery": true,
	"Resolve": true, "Inspiration": true,
}

var ValidKeystones = map[string]bool{
	"Conqueror": true, "Lethal Tempo": true, "Fleet Footwork": true,
	"Press the Attack": true,
	"Electrocute": true, "Dark Harvest": true, "Hail of Blades": true,
	"Predator": true,
	"Summon Aery": true, "Arcane Comet": true, "Phase Rush": true,
	"Grasp of the Undying": true, "Aftershock": true, "Guardian": true,
	"Glacial Augment": true, "Unsealed Spellbook": true, "First Strike": true,
}

var ValidSummoners = map[string]bool{
	"Flash": true, "Teleport": true, "Ignite": true, "Exhaust": true,
	"Heal": true, "Barrier": true, "Cleanse": true, "Ghost": true,
	"Smite": true,
}

var ValidBoots = map[string]bool{
	"Berserker's Greaves": true, "Sorcerer's Shoes": true,
	"Plated Steelcaps": true, "Mercury's Treads": true,
	"Ionian Boots of Lucidity": true, "Boots of Swiftness": true,
	"Symbiotic Soles": true, "Synchronized Soles": true,
}

var ValidSkillKeys = map[string]bool{"Q": true, "W": true, "E": true, "R": true}

// #endregion validation-sets

// #region champion-kit

// ChampionKit is the canon description of a champion used by the coaching
// agents. Minimal for now; extend from Data Dragon per patch.
type ChampionKit struct {
	Name string   `json:"champion_name"`
	Tags []string `json:"tags"`
}

// KitFor returns the canon kit for a champion. Unknown champions get a
// generic Fighter kit so downstream prompts always have something to chew.
func KitFor(champion string) ChampionKit {
	if tags, ok := championTags[champion]; ok {
		return ChampionKit{Name: champion, Tags: tags}
	}
	return ChampionKit{Name: champion, Tags: []string{"Fighter"}}
}

var championTags = map[string][]string{
	"Jinx": {"Marksman"}, "Caitlyn": {"Marksman"}, "Ashe": {"Marksman", "Support"},
	"Thresh": {"Support", "Fighter"}, "Leona": {"Tank", "Support"},
	"Darius": {"Fighter", "Tank"}, "Garen": {"Fighter", "Tank"},
	"Ahri": {"Mage", "Assassin"}, "Zed": {"Assassin"}, "Syndra": {"Mage"},
	"Lee Sin": {"Fighter", "Assassin"}, "Vi": {"Fighter", "Assassin"},
	"Malphite": {"Tank", "Fighter"}, "Ornn": {"Tank", "Fighter"},
	"Lulu": {"Support", "Mage"}, "Soraka": {"Support", "Mage"},
	"Blitzcrank": {"Tank", "Support"}, "Yasuo": {"Fighter", "Assassin"},
	"Katarina": {"Assassin", "Mage"}, "Ezreal": {"Marksman", "Mage"},
}

// #endregion champion-kit
