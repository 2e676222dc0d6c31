package crypto

import "sync"

// Diceware vocabulary. Words are combined adjective-noun, giving
// len(adjectives) x len(nouns) distinct entries (~11 bits per word with
// the lists below). Lists stay lowercase ASCII so passphrases are easy to
// type on any keyboard.

var dicewareAdjectives = []string{
	"amber", "arctic", "bold", "brisk", "broad", "bronze", "calm", "cedar",
	"clear", "cobalt", "copper", "coral", "crimson", "dusty", "faded",
	"fierce", "floral", "frosty", "golden", "granite", "hazel", "hollow",
	"iron", "ivory", "lunar", "maple", "mellow", "misty", "mossy", "olive",
	"opal", "pale", "plain", "proud", "rapid", "rustic", "sable", "sandy",
	"silent", "silver", "slate", "steady", "stone", "swift", "tidal",
	"velvet", "wild", "winter",
}

var dicewareNouns = []string{
	"acorn", "arrow", "badger", "basin", "birch", "bison", "bluff",
	"boulder", "brook", "cavern", "cliff", "clover", "compass", "condor",
	"cove", "crane", "creek", "delta", "falcon", "fern", "fjord", "glacier",
	"grove", "harbor", "heron", "inlet", "jasper", "knoll", "lagoon",
	"marsh", "mesa", "orchard", "osprey", "otter", "pebble", "pine",
	"plateau", "raven", "reef", "ridge", "sparrow", "spruce", "summit",
	"thicket", "trail", "tundra", "walnut", "wren",
}

var (
	dicewareList []string
	dicewareOnce sync.Once
)

func dicewareWords() []string {
	dicewareOnce.Do(func() {
		pairs := len(dicewareAdjectives) * len(dicewareNouns)
		merged := make([]string, 0, pairs)
		for _, adj := range dicewareAdjectives {
			for _, noun := range dicewareNouns {
				merged = append(merged, adj+"-"+noun)
			}
		}
		dicewareList = merged
	})
	return dicewareList
}
