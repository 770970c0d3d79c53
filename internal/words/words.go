package words

import "math/rand"

// vocabulary is the shared word pool every match draws from. Large enough
// that a full match (two rounds per player) never exhausts it.
var vocabulary = []string{
	"Apple", "Banana", "Cherry", "Grape", "Lemon", "Mango", "Orange", "Peach",
	"Bridge", "Castle", "Harbor", "Island", "Lighthouse", "Mountain", "River", "Valley",
	"Anchor", "Balloon", "Candle", "Compass", "Hammer", "Ladder", "Mirror", "Umbrella",
	"Dolphin", "Eagle", "Falcon", "Giraffe", "Octopus", "Penguin", "Tiger", "Walrus",
	"Blizzard", "Rainbow", "Sunrise", "Thunder", "Tornado", "Avalanche", "Monsoon", "Twilight",
	"Guitar", "Piano", "Trumpet", "Violin", "Drum", "Flute", "Harp", "Saxophone",
	"Astronaut", "Detective", "Firefighter", "Magician", "Pilot", "Pirate", "Sailor", "Wizard",
	"Diamond", "Emerald", "Marble", "Copper", "Granite", "Crystal", "Silver", "Amber",
}

// Deal returns n distinct words drawn from the vocabulary in shuffled order.
// Panics if n exceeds the vocabulary size; callers size matches against Size.
func Deal(n int) []string {
	if n > len(vocabulary) {
		panic("words: deal exceeds vocabulary size")
	}
	shuffled := make([]string, len(vocabulary))
	copy(shuffled, vocabulary)
	rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	return shuffled[:n]
}

// Size reports how many words the vocabulary holds.
func Size() int {
	return len(vocabulary)
}
