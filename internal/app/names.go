package app

import (
	"fmt"
	"math/rand/v2"

	"github.com/dkeye/FrontDesk/internal/domain"
)

var fruit = []string{
	"apple", "orange", "pear", "fig", "prune", "lime", "olive", "melon",
	"mango", "kiwi", "plum", "berry", "guava", "grape", "date", "apricot",
	"lychee", "peach", "papaya", "tomato", "loquat", "banana", "persimmon",
	"quince", "pineapple", "watermelon", "wolfberry", "longan", "kumquat",
	"jackfruit", "honeydew",
}

// NameCandidates returns n "fruit-fruit" room names. Duplicates are possible.
func NameCandidates(n int, rnd *rand.Rand) []domain.RoomName {
	pick := rand.IntN
	if rnd != nil {
		pick = rnd.IntN
	}
	out := make([]domain.RoomName, 0, n)
	for range n {
		out = append(out, domain.RoomName(fmt.Sprintf("%s-%s", fruit[pick(len(fruit))], fruit[pick(len(fruit))])))
	}
	return out
}
