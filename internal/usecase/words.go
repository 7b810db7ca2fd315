package usecase

import "math/rand"

// Movie quotes used as race text. Short, human-readable, no tokens that
// are awkward to type.
var quotes = []string{
	"May the Force be with you",
	"There's no place like home",
	"You can't handle the truth",
	"I'll be back",
	"Here's looking at you kid",
	"Go ahead, make my day",
	"Houston, we have a problem",
	"You talking to me",
	"Show me the money",
	"Life is like a box of chocolates",
	"I see dead people",
	"Say hello to my little friend",
	"I feel the need, the need for speed",
	"Why so serious",
	"Elementary, my dear Watson",
	"Nobody puts Baby in a corner",
	"To infinity and beyond",
	"Just keep swimming",
	"I am your father",
	"With great power comes great responsibility",
	"Keep your friends close, but your enemies closer",
	"You shall not pass",
	"My precious",
	"Hasta la vista, baby",
	"I'm king of the world",
	"Roads? Where we're going we don't need roads",
	"Carpe diem, seize the day",
	"They may take our lives, but they'll never take our freedom",
	"Every man dies, not every man really lives",
	"Do, or do not, there is no try",
	"Great Scott",
	"After all, tomorrow is another day",
	"It's alive, it's alive",
	"You're gonna need a bigger boat",
	"Fasten your seatbelts, it's going to be a bumpy night",
	"I'm walking here",
	"The first rule of Fight Club is you do not talk about Fight Club",
	"This is Sparta",
	"Wax on, wax off",
	"Adventure is out there",
}

// QuoteGenerator produces race text for a round. It holds no mutable
// state, so rooms starting games at the same time can call it freely.
type QuoteGenerator struct{}

// NewQuoteGenerator creates a QuoteGenerator
func NewQuoteGenerator() *QuoteGenerator {
	return &QuoteGenerator{}
}

// Generate returns count random quotes. Variety across calls is the
// intent; the same quote may repeat within one round.
func (g *QuoteGenerator) Generate(count int) []string {
	if count <= 0 {
		return nil
	}

	result := make([]string, count)
	for i := 0; i < count; i++ {
		result[i] = quotes[rand.Intn(len(quotes))]
	}
	return result
}

// CorpusSize returns the number of quotes available
func (g *QuoteGenerator) CorpusSize() int {
	return len(quotes)
}
