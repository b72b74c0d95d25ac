package landing

var Teasers = []string{
	"Your market is about to come alive.",
	"The days of chaotic organising are almost over.",
	"One home for organisers, stallholders, and visitors.",
	"No more lost messages. No more crossed wires.",
	"What used to take six conversations will soon take one tap.",
	"Your stall deserves more attention. Very soon… it will get it.",
	"A market isn’t just stalls — it’s a community.",
	"Something new is coming to local events in Aotearoa.",
	"Sign up now – be the first to open the future of local markets.",
}

// TeaserAt wraps i around the teaser list, negative indexes included.
func TeaserAt(i int) string {
	n := len(Teasers)
	return Teasers[((i%n)+n)%n]
}
