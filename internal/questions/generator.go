package questions

import (
	"fmt"
	"math/rand/v2"
	"time"
)

// QuestionsPerKey is how many templates are sampled for each key point.
const QuestionsPerKey = 4

// Generator renders key points found in document text into questions.
// A Generator is not safe for concurrent use because the random source is not.
type Generator struct {
	catalog *Catalog
	rng     *rand.Rand
}

// NewGenerator returns a Generator drawing templates from catalog. A nil rng
// falls back to a process-seeded source.
func NewGenerator(catalog *Catalog, rng *rand.Rand) *Generator {
	if rng == nil {
		rng = NewRand()
	}
	return &Generator{catalog: catalog, rng: rng}
}

// NewRand returns a PCG source seeded from the clock and the runtime's
// global generator.
func NewRand() *rand.Rand {
	return rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), rand.Uint64()))
}

// NewSeededRand returns a reproducible source.
func NewSeededRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Generate returns at most maxCount questions. Questions are grouped per key
// point in discovery order; each group is a random sample of QuestionsPerKey
// templates in shuffled order. A negative maxCount is rejected.
func (g *Generator) Generate(text string, maxCount int) ([]string, error) {
	if maxCount < 0 {
		return nil, fmt.Errorf("%w: question count %d is negative", ErrInvalidArgument, maxCount)
	}
	out := []string{}
	if maxCount == 0 {
		return out, nil
	}

	for _, sec := range SplitSections(text) {
		for _, kp := range FindKeyPoints(sec.Text) {
			rendered := g.catalog.Render(kp.Key, sec.Title)
			g.rng.Shuffle(len(rendered), func(i, j int) {
				rendered[i], rendered[j] = rendered[j], rendered[i]
			})
			out = append(out, rendered[:min(QuestionsPerKey, len(rendered))]...)
			// Later groups can only be truncated away.
			if len(out) >= maxCount {
				return out[:maxCount], nil
			}
		}
	}
	return out, nil
}

// Generate resolves the catalog for language and runs a one-off Generator.
func Generate(text, language string, maxCount int, rng *rand.Rand) ([]string, error) {
	c, err := CatalogFor(language)
	if err != nil {
		return nil, err
	}
	return NewGenerator(c, rng).Generate(text, maxCount)
}
