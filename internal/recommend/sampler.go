package recommend

import (
	"math/rand/v2"

	"github.com/next1store/marketoo-down/internal/catalog"
)

// DefaultCount is how many related products the quick view shows.
const DefaultCount = 3

// Sampler picks related products for presentation variety. Results are
// random by contract; inject a seeded source for reproducible tests.
type Sampler struct {
	rng *rand.Rand
}

// NewSampler builds a sampler over src, or over a randomly seeded source when src is nil.
func NewSampler(src rand.Source) *Sampler {
	if src == nil {
		src = rand.NewPCG(rand.Uint64(), rand.Uint64())
	}
	return &Sampler{rng: rand.New(src)}
}

// Candidates lists the products sharing focal's collection, excluding focal.
// Products without a collection have no candidates.
func Candidates(focal catalog.Product, products []catalog.Product) []catalog.Product {
	if focal.Collection == "" {
		return []catalog.Product{}
	}
	out := make([]catalog.Product, 0)
	for _, p := range products {
		if p.Collection == focal.Collection && p.ID != focal.ID {
			out = append(out, p)
		}
	}
	return out
}

// RelatedTo returns a uniform sample without replacement of min(count, |candidates|) products.
func (s *Sampler) RelatedTo(focal catalog.Product, products []catalog.Product, count int) []catalog.Product {
	pool := Candidates(focal, products)
	if count <= 0 || len(pool) == 0 {
		return []catalog.Product{}
	}
	if count > len(pool) {
		count = len(pool)
	}
	// partial Fisher-Yates: the first count slots end up uniformly sampled
	for i := 0; i < count; i++ {
		j := i + s.rng.IntN(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:count:count]
}
