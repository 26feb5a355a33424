package recommend

import (
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/next1store/marketoo-down/internal/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func catalogWith(collections map[string]int) []catalog.Product {
	var out []catalog.Product
	for collection, n := range collections {
		for i := 0; i < n; i++ {
			out = append(out, catalog.Product{ID: fmt.Sprintf("%s-%d", collection, i), Collection: collection})
		}
	}
	return out
}

func TestRelatedToProperties(t *testing.T) {
	sampler := NewSampler(rand.NewPCG(42, 99))
	products := catalogWith(map[string]int{"skincare": 6, "books": 2, "electronics": 1})

	for _, focal := range products {
		candidates := Candidates(focal, products)
		allowed := map[string]bool{}
		for _, c := range candidates {
			allowed[c.ID] = true
		}

		for count := 0; count <= 5; count++ {
			got := sampler.RelatedTo(focal, products, count)
			assert.Len(t, got, min(count, len(candidates)))

			seen := map[string]bool{}
			for _, p := range got {
				require.NotEqual(t, focal.ID, p.ID, "focal product excluded")
				require.True(t, allowed[p.ID], "result is a subset of the candidate set")
				require.False(t, seen[p.ID], "sampled without replacement")
				seen[p.ID] = true
			}
		}
	}
}

func TestRelatedToSingletonCollection(t *testing.T) {
	sampler := NewSampler(rand.NewPCG(1, 1))
	products := catalogWith(map[string]int{"electronics": 1, "books": 3})
	var focal catalog.Product
	for _, p := range products {
		if p.Collection == "electronics" {
			focal = p
		}
	}
	got := sampler.RelatedTo(focal, products, DefaultCount)
	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestRelatedToWithoutCollection(t *testing.T) {
	sampler := NewSampler(nil)
	products := []catalog.Product{{ID: "a"}, {ID: "b"}}
	assert.Empty(t, sampler.RelatedTo(products[0], products, DefaultCount))
}

func TestRelatedToDoesNotMutateCatalog(t *testing.T) {
	sampler := NewSampler(rand.NewPCG(5, 6))
	products := catalogWith(map[string]int{"books": 8})
	before := append([]catalog.Product(nil), products...)
	_ = sampler.RelatedTo(products[0], products, DefaultCount)
	assert.Equal(t, before, products)
}

func TestSeededSamplerIsReproducible(t *testing.T) {
	products := catalogWith(map[string]int{"books": 10})
	a := NewSampler(rand.NewPCG(7, 7)).RelatedTo(products[0], products, DefaultCount)
	b := NewSampler(rand.NewPCG(7, 7)).RelatedTo(products[0], products, DefaultCount)
	assert.Equal(t, a, b)
}

func TestSamplingCoversEveryCandidate(t *testing.T) {
	sampler := NewSampler(rand.NewPCG(11, 13))
	products := catalogWith(map[string]int{"books": 6})
	hits := map[string]int{}
	for i := 0; i < 600; i++ {
		for _, p := range sampler.RelatedTo(products[0], products, DefaultCount) {
			hits[p.ID]++
		}
	}
	assert.Len(t, hits, 5, "every candidate is eventually sampled")
}
