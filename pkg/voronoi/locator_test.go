package voronoi

import (
	"math/rand"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocatorNearest(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	sites := make([]orb.Point, 15)
	for i := range sites {
		sites[i] = orb.Point{rng.Float64() * 1024, rng.Float64() * 1024}
	}
	d, err := GenerateDiagram(sites, testRect())
	require.NoError(t, err)

	loc := NewLocator(d)

	for i := 0; i < 50; i++ {
		q := orb.Point{rng.Float64() * 1024, rng.Float64() * 1024}
		got := loc.Nearest(q)
		require.NotNil(t, got)

		// the locator must agree with the brute-force nearest site
		best, bestDist := -1, -1.0
		for j, s := range sites {
			if dd := dist(q, s); best < 0 || dd < bestDist {
				best, bestDist = j, dd
			}
		}
		assert.Equal(t, best, got.Index, "query %v", q)
	}
}

func TestLocatorSingleSite(t *testing.T) {
	d, err := GenerateDiagram([]orb.Point{{512, 512}}, testRect())
	require.NoError(t, err)

	loc := NewLocator(d)
	got := loc.Nearest(orb.Point{1, 1})
	require.NotNil(t, got)
	assert.Equal(t, 0, got.Index)
}
