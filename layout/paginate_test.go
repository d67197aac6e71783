package layout

import (
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/unidoc/unioffice/measurement"
)

func TestPaginate(t *testing.T) {
	id := func(h int) measurement.Distance { return measurement.Distance(h) }

	t.Run("empty", func(t *testing.T) {
		assert.Empty(t, Paginate(nil, id, Capacity{Height: 10}))
	})

	t.Run("exact fill fits", func(t *testing.T) {
		got := Paginate([]int{4, 6, 5, 5}, id, Capacity{Height: 10})
		if diff := cmp.Diff([][]int{{4, 6}, {5, 5}}, got); diff != "" {
			t.Errorf("pages mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("oversized item alone", func(t *testing.T) {
		got := Paginate([]int{2, 30, 2, 2}, id, Capacity{Height: 10})
		if diff := cmp.Diff([][]int{{2}, {30}, {2, 2}}, got); diff != "" {
			t.Errorf("pages mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("first page overhead", func(t *testing.T) {
		c := Capacity{Height: 12, Overhead: 2, FirstPageOverhead: 6}
		assert.Equal(t, measurement.Distance(4), c.Available(0))
		assert.Equal(t, measurement.Distance(10), c.Available(1))

		got := Paginate([]int{3, 3, 3, 3, 3, 3}, id, c)
		if diff := cmp.Diff([][]int{{3}, {3, 3, 3}, {3, 3}}, got); diff != "" {
			t.Errorf("pages mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("float rounding", func(t *testing.T) {
		tenth := func(float64) measurement.Distance { return 0.1 }
		got := Paginate([]float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, tenth, Capacity{Height: 1})
		assert.Len(t, got, 1)
	})
}

func TestPaginateProperties(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for iter := 0; iter < 500; iter++ {
		n := rng.Intn(40)
		items := make([]int, n)
		for i := range items {
			items[i] = i
		}
		heights := make([]measurement.Distance, n)
		for i := range heights {
			heights[i] = measurement.Distance(1 + rng.Intn(30))
		}
		c := Capacity{
			Height:            measurement.Distance(20 + rng.Intn(60)),
			Overhead:          measurement.Distance(rng.Intn(10)),
			FirstPageOverhead: measurement.Distance(rng.Intn(15)),
		}
		measure := func(i int) measurement.Distance { return heights[i] }

		pages := Paginate(items, measure, c)

		var flat []int
		for p, page := range pages {
			require.NotEmpty(t, page, "iteration %d: empty page", iter)
			var sum measurement.Distance
			for _, it := range page {
				sum += measure(it)
			}
			if len(page) > 1 {
				assert.LessOrEqual(t, float64(sum), float64(c.Available(p)), "iteration %d page %d over capacity", iter, p)
			}
			flat = append(flat, page...)
		}
		if n == 0 {
			assert.Empty(t, pages)
			continue
		}
		if diff := cmp.Diff(items, flat); diff != "" {
			t.Fatalf("iteration %d: items lost or reordered (-want +got):\n%s", iter, diff)
		}
	}
}
