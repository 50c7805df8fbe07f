package queryparams_test

import (
	"net/url"
	"testing"

	"github.com/karanbedi/storefront-platform/internal/models"
	"github.com/karanbedi/storefront-platform/internal/queryparams"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Run("Comma values become typed slices", func(t *testing.T) {
		obj, err := queryparams.Parse("gender=men,women&page=2&sale=true")

		require.NoError(t, err)
		assert.Equal(t, []any{"men", "women"}, obj["gender"])
		assert.Equal(t, float64(2), obj["page"])
		assert.Equal(t, true, obj["sale"])
	})

	t.Run("Single value stays scalar", func(t *testing.T) {
		obj, err := queryparams.Parse("color=red")

		require.NoError(t, err)
		assert.Equal(t, "red", obj["color"])
	})

	t.Run("Leading question mark is tolerated", func(t *testing.T) {
		obj, err := queryparams.Parse("?size=m")

		require.NoError(t, err)
		assert.Equal(t, "m", obj["size"])
	})

	t.Run("Empty tokens are dropped", func(t *testing.T) {
		obj, err := queryparams.Parse("color=&gender=men,")

		require.NoError(t, err)
		_, hasColor := obj["color"]
		assert.False(t, hasColor)
		assert.Equal(t, "men", obj["gender"])
	})
}

func TestStringify(t *testing.T) {
	t.Run("Skips absent values", func(t *testing.T) {
		out := queryparams.Stringify(queryparams.Object{
			"search": "  ",
			"gender": []any{},
			"color":  nil,
			"size":   "m",
		})

		assert.Equal(t, "size=m", out)
	})

	t.Run("Joins slices with commas", func(t *testing.T) {
		out := queryparams.Stringify(queryparams.Object{
			"gender": []any{"men", "women"},
			"page":   float64(3),
		})

		assert.Equal(t, "gender=men%2Cwomen&page=3", out)
	})
}

// decode(encode(x)) must preserve effective meaning for representable states.
func TestRoundTrip(t *testing.T) {
	inputs := []queryparams.Object{
		{"gender": []any{"men", "women"}, "color": "red", "page": float64(2)},
		{"search": "running shoes", "sale": true},
		{"size": []any{"m", "l", "xl"}, "priceMin": 25.5, "priceMax": float64(150)},
	}

	for _, in := range inputs {
		out, err := queryparams.Parse(queryparams.Stringify(in))

		require.NoError(t, err)
		assert.Equal(t, in, out)
	}
}

func TestUpsert(t *testing.T) {
	current := queryparams.Object{"gender": "men", "page": float64(2)}

	next := queryparams.Upsert(current, queryparams.Object{
		"color": "red",
		"page":  nil,
	})

	assert.Equal(t, "red", next["color"])
	assert.Equal(t, "men", next["gender"])
	_, hasPage := next["page"]
	assert.False(t, hasPage)

	// original map untouched
	assert.Equal(t, float64(2), current["page"])
}

func TestToggle(t *testing.T) {
	t.Run("Adds when missing", func(t *testing.T) {
		next := queryparams.Toggle(queryparams.Object{}, "gender", "men")

		assert.Equal(t, []any{"men"}, next["gender"])
	})

	t.Run("Removes when present", func(t *testing.T) {
		current := queryparams.Object{"gender": []any{"men", "women"}}

		next := queryparams.Toggle(current, "gender", "men")

		assert.Equal(t, []any{"women"}, next["gender"])
	})

	t.Run("Removing the last value deletes the key", func(t *testing.T) {
		current := queryparams.Object{"gender": "men"}

		next := queryparams.Toggle(current, "gender", "men")

		_, ok := next["gender"]
		assert.False(t, ok)
	})

	t.Run("Involution - toggling twice restores state", func(t *testing.T) {
		states := []queryparams.Object{
			{},
			{"gender": []any{"men"}},
			{"gender": []any{"men", "women"}, "color": "red"},
		}

		for _, state := range states {
			twice := queryparams.Toggle(queryparams.Toggle(state, "gender", "women"), "gender", "women")

			assert.Equal(t, queryparams.Stringify(state), queryparams.Stringify(twice))
		}
	})

	t.Run("Numeric values compare by token", func(t *testing.T) {
		obj, err := queryparams.Parse("size=10")
		require.NoError(t, err)

		next := queryparams.Toggle(obj, "size", "10")

		_, ok := next["size"]
		assert.False(t, ok)
	})
}

func TestRemoveKeys(t *testing.T) {
	current := queryparams.Object{"gender": "men", "color": "red", "page": float64(1)}

	next := queryparams.RemoveKeys(current, "gender", "page")

	assert.Equal(t, queryparams.Object{"color": "red"}, next)
}

func TestDecodeFilters(t *testing.T) {
	t.Run("Full specification", func(t *testing.T) {
		values, err := url.ParseQuery("search=jordan&brand=b1,b2&category=c1&gender=men,women&color=red&size=m,l&priceMin=10&priceMax=200&sort=price_desc&page=3&limit=12")
		require.NoError(t, err)

		f := queryparams.DecodeFilters(values)

		assert.Equal(t, "jordan", f.Search)
		assert.Equal(t, []string{"b1", "b2"}, f.BrandIDs)
		assert.Equal(t, []string{"c1"}, f.CategoryIDs)
		assert.Equal(t, []string{"men", "women"}, f.GenderSlugs)
		assert.Equal(t, []string{"red"}, f.ColorSlugs)
		assert.Equal(t, []string{"m", "l"}, f.SizeSlugs)
		require.NotNil(t, f.PriceMin)
		require.NotNil(t, f.PriceMax)
		assert.Equal(t, float64(10), *f.PriceMin)
		assert.Equal(t, float64(200), *f.PriceMax)
		assert.Equal(t, models.SortPriceDesc, f.SortBy)
		assert.Equal(t, 3, f.Page)
		assert.Equal(t, 12, f.Limit)
	})

	t.Run("Combined price range token", func(t *testing.T) {
		values, err := url.ParseQuery("price=50-100")
		require.NoError(t, err)

		f := queryparams.DecodeFilters(values)

		require.NotNil(t, f.PriceMin)
		require.NotNil(t, f.PriceMax)
		assert.Equal(t, float64(50), *f.PriceMin)
		assert.Equal(t, float64(100), *f.PriceMax)
	})

	t.Run("Malformed numeric input is dropped", func(t *testing.T) {
		values, err := url.ParseQuery("priceMin=abc&page=xyz")
		require.NoError(t, err)

		f := queryparams.DecodeFilters(values)

		assert.Nil(t, f.PriceMin)
		assert.Zero(t, f.Page)
	})

	t.Run("Unknown sort falls back to latest", func(t *testing.T) {
		values, err := url.ParseQuery("sort=featured")
		require.NoError(t, err)

		f := queryparams.DecodeFilters(values)

		assert.Equal(t, models.SortLatest, f.SortBy)
	})
}

func TestEncodeFilters(t *testing.T) {
	t.Run("Round-trips through DecodeFilters", func(t *testing.T) {
		min := 10.5
		max := float64(200)
		in := models.ProductListFilters{
			Search:      "jordan",
			BrandIDs:    []string{"b1", "b2"},
			GenderSlugs: []string{"men"},
			SizeSlugs:   []string{"m", "l"},
			PriceMin:    &min,
			PriceMax:    &max,
			SortBy:      models.SortPriceAsc,
			Page:        2,
			Limit:       12,
		}

		encoded := queryparams.EncodeFilters(in)
		values, err := url.ParseQuery(encoded)
		require.NoError(t, err)

		out := queryparams.DecodeFilters(values)

		assert.Equal(t, in, out)
	})

	t.Run("Defaults are omitted", func(t *testing.T) {
		encoded := queryparams.EncodeFilters(models.ProductListFilters{
			SortBy: models.SortLatest,
			Page:   1,
			Limit:  models.DefaultPageSize,
		})

		assert.Empty(t, encoded)
	})
}
