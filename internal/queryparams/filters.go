package queryparams

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/karanbedi/storefront-platform/internal/models"
)

// Query keys understood by the storefront filter UI.
const (
	keySearch   = "search"
	keyBrand    = "brand"
	keyCategory = "category"
	keyGender   = "gender"
	keyColor    = "color"
	keySize     = "size"
	keyPrice    = "price"
	keyPriceMin = "priceMin"
	keyPriceMax = "priceMax"
	keySort     = "sort"
	keyPage     = "page"
	keyLimit    = "limit"
)

// DecodeFilters turns request query parameters into a typed filter
// specification. Malformed numeric input is dropped rather than rejected;
// page/limit bounds are clamped later by the product service.
func DecodeFilters(values url.Values) models.ProductListFilters {
	f := models.ProductListFilters{
		Search:      strings.TrimSpace(values.Get(keySearch)),
		BrandIDs:    splitMulti(values[keyBrand]),
		CategoryIDs: splitMulti(values[keyCategory]),
		GenderSlugs: splitMulti(values[keyGender]),
		ColorSlugs:  splitMulti(values[keyColor]),
		SizeSlugs:   splitMulti(values[keySize]),
		SortBy:      parseSort(values.Get(keySort)),
	}

	f.PriceMin = parseFloat(values.Get(keyPriceMin))
	f.PriceMax = parseFloat(values.Get(keyPriceMax))

	// The filter UI also emits a combined "price=min-max" token.
	if f.PriceMin == nil && f.PriceMax == nil {
		if lo, hi, ok := parsePriceRange(values.Get(keyPrice)); ok {
			f.PriceMin = lo
			f.PriceMax = hi
		}
	}

	if page, err := strconv.Atoi(values.Get(keyPage)); err == nil {
		f.Page = page
	}
	if limit, err := strconv.Atoi(values.Get(keyLimit)); err == nil {
		f.Limit = limit
	}

	return f
}

// EncodeFilters renders a filter specification as a canonical query string:
// comma-joined sets, absent fields omitted.
func EncodeFilters(f models.ProductListFilters) string {
	obj := Object{
		keySearch:   f.Search,
		keyBrand:    toAny(f.BrandIDs),
		keyCategory: toAny(f.CategoryIDs),
		keyGender:   toAny(f.GenderSlugs),
		keyColor:    toAny(f.ColorSlugs),
		keySize:     toAny(f.SizeSlugs),
	}

	if f.PriceMin != nil {
		obj[keyPriceMin] = *f.PriceMin
	}
	if f.PriceMax != nil {
		obj[keyPriceMax] = *f.PriceMax
	}
	if f.SortBy != "" && f.SortBy != models.SortLatest {
		obj[keySort] = string(f.SortBy)
	}
	if f.Page > 1 {
		obj[keyPage] = float64(f.Page)
	}
	if f.Limit > 0 && f.Limit != models.DefaultPageSize {
		obj[keyLimit] = float64(f.Limit)
	}

	return Stringify(obj)
}

func splitMulti(vals []string) []string {
	var out []string
	for _, v := range vals {
		for _, part := range strings.Split(v, ",") {
			part = strings.TrimSpace(part)
			if part != "" {
				out = append(out, part)
			}
		}
	}

	return out
}

func parseSort(raw string) models.SortBy {
	switch models.SortBy(raw) {
	case models.SortPriceAsc:
		return models.SortPriceAsc
	case models.SortPriceDesc:
		return models.SortPriceDesc
	default:
		return models.SortLatest
	}
}

func parseFloat(raw string) *float64 {
	if raw == "" {
		return nil
	}

	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}

	return &f
}

func parsePriceRange(raw string) (*float64, *float64, bool) {
	if raw == "" {
		return nil, nil, false
	}

	parts := strings.SplitN(raw, "-", 2)
	if len(parts) != 2 {
		return nil, nil, false
	}

	lo := parseFloat(parts[0])
	hi := parseFloat(parts[1])
	if lo == nil && hi == nil {
		return nil, nil, false
	}

	return lo, hi, true
}

func toAny(vals []string) []any {
	out := make([]any, 0, len(vals))
	for _, v := range vals {
		out = append(out, v)
	}

	return out
}
