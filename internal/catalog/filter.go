package catalog

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mossxapp/mossx-backend/pkg/dataset"
)

// priceRange is a parsed price bucket such as "10-25" or "50+". A nil max
// means the bucket is open ended.
type priceRange struct {
	min decimal.Decimal
	max *decimal.Decimal
}

// Criteria is the active filter set. Zero values mean "no constraint";
// filters combine with logical AND.
type Criteria struct {
	Search      string  `json:"search,omitempty"`
	PriceBucket string  `json:"price_bucket,omitempty"`
	Category    string  `json:"category,omitempty"`
	MinRating   float64 `json:"min_rating,omitempty"`
}

// Update is a partial criteria change. Nil fields leave the current value
// untouched; a pointer to a zero value clears that filter.
type Update struct {
	Search      *string  `json:"search"`
	PriceBucket *string  `json:"price_bucket"`
	Category    *string  `json:"category"`
	MinRating   *float64 `json:"min_rating"`
}

// Merge applies the partial update on top of the current criteria.
func (c Criteria) Merge(u Update) Criteria {
	next := c
	if u.Search != nil {
		next.Search = *u.Search
	}
	if u.PriceBucket != nil {
		next.PriceBucket = *u.PriceBucket
	}
	if u.Category != nil {
		next.Category = *u.Category
	}
	if u.MinRating != nil {
		next.MinRating = *u.MinRating
	}
	return next
}

// Matches reports whether the product passes every active filter.
func Matches(p *dataset.Product, c Criteria) bool {
	if p == nil {
		return false
	}
	return matchesSearch(p, c.Search) &&
		matchesPrice(p, c.PriceBucket) &&
		matchesCategory(p, c.Category) &&
		matchesRating(p, c.MinRating)
}

// Filter returns the products passing the criteria, preserving source order.
func Filter(products []dataset.Product, c Criteria) []*dataset.Product {
	out := make([]*dataset.Product, 0, len(products))
	for i := range products {
		if Matches(&products[i], c) {
			out = append(out, &products[i])
		}
	}
	return out
}

func matchesSearch(p *dataset.Product, search string) bool {
	needle := strings.ToLower(strings.TrimSpace(search))
	if needle == "" {
		return true
	}
	if strings.Contains(strings.ToLower(p.Title), needle) {
		return true
	}
	if strings.Contains(strings.ToLower(p.Description), needle) {
		return true
	}
	for _, tag := range p.Tags {
		if strings.Contains(strings.ToLower(tag), needle) {
			return true
		}
	}
	return false
}

func matchesPrice(p *dataset.Product, bucket string) bool {
	rng, ok := parsePriceBucket(bucket)
	if !ok {
		// Unparseable buckets behave like "no constraint" rather than
		// excluding everything.
		return true
	}
	if p.Price.IsZero() {
		return false
	}
	if p.Price.LessThan(rng.min) {
		return false
	}
	if rng.max != nil && p.Price.GreaterThan(*rng.max) {
		return false
	}
	return true
}

// parsePriceBucket accepts "min-max", "min+" and the legacy "min-+" spelling.
// Bounds are inclusive.
func parsePriceBucket(bucket string) (priceRange, bool) {
	b := strings.TrimSpace(bucket)
	if b == "" {
		return priceRange{}, false
	}

	openEnded := false
	if strings.HasSuffix(b, "+") {
		openEnded = true
		b = strings.TrimSuffix(b, "+")
		b = strings.TrimSuffix(b, "-")
	}

	if openEnded {
		min, err := decimal.NewFromString(b)
		if err != nil {
			return priceRange{}, false
		}
		return priceRange{min: min}, true
	}

	parts := strings.SplitN(b, "-", 2)
	if len(parts) != 2 {
		return priceRange{}, false
	}
	min, err := decimal.NewFromString(strings.TrimSpace(parts[0]))
	if err != nil {
		return priceRange{}, false
	}
	max, err := decimal.NewFromString(strings.TrimSpace(parts[1]))
	if err != nil {
		return priceRange{}, false
	}
	return priceRange{min: min, max: &max}, true
}

func matchesCategory(p *dataset.Product, category string) bool {
	if category == "" {
		return true
	}
	return p.HasTag(category)
}

func matchesRating(p *dataset.Product, minRating float64) bool {
	if minRating <= 0 {
		return true
	}
	if p.Rating == 0 {
		return false
	}
	return p.Rating >= minRating
}

// Categories lists the distinct product tags in first-seen order.
func Categories(products []dataset.Product) []string {
	seen := make(map[string]struct{})
	out := []string{}
	for i := range products {
		for _, tag := range products[i].Tags {
			if _, ok := seen[tag]; ok {
				continue
			}
			seen[tag] = struct{}{}
			out = append(out, tag)
		}
	}
	return out
}

// Trending returns the top n products by units sold, descending, with ties
// kept in source order.
func Trending(products []dataset.Product, n int) []*dataset.Product {
	out := make([]*dataset.Product, 0, len(products))
	for i := range products {
		out = append(out, &products[i])
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].QuantitySold > out[j].QuantitySold
	})
	if n > 0 && n < len(out) {
		out = out[:n]
	}
	return out
}
