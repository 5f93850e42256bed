package dataset

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/multierr"
)

//go:embed mossx_plant_dataset.json
var embedded []byte

// Product is one catalog entry. Instances are shared and must never be
// mutated after Load.
type Product struct {
	ID           string          `json:"id"`
	Title        string          `json:"title"`
	Description  string          `json:"description"`
	Price        decimal.Decimal `json:"price"`
	Image        string          `json:"image"`
	Rating       float64         `json:"rating"`
	QuantitySold int             `json:"quantity_sold"`
	Stock        int             `json:"stock"`
	Tags         []string        `json:"tags"`
}

// HasTag reports exact membership in the product's tag set.
func (p *Product) HasTag(tag string) bool {
	for _, t := range p.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Collection is a browsing-only seasonal grouping of products.
type Collection struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Image       string   `json:"image"`
	Season      string   `json:"season"`
	ProductIDs  []string `json:"products"`
}

// Bundle is a purchasable grouping sold at a discounted aggregate price.
type Bundle struct {
	ID              string          `json:"id"`
	Title           string          `json:"title"`
	Description     string          `json:"description"`
	Image           string          `json:"image"`
	OriginalPrice   decimal.Decimal `json:"original_price"`
	DiscountedPrice decimal.Decimal `json:"discounted_price"`
	ProductIDs      []string        `json:"products"`
}

// Dataset is the read-only storefront source of truth, loaded once at
// startup.
type Dataset struct {
	Products    []Product    `json:"products"`
	Seasonal    []Collection `json:"seasonal_collections"`
	Bundles     []Bundle     `json:"product_bundles"`
	productByID map[string]*Product
	seasonalByID map[string]*Collection
	bundleByID   map[string]*Bundle
}

// Default loads the embedded storefront dataset.
func Default() (*Dataset, error) {
	return Load(embedded)
}

// Load parses and validates a dataset document.
func Load(raw []byte) (*Dataset, error) {
	var ds Dataset
	if err := json.Unmarshal(raw, &ds); err != nil {
		return nil, fmt.Errorf("parse dataset: %w", err)
	}
	if err := ds.validate(); err != nil {
		return nil, err
	}
	ds.index()
	return &ds, nil
}

func (d *Dataset) validate() error {
	if len(d.Products) == 0 {
		return fmt.Errorf("dataset has no products")
	}
	var errs []error
	seen := make(map[string]struct{}, len(d.Products))
	for i, p := range d.Products {
		if p.ID == "" {
			errs = append(errs, fmt.Errorf("product %d has empty id", i))
			continue
		}
		if _, dup := seen[p.ID]; dup {
			errs = append(errs, fmt.Errorf("duplicate product id %q", p.ID))
		}
		seen[p.ID] = struct{}{}
		if p.Price.IsNegative() {
			errs = append(errs, fmt.Errorf("product %q has negative price", p.ID))
		}
		if p.Rating < 0 || p.Rating > 5 {
			errs = append(errs, fmt.Errorf("product %q rating %v outside 0-5", p.ID, p.Rating))
		}
		if p.QuantitySold < 0 || p.Stock < 0 {
			errs = append(errs, fmt.Errorf("product %q has negative counters", p.ID))
		}
	}
	for i, c := range d.Seasonal {
		if c.ID == "" {
			errs = append(errs, fmt.Errorf("seasonal collection %d has empty id", i))
		}
	}
	for i, b := range d.Bundles {
		if b.ID == "" {
			errs = append(errs, fmt.Errorf("bundle %d has empty id", i))
			continue
		}
		if b.DiscountedPrice.IsNegative() || b.OriginalPrice.IsNegative() {
			errs = append(errs, fmt.Errorf("bundle %q has negative pricing", b.ID))
		}
	}
	return multierr.Combine(errs...)
}

func (d *Dataset) index() {
	d.productByID = make(map[string]*Product, len(d.Products))
	for i := range d.Products {
		d.productByID[d.Products[i].ID] = &d.Products[i]
	}
	d.seasonalByID = make(map[string]*Collection, len(d.Seasonal))
	for i := range d.Seasonal {
		d.seasonalByID[d.Seasonal[i].ID] = &d.Seasonal[i]
	}
	d.bundleByID = make(map[string]*Bundle, len(d.Bundles))
	for i := range d.Bundles {
		d.bundleByID[d.Bundles[i].ID] = &d.Bundles[i]
	}
}

// ProductByID returns the product or nil when unknown.
func (d *Dataset) ProductByID(id string) *Product {
	return d.productByID[id]
}

// SeasonalByID returns the seasonal collection or nil when unknown.
func (d *Dataset) SeasonalByID(id string) *Collection {
	return d.seasonalByID[id]
}

// BundleByID returns the bundle or nil when unknown.
func (d *Dataset) BundleByID(id string) *Bundle {
	return d.bundleByID[id]
}

// ResolveProducts maps product ids to concrete products, silently dropping
// ids that do not exist in the catalog.
func (d *Dataset) ResolveProducts(ids []string) []*Product {
	out := make([]*Product, 0, len(ids))
	for _, id := range ids {
		if p := d.productByID[id]; p != nil {
			out = append(out, p)
		}
	}
	return out
}
