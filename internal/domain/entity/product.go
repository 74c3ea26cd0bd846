package entity

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Product is a menu item sold at the café counter.
type Product struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Category  *Category       `json:"category,omitempty"`
	Price     decimal.Decimal `json:"price"`
	PriceText string          `json:"price_text"`
	Unit      string          `json:"unit,omitempty"`
	IsService bool            `json:"is_service"`
	Images    []string        `json:"images"`
	Tags      []string        `json:"tags"`
	Active    bool            `json:"active"`
	Note      string          `json:"note"`
}

// Category groups products on the menu.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
}

// UnmarshalJSON reads the POS API shape: `_id`, and a category that is either
// an id or a populated object.
func (p *Product) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID        string          `json:"id"`
		MongoID   string          `json:"_id"`
		Name      string          `json:"name"`
		Category  json.RawMessage `json:"category"`
		Price     json.RawMessage `json:"price"`
		Unit      string          `json:"unit"`
		IsService bool            `json:"isService"`
		Images    []string        `json:"images"`
		Tags      []string        `json:"tags"`
		Active    *bool           `json:"active"`
		Note      string          `json:"note"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*p = Product{
		ID:        raw.ID,
		Name:      raw.Name,
		Unit:      raw.Unit,
		IsService: raw.IsService,
		Images:    raw.Images,
		Tags:      raw.Tags,
		Active:    raw.Active == nil || *raw.Active,
		Note:      raw.Note,
	}
	if p.ID == "" {
		p.ID = raw.MongoID
	}
	if price := decimalField(raw.Price); price != nil {
		p.Price = *price
	}
	if id := stringField(raw.Category); id != nil {
		p.Category = &Category{ID: *id}
	} else if obj, ok := object(raw.Category); ok {
		p.Category = &Category{
			ID:   valueOf(firstString(obj, "id", "_id")),
			Name: valueOf(stringField(obj["name"])),
		}
	}
	if p.Images == nil {
		p.Images = []string{}
	}
	if p.Tags == nil {
		p.Tags = []string{}
	}
	return nil
}

// UnmarshalJSON accepts `_id` as the category id.
func (c *Category) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID      string `json:"id"`
		MongoID string `json:"_id"`
		Name    string `json:"name"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	c.ID = raw.ID
	if c.ID == "" {
		c.ID = raw.MongoID
	}
	c.Name = raw.Name
	return nil
}

func valueOf(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
