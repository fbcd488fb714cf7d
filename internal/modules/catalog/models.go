// Package catalog holds the product model shared by the cart, likes and
// pricing packages, plus the admin and storefront access to the REST backend.
package catalog

import (
	"bytes"
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Ref is a reference to another catalog document. The backend sends either
// the bare id or the populated {_id, name} document.
type Ref struct {
	ID   string `json:"_id"`
	Name string `json:"name,omitempty"`
}

func (r *Ref) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var id string
		if err := json.Unmarshal(b, &id); err != nil {
			return err
		}
		*r = Ref{ID: id}
		return nil
	}
	type plain Ref
	var p plain
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}
	*r = Ref(p)
	return nil
}

// RefID returns the referenced id, or "" for a nil ref.
func RefID(r *Ref) string {
	if r == nil {
		return ""
	}
	return r.ID
}

type SizeOption struct {
	Size     string           `json:"size"`
	Stock    int              `json:"stock"`
	Price    *decimal.Decimal `json:"price,omitempty"`
	Discount *decimal.Decimal `json:"discount,omitempty"`
}

type Variant struct {
	Color string       `json:"color"`
	Sizes []SizeOption `json:"sizes"`
}

type Product struct {
	ID             string           `json:"_id"`
	Name           string           `json:"name"`
	Description    string           `json:"description,omitempty"`
	Images         []string         `json:"images"`
	Price          *decimal.Decimal `json:"price,omitempty"`
	Discount       decimal.Decimal  `json:"discount"`
	Variants       []Variant        `json:"variants"`
	CategoryID     *Ref             `json:"categoryId,omitempty"`
	SubCategoryID  *Ref             `json:"subCategoryId,omitempty"`
	ClothingTypeID *Ref             `json:"clothingTypeId,omitempty"`
	BrandID        *Ref             `json:"brandId,omitempty"`
}

type Category struct {
	ID     string   `json:"_id"`
	Name   string   `json:"name"`
	Images []string `json:"images"`
}

type SubCategory struct {
	ID         string   `json:"_id"`
	Name       string   `json:"name"`
	Images     []string `json:"images"`
	CategoryID *Ref     `json:"categoryId,omitempty"`
}

type Brand struct {
	ID     string   `json:"_id"`
	Name   string   `json:"name"`
	Images []string `json:"images"`
}

type ProductType struct {
	ID            string `json:"_id"`
	Name          string `json:"name"`
	SubCategoryID *Ref   `json:"subCategoryId,omitempty"`
}

// Entity is satisfied by every document a Manager handles.
type Entity interface {
	EntityID() string
	EntityName() string
}

func (p Product) EntityID() string       { return p.ID }
func (p Product) EntityName() string     { return p.Name }
func (c Category) EntityID() string      { return c.ID }
func (c Category) EntityName() string    { return c.Name }
func (s SubCategory) EntityID() string   { return s.ID }
func (s SubCategory) EntityName() string { return s.Name }
func (b Brand) EntityID() string         { return b.ID }
func (b Brand) EntityName() string       { return b.Name }
func (t ProductType) EntityID() string   { return t.ID }
func (t ProductType) EntityName() string { return t.Name }

// Imaged is implemented by the documents that carry an image list.
type Imaged interface {
	EntityImages() []string
}

func (p Product) EntityImages() []string     { return p.Images }
func (c Category) EntityImages() []string    { return c.Images }
func (s SubCategory) EntityImages() []string { return s.Images }
func (b Brand) EntityImages() []string       { return b.Images }
