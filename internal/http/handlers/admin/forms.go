package admin

import (
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/drashti611/gowear-frontend/internal/modules/catalog"
	"github.com/drashti611/gowear-frontend/internal/shared/apperr"
)

// form is one admin create/update submission. Bound from JSON or from
// multipart/form-data; uploaded files are handled by the resource. A nil
// images argument to payload leaves the stored images untouched.
type form interface {
	entityName() string
	imageSet() imagesField
	payload(images []string) (any, error)
}

// imagesField is the image list the console edits. ExistingImages stays nil
// when the submission leaves the field out.
type imagesField struct {
	ExistingImages []string `json:"existingImages" form:"existingImages"`
	ImagesToRemove string   `json:"imagesToRemove" form:"imagesToRemove"`
}

func (f imagesField) imageSet() imagesField { return f }

func (f imagesField) supplied() bool { return f.ExistingImages != nil }

func (f imagesField) keptImages() []string { return f.without(f.ExistingImages) }

// without drops blanks and the images marked for removal from list.
func (f imagesField) without(list []string) []string {
	removed := f.removedImages()
	out := make([]string, 0, len(list))
	for _, img := range list {
		img = strings.TrimSpace(img)
		if img == "" || contains(removed, img) {
			continue
		}
		out = append(out, img)
	}
	return out
}

// removedImages accepts a JSON array or a single path.
func (f imagesField) removedImages() []string {
	raw := strings.TrimSpace(f.ImagesToRemove)
	if raw == "" {
		return nil
	}
	var out []string
	if json.Unmarshal([]byte(raw), &out) == nil {
		return out
	}
	return []string{raw}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

type categoryForm struct {
	Name string `json:"name" form:"name" binding:"required,min=2,max=60"`
	imagesField
}

func (f *categoryForm) entityName() string { return f.Name }

func (f *categoryForm) payload(images []string) (any, error) {
	return withImages(map[string]any{"name": strings.TrimSpace(f.Name)}, images), nil
}

func withImages(body map[string]any, images []string) map[string]any {
	if images != nil {
		body["images"] = images
	}
	return body
}

type subCategoryForm struct {
	Name       string `json:"name" form:"name" binding:"required,min=2,max=60"`
	CategoryID string `json:"categoryId" form:"categoryId" binding:"required"`
	imagesField
}

func (f *subCategoryForm) entityName() string { return f.Name }

func (f *subCategoryForm) payload(images []string) (any, error) {
	return withImages(map[string]any{"name": strings.TrimSpace(f.Name), "categoryId": f.CategoryID}, images), nil
}

type brandForm struct {
	Name string `json:"name" form:"name" binding:"required,min=2,max=60"`
	imagesField
}

func (f *brandForm) entityName() string { return f.Name }

func (f *brandForm) payload(images []string) (any, error) {
	return withImages(map[string]any{"name": strings.TrimSpace(f.Name)}, images), nil
}

type productTypeForm struct {
	Name          string `json:"name" form:"name" binding:"required,min=2,max=60"`
	SubCategoryID string `json:"subCategoryId" form:"subCategoryId" binding:"required"`
}

func (f *productTypeForm) entityName() string   { return f.Name }
func (f *productTypeForm) imageSet() imagesField { return imagesField{} }

func (f *productTypeForm) payload([]string) (any, error) {
	return map[string]any{"name": strings.TrimSpace(f.Name), "subCategoryId": f.SubCategoryID}, nil
}

// productForm carries variants as a JSON string, the way the browser form
// posts them.
type productForm struct {
	Name           string `json:"name" form:"name" binding:"required,min=2,max=120"`
	Description    string `json:"description" form:"description" binding:"max=2000"`
	CategoryID     string `json:"categoryId" form:"categoryId" binding:"required"`
	SubCategoryID  string `json:"subCategoryId" form:"subCategoryId" binding:"required"`
	ClothingTypeID string `json:"clothingTypeId" form:"clothingTypeId"`
	BrandID        string `json:"brandId" form:"brandId"`
	Discount       string `json:"discount" form:"discount"`
	Variants       string `json:"variants" form:"variants" binding:"required"`
	imagesField
}

type productPayload struct {
	Name           string            `json:"name"`
	Description    string            `json:"description"`
	CategoryID     string            `json:"categoryId"`
	SubCategoryID  string            `json:"subCategoryId"`
	ClothingTypeID string            `json:"clothingTypeId,omitempty"`
	BrandID        string            `json:"brandId,omitempty"`
	Discount       decimal.Decimal   `json:"discount"`
	Variants       []catalog.Variant `json:"variants"`
	Images         *[]string         `json:"images,omitempty"`
}

func (f *productForm) entityName() string { return f.Name }

func (f *productForm) payload(images []string) (any, error) {
	discount := decimal.Zero
	if s := strings.TrimSpace(f.Discount); s != "" {
		d, err := decimal.NewFromString(s)
		if err != nil || d.IsNegative() || d.GreaterThan(decimal.NewFromInt(100)) {
			return nil, apperr.InvalidErr("Please check the highlighted fields.", map[string]string{
				"discount": "must be a number between 0 and 100",
			})
		}
		discount = d
	}
	variants, err := parseVariants(f.Variants)
	if err != nil {
		return nil, err
	}
	p := productPayload{
		Name:           strings.TrimSpace(f.Name),
		Description:    strings.TrimSpace(f.Description),
		CategoryID:     f.CategoryID,
		SubCategoryID:  f.SubCategoryID,
		ClothingTypeID: f.ClothingTypeID,
		BrandID:        f.BrandID,
		Discount:       discount,
		Variants:       variants,
	}
	if images != nil {
		p.Images = &images
	}
	return p, nil
}

func parseVariants(raw string) ([]catalog.Variant, error) {
	invalid := func(msg string) error {
		return apperr.InvalidErr("Please check the highlighted fields.", map[string]string{"variants": msg})
	}
	var variants []catalog.Variant
	if err := json.Unmarshal([]byte(raw), &variants); err != nil {
		return nil, invalid("must be a JSON list of variants")
	}
	if len(variants) == 0 {
		return nil, invalid("add at least one variant")
	}
	for i := range variants {
		v := &variants[i]
		v.Color = strings.TrimSpace(v.Color)
		if v.Color == "" {
			return nil, invalid("every variant needs a color")
		}
		if len(v.Sizes) == 0 {
			return nil, invalid("every variant needs at least one size")
		}
		for _, s := range v.Sizes {
			if strings.TrimSpace(s.Size) == "" {
				return nil, invalid("every size needs a label")
			}
			if s.Stock < 0 {
				return nil, invalid("stock cannot be negative")
			}
			if s.Price != nil && s.Price.IsNegative() {
				return nil, invalid("price cannot be negative")
			}
		}
	}
	return variants, nil
}
