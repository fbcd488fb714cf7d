package view

import "github.com/drashti611/gowear-frontend/internal/modules/catalog"

type ProductCard struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Brand    string `json:"brand,omitempty"`
	Price    string `json:"price"`
	ImageURL string `json:"imageUrl"`
	Liked    bool   `json:"liked"`
}

type SizeView struct {
	Size     string `json:"size"`
	Stock    int    `json:"stock"`
	Price    string `json:"price"`
	Discount string `json:"discount,omitempty"`
}

type VariantView struct {
	Color string     `json:"color"`
	Sizes []SizeView `json:"sizes"`
}

type ProductDetail struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	Description   string        `json:"description"`
	Brand         string        `json:"brand,omitempty"`
	Discount      string        `json:"discount"`
	Images        []string      `json:"images"`
	Variants      []VariantView `json:"variants"`
	SelectedColor string        `json:"selectedColor"`
	Liked         bool          `json:"liked"`
	InCart        bool          `json:"inCart"`
}

type NamedImage struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	ImageURL string `json:"imageUrl"`
}

func brandName(p catalog.Product) string {
	if p.BrandID == nil {
		return ""
	}
	return p.BrandID.Name
}

func firstImage(base string, images []string) string {
	if len(images) == 0 {
		return ""
	}
	return catalog.ImageURL(base, images[0])
}

func NewProductCard(p catalog.Product, imageBase string, liked bool) ProductCard {
	return ProductCard{
		ID:       p.ID,
		Name:     p.Name,
		Brand:    brandName(p),
		Price:    CardPriceLabel(p),
		ImageURL: firstImage(imageBase, p.Images),
		Liked:    liked,
	}
}

func NewProductDetail(p catalog.Product, imageBase string, liked, inCart bool) ProductDetail {
	d := ProductDetail{
		ID:            p.ID,
		Name:          p.Name,
		Description:   p.Description,
		Brand:         brandName(p),
		Discount:      p.Discount.String(),
		Images:        make([]string, 0, len(p.Images)),
		Variants:      make([]VariantView, 0, len(p.Variants)),
		SelectedColor: catalog.FirstColor(p),
		Liked:         liked,
		InCart:        inCart,
	}
	for _, img := range p.Images {
		d.Images = append(d.Images, catalog.ImageURL(imageBase, img))
	}
	for _, v := range p.Variants {
		vv := VariantView{Color: v.Color, Sizes: make([]SizeView, 0, len(v.Sizes))}
		for _, s := range v.Sizes {
			sv := SizeView{Size: s.Size, Stock: s.Stock, Price: "Price not set"}
			if s.Price != nil {
				sv.Price = Money(*s.Price)
			}
			if s.Discount != nil && s.Discount.IsPositive() {
				sv.Discount = s.Discount.String() + "% OFF"
			}
			vv.Sizes = append(vv.Sizes, sv)
		}
		d.Variants = append(d.Variants, vv)
	}
	return d
}

func NewNamedImage(id, name string, images []string, imageBase string) NamedImage {
	return NamedImage{ID: id, Name: name, ImageURL: firstImage(imageBase, images)}
}
