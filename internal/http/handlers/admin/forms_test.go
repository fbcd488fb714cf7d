package admin

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drashti611/gowear-frontend/internal/shared/apperr"
)

func TestParseVariants(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr string
	}{
		{name: "valid", raw: `[{"color":" Black ","sizes":[{"size":"M","stock":3,"price":999}]}]`},
		{name: "not json", raw: `{oops`, wantErr: "must be a JSON list of variants"},
		{name: "empty list", raw: `[]`, wantErr: "add at least one variant"},
		{name: "missing color", raw: `[{"color":" ","sizes":[{"size":"M","stock":1}]}]`, wantErr: "every variant needs a color"},
		{name: "no sizes", raw: `[{"color":"Red","sizes":[]}]`, wantErr: "every variant needs at least one size"},
		{name: "blank size", raw: `[{"color":"Red","sizes":[{"size":"","stock":1}]}]`, wantErr: "every size needs a label"},
		{name: "negative stock", raw: `[{"color":"Red","sizes":[{"size":"M","stock":-1}]}]`, wantErr: "stock cannot be negative"},
		{name: "negative price", raw: `[{"color":"Red","sizes":[{"size":"M","stock":1,"price":-5}]}]`, wantErr: "price cannot be negative"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseVariants(tt.raw)
			if tt.wantErr == "" {
				require.NoError(t, err)
				require.Len(t, got, 1)
				assert.Equal(t, "Black", got[0].Color)
				return
			}
			ae, ok := apperr.As(err)
			require.True(t, ok, "want an AppError, got %v", err)
			assert.Equal(t, apperr.Invalid, ae.Kind)
			assert.Equal(t, tt.wantErr, ae.Fields["variants"])
		})
	}
}

func TestProductFormDiscount(t *testing.T) {
	variants := `[{"color":"Red","sizes":[{"size":"M","stock":1}]}]`
	tests := []struct {
		discount string
		ok       bool
	}{
		{"", true},
		{"0", true},
		{"12.5", true},
		{"100", true},
		{"-1", false},
		{"100.01", false},
		{"ten", false},
	}
	for _, tt := range tests {
		t.Run(tt.discount, func(t *testing.T) {
			f := &productForm{Name: "Tee", CategoryID: "c1", SubCategoryID: "s1", Discount: tt.discount, Variants: variants}
			_, err := f.payload(nil)
			if tt.ok {
				assert.NoError(t, err)
				return
			}
			ae, ok := apperr.As(err)
			require.True(t, ok)
			assert.Contains(t, ae.Fields, "discount")
		})
	}
}

func TestImagesFieldMerge(t *testing.T) {
	f := imagesField{
		ExistingImages: []string{"a.png", " ", "b.png", "c.png"},
		ImagesToRemove: `["b.png"]`,
	}
	assert.True(t, f.supplied())
	assert.Equal(t, []string{"a.png", "c.png"}, f.keptImages())
	assert.Equal(t, []string{"b.png"}, f.removedImages())

	single := imagesField{ImagesToRemove: "uploads/x.png"}
	assert.False(t, single.supplied())
	assert.Equal(t, []string{"uploads/x.png"}, single.removedImages())
	assert.Equal(t, []string{"keep.png"}, single.without([]string{"uploads/x.png", "keep.png"}))
}

func TestPayloadOmitsImagesWhenUnchanged(t *testing.T) {
	variants := `[{"color":"Red","sizes":[{"size":"M","stock":1}]}]`
	forms := map[string]form{
		"category":    &categoryForm{Name: "Men"},
		"subcategory": &subCategoryForm{Name: "Shirts", CategoryID: "c1"},
		"brand":       &brandForm{Name: "Acme"},
		"product":     &productForm{Name: "Tee", CategoryID: "c1", SubCategoryID: "s1", Variants: variants},
	}
	for name, f := range forms {
		t.Run(name, func(t *testing.T) {
			body := encode(t, f, nil)
			assert.NotContains(t, body, "images")

			body = encode(t, f, []string{})
			assert.Equal(t, []any{}, body["images"])
		})
	}
}

func encode(t *testing.T, f form, images []string) map[string]any {
	t.Helper()
	p, err := f.payload(images)
	require.NoError(t, err)
	raw, err := json.Marshal(p)
	require.NoError(t, err)
	var out map[string]any
	require.NoError(t, json.Unmarshal(raw, &out))
	return out
}
