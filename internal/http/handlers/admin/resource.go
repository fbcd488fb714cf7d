// Package admin serves the catalog console: CRUD for the five catalog
// collections, image uploads, the product export and the user list.
package admin

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/drashti611/gowear-frontend/internal/http/middleware"
	"github.com/drashti611/gowear-frontend/internal/http/validation"
	"github.com/drashti611/gowear-frontend/internal/modules/catalog"
	"github.com/drashti611/gowear-frontend/internal/shared/apperr"
	"github.com/drashti611/gowear-frontend/internal/storage"
	"github.com/drashti611/gowear-frontend/pkg/logger"
)

const MaxImageBytes = 5 << 20

// Resource is the admin surface of one catalog collection.
type Resource[T catalog.Entity] struct {
	Manager *catalog.Manager[T]
	Images  storage.Storage
	// Row shapes a listed document; nil renders it as the backend sent it.
	Row     func(T) any
	NewForm func() form
}

func token(c *gin.Context) string {
	id, _ := middleware.CurrentUser(c)
	return id.Token
}

func title(kind string) string {
	if kind == "" {
		return kind
	}
	return strings.ToUpper(kind[:1]) + kind[1:]
}

func (r *Resource[T]) rows(items []T) []any {
	out := make([]any, 0, len(items))
	for _, it := range items {
		if r.Row != nil {
			out = append(out, r.Row(it))
		} else {
			out = append(out, it)
		}
	}
	return out
}

// List handles GET with an optional ?q= name filter.
func (r *Resource[T]) List(c *gin.Context) {
	items, err := r.Manager.List(c.Request.Context())
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": r.rows(catalog.FilterByName(items, c.Query("q")))})
}

func (r *Resource[T]) Create(c *gin.Context) {
	f, ok := r.bind(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	uploaded, err := r.upload(c, f.entityName())
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	if uploaded == nil {
		uploaded = []string{}
	}
	body, err := f.payload(uploaded)
	if err != nil {
		r.discard(ctx, uploaded)
		middleware.Fail(c, err)
		return
	}
	items, err := r.Manager.Create(ctx, token(c), body)
	if err != nil {
		r.discard(ctx, uploaded)
		middleware.Fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": fmt.Sprintf("%s %q added successfully!", title(r.Manager.Kind()), f.entityName()),
		"items":   r.rows(items),
	})
}

// Update keeps the listed existing images, appends new uploads and deletes
// the images marked for removal once the backend accepted the change. A
// submission without existingImages starts from the stored images.
func (r *Resource[T]) Update(c *gin.Context) {
	f, ok := r.bind(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	uploaded, err := r.upload(c, f.entityName())
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	images, err := r.mergeImages(ctx, c.Param("id"), f.imageSet(), uploaded)
	if err != nil {
		r.discard(ctx, uploaded)
		middleware.Fail(c, err)
		return
	}
	body, err := f.payload(images)
	if err != nil {
		r.discard(ctx, uploaded)
		middleware.Fail(c, err)
		return
	}
	items, err := r.Manager.Update(ctx, token(c), c.Param("id"), body)
	if err != nil {
		r.discard(ctx, uploaded)
		middleware.Fail(c, err)
		return
	}
	r.discard(ctx, f.imageSet().removedImages())
	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("%s %q updated successfully!", title(r.Manager.Kind()), f.entityName()),
		"items":   r.rows(items),
	})
}

// mergeImages returns the image list to send, or nil to leave it unchanged.
func (r *Resource[T]) mergeImages(ctx context.Context, id string, f imagesField, uploaded []string) ([]string, error) {
	base := f.keptImages()
	if !f.supplied() {
		if len(uploaded) == 0 && len(f.removedImages()) == 0 {
			return nil, nil
		}
		current, err := r.Manager.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		base = nil
		if im, ok := any(current).(catalog.Imaged); ok {
			base = f.without(im.EntityImages())
		}
	}
	out := make([]string, 0, len(base)+len(uploaded))
	out = append(out, base...)
	return append(out, uploaded...), nil
}

func (r *Resource[T]) Delete(c *gin.Context) {
	items, err := r.Manager.Delete(c.Request.Context(), token(c), c.Param("id"))
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": title(r.Manager.Kind()) + " deleted successfully!",
		"items":   r.rows(items),
	})
}

func (r *Resource[T]) bind(c *gin.Context) (form, bool) {
	f := r.NewForm()
	if err := c.ShouldBind(f); err != nil {
		middleware.Fail(c, validation.Invalid(err, f))
		return nil, false
	}
	return f, true
}

// upload stores the files posted under "images" (or "image") and returns
// their URLs. A failure removes what was already stored.
func (r *Resource[T]) upload(c *gin.Context, name string) ([]string, error) {
	if r.Images == nil || !strings.HasPrefix(c.ContentType(), "multipart/") {
		return nil, nil
	}
	mf, err := c.MultipartForm()
	if err != nil {
		return nil, apperr.InvalidErr("Upload could not be read", nil)
	}
	files := make([]*multipart.FileHeader, 0, len(mf.File["images"])+len(mf.File["image"]))
	files = append(files, mf.File["images"]...)
	files = append(files, mf.File["image"]...)

	ctx := c.Request.Context()
	urls := make([]string, 0, len(files))
	for _, fh := range files {
		url, err := r.put(ctx, fh, name)
		if err != nil {
			r.discard(ctx, urls)
			return nil, err
		}
		urls = append(urls, url)
	}
	return urls, nil
}

func (r *Resource[T]) put(ctx context.Context, fh *multipart.FileHeader, name string) (string, error) {
	if fh.Size > MaxImageBytes {
		return "", apperr.InvalidErr("Image is too large", map[string]string{"images": fh.Filename + " exceeds 5 MB"})
	}
	f, err := fh.Open()
	if err != nil {
		return "", apperr.Wrap(err)
	}
	defer f.Close()

	res, err := r.Images.Put(ctx, f, storage.PutInput{
		Name:        name,
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
	})
	if err != nil {
		if errors.Is(err, storage.ErrUnsupportedType) {
			return "", apperr.InvalidErr("Only PNG, JPG, WEBP or GIF images are allowed", map[string]string{"images": fh.Filename})
		}
		return "", apperr.Wrap(err)
	}
	return res.URL, nil
}

// discard deletes stored images; failures are only logged.
func (r *Resource[T]) discard(ctx context.Context, urls []string) {
	if r.Images == nil {
		return
	}
	for _, u := range urls {
		if err := r.Images.Delete(ctx, u); err != nil {
			logger.Warn(ctx).Err(err).Str("image", u).Msg("image_delete_failed")
		}
	}
}

// Mount registers list, create, update and delete under g.
func (r *Resource[T]) Mount(g *gin.RouterGroup) {
	g.GET("", r.List)
	g.POST("", r.Create)
	g.PUT("/:id", r.Update)
	g.DELETE("/:id", r.Delete)
}
