package http

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	nethttp "net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drashti611/gowear-frontend/internal/backend"
	"github.com/drashti611/gowear-frontend/internal/bus"
	"github.com/drashti611/gowear-frontend/internal/config"
	"github.com/drashti611/gowear-frontend/internal/http/sessioncookie"
	"github.com/drashti611/gowear-frontend/internal/kvstore"
	"github.com/drashti611/gowear-frontend/internal/metrics"
	"github.com/drashti611/gowear-frontend/internal/modules/auth"
	"github.com/drashti611/gowear-frontend/internal/modules/cart"
	"github.com/drashti611/gowear-frontend/internal/modules/catalog"
	"github.com/drashti611/gowear-frontend/internal/modules/checkout"
	"github.com/drashti611/gowear-frontend/internal/modules/likes"
	"github.com/drashti611/gowear-frontend/internal/storage"
)

const jwtSecret = "test-jwt"

const productJSON = `{"_id":"p1","name":"Linen Shirt","images":["img/shirt.png"],"discount":10,
"variants":[{"color":"White","sizes":[{"size":"M","stock":5,"price":1200}]}]}`

type fakeBackend struct {
	mu      sync.Mutex
	created []map[string]any
	updated []map[string]any
	deleted []string
	orders  int
}

func (f *fakeBackend) ServeHTTP(w nethttp.ResponseWriter, r *nethttp.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch {
	case r.Method == nethttp.MethodGet && r.URL.Path == "/category":
		_, _ = w.Write([]byte(`[{"_id":"c1","name":"Men","images":["img/men.png"]},{"_id":"c2","name":"Women","images":[]}]`))
	case r.Method == nethttp.MethodPost && r.URL.Path == "/category":
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		f.created = append(f.created, body)
		w.WriteHeader(nethttp.StatusCreated)
	case r.Method == nethttp.MethodPut && strings.HasPrefix(r.URL.Path, "/category/"):
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		f.updated = append(f.updated, body)
	case r.Method == nethttp.MethodDelete && strings.HasPrefix(r.URL.Path, "/category/"):
		f.deleted = append(f.deleted, strings.TrimPrefix(r.URL.Path, "/category/"))
	case r.URL.Path == "/subcategory/viewSubCategoryByCategoryID/c1":
		_, _ = w.Write([]byte(`[{"_id":"s1","name":"Shirts","images":[]}]`))
	case r.URL.Path == "/product/getProduct/p1":
		_, _ = w.Write([]byte(productJSON))
	case r.URL.Path == "/product/getProducts":
		_, _ = w.Write([]byte("[" + productJSON + "]"))
	case strings.HasPrefix(r.URL.Path, "/product/getProduct/"):
		w.WriteHeader(nethttp.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"Product not found"}`))
	case r.URL.Path == "/auth/login":
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		role := "user"
		if strings.HasPrefix(body["email"], "admin") {
			role = "admin"
		}
		tok, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"id": "u-" + role, "role": role, "email": body["email"],
			"exp": time.Now().Add(time.Hour).Unix(),
		}).SignedString([]byte(jwtSecret))
		_ = json.NewEncoder(w).Encode(map[string]string{"token": tok})
	case r.URL.Path == "/order/addOrder":
		f.orders++
		_, _ = w.Write([]byte(`{"orderId":"o1","message":"Order placed"}`))
	default:
		nethttp.NotFound(w, r)
	}
}

type testApp struct {
	router  *gin.Engine
	backend *fakeBackend
	uploads string
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	fb := &fakeBackend{}
	srv := httptest.NewServer(fb)
	t.Cleanup(srv.Close)

	uploads := t.TempDir()
	cfg := config.Config{
		Env:          "test",
		ImageBaseURL: "http://img.test",
		CORSOrigins:  []string{"http://localhost:3000"},
		Storage:      config.StorageConfig{Driver: "local", LocalDir: uploads, LocalURLPrefix: "/uploads"},
	}

	store := kvstore.NewMemory()
	hub := bus.NewHub()
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	be := backend.New(srv.URL, 2*time.Second, backend.WithObserver(m.ObserveBackend))
	cat := catalog.New(be)
	locks := kvstore.NewLocks()
	carts := cart.NewService(store, hub, locks)
	liked := likes.NewService(store, hub, carts, locks)

	r := NewRouter(Deps{
		Config:   cfg,
		Logger:   zerolog.Nop(),
		Sessions: sessioncookie.New([]byte("test-session"), "gowear_sid", false),
		Hub:      hub,
		Catalog:  cat,
		Carts:    carts,
		Likes:    liked,
		Auth:     auth.NewService(auth.NewClient(be), auth.NewSessions(store, hub, locks), jwtSecret),
		Checkout: checkout.NewService(carts, cat, be),
		Images:   storage.NewLocal(uploads, "/uploads"),
		Metrics:  m,
		Registry: reg,
	})
	return &testApp{router: r, backend: fb, uploads: uploads}
}

// browser keeps the session cookie between requests.
type browser struct {
	t       *testing.T
	app     *testApp
	cookies []*nethttp.Cookie
}

func (a *testApp) browser(t *testing.T) *browser {
	return &browser{t: t, app: a}
}

func (b *browser) send(req *nethttp.Request) *httptest.ResponseRecorder {
	for _, c := range b.cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	b.app.router.ServeHTTP(w, req)
	if got := w.Result().Cookies(); len(got) > 0 {
		b.cookies = got
	}
	return w
}

func (b *browser) do(method, path string, body any) *httptest.ResponseRecorder {
	b.t.Helper()
	var rd *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(b.t, err)
		rd = bytes.NewReader(raw)
	} else {
		rd = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return b.send(req)
}

func (b *browser) login(email string) {
	b.t.Helper()
	w := b.do(nethttp.MethodPost, "/api/auth/login", map[string]string{"email": email, "password": "pw"})
	require.Equal(b.t, nethttp.StatusOK, w.Code, w.Body.String())
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func TestHealthzAndMetrics(t *testing.T) {
	app := newTestApp(t)
	b := app.browser(t)

	w := b.do(nethttp.MethodGet, "/healthz", nil)
	assert.Equal(t, nethttp.StatusOK, w.Code)

	b.do(nethttp.MethodGet, "/api/categories", nil)
	w = b.do(nethttp.MethodGet, "/metrics", nil)
	assert.Equal(t, nethttp.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "gowear_backend_request_duration_seconds")
}

func TestSessionCookieIssued(t *testing.T) {
	app := newTestApp(t)
	b := app.browser(t)

	b.do(nethttp.MethodGet, "/api/cart", nil)
	require.Len(t, b.cookies, 1)
	assert.Equal(t, "gowear_sid", b.cookies[0].Name)
	assert.True(t, b.cookies[0].HttpOnly)
}

func TestCartFlow(t *testing.T) {
	app := newTestApp(t)
	b := app.browser(t)

	w := b.do(nethttp.MethodPost, "/api/cart/items", map[string]string{"productId": "p1", "color": "White"})
	require.Equal(t, nethttp.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "added", decode(t, w)["status"])

	w = b.do(nethttp.MethodPost, "/api/cart/items", map[string]string{"productId": "p1"})
	require.Equal(t, nethttp.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, "already_in_cart", body["status"])
	assert.Equal(t, "Product is already in cart!", body["message"])

	w = b.do(nethttp.MethodPatch, "/api/cart/items/p1", map[string]int{"quantity": 0})
	require.Equal(t, nethttp.StatusBadRequest, w.Code)
	assert.Contains(t, decode(t, w)["fields"], "quantity")

	w = b.do(nethttp.MethodPatch, "/api/cart/items/p1", map[string]int{"quantity": 3})
	require.Equal(t, nethttp.StatusOK, w.Code)
	assert.EqualValues(t, 3, decode(t, w)["count"])

	w = b.do(nethttp.MethodGet, "/api/cart/badge", nil)
	require.Equal(t, nethttp.StatusOK, w.Code)
	assert.EqualValues(t, 3, decode(t, w)["cartCount"])

	w = b.do(nethttp.MethodDelete, "/api/cart/items/p1", nil)
	require.Equal(t, nethttp.StatusOK, w.Code)
	assert.Equal(t, true, decode(t, w)["empty"])
	w = b.do(nethttp.MethodPost, "/api/cart/items", map[string]string{"productId": "p1"})
	require.Equal(t, nethttp.StatusOK, w.Code)
	w = b.do(nethttp.MethodDelete, "/api/cart", nil)
	require.Equal(t, nethttp.StatusOK, w.Code)
	assert.Equal(t, true, decode(t, w)["empty"])
}

func TestCartRejectsUnknownColor(t *testing.T) {
	app := newTestApp(t)
	b := app.browser(t)

	w := b.do(nethttp.MethodPost, "/api/cart/items", map[string]string{"productId": "p1", "color": "Green"})
	require.Equal(t, nethttp.StatusBadRequest, w.Code, w.Body.String())
	assert.Contains(t, decode(t, w)["fields"], "color")

	w = b.do(nethttp.MethodGet, "/api/cart/badge", nil)
	assert.EqualValues(t, 0, decode(t, w)["cartCount"])
}

func TestCartIsPerSession(t *testing.T) {
	app := newTestApp(t)
	a, other := app.browser(t), app.browser(t)

	a.do(nethttp.MethodPost, "/api/cart/items", map[string]string{"productId": "p1"})

	w := other.do(nethttp.MethodGet, "/api/cart/badge", nil)
	assert.EqualValues(t, 0, decode(t, w)["cartCount"])
	w = a.do(nethttp.MethodGet, "/api/cart/badge", nil)
	assert.EqualValues(t, 1, decode(t, w)["cartCount"])
}

func TestCartAddUnknownProduct(t *testing.T) {
	app := newTestApp(t)
	w := app.browser(t).do(nethttp.MethodPost, "/api/cart/items", map[string]string{"productId": "nope"})
	assert.Equal(t, nethttp.StatusNotFound, w.Code)
	assert.Equal(t, "Product not found", decode(t, w)["error"])
}

func TestLikesToggleAndMoveToCart(t *testing.T) {
	app := newTestApp(t)
	b := app.browser(t)

	w := b.do(nethttp.MethodPost, "/api/likes/p1/toggle", nil)
	require.Equal(t, nethttp.StatusOK, w.Code, w.Body.String())
	body := decode(t, w)
	assert.Equal(t, true, body["liked"])
	assert.EqualValues(t, 1, body["likesCount"])

	w = b.do(nethttp.MethodPost, "/api/likes/p1/cart", nil)
	require.Equal(t, nethttp.StatusOK, w.Code)
	assert.Equal(t, "added", decode(t, w)["status"])

	w = b.do(nethttp.MethodGet, "/api/likes", nil)
	items := decode(t, w)["items"].([]any)
	assert.Len(t, items, 1)

	w = b.do(nethttp.MethodPost, "/api/likes/p1/toggle", nil)
	assert.Equal(t, false, decode(t, w)["liked"])

	w = b.do(nethttp.MethodPost, "/api/likes/p1/cart", nil)
	assert.Equal(t, nethttp.StatusNotFound, w.Code)
}

func TestCheckoutRequiresLogin(t *testing.T) {
	app := newTestApp(t)
	w := app.browser(t).do(nethttp.MethodPost, "/api/checkout", map[string]string{})
	assert.Equal(t, nethttp.StatusUnauthorized, w.Code)
	assert.NotEmpty(t, decode(t, w)["request_id"])
}

func TestCheckoutPlacesOrder(t *testing.T) {
	app := newTestApp(t)
	b := app.browser(t)
	b.login("asha@example.com")

	w := b.do(nethttp.MethodPost, "/api/checkout", map[string]string{})
	assert.Equal(t, nethttp.StatusBadRequest, w.Code)

	b.do(nethttp.MethodPost, "/api/cart/items", map[string]string{"productId": "p1"})

	w = b.do(nethttp.MethodGet, "/api/checkout", nil)
	require.Equal(t, nethttp.StatusOK, w.Code)
	assert.Equal(t, "₹1080.00", decode(t, w)["subtotal"])

	addr := map[string]string{
		"fullName": "Asha Rao", "phone": "9876543210", "line1": "12 MG Road",
		"city": "Pune", "state": "MH", "pincode": "411001",
	}
	w = b.do(nethttp.MethodPost, "/api/checkout", addr)
	require.Equal(t, nethttp.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "o1", decode(t, w)["orderId"])
	assert.Equal(t, 1, app.backend.orders)

	w = b.do(nethttp.MethodGet, "/api/cart", nil)
	assert.Equal(t, true, decode(t, w)["empty"])
}

func TestAuthMeAndLogout(t *testing.T) {
	app := newTestApp(t)
	b := app.browser(t)

	w := b.do(nethttp.MethodGet, "/api/auth/me", nil)
	assert.Equal(t, false, decode(t, w)["loggedIn"])

	b.login("asha@example.com")
	b.do(nethttp.MethodPost, "/api/cart/items", map[string]string{"productId": "p1"})
	w = b.do(nethttp.MethodGet, "/api/auth/me", nil)
	body := decode(t, w)
	assert.Equal(t, true, body["loggedIn"])
	assert.Equal(t, "u-user", body["user"].(map[string]any)["userId"])

	w = b.do(nethttp.MethodPost, "/api/auth/logout", nil)
	require.Equal(t, nethttp.StatusOK, w.Code)
	w = b.do(nethttp.MethodGet, "/api/auth/me", nil)
	assert.Equal(t, false, decode(t, w)["loggedIn"])
	w = b.do(nethttp.MethodGet, "/api/cart/badge", nil)
	assert.EqualValues(t, 0, decode(t, w)["cartCount"])
}

func TestAdminRequiresAdminRole(t *testing.T) {
	app := newTestApp(t)

	w := app.browser(t).do(nethttp.MethodGet, "/api/admin/categories", nil)
	assert.Equal(t, nethttp.StatusUnauthorized, w.Code)

	shopper := app.browser(t)
	shopper.login("asha@example.com")
	w = shopper.do(nethttp.MethodGet, "/api/admin/categories", nil)
	assert.Equal(t, nethttp.StatusForbidden, w.Code)

	admin := app.browser(t)
	admin.login("admin@example.com")
	w = admin.do(nethttp.MethodGet, "/api/admin/categories?q=wo", nil)
	require.Equal(t, nethttp.StatusOK, w.Code)
	items := decode(t, w)["items"].([]any)
	require.Len(t, items, 1)
	assert.Equal(t, "Women", items[0].(map[string]any)["name"])
}

func TestAdminCreateCategoryWithUpload(t *testing.T) {
	app := newTestApp(t)
	admin := app.browser(t)
	admin.login("admin@example.com")

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("name", "Kids"))
	fw, err := mw.CreateFormFile("images", "kids.png")
	require.NoError(t, err)
	_, _ = fw.Write([]byte("\x89PNG fake"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(nethttp.MethodPost, "/api/admin/categories", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := admin.send(req)
	require.Equal(t, nethttp.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, `Category "Kids" added successfully!`, decode(t, w)["message"])

	require.Len(t, app.backend.created, 1)
	images := app.backend.created[0]["images"].([]any)
	require.Len(t, images, 1)
	url := images[0].(string)
	assert.True(t, strings.HasPrefix(url, "uploads/kids-"), url)

	_, err = os.Stat(filepath.Join(app.uploads, filepath.Base(url)))
	assert.NoError(t, err)
}

func TestAdminRejectsUnsupportedUpload(t *testing.T) {
	app := newTestApp(t)
	admin := app.browser(t)
	admin.login("admin@example.com")

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("name", "Kids"))
	fw, err := mw.CreateFormFile("images", "kids.exe")
	require.NoError(t, err)
	_, _ = fw.Write([]byte("MZ"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(nethttp.MethodPost, "/api/admin/categories", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := admin.send(req)
	assert.Equal(t, nethttp.StatusBadRequest, w.Code)
	assert.Empty(t, app.backend.created)
}

func TestAdminExportProducts(t *testing.T) {
	app := newTestApp(t)
	admin := app.browser(t)
	admin.login("admin@example.com")

	w := admin.do(nethttp.MethodGet, "/api/admin/products/export", nil)
	require.Equal(t, nethttp.StatusOK, w.Code)
	assert.Equal(t, "attachment; filename=products.xlsx", w.Header().Get("Content-Disposition"))
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("PK")))
}

func TestAdminUpdateCategoryMergesImages(t *testing.T) {
	app := newTestApp(t)
	admin := app.browser(t)
	admin.login("admin@example.com")

	old := filepath.Join(app.uploads, "old.png")
	require.NoError(t, os.WriteFile(old, []byte("\x89PNG old"), 0o644))

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("name", "Men"))
	require.NoError(t, mw.WriteField("existingImages", "img/men.png"))
	require.NoError(t, mw.WriteField("existingImages", "uploads/old.png"))
	require.NoError(t, mw.WriteField("imagesToRemove", `["uploads/old.png"]`))
	for field, name := range map[string]string{"images": "front.png", "image": "back.png"} {
		fw, err := mw.CreateFormFile(field, name)
		require.NoError(t, err)
		_, _ = fw.Write([]byte("\x89PNG fake"))
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(nethttp.MethodPut, "/api/admin/categories/c1", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := admin.send(req)
	require.Equal(t, nethttp.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, `Category "Men" updated successfully!`, decode(t, w)["message"])

	require.Len(t, app.backend.updated, 1)
	images := app.backend.updated[0]["images"].([]any)
	require.Len(t, images, 3)
	assert.Equal(t, "img/men.png", images[0])
	for _, img := range images[1:] {
		assert.True(t, strings.HasPrefix(img.(string), "uploads/"), img)
		_, err := os.Stat(filepath.Join(app.uploads, filepath.Base(img.(string))))
		assert.NoError(t, err)
	}

	_, err := os.Stat(old)
	assert.True(t, os.IsNotExist(err), "removed image is deleted after the update")
}

func TestAdminUpdateWithoutExistingImagesKeepsThem(t *testing.T) {
	app := newTestApp(t)
	admin := app.browser(t)
	admin.login("admin@example.com")

	w := admin.do(nethttp.MethodPut, "/api/admin/categories/c1", map[string]string{"name": "Menswear"})
	require.Equal(t, nethttp.StatusOK, w.Code, w.Body.String())
	require.Len(t, app.backend.updated, 1)
	assert.Equal(t, "Menswear", app.backend.updated[0]["name"])
	assert.NotContains(t, app.backend.updated[0], "images")

	w = admin.do(nethttp.MethodPut, "/api/admin/categories/c1", map[string]string{"name": "Men", "imagesToRemove": "img/men.png"})
	require.Equal(t, nethttp.StatusOK, w.Code, w.Body.String())
	require.Len(t, app.backend.updated, 2)
	assert.Equal(t, []any{}, app.backend.updated[1]["images"])
}

func TestAdminDeleteCategory(t *testing.T) {
	app := newTestApp(t)
	admin := app.browser(t)
	admin.login("admin@example.com")

	w := admin.do(nethttp.MethodDelete, "/api/admin/categories/c2", nil)
	require.Equal(t, nethttp.StatusOK, w.Code, w.Body.String())
	body := decode(t, w)
	assert.Equal(t, "Category deleted successfully!", body["message"])
	assert.Len(t, body["items"], 2)
	assert.Equal(t, []string{"c2"}, app.backend.deleted)

	user := app.browser(t)
	user.login("asha@example.com")
	w = user.do(nethttp.MethodDelete, "/api/admin/categories/c2", nil)
	assert.Equal(t, nethttp.StatusForbidden, w.Code)
	assert.Len(t, app.backend.deleted, 1)
}
