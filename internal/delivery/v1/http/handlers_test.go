package http

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/DRSN-tech/rawline/internal/domain"
	"github.com/DRSN-tech/rawline/internal/usecase"
	"github.com/DRSN-tech/rawline/pkg/e"
	"github.com/DRSN-tech/rawline/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const adminTokenValue = "token-1"

type fakeAssets struct{}

func (fakeAssets) URLFor(assetID string, opts usecase.AssetURLOptions) string {
	if assetID == "" {
		return ""
	}
	if opts.Width > 0 {
		return "https://cdn.test/w600/" + assetID
	}
	return "https://cdn.test/" + assetID
}

type fakeCatalog struct {
	products []domain.Product
	advice   string
}

func (f *fakeCatalog) ListProducts(context.Context) []domain.Product {
	return f.products
}

func (f *fakeCatalog) GetProductByHandle(_ context.Context, handle string) (*domain.Product, error) {
	for i := range f.products {
		if f.products[i].Handle == handle {
			p := f.products[i]
			return &p, nil
		}
	}
	return nil, e.ErrProductNotFound
}

func (f *fakeCatalog) SimilarProducts(context.Context, string) ([]domain.Product, error) {
	return nil, nil
}

func (f *fakeCatalog) GetFitAdvice(ctx context.Context, req *usecase.FitAdviceReq) (string, error) {
	if strings.TrimSpace(req.Details) == "" {
		return "", e.ErrDetailsRequired
	}
	if _, err := f.GetProductByHandle(ctx, req.Handle); err != nil {
		return "", err
	}
	return f.advice, nil
}

type fakeContent struct {
	mu      sync.Mutex
	content domain.SiteContent
}

func (f *fakeContent) GetSiteContent(context.Context) domain.SiteContent {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.content
}

func (f *fakeContent) UpdateSiteContent(_ context.Context, content *domain.SiteContent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.content = *content
	return nil
}

type memoryCarts struct {
	mu    sync.Mutex
	carts map[string]domain.Cart
}

func (m *memoryCarts) Get(_ context.Context, sessionID string) (domain.Cart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.carts[sessionID], nil
}

func (m *memoryCarts) Save(_ context.Context, sessionID string, cart domain.Cart) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.carts[sessionID] = cart
	return nil
}

func (m *memoryCarts) Delete(_ context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.carts, sessionID)
	return nil
}

type fakeAuth struct{}

func (fakeAuth) Login(_ context.Context, password string) (string, error) {
	if password != "12345" {
		return "", e.ErrInvalidPassword
	}
	return adminTokenValue, nil
}

func (fakeAuth) Logout(context.Context, string) error { return nil }

func (fakeAuth) Authorize(_ context.Context, token string) error {
	if token != adminTokenValue {
		return e.ErrUnauthorized
	}
	return nil
}

type fakeAdmin struct {
	created  *usecase.ProductForm
	uploaded []usecase.ProductImage
}

func (f *fakeAdmin) ListProducts(context.Context) ([]domain.Product, error) {
	return nil, nil
}

func (f *fakeAdmin) CreateProduct(_ context.Context, form *usecase.ProductForm) (*domain.Product, error) {
	if err := usecase.ValidateProductForm(form); err != nil {
		return nil, err
	}
	payload, err := usecase.MapProductForm(form)
	if err != nil {
		return nil, err
	}
	f.created = form
	return domain.NewProduct("11111111-1111-1111-1111-111111111111", payload), nil
}

func (f *fakeAdmin) UpdateProduct(context.Context, string, *usecase.ProductForm) (*domain.Product, error) {
	return nil, e.ErrProductNotFound
}

func (f *fakeAdmin) DeleteProduct(context.Context, string) error {
	return e.ErrProductNotFound
}

func (f *fakeAdmin) UploadAssets(_ context.Context, images []usecase.ProductImage) (*usecase.UploadImagesRes, error) {
	f.uploaded = images
	ids := make([]string, 0, len(images))
	for i := range images {
		ids = append(ids, "rawline/"+images[i].Name)
	}
	return usecase.NewUploadImagesRes(ids), nil
}

type testAPI struct {
	handler http.Handler
	admin   *fakeAdmin
	content *fakeContent
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()

	log := logger.NewNopLogger()
	catalog := &fakeCatalog{
		products: []domain.Product{
			{
				ID:     "p1",
				Title:  "Raw Denim Jacket",
				Handle: "raw-denim-jacket",
				Price:  decimal.RequireFromString("120"),
				Images: []string{"img-a", "img-b"},
				Sizes:  []string{"S", "M"},
			},
		},
		advice: "Take M.",
	}
	admin := &fakeAdmin{}
	content := &fakeContent{content: domain.DefaultSiteContent()}

	mux := chi.NewRouter()
	NewRouter(mux, "localhost:8080", log).Init(UseCases{
		Catalog: catalog,
		Content: content,
		Cart:    usecase.NewCartUseCase(&memoryCarts{carts: map[string]domain.Cart{}}, catalog, log),
		Admin:   admin,
		Auth:    fakeAuth{},
		Assets:  fakeAssets{},
	})

	return &testAPI{handler: mux, admin: admin, content: content}
}

func (a *testAPI) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)
	return rec
}

func jsonRequest(t *testing.T, method, target string, body any) *http.Request {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(method, target, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&v))
	return v
}

func TestListProducts(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(httptest.NewRequest(http.MethodGet, "/api/v1/products", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	products := decodeBody[[]ProductResponse](t, rec)
	require.Len(t, products, 1)
	assert.Equal(t, "120.00", products[0].Price)
	assert.Equal(t, []string{"https://cdn.test/img-a", "https://cdn.test/img-b"}, products[0].ImageURLs)
	assert.Equal(t, "https://cdn.test/w600/img-a", products[0].ThumbnailURL)
}

func TestGetProduct_NotFound(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(httptest.NewRequest(http.MethodGet, "/api/v1/products/missing", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)

	body := decodeBody[ErrorResponse](t, rec)
	assert.Equal(t, http.StatusNotFound, body.Code)
	assert.Equal(t, e.ErrProductNotFound.Error(), body.Message)
}

func TestFitAdvice(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(jsonRequest(t, http.MethodPost, "/api/v1/products/raw-denim-jacket/advice", FitAdviceRequest{Details: "180cm, 75kg"}))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Take M.", decodeBody[FitAdviceResponse](t, rec).Advice)

	rec = api.do(jsonRequest(t, http.MethodPost, "/api/v1/products/raw-denim-jacket/advice", FitAdviceRequest{Details: "  "}))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestContent_DefaultsAndUpdate(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(httptest.NewRequest(http.MethodGet, "/api/v1/content", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	content := decodeBody[SiteContentDTO](t, rec)
	assert.Equal(t, "editorial_main", content.Home.HeroImageID)
	assert.Equal(t, "https://cdn.test/editorial_main", content.Home.HeroImage)

	content.Home.Headline = "NEW"
	req := jsonRequest(t, http.MethodPut, "/api/v1/admin/content", content)
	rec = api.do(req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req = jsonRequest(t, http.MethodPut, "/api/v1/admin/content", content)
	req.Header.Set("Authorization", "Bearer "+adminTokenValue)
	rec = api.do(req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "NEW", api.content.GetSiteContent(context.Background()).Home.Headline)
}

func TestCart_IssuesSessionAndTracksTotals(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(jsonRequest(t, http.MethodPost, "/api/v1/cart/items", AddCartItemRequest{Handle: "raw-denim-jacket", Size: "M"}))
	require.Equal(t, http.StatusOK, rec.Code)
	sessionID := rec.Header().Get(SessionHeader)
	require.NotEmpty(t, sessionID)

	var cookieFound bool
	for _, c := range rec.Result().Cookies() {
		if c.Name == SessionCookie {
			cookieFound = true
			assert.Equal(t, sessionID, c.Value)
		}
	}
	assert.True(t, cookieFound)

	req := jsonRequest(t, http.MethodPost, "/api/v1/cart/items", AddCartItemRequest{Handle: "raw-denim-jacket", Size: "M"})
	req.Header.Set(SessionHeader, sessionID)
	rec = api.do(req)
	require.Equal(t, http.StatusOK, rec.Code)

	cart := decodeBody[CartResponse](t, rec)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 2, cart.Items[0].Quantity)
	assert.Equal(t, "p1:M", cart.Items[0].Key)
	assert.Equal(t, "240.00", cart.Items[0].LineTotal)
	assert.Equal(t, "240.00", cart.Subtotal)
	assert.Equal(t, cart.Subtotal, cart.Total)
	assert.Equal(t, 2, cart.Count)

	req = jsonRequest(t, http.MethodPatch, "/api/v1/cart/lines/p1:M", AdjustQuantityRequest{Delta: -5})
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: sessionID})
	rec = api.do(req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, decodeBody[CartResponse](t, rec).Count)

	req = httptest.NewRequest(http.MethodDelete, "/api/v1/cart/items/0", nil)
	req.Header.Set(SessionHeader, sessionID)
	rec = api.do(req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decodeBody[CartResponse](t, rec).Items)
}

func TestCart_LineKeyWithSlashInSize(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(jsonRequest(t, http.MethodPost, "/api/v1/cart/items", AddCartItemRequest{Handle: "raw-denim-jacket", Size: "30/32"}))
	require.Equal(t, http.StatusOK, rec.Code)
	sessionID := rec.Header().Get(SessionHeader)

	cart := decodeBody[CartResponse](t, rec)
	require.Len(t, cart.Items, 1)
	require.Equal(t, "p1:30/32", cart.Items[0].Key)
	target := "/api/v1/cart/lines/" + url.PathEscape(cart.Items[0].Key)

	req := jsonRequest(t, http.MethodPatch, target, AdjustQuantityRequest{Delta: 2})
	req.Header.Set(SessionHeader, sessionID)
	rec = api.do(req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 3, decodeBody[CartResponse](t, rec).Count)

	req = httptest.NewRequest(http.MethodDelete, target, nil)
	req.Header.Set(SessionHeader, sessionID)
	rec = api.do(req)
	require.Equal(t, http.StatusOK, rec.Code)
	cart = decodeBody[CartResponse](t, rec)
	assert.Empty(t, cart.Items)
	assert.Zero(t, cart.Count)
}

func TestCart_Validation(t *testing.T) {
	api := newTestAPI(t)

	tests := []struct {
		name string
		req  *http.Request
		code int
	}{
		{"missing size", jsonRequest(t, http.MethodPost, "/api/v1/cart/items", AddCartItemRequest{Handle: "raw-denim-jacket"}), http.StatusBadRequest},
		{"unknown product", jsonRequest(t, http.MethodPost, "/api/v1/cart/items", AddCartItemRequest{Handle: "nope", Size: "M"}), http.StatusNotFound},
		{"non integer index", jsonRequest(t, http.MethodPatch, "/api/v1/cart/items/abc", AdjustQuantityRequest{Delta: 1}), http.StatusBadRequest},
		{"zero delta", jsonRequest(t, http.MethodPatch, "/api/v1/cart/items/0", AdjustQuantityRequest{Delta: 0}), http.StatusBadRequest},
		{"malformed json", httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", strings.NewReader("{")), http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, api.do(tt.req).Code)
		})
	}
}

func TestAdminLogin(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(jsonRequest(t, http.MethodPost, "/api/v1/admin/login", LoginRequest{Password: "wrong"}))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = api.do(jsonRequest(t, http.MethodPost, "/api/v1/admin/login", LoginRequest{Password: "12345"}))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, adminTokenValue, decodeBody[LoginResponse](t, rec).Token)
}

func TestAdminCreateProduct_FormFields(t *testing.T) {
	api := newTestAPI(t)

	form := url.Values{}
	form.Set("title", "Raw Denim Jacket")
	form.Set("price", "120")
	form.Set("sizes", "S, M ,L,")
	form.Add("images", "img-a")
	form.Add("images", "img-b")

	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/products", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set(AdminTokenHeader, adminTokenValue)

	rec := api.do(req)
	require.Equal(t, http.StatusCreated, rec.Code)

	product := decodeBody[ProductResponse](t, rec)
	assert.Equal(t, "raw-denim-jacket", product.Handle)
	assert.Equal(t, []string{"S", "M", "L"}, product.Sizes)
	assert.Equal(t, []string{"img-a", "img-b"}, product.Images)
}

func TestAdminCreateProduct_Validation(t *testing.T) {
	api := newTestAPI(t)

	form := url.Values{}
	form.Set("title", "Jacket")
	form.Set("price", "abc")
	form.Add("images", "img-a")

	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/products", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set(AdminTokenHeader, adminTokenValue)

	rec := api.do(req)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, e.ErrInvalidPrice.Error(), decodeBody[ErrorResponse](t, rec).Message)
}

func TestAdminDeleteProduct_NotFound(t *testing.T) {
	api := newTestAPI(t)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/admin/products/11111111-1111-1111-1111-111111111111", nil)
	req.Header.Set(AdminTokenHeader, adminTokenValue)
	assert.Equal(t, http.StatusNotFound, api.do(req).Code)
}

func TestAdminUploadAssets(t *testing.T) {
	api := newTestAPI(t)

	png := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("images", "look.png")
	require.NoError(t, err)
	_, err = fw.Write(png)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/assets", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set(AdminTokenHeader, adminTokenValue)

	rec := api.do(req)
	require.Equal(t, http.StatusCreated, rec.Code)

	res := decodeBody[UploadAssetsResponse](t, rec)
	assert.Equal(t, []string{"rawline/look.png"}, res.AssetIDs)
	assert.Equal(t, []string{"https://cdn.test/rawline/look.png"}, res.URLs)
	require.Len(t, api.admin.uploaded, 1)
	assert.Equal(t, "image/png", api.admin.uploaded[0].MimeType)
}

func TestAdminUploadAssets_RejectsText(t *testing.T) {
	api := newTestAPI(t)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("images", "notes.txt")
	require.NoError(t, err)
	_, err = fw.Write([]byte("plain text"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/assets", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set(AdminTokenHeader, adminTokenValue)

	rec := api.do(req)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, e.ErrUnsupportedMediaType.Error(), decodeBody[ErrorResponse](t, rec).Message)
}

func TestToHTTPResponse(t *testing.T) {
	tests := []struct {
		err  error
		code int
	}{
		{e.Wrap("op", e.ErrSizeRequired), http.StatusBadRequest},
		{e.Wrap("op", e.ErrInvalidPassword), http.StatusUnauthorized},
		{e.ErrUnauthorized, http.StatusUnauthorized},
		{e.Wrap("op", e.ErrProductNotFound), http.StatusNotFound},
		{e.ErrTransactionNotFound, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		code, _ := ToHTTPResponse(tt.err)
		assert.Equal(t, tt.code, code, tt.err.Error())
	}
}
