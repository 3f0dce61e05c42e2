package httpserver

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/estilourbano/tienda/internal/domain"
)

const productBody = `{"name":"Camiseta Oversize","description":"Algodón 100%","price":55000,"sizes":["S","M","L","XL"]}`

func createProduct(t *testing.T, env *testEnv) domain.Product {
	t.Helper()
	rec := env.do(httptest.NewRequest(http.MethodPost, "/products", strings.NewReader(productBody)),
		sessionCookie("admin@example.com", domain.RoleAdmin))
	require.Equal(t, 201, rec.Code, rec.Body.String())
	var p domain.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p))
	return p
}

func TestProductListIsPublic(t *testing.T) {
	env := newTestEnv()
	createProduct(t, env)

	rec := env.do(httptest.NewRequest(http.MethodGet, "/products", nil))
	require.Equal(t, 200, rec.Code)

	var list []domain.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, "Camiseta Oversize", list[0].Name)
	assert.Equal(t, []string{"S", "M", "L", "XL"}, list[0].Sizes)
}

func TestProductCreateIsAdminOnly(t *testing.T) {
	env := newTestEnv()

	rec := env.do(httptest.NewRequest(http.MethodPost, "/products", strings.NewReader(productBody)))
	assert.Equal(t, 401, rec.Code)

	rec = env.do(httptest.NewRequest(http.MethodPost, "/products", strings.NewReader(productBody)),
		sessionCookie("laura@example.com", domain.RoleUser))
	assert.Equal(t, 403, rec.Code)
}

func TestProductCreateValidation(t *testing.T) {
	env := newTestEnv()
	admin := sessionCookie("admin@example.com", domain.RoleAdmin)

	rec := env.do(httptest.NewRequest(http.MethodPost, "/products", strings.NewReader(`{"price":1000}`)), admin)
	assert.Equal(t, 400, rec.Code)

	rec = env.do(httptest.NewRequest(http.MethodPost, "/products", strings.NewReader(`{"name":"X","price":-5}`)), admin)
	assert.Equal(t, 400, rec.Code)
}

func TestProductPartialUpdate(t *testing.T) {
	env := newTestEnv()
	p := createProduct(t, env)
	admin := sessionCookie("admin@example.com", domain.RoleAdmin)

	rec := env.do(httptest.NewRequest(http.MethodPut, "/products/"+p.ID.String(), strings.NewReader(`{"price":60000}`)), admin)
	require.Equal(t, 200, rec.Code)

	var got domain.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, 60000.0, got.Price)
	assert.Equal(t, "Camiseta Oversize", got.Name)
	assert.Equal(t, "Algodón 100%", got.Description)
}

func TestProductDelete(t *testing.T) {
	env := newTestEnv()
	p := createProduct(t, env)
	admin := sessionCookie("admin@example.com", domain.RoleAdmin)

	rec := env.do(httptest.NewRequest(http.MethodDelete, "/products/"+p.ID.String(), nil), admin)
	require.Equal(t, 200, rec.Code)
	assert.Contains(t, rec.Body.String(), "Producto eliminado correctamente")

	rec = env.do(httptest.NewRequest(http.MethodGet, "/products/"+p.ID.String(), nil))
	assert.Equal(t, 404, rec.Code)
}

func TestProductInvalidID(t *testing.T) {
	env := newTestEnv()

	rec := env.do(httptest.NewRequest(http.MethodGet, "/products/abc", nil))
	assert.Equal(t, 400, rec.Code)
	assert.Contains(t, rec.Body.String(), "ID de producto inválido")
}

func TestUploadRequiresAdminAndFile(t *testing.T) {
	env := newTestEnv()
	admin := sessionCookie("admin@example.com", domain.RoleAdmin)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "foto.png")
	require.NoError(t, err)
	_, _ = fw.Write([]byte("png-bytes"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/upload", bytes.NewReader(buf.Bytes()))
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := env.do(req)
	assert.Equal(t, 401, rec.Code)

	req = httptest.NewRequest(http.MethodPost, "/upload", bytes.NewReader(buf.Bytes()))
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec = env.do(req, admin)
	require.Equal(t, 200, rec.Code)

	var resp struct {
		URL     string `json:"url"`
		AssetID string `json:"assetId"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, strings.HasPrefix(resp.URL, "/uploads/"))
	assert.NotEmpty(t, resp.AssetID)

	// no file part
	var empty bytes.Buffer
	mw2 := multipart.NewWriter(&empty)
	require.NoError(t, mw2.Close())
	req = httptest.NewRequest(http.MethodPost, "/upload", bytes.NewReader(empty.Bytes()))
	req.Header.Set("Content-Type", mw2.FormDataContentType())
	rec = env.do(req, admin)
	assert.Equal(t, 400, rec.Code)
	assert.Contains(t, rec.Body.String(), "No se envió ningún archivo")
}
