package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"qatrah-api/internal/domain"
	custommiddleware "qatrah-api/internal/middleware"
	"qatrah-api/internal/repository"
	"qatrah-api/internal/service"
	"qatrah-api/internal/upload"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Mock repository recording the filter and sort it was called with
type mockProductRepository struct {
	products   map[uuid.UUID]*domain.Product
	lastFilter repository.ProductFilter
	lastSortBy string
	lastOrder  repository.SortOrder
}

func newMockProductRepository() *mockProductRepository {
	return &mockProductRepository{
		products: make(map[uuid.UUID]*domain.Product),
	}
}

func (m *mockProductRepository) Create(ctx context.Context, product *domain.Product) error {
	copied := *product
	m.products[product.ID] = &copied
	return nil
}

func (m *mockProductRepository) Update(ctx context.Context, product *domain.Product) error {
	if _, exists := m.products[product.ID]; !exists {
		return repository.ErrProductNotFound
	}
	copied := *product
	m.products[product.ID] = &copied
	return nil
}

func (m *mockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if _, exists := m.products[id]; !exists {
		return repository.ErrProductNotFound
	}
	delete(m.products, id)
	return nil
}

func (m *mockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	product, exists := m.products[id]
	if !exists {
		return nil, repository.ErrProductNotFound
	}
	copied := *product
	return &copied, nil
}

func (m *mockProductRepository) List(ctx context.Context, filter repository.ProductFilter, sortBy string, sortOrder repository.SortOrder) ([]*domain.Product, error) {
	m.lastFilter = filter
	m.lastSortBy = sortBy
	m.lastOrder = sortOrder

	products := make([]*domain.Product, 0, len(m.products))
	for _, product := range m.products {
		if filter.Category != "" && product.Category != filter.Category {
			continue
		}
		if filter.StockStatus != "" && product.StockStatus != filter.StockStatus {
			continue
		}
		products = append(products, product)
	}
	return products, nil
}

func newProductRouter(t *testing.T, repo *mockProductRepository) chi.Router {
	t.Helper()
	logger := zap.NewNop()

	uploads, err := upload.NewStorage(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create upload storage: %v", err)
	}

	handler := NewProductHandler(service.NewProductService(repo), uploads, logger)
	router := chi.NewRouter()
	handler.RegisterRoutes(router, custommiddleware.AuthMiddleware(testSecret, logger))
	return router
}

func seedProduct(repo *mockProductRepository, nameEn, category string, price float64) *domain.Product {
	product := &domain.Product{
		ID:          uuid.New(),
		Name:        domain.Localized{Ar: "منتج", En: nameEn},
		Category:    category,
		StockStatus: domain.StockAvailable,
		Price:       price,
	}
	repo.products[product.ID] = product
	return product
}

func TestListProductsIsPublic(t *testing.T) {
	repo := newMockProductRepository()
	seedProduct(repo, "Chlorine", domain.ProductCategoryChemicals, 49.99)
	seedProduct(repo, "pH Meter", domain.ProductCategoryDevices, 150)
	router := newProductRouter(t, repo)

	req := httptest.NewRequest("GET", "/api/products", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}

	var response custommiddleware.Envelope
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Response is not valid JSON: %v", err)
	}
	if response.Count == nil || *response.Count != 2 {
		t.Errorf("Expected count 2, got %+v", response.Count)
	}
}

func TestListProductsAppliesFilterAndSort(t *testing.T) {
	repo := newMockProductRepository()
	seedProduct(repo, "Chlorine", domain.ProductCategoryChemicals, 49.99)
	router := newProductRouter(t, repo)

	req := httptest.NewRequest("GET", "/api/products?category=chemicals&sort=-price", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	if repo.lastFilter.Category != domain.ProductCategoryChemicals {
		t.Errorf("Category filter not applied: %+v", repo.lastFilter)
	}
	if repo.lastSortBy != "price" || repo.lastOrder != repository.SortOrderDesc {
		t.Errorf("Sort not parsed: %q %q", repo.lastSortBy, repo.lastOrder)
	}
}

func TestListProductsSelectProjection(t *testing.T) {
	repo := newMockProductRepository()
	seedProduct(repo, "Chlorine", domain.ProductCategoryChemicals, 49.99)
	router := newProductRouter(t, repo)

	req := httptest.NewRequest("GET", "/api/products?select=name,price", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	var response struct {
		Success bool             `json:"success"`
		Data    []map[string]any `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Response is not valid JSON: %v", err)
	}

	if len(response.Data) != 1 {
		t.Fatalf("Expected one row, got %d", len(response.Data))
	}

	row := response.Data[0]
	if _, ok := row["name"]; !ok {
		t.Error("Selected field name missing from projection")
	}
	if _, ok := row["price"]; !ok {
		t.Error("Selected field price missing from projection")
	}
	if _, ok := row["category"]; ok {
		t.Error("Unselected field category leaked into projection")
	}
}

func TestCreateProductRequiresAuth(t *testing.T) {
	repo := newMockProductRepository()
	router := newProductRouter(t, repo)

	body := `{"name": {"ar": "كلور", "en": "Chlorine"}, "category": "chemicals", "price": 49.99}`
	req := httptest.NewRequest("POST", "/api/products", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401 without token, got %d", w.Code)
	}
	if len(repo.products) != 0 {
		t.Error("Unauthorized request created a product")
	}
}

func TestCreateProductJSON(t *testing.T) {
	repo := newMockProductRepository()
	router := newProductRouter(t, repo)

	body := `{
		"name": {"ar": "كلور", "en": "Chlorine"},
		"description": {"ar": "مطهر", "en": "Disinfectant"},
		"category": "chemicals",
		"price": 49.99
	}`
	req := httptest.NewRequest("POST", "/api/products", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+adminToken(t))
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var response struct {
		Success bool           `json:"success"`
		Data    domain.Product `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Response is not valid JSON: %v", err)
	}

	if response.Data.Name.En != "Chlorine" {
		t.Errorf("Unexpected product name: %+v", response.Data.Name)
	}
	if response.Data.StockStatus != domain.StockAvailable {
		t.Errorf("Expected defaulted stock status, got %q", response.Data.StockStatus)
	}
}

// Creation accepts multipart: the payload rides in the data field and the
// image in the image part.
func TestCreateProductMultipartWithImage(t *testing.T) {
	repo := newMockProductRepository()
	router := newProductRouter(t, repo)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if err := mw.WriteField("data", `{"name": {"ar": "جهاز", "en": "Spectrometer"}, "description": {"ar": "مطياف", "en": "Benchtop spectrometer"}, "category": "devices", "price": 1200}`); err != nil {
		t.Fatalf("Failed to write data field: %v", err)
	}
	fw, err := mw.CreateFormFile("image", "spectrometer.png")
	if err != nil {
		t.Fatalf("Failed to create image part: %v", err)
	}
	fw.Write([]byte("\x89PNG\r\n\x1a\nfake image bytes"))
	mw.Close()

	req := httptest.NewRequest("POST", "/api/products", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+adminToken(t))
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var response struct {
		Data domain.Product `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Response is not valid JSON: %v", err)
	}

	if !strings.HasPrefix(response.Data.Image, "/uploads/") {
		t.Errorf("Expected stored image path, got %q", response.Data.Image)
	}
	if !strings.HasSuffix(response.Data.Image, ".png") {
		t.Errorf("Expected preserved extension, got %q", response.Data.Image)
	}
}

func TestUpdateMissingProductReturns404(t *testing.T) {
	repo := newMockProductRepository()
	router := newProductRouter(t, repo)

	body := `{"price": 10}`
	req := httptest.NewRequest("PUT", "/api/products/"+uuid.NewString(), strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+adminToken(t))
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", w.Code)
	}
}

func TestParseSort(t *testing.T) {
	tests := []struct {
		param     string
		wantField string
		wantOrder repository.SortOrder
	}{
		{"", "createdAt", repository.SortOrderDesc},
		{"price", "price", repository.SortOrderAsc},
		{"-price", "price", repository.SortOrderDesc},
		{"name,price", "name", repository.SortOrderAsc},
	}

	for _, tt := range tests {
		field, order := parseSort(tt.param)
		if field != tt.wantField || order != tt.wantOrder {
			t.Errorf("parseSort(%q) = (%q, %q), want (%q, %q)", tt.param, field, order, tt.wantField, tt.wantOrder)
		}
	}
}
