package service

import (
	"context"
	"testing"
	"time"

	"qatrah-api/internal/domain"
	"qatrah-api/internal/repository"

	"github.com/google/uuid"
)

type mockLabPageRepository struct {
	pages map[string]*domain.LabPage
}

// newMockLabPageRepository mirrors the migration seed: one page per lab type
func newMockLabPageRepository() *mockLabPageRepository {
	m := &mockLabPageRepository{pages: make(map[string]*domain.LabPage)}
	for _, labType := range []string{domain.LabTypeOrganic, domain.LabTypeInorganic, domain.LabTypeMicrobiology} {
		m.pages[labType] = &domain.LabPage{
			ID:        uuid.New(),
			Type:      labType,
			Features:  []domain.Localized{},
			Image:     domain.DefaultLabImage,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		}
	}
	return m
}

func (m *mockLabPageRepository) FindByType(ctx context.Context, labType string) (*domain.LabPage, error) {
	page, exists := m.pages[labType]
	if !exists {
		return nil, repository.ErrLabPageNotFound
	}
	copied := *page
	return &copied, nil
}

func (m *mockLabPageRepository) List(ctx context.Context) ([]*domain.LabPage, error) {
	pages := make([]*domain.LabPage, 0, len(m.pages))
	for _, page := range m.pages {
		pages = append(pages, page)
	}
	return pages, nil
}

func (m *mockLabPageRepository) Update(ctx context.Context, page *domain.LabPage) error {
	if _, exists := m.pages[page.Type]; !exists {
		return repository.ErrLabPageNotFound
	}
	copied := *page
	m.pages[page.Type] = &copied
	return nil
}

func TestGetByTypeRejectsUnknownType(t *testing.T) {
	service := NewLabService(newMockLabPageRepository())

	_, err := service.GetByType(context.Background(), "astrology")
	if err != repository.ErrLabPageNotFound {
		t.Errorf("Expected ErrLabPageNotFound for unknown type, got %v", err)
	}
}

func TestGetByTypeReturnsSeededPage(t *testing.T) {
	service := NewLabService(newMockLabPageRepository())

	page, err := service.GetByType(context.Background(), domain.LabTypeMicrobiology)
	if err != nil {
		t.Fatalf("GetByType failed: %v", err)
	}

	if page.Type != domain.LabTypeMicrobiology {
		t.Errorf("Got page for type %q", page.Type)
	}
	if page.Image != domain.DefaultLabImage {
		t.Errorf("Expected default image %q, got %q", domain.DefaultLabImage, page.Image)
	}
}

func TestUpdateRejectsUnknownType(t *testing.T) {
	service := NewLabService(newMockLabPageRepository())

	title := domain.Localized{En: "Nope"}
	_, err := service.Update(context.Background(), "astrology", LabPagePatch{Title: &title})
	if err != ErrInvalidLabType {
		t.Errorf("Expected ErrInvalidLabType, got %v", err)
	}
}

func TestUpdateMergesPatch(t *testing.T) {
	repo := newMockLabPageRepository()
	service := NewLabService(repo)
	ctx := context.Background()

	title := domain.Localized{Ar: "المختبر العضوي", En: "Organic Lab"}
	features := []domain.Localized{
		{Ar: "تحليل المبيدات", En: "Pesticide analysis"},
		{Ar: "الكروماتوغرافيا", En: "Chromatography"},
	}

	updated, err := service.Update(ctx, domain.LabTypeOrganic, LabPagePatch{
		Title:    &title,
		Features: &features,
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	if updated.Title.En != "Organic Lab" {
		t.Errorf("Title not applied: %q", updated.Title.En)
	}
	if len(updated.Features) != 2 {
		t.Errorf("Features not applied: %d entries", len(updated.Features))
	}
	// Unpatched image stays at its seeded default
	if updated.Image != domain.DefaultLabImage {
		t.Errorf("Image changed without a patch: %q", updated.Image)
	}

	// Type is identity and never changes
	if updated.Type != domain.LabTypeOrganic {
		t.Errorf("Type changed: %q", updated.Type)
	}
}
