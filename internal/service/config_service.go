package service

import (
	"context"

	"qatrah-api/internal/domain"
	"qatrah-api/internal/repository"
)

// ConfigPatch carries a partial update of the site configuration; nil
// sections retain their stored values
type ConfigPatch struct {
	Stats       *domain.SiteStats
	ContactInfo *domain.ContactInfo
	SocialLinks *domain.SocialLinks
}

// SiteConfigService defines the interface for site configuration logic
type SiteConfigService interface {
	Get(ctx context.Context) (*domain.GeneralConfig, error)
	Update(ctx context.Context, patch ConfigPatch) (*domain.GeneralConfig, error)
	SetStats(ctx context.Context, patch repository.StatsPatch) (*domain.GeneralConfig, error)
	IncrementVisitors(ctx context.Context) (*domain.GeneralConfig, error)
}

type siteConfigService struct {
	configRepo repository.ConfigRepository
}

// NewSiteConfigService creates a new instance of SiteConfigService
func NewSiteConfigService(configRepo repository.ConfigRepository) SiteConfigService {
	return &siteConfigService{configRepo: configRepo}
}

// Get returns the singleton config, lazily created with zeroed stats
func (s *siteConfigService) Get(ctx context.Context) (*domain.GeneralConfig, error) {
	return s.configRepo.Get(ctx)
}

// Update merges the patch into the stored config and persists the result,
// creating the singleton if it does not exist yet
func (s *siteConfigService) Update(ctx context.Context, patch ConfigPatch) (*domain.GeneralConfig, error) {
	cfg, err := s.configRepo.Get(ctx)
	if err != nil {
		return nil, err
	}

	if patch.Stats != nil {
		cfg.Stats = *patch.Stats
	}
	if patch.ContactInfo != nil {
		cfg.ContactInfo = *patch.ContactInfo
	}
	if patch.SocialLinks != nil {
		cfg.SocialLinks = *patch.SocialLinks
	}

	return s.configRepo.Update(ctx, cfg)
}

// SetStats applies an absolute partial update of the site counters
func (s *siteConfigService) SetStats(ctx context.Context, patch repository.StatsPatch) (*domain.GeneralConfig, error) {
	return s.configRepo.SetStats(ctx, patch)
}

// IncrementVisitors bumps the visitor counter atomically
func (s *siteConfigService) IncrementVisitors(ctx context.Context) (*domain.GeneralConfig, error) {
	return s.configRepo.IncrementVisitors(ctx)
}
