package transport

import (
	"net/http"

	"qatrah-api/internal/domain"
	"qatrah-api/internal/middleware"
	"qatrah-api/internal/repository"
	"qatrah-api/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// UpdateConfigRequest represents a partial update of the site configuration
type UpdateConfigRequest struct {
	Stats       *domain.SiteStats   `json:"stats"`
	ContactInfo *domain.ContactInfo `json:"contactInfo"`
	SocialLinks *domain.SocialLinks `json:"socialLinks"`
}

// UpdateStatsRequest represents a partial absolute update of the site counters
type UpdateStatsRequest struct {
	Stats struct {
		NewProjects      *int `json:"newProjects"`
		OngoingProjects  *int `json:"ongoingProjects"`
		FinishedProjects *int `json:"finishedProjects"`
		Visitors         *int `json:"visitors"`
	} `json:"stats"`
}

// ConfigHandler handles HTTP requests for the site configuration singleton
type ConfigHandler struct {
	configService service.SiteConfigService
	logger        *zap.Logger
}

// NewConfigHandler creates a new ConfigHandler
func NewConfigHandler(configService service.SiteConfigService, logger *zap.Logger) *ConfigHandler {
	return &ConfigHandler{
		configService: configService,
		logger:        logger,
	}
}

// RegisterRoutes registers the site configuration routes
func (h *ConfigHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Route("/api/config", func(r chi.Router) {
		r.Get("/", h.Get)
		r.Patch("/visitors", h.IncrementVisitors)

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware)
			r.Put("/", h.Update)
			r.Patch("/stats", h.UpdateStats)
		})
	})
}

// Get returns the site configuration, creating it with zeroed stats on the
// first read
func (h *ConfigHandler) Get(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.configService.Get(r.Context())
	if err != nil {
		h.logger.Error("Failed to get site config", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "Failed to get site config")
		return
	}

	middleware.RespondWithData(w, http.StatusOK, cfg)
}

// Update handles admin updates of contact info, social links and stats
func (h *ConfigHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req UpdateConfigRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, middleware.ValidationMessage(err))
		return
	}

	cfg, err := h.configService.Update(r.Context(), service.ConfigPatch{
		Stats:       req.Stats,
		ContactInfo: req.ContactInfo,
		SocialLinks: req.SocialLinks,
	})
	if err != nil {
		h.logger.Error("Failed to update site config", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "Failed to update site config")
		return
	}

	middleware.RespondWithData(w, http.StatusOK, cfg)
}

// UpdateStats handles admin absolute updates of individual counters; omitted
// counters keep their stored values
func (h *ConfigHandler) UpdateStats(w http.ResponseWriter, r *http.Request) {
	var req UpdateStatsRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, middleware.ValidationMessage(err))
		return
	}

	cfg, err := h.configService.SetStats(r.Context(), repository.StatsPatch{
		NewProjects:      req.Stats.NewProjects,
		OngoingProjects:  req.Stats.OngoingProjects,
		FinishedProjects: req.Stats.FinishedProjects,
		Visitors:         req.Stats.Visitors,
	})
	if err != nil {
		h.logger.Error("Failed to update site stats", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "Failed to update site stats")
		return
	}

	middleware.RespondWithData(w, http.StatusOK, cfg)
}

// IncrementVisitors bumps the visitor counter by one. The increment runs
// in-database, so concurrent visits never lose counts.
func (h *ConfigHandler) IncrementVisitors(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.configService.IncrementVisitors(r.Context())
	if err != nil {
		h.logger.Error("Failed to increment visitors", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "Failed to increment visitors")
		return
	}

	middleware.RespondWithData(w, http.StatusOK, cfg)
}
