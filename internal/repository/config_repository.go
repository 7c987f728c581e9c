package repository

import (
	"context"
	"database/sql"
	"fmt"

	"qatrah-api/internal/domain"
)

// StatsPatch carries a partial absolute update of the site counters.
// Nil fields keep their stored values.
type StatsPatch struct {
	NewProjects      *int
	OngoingProjects  *int
	FinishedProjects *int
	Visitors         *int
}

// ConfigRepository manages the site configuration singleton. The table is
// constrained to a single keyed row (id = 1), so concurrent first reads
// cannot create two "singletons", and counter updates run as atomic
// in-database increments rather than read-modify-write.
type ConfigRepository interface {
	Get(ctx context.Context) (*domain.GeneralConfig, error)
	Update(ctx context.Context, cfg *domain.GeneralConfig) (*domain.GeneralConfig, error)
	SetStats(ctx context.Context, patch StatsPatch) (*domain.GeneralConfig, error)
	IncrementVisitors(ctx context.Context) (*domain.GeneralConfig, error)
}

type configRepository struct {
	db *sql.DB
}

// NewConfigRepository creates a new instance of ConfigRepository
func NewConfigRepository(db *sql.DB) ConfigRepository {
	return &configRepository{db: db}
}

const configColumns = `
	stats_new_projects, stats_ongoing_projects, stats_finished_projects, stats_visitors,
	contact_phone, contact_email, contact_whatsapp, contact_address,
	social_facebook, social_linkedin, social_twitter,
	created_at, updated_at
`

func scanConfig(row interface{ Scan(...any) error }) (*domain.GeneralConfig, error) {
	cfg := &domain.GeneralConfig{}
	err := row.Scan(
		&cfg.Stats.NewProjects,
		&cfg.Stats.OngoingProjects,
		&cfg.Stats.FinishedProjects,
		&cfg.Stats.Visitors,
		&cfg.ContactInfo.Phone,
		&cfg.ContactInfo.Email,
		&cfg.ContactInfo.Whatsapp,
		&cfg.ContactInfo.Address,
		&cfg.SocialLinks.Facebook,
		&cfg.SocialLinks.LinkedIn,
		&cfg.SocialLinks.Twitter,
		&cfg.CreatedAt,
		&cfg.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// ensureRow lazily creates the zeroed singleton row. A concurrent first
// access loses the insert race harmlessly thanks to ON CONFLICT DO NOTHING.
func (r *configRepository) ensureRow(ctx context.Context) error {
	query := `
		INSERT INTO general_config (id, created_at, updated_at)
		VALUES (1, NOW(), NOW())
		ON CONFLICT (id) DO NOTHING
	`

	if _, err := r.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("failed to initialize site config: %w", err)
	}
	return nil
}

// Get returns the singleton config, creating the zeroed default on first read
func (r *configRepository) Get(ctx context.Context) (*domain.GeneralConfig, error) {
	if err := r.ensureRow(ctx); err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`SELECT %s FROM general_config WHERE id = 1`, configColumns)

	cfg, err := scanConfig(r.db.QueryRowContext(ctx, query))
	if err != nil {
		return nil, fmt.Errorf("failed to read site config: %w", err)
	}

	return cfg, nil
}

// Update replaces the config content, creating the row if absent
func (r *configRepository) Update(ctx context.Context, cfg *domain.GeneralConfig) (*domain.GeneralConfig, error) {
	query := fmt.Sprintf(`
		INSERT INTO general_config (id,
			stats_new_projects, stats_ongoing_projects, stats_finished_projects, stats_visitors,
			contact_phone, contact_email, contact_whatsapp, contact_address,
			social_facebook, social_linkedin, social_twitter,
			created_at, updated_at)
		VALUES (1, $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW(), NOW())
		ON CONFLICT (id) DO UPDATE SET
			stats_new_projects = EXCLUDED.stats_new_projects,
			stats_ongoing_projects = EXCLUDED.stats_ongoing_projects,
			stats_finished_projects = EXCLUDED.stats_finished_projects,
			stats_visitors = EXCLUDED.stats_visitors,
			contact_phone = EXCLUDED.contact_phone,
			contact_email = EXCLUDED.contact_email,
			contact_whatsapp = EXCLUDED.contact_whatsapp,
			contact_address = EXCLUDED.contact_address,
			social_facebook = EXCLUDED.social_facebook,
			social_linkedin = EXCLUDED.social_linkedin,
			social_twitter = EXCLUDED.social_twitter,
			updated_at = NOW()
		RETURNING %s
	`, configColumns)

	updated, err := scanConfig(r.db.QueryRowContext(
		ctx,
		query,
		cfg.Stats.NewProjects,
		cfg.Stats.OngoingProjects,
		cfg.Stats.FinishedProjects,
		cfg.Stats.Visitors,
		cfg.ContactInfo.Phone,
		cfg.ContactInfo.Email,
		cfg.ContactInfo.Whatsapp,
		cfg.ContactInfo.Address,
		cfg.SocialLinks.Facebook,
		cfg.SocialLinks.LinkedIn,
		cfg.SocialLinks.Twitter,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to update site config: %w", err)
	}

	return updated, nil
}

// SetStats applies an absolute partial update of the counters in a single
// atomic statement; fields not present in the patch keep their values
func (r *configRepository) SetStats(ctx context.Context, patch StatsPatch) (*domain.GeneralConfig, error) {
	if err := r.ensureRow(ctx); err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
		UPDATE general_config
		SET stats_new_projects = COALESCE($1, stats_new_projects),
		    stats_ongoing_projects = COALESCE($2, stats_ongoing_projects),
		    stats_finished_projects = COALESCE($3, stats_finished_projects),
		    stats_visitors = COALESCE($4, stats_visitors),
		    updated_at = NOW()
		WHERE id = 1
		RETURNING %s
	`, configColumns)

	cfg, err := scanConfig(r.db.QueryRowContext(
		ctx,
		query,
		patch.NewProjects,
		patch.OngoingProjects,
		patch.FinishedProjects,
		patch.Visitors,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to update site stats: %w", err)
	}

	return cfg, nil
}

// IncrementVisitors bumps the visitor counter atomically in the database,
// so concurrent increments are additive rather than last-write-wins
func (r *configRepository) IncrementVisitors(ctx context.Context) (*domain.GeneralConfig, error) {
	if err := r.ensureRow(ctx); err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
		UPDATE general_config
		SET stats_visitors = stats_visitors + 1, updated_at = NOW()
		WHERE id = 1
		RETURNING %s
	`, configColumns)

	cfg, err := scanConfig(r.db.QueryRowContext(ctx, query))
	if err != nil {
		return nil, fmt.Errorf("failed to increment visitor count: %w", err)
	}

	return cfg, nil
}
