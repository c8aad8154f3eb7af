package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Himselfzw/ingrid/internal/models"
)

// ContentRepository manages the single site_content row.
type ContentRepository struct {
	pool *pgxpool.Pool
}

func NewContentRepository(pool *pgxpool.Pool) *ContentRepository {
	return &ContentRepository{pool: pool}
}

// Get returns the content singleton, seeding defaults when the row does not
// exist yet.
func (r *ContentRepository) Get(ctx context.Context) (models.SiteContent, error) {
	const query = `
		SELECT hero_title, hero_subtitle, about_title, about_text1, about_text2,
		       contact_address, contact_phone, contact_email, contact_hours,
		       updated_by, updated_at
		FROM site_content WHERE id = 1
	`
	var content models.SiteContent
	err := r.pool.QueryRow(ctx, query).Scan(
		&content.HeroTitle,
		&content.HeroSubtitle,
		&content.AboutTitle,
		&content.AboutText1,
		&content.AboutText2,
		&content.ContactAddress,
		&content.ContactPhone,
		&content.ContactEmail,
		&content.ContactHours,
		&content.UpdatedBy,
		&content.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			defaults := models.DefaultSiteContent()
			if err := r.Save(ctx, defaults); err != nil {
				return models.SiteContent{}, err
			}
			return defaults, nil
		}
		return models.SiteContent{}, err
	}
	return content, nil
}

// Save upserts the singleton row.
func (r *ContentRepository) Save(ctx context.Context, content models.SiteContent) error {
	const query = `
		INSERT INTO site_content (
			id, hero_title, hero_subtitle, about_title, about_text1, about_text2,
			contact_address, contact_phone, contact_email, contact_hours, updated_by, updated_at
		) VALUES (
			1, $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW()
		)
		ON CONFLICT (id) DO UPDATE SET
			hero_title = EXCLUDED.hero_title,
			hero_subtitle = EXCLUDED.hero_subtitle,
			about_title = EXCLUDED.about_title,
			about_text1 = EXCLUDED.about_text1,
			about_text2 = EXCLUDED.about_text2,
			contact_address = EXCLUDED.contact_address,
			contact_phone = EXCLUDED.contact_phone,
			contact_email = EXCLUDED.contact_email,
			contact_hours = EXCLUDED.contact_hours,
			updated_by = EXCLUDED.updated_by,
			updated_at = NOW()
	`
	_, err := r.pool.Exec(ctx, query,
		content.HeroTitle,
		content.HeroSubtitle,
		content.AboutTitle,
		content.AboutText1,
		content.AboutText2,
		content.ContactAddress,
		content.ContactPhone,
		content.ContactEmail,
		content.ContactHours,
		content.UpdatedBy,
	)
	return err
}
