package main

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/Himselfzw/ingrid/internal/config"
	"github.com/Himselfzw/ingrid/internal/database"
	"github.com/Himselfzw/ingrid/internal/ids"
	"github.com/Himselfzw/ingrid/internal/log"
	"github.com/Himselfzw/ingrid/internal/models"
	"github.com/Himselfzw/ingrid/internal/repository"
	"github.com/Himselfzw/ingrid/internal/security"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := log.New(cfg.Environment)

	ctx := context.Background()

	dbPool, err := database.NewPostgresPool(ctx, cfg.Postgres)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect postgres")
	}
	defer dbPool.Close()

	if err := database.Migrate(ctx, dbPool); err != nil {
		logger.Fatal().Err(err).Msg("schema migration failed")
	}

	if err := seed(ctx, dbPool, logger); err != nil {
		logger.Fatal().Err(err).Msg("seeding failed")
	}
	logger.Info().Msg("seeding complete")
}

func seed(ctx context.Context, dbPool *pgxpool.Pool, logger zerolog.Logger) error {
	users := repository.NewUserRepository(dbPool)
	categories := repository.NewCategoryRepository(dbPool)
	content := repository.NewContentRepository(dbPool)

	if err := seedUser(ctx, users, logger, models.User{
		Username:  "admin",
		FirstName: "Admin",
		LastName:  "User",
		Email:     "admin@example.com",
		Role:      models.UserRoleAdmin,
	}, "admin123"); err != nil {
		return err
	}
	if err := seedUser(ctx, users, logger, models.User{
		Username:  "superadmin",
		FirstName: "Super",
		LastName:  "Admin",
		Email:     "superadmin@example.com",
		Role:      models.UserRoleSuperAdmin,
	}, "super123"); err != nil {
		return err
	}

	defaults := []models.Category{
		{Name: "Chemicals", Description: "Chemical products and materials", Type: models.CategoryTypeProduct},
		{Name: "Equipment", Description: "Laboratory and industrial equipment", Type: models.CategoryTypeProduct},
		{Name: "Company News", Description: "Official company announcements and updates", Type: models.CategoryTypePost},
		{Name: "Industry Updates", Description: "Latest news and trends in the chemical industry", Type: models.CategoryTypePost},
	}
	for _, category := range defaults {
		if err := seedCategory(ctx, categories, logger, category); err != nil {
			return err
		}
	}

	// Get seeds the default content row when none exists.
	if _, err := content.Get(ctx); err != nil {
		return err
	}
	return nil
}

func seedUser(ctx context.Context, users *repository.UserRepository, logger zerolog.Logger, user models.User, password string) error {
	if _, err := users.FindByUsername(ctx, user.Username); err == nil {
		logger.Info().Str("username", user.Username).Msg("user already exists")
		return nil
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return err
	}

	hash, err := security.HashPassword(password)
	if err != nil {
		return err
	}

	user.ID = ids.New()
	user.PasswordHash = hash
	user.IsActive = true
	if err := users.Create(ctx, user); err != nil {
		return err
	}
	logger.Info().Str("username", user.Username).Str("role", string(user.Role)).Msg("user created")
	return nil
}

func seedCategory(ctx context.Context, categories *repository.CategoryRepository, logger zerolog.Logger, category models.Category) error {
	if _, err := categories.FindByName(ctx, category.Name); err == nil {
		logger.Info().Str("name", category.Name).Msg("category already exists")
		return nil
	} else if !errors.Is(err, repository.ErrCategoryNotFound) {
		return err
	}

	category.ID = ids.New()
	if err := categories.Create(ctx, category); err != nil {
		return err
	}
	logger.Info().Str("name", category.Name).Msg("category created")
	return nil
}
