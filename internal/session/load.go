package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/ZJUSCT/resolver/internal/config"
	"github.com/ZJUSCT/resolver/internal/database"
	"github.com/ZJUSCT/resolver/internal/loader"
	"github.com/ZJUSCT/resolver/internal/resolver"
	"gorm.io/gorm"
)

// LoadDataset reads the contest named by the configuration.
func LoadDataset(ctx context.Context, cfg *config.Config, db *gorm.DB, src *loader.Source) (resolver.Dataset, error) {
	switch cfg.Contest.Source {
	case config.SourceDatabase:
		if db == nil {
			return resolver.Dataset{}, errors.New("contest source is database but no database is open")
		}
		return database.LoadDataset(db.WithContext(ctx))
	case config.SourceFile, "":
		if cfg.Contest.Data == "" {
			return resolver.Dataset{}, errors.New("contest.data is required for file sources")
		}
		return src.LoadDataset(ctx, cfg.Contest.Data)
	}
	return resolver.Dataset{}, fmt.Errorf("unknown contest source %q", cfg.Contest.Source)
}

// Options builds the resolver options of the configured contest.
func Options(cfg *config.Config, images map[string]string) (resolver.Options, error) {
	policy, err := cfg.Scoring.Policy()
	if err != nil {
		return resolver.Options{}, fmt.Errorf("scoring: %w", err)
	}
	return resolver.Options{
		FreezeTime:     cfg.Contest.Freeze().Seconds(),
		Unofficial:     cfg.Contest.Unofficial,
		HideUnofficial: cfg.Contest.HidesUnofficial(),
		Images:         images,
		Policy:         policy,
	}, nil
}

// LoadResolver loads the dataset and images of the configured contest and
// builds a fresh resolver.
func LoadResolver(ctx context.Context, cfg *config.Config, db *gorm.DB, src *loader.Source) (*resolver.Resolver, error) {
	ds, err := LoadDataset(ctx, cfg, db, src)
	if err != nil {
		return nil, fmt.Errorf("load dataset: %w", err)
	}
	images, err := src.LoadImages(ctx, cfg.Contest.Images)
	if err != nil {
		return nil, fmt.Errorf("load images: %w", err)
	}
	opts, err := Options(cfg, images)
	if err != nil {
		return nil, err
	}
	return resolver.New(ds, opts)
}
