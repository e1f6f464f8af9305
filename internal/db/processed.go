package db

import (
	"fmt"

	"gorm.io/gorm/clause"

	"github.com/asteroid-belt/leetvault/internal/models"
)

// ListProcessedSlugs returns every slug in the processed set.
func (db *DB) ListProcessedSlugs() ([]string, error) {
	var slugs []string
	if err := db.Model(&models.ProcessedSlug{}).Order("slug").Pluck("slug", &slugs).Error; err != nil {
		return nil, fmt.Errorf("list processed slugs: %w", err)
	}
	return slugs, nil
}

// AddProcessedSlugs records slugs as processed. Already-present slugs are
// left untouched, so re-marking after a partially failed sync is safe.
func (db *DB) AddProcessedSlugs(slugs []string) error {
	if len(slugs) == 0 {
		return nil
	}

	rows := make([]models.ProcessedSlug, 0, len(slugs))
	for _, slug := range slugs {
		if slug == "" {
			continue
		}
		rows = append(rows, models.ProcessedSlug{Slug: slug})
	}
	if len(rows) == 0 {
		return nil
	}

	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "slug"}},
		DoNothing: true,
	}).CreateInBatches(rows, 100).Error
	if err != nil {
		return fmt.Errorf("add processed slugs: %w", err)
	}
	return nil
}

// HasProcessedSlug reports whether slug is in the processed set.
func (db *DB) HasProcessedSlug(slug string) (bool, error) {
	var count int64
	err := db.Model(&models.ProcessedSlug{}).Where("slug = ?", slug).Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("check processed slug: %w", err)
	}
	return count > 0, nil
}

// CountProcessedSlugs returns the size of the processed set.
func (db *DB) CountProcessedSlugs() (int64, error) {
	var count int64
	if err := db.Model(&models.ProcessedSlug{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count processed slugs: %w", err)
	}
	return count, nil
}

// ClearProcessedSlugs empties the processed set. The next sync re-evaluates
// every fetched record against the vault, which is safe because note
// creation is idempotent.
func (db *DB) ClearProcessedSlugs() error {
	if err := db.Where("1 = 1").Delete(&models.ProcessedSlug{}).Error; err != nil {
		return fmt.Errorf("clear processed slugs: %w", err)
	}
	return nil
}
