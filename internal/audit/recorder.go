package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/steemit/hivelens/internal/hive"
	"github.com/steemit/hivelens/internal/models"
	"github.com/steemit/hivelens/pkg/logging"
)

// Recorder appends lookup audit entries to the searches table
type Recorder struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewRecorder creates a new audit recorder and ensures the searches
// table exists
func NewRecorder(db *gorm.DB) (*Recorder, error) {
	if err := db.AutoMigrate(&models.Search{}); err != nil {
		return nil, fmt.Errorf("failed to migrate searches table: %w", err)
	}

	return &Recorder{
		db:     db,
		logger: logging.GetLogger().With(zap.String("component", "audit")),
	}, nil
}

// Record appends one search entry with the full account snapshot
func (r *Recorder) Record(ctx context.Context, username string, at time.Time, account *hive.Account) error {
	raw, err := json.Marshal(account)
	if err != nil {
		return fmt.Errorf("failed to marshal account snapshot: %w", err)
	}

	entry := models.Search{
		Username:    username,
		SearchedAt:  at,
		AccountData: string(raw),
	}

	return r.db.WithContext(ctx).Create(&entry).Error
}

// Recent returns the most recent search entries, newest first
func (r *Recorder) Recent(ctx context.Context, limit int) ([]models.Search, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	var entries []models.Search
	if err := r.db.WithContext(ctx).
		Order("searched_at DESC").
		Limit(limit).
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}
