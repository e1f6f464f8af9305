package models

import "time"

// ProcessedSlug is a persisted row of the processed-identity set: a problem
// slug whose materialization has been attempted. Rows are only ever added,
// never updated, and the table is cleared only by an explicit reset.
type ProcessedSlug struct {
	Slug     string    `gorm:"primaryKey;size:100" json:"slug"`
	MarkedAt time.Time `gorm:"autoCreateTime" json:"marked_at"`
}

// TableName specifies the table name for GORM.
func (ProcessedSlug) TableName() string {
	return "processed_slugs"
}

// SyncMeta is a key-value row of sync state metadata.
type SyncMeta struct {
	Key       string    `gorm:"primaryKey;size:100" json:"key"`
	Value     string    `gorm:"type:text" json:"value"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for GORM.
func (SyncMeta) TableName() string {
	return "sync_meta"
}

// Common sync meta keys.
const (
	SyncMetaLastSync      = "last_sync_at"
	SyncMetaLastFullPull  = "last_full_pull_at"
	SyncMetaTotalSynced   = "total_synced"
	SyncMetaSchemaVersion = "schema_version"
	SyncMetaTrackingID    = "tracking_id"
)

// StateStats provides aggregate statistics about the local sync state.
type StateStats struct {
	ProcessedCount int64     `json:"processed_count"`
	TotalSynced    int64     `json:"total_synced"`
	LastSyncAt     time.Time `json:"last_sync_at"`
	LastFullPullAt time.Time `json:"last_full_pull_at"`
	DBSizeBytes    int64     `json:"db_size_bytes"`
}
