package types

import "time"

// Backup lifecycle statuses.
const (
	BackupPending   = "pending"
	BackupCompleted = "completed"
	BackupFailed    = "failed"
)

// BackupRecord is the audit row tracking one backup attempt. A row is
// created with status pending before any data is copied and moved to a
// terminal status afterwards, so every attempt leaves a trace.
type BackupRecord struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	BackupType  string     `json:"backup_type"`
	FilePath    string     `json:"file_path"`
	FileSize    int64      `json:"file_size"`
	Status      string     `json:"status"`
	Error       string     `json:"error,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// BackupResult is returned by CreateBackup on success.
type BackupResult struct {
	BackupID string `json:"backup_id"`
	Name     string `json:"name"`
	FilePath string `json:"file_path"`
	FileSize int64  `json:"file_size"`
}
