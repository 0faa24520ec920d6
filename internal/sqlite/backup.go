package sqlite

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/oakridgedental/clinichub/pkg/types"
)

// CreateBackup snapshots the database into the backup directory. The audit
// row is inserted with status pending before any data is copied and moved
// to completed or failed afterwards, so a crash mid-copy still leaves a
// record of the attempt. Snapshots use VACUUM INTO, which produces a
// consistent copy even with writes in flight.
func (b *Backend) CreateBackup(name string) (types.BackupResult, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	var result types.BackupResult

	db, err := b.conn()
	if err != nil {
		return result, err
	}

	name = sanitizeBackupName(name)
	if name == "" {
		name = "backup-" + time.Now().UTC().Format("20060102-150405")
	}
	destPath := filepath.Join(b.backupDir, name+".db")

	backupID := newBackupID()
	now := time.Now().UTC().Format(time.RFC3339)
	_, err = db.Exec(
		"INSERT INTO backups (id, backup_name, backup_type, file_path, status, created_at) VALUES (?, ?, 'manual', ?, ?, ?)",
		backupID, name, destPath, types.BackupPending, now)
	if err != nil {
		return result, fmt.Errorf("recording backup attempt: %w", err)
	}

	// Stale targets make VACUUM INTO fail outright.
	_ = os.Remove(destPath)

	if _, err := db.Exec("VACUUM INTO ?", destPath); err != nil {
		copyErr := fmt.Errorf("copying database: %w", err)
		b.finishBackup(backupID, types.BackupFailed, 0, copyErr.Error())
		return result, copyErr
	}

	info, err := os.Stat(destPath)
	if err != nil {
		statErr := fmt.Errorf("inspecting backup file: %w", err)
		b.finishBackup(backupID, types.BackupFailed, 0, statErr.Error())
		return result, statErr
	}

	if err := b.finishBackup(backupID, types.BackupCompleted, info.Size(), ""); err != nil {
		return result, err
	}

	result = types.BackupResult{
		BackupID: backupID,
		Name:     name,
		FilePath: destPath,
		FileSize: info.Size(),
	}
	return result, nil
}

// finishBackup moves a backup row to its terminal status. Errors here are
// returned rather than swallowed so a row is never left pending silently.
// Callers must hold b.mu.
func (b *Backend) finishBackup(backupID, status string, size int64, note string) error {
	completedAt := time.Now().UTC().Format(time.RFC3339)
	var errNote any
	if note != "" {
		errNote = note
	}
	_, err := b.db.Exec(
		"UPDATE backups SET status = ?, file_size = ?, error = ?, completed_at = ? WHERE id = ?",
		status, size, errNote, completedAt, backupID)
	if err != nil {
		return fmt.Errorf("updating backup %s to %s: %w", backupID, status, err)
	}
	return nil
}

// ListBackups returns all backup audit rows, newest first. Pure read.
func (b *Backend) ListBackups() ([]types.BackupRecord, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	db, err := b.conn()
	if err != nil {
		return nil, err
	}

	rows, err := db.Query(
		"SELECT id, backup_name, backup_type, file_path, file_size, status, error, created_at, completed_at FROM backups ORDER BY created_at DESC, id DESC")
	if err != nil {
		return nil, fmt.Errorf("listing backups: %w", err)
	}
	defer rows.Close()

	records := []types.BackupRecord{}
	for rows.Next() {
		var (
			rec         types.BackupRecord
			filePath    sqlNullable
			errNote     sqlNullable
			createdAt   string
			completedAt sqlNullable
		)
		if err := rows.Scan(&rec.ID, &rec.Name, &rec.BackupType, &filePath,
			&rec.FileSize, &rec.Status, &errNote, &createdAt, &completedAt); err != nil {
			return nil, fmt.Errorf("scanning backup row: %w", err)
		}
		rec.FilePath = filePath.text()
		rec.Error = errNote.text()
		rec.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		if s := completedAt.text(); s != "" {
			if ts, err := time.Parse(time.RFC3339, s); err == nil {
				rec.CompletedAt = &ts
			}
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// sanitizeBackupName strips path separators and whitespace so a
// caller-supplied name cannot escape the backup directory.
func sanitizeBackupName(name string) string {
	name = strings.TrimSpace(name)
	name = strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', '.', ' ':
			return '-'
		}
		return r
	}, name)
	return strings.Trim(name, "-")
}

// newBackupID generates a UUID v7 so backup ids sort by creation time.
func newBackupID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}

// sqlNullable scans a nullable text column without the sql.NullString
// ceremony at every call site.
type sqlNullable struct {
	value string
	valid bool
}

func (n *sqlNullable) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		n.valid = false
	case string:
		n.value, n.valid = v, true
	case []byte:
		n.value, n.valid = string(v), true
	default:
		n.value, n.valid = fmt.Sprint(v), true
	}
	return nil
}

func (n sqlNullable) text() string {
	if !n.valid {
		return ""
	}
	return n.value
}
