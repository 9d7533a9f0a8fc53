package interchange

import (
	"time"
)

// MetadataStore persists small key-value state between runs, here the
// time of the last backup.
type MetadataStore interface {
	GetMetadata(key string) (string, error)
	SetMetadata(key, value string) error
}

const lastBackupKey = "last_backup"

// DefaultBackupEvery is the cadence of automatic backups.
const DefaultBackupEvery = 5 * 24 * time.Hour

// BackupDue reports whether an automatic backup should run: no backup
// recorded yet, an unreadable record, or the last one older than the
// cadence.
func BackupDue(meta MetadataStore, now time.Time, every time.Duration) (bool, error) {
	value, err := meta.GetMetadata(lastBackupKey)
	if err != nil {
		return false, err
	}
	if value == "" {
		return true, nil
	}
	last, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return true, nil
	}
	return now.Sub(last) >= every, nil
}

// MarkBackupDone records now as the last backup time.
func MarkBackupDone(meta MetadataStore, now time.Time) error {
	return meta.SetMetadata(lastBackupKey, now.Format(time.RFC3339))
}
