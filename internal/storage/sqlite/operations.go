package sqlite

import (
	"database/sql"
	"fmt"
)

// PurgeKind selects which bound keeps the operation log finite.
type PurgeKind string

const (
	PurgeLocalOnly PurgeKind = "local_only"
	PurgeWithSync  PurgeKind = "with_sync"
)

// PurgeStrategy is chosen once at log construction. LocalOnly keeps
// the most recent KeepLast rows regardless of sync state. WithSync
// keeps every unsynced row and drops synced rows older than
// RetentionDays.
type PurgeStrategy struct {
	Kind          PurgeKind
	KeepLast      int
	RetentionDays int
}

func LocalOnlyStrategy(keepLast int) PurgeStrategy {
	return PurgeStrategy{Kind: PurgeLocalOnly, KeepLast: keepLast}
}

func WithSyncStrategy(retentionDays int) PurgeStrategy {
	return PurgeStrategy{Kind: PurgeWithSync, RetentionDays: retentionDays}
}

// AppendOperation inserts one row into the operation log. Callers
// run this and Purge in the same transaction as the mutation being
// logged so the log is always bounded.
func AppendOperation(tx *sql.Tx, operationID string, timestamp int64, deviceID, operationType, operationData string) error {
	_, err := tx.Exec(`
INSERT INTO operations (operation_id, timestamp, device_id, operation_type, operation_data, synced)
VALUES (?, ?, ?, ?, ?, 0)`, operationID, timestamp, deviceID, operationType, operationData)
	if err != nil {
		return fmt.Errorf("append operation %s: %w", operationID, err)
	}
	return nil
}

// Purge applies the configured strategy. now is seconds since the
// Unix epoch, used only by WithSync.
func Purge(tx *sql.Tx, strategy PurgeStrategy, now int64) error {
	switch strategy.Kind {
	case PurgeLocalOnly:
		_, err := tx.Exec(`
DELETE FROM operations WHERE id NOT IN (
	SELECT id FROM operations ORDER BY id DESC LIMIT ?
)`, strategy.KeepLast)
		if err != nil {
			return fmt.Errorf("purge local-only: %w", err)
		}
		return nil
	case PurgeWithSync:
		cutoff := now - int64(strategy.RetentionDays)*86400
		_, err := tx.Exec(`DELETE FROM operations WHERE synced = 1 AND timestamp < ?`, cutoff)
		if err != nil {
			return fmt.Errorf("purge with-sync: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unknown purge strategy kind %q", strategy.Kind)
	}
}

func CountOperations(db DBTX) (int, error) {
	var n int
	if err := db.QueryRow(`SELECT COUNT(*) FROM operations`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count operations: %w", err)
	}
	return n, nil
}
