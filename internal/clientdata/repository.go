// Package clientdata provides persistent caching for upstream provider
// responses. Payloads are stored as msgpack blobs with fetch and expiration
// timestamps; each table is capacity-bounded, evicting the least-recently-
// fetched rows when full.
package clientdata

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/vmihailenco/msgpack/v5"
)

// Cache table names.
const (
	TableCatalog = "catalog"
	TableSchemes = "schemes"
)

// AllTables lists all cache tables for cleanup operations.
var AllTables = []string{
	TableCatalog,
	TableSchemes,
}

// validTables is a set for O(1) table name validation.
var validTables = func() map[string]bool {
	m := make(map[string]bool, len(AllTables))
	for _, t := range AllTables {
		m[t] = true
	}
	return m
}()

// DefaultCapacity bounds each cache table when no explicit capacity is given.
const DefaultCapacity = 2000

// Repository provides cache operations for upstream client data.
type Repository struct {
	db       *sql.DB
	capacity int
}

// NewRepository creates a new client data repository. capacity bounds the
// number of rows per table; values < 1 fall back to DefaultCapacity.
func NewRepository(db *sql.DB, capacity int) *Repository {
	if capacity < 1 {
		capacity = DefaultCapacity
	}
	return &Repository{db: db, capacity: capacity}
}

// validateTable ensures the table name is in our allowed list.
// This prevents SQL injection through table names.
func validateTable(table string) error {
	if !validTables[table] {
		return fmt.Errorf("invalid table name: %s", table)
	}
	return nil
}

// Store saves data with expiration = now + ttl, then evicts the least-
// recently-fetched rows beyond the table capacity.
func (r *Repository) Store(table, key string, data interface{}, ttl time.Duration) error {
	if err := validateTable(table); err != nil {
		return err
	}

	blob, err := msgpack.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal data: %w", err)
	}

	now := time.Now()
	query := fmt.Sprintf(
		"INSERT OR REPLACE INTO %s (cache_key, data, fetched_at, expires_at) VALUES (?, ?, ?, ?)",
		table,
	)

	if _, err := r.db.Exec(query, key, blob, now.Unix(), now.Add(ttl).Unix()); err != nil {
		return fmt.Errorf("failed to store data in %s: %w", table, err)
	}

	return r.evictOverCapacity(table)
}

// GetIfFresh unmarshals the payload into dest only if expires_at > now.
// Returns false when the key is missing or expired. Use Get to retrieve
// stale data as a fallback when upstream calls fail.
func (r *Repository) GetIfFresh(table, key string, dest interface{}) (bool, error) {
	if err := validateTable(table); err != nil {
		return false, err
	}

	query := fmt.Sprintf(
		"SELECT data FROM %s WHERE cache_key = ? AND expires_at > ?",
		table,
	)
	return r.scanBlob(query, table, dest, key, time.Now().Unix())
}

// Get unmarshals the payload regardless of expiration status. Stale data is
// better than no data when the upstream provider is down.
func (r *Repository) Get(table, key string, dest interface{}) (bool, error) {
	if err := validateTable(table); err != nil {
		return false, err
	}

	query := fmt.Sprintf("SELECT data FROM %s WHERE cache_key = ?", table)
	return r.scanBlob(query, table, dest, key)
}

func (r *Repository) scanBlob(query, table string, dest interface{}, args ...interface{}) (bool, error) {
	var blob []byte
	err := r.db.QueryRow(query, args...).Scan(&blob)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to get data from %s: %w", table, err)
	}

	if err := msgpack.Unmarshal(blob, dest); err != nil {
		return false, fmt.Errorf("failed to unmarshal data from %s: %w", table, err)
	}
	return true, nil
}

// Delete removes a specific entry.
func (r *Repository) Delete(table, key string) error {
	if err := validateTable(table); err != nil {
		return err
	}

	query := fmt.Sprintf("DELETE FROM %s WHERE cache_key = ?", table)
	if _, err := r.db.Exec(query, key); err != nil {
		return fmt.Errorf("failed to delete from %s: %w", table, err)
	}
	return nil
}

// DeleteExpired removes all rows where expires_at < now.
// Returns the number of rows deleted.
func (r *Repository) DeleteExpired(table string) (int64, error) {
	if err := validateTable(table); err != nil {
		return 0, err
	}

	query := fmt.Sprintf("DELETE FROM %s WHERE expires_at < ?", table)
	result, err := r.db.Exec(query, time.Now().Unix())
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired from %s: %w", table, err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected for %s: %w", table, err)
	}
	return deleted, nil
}

// DeleteAllExpired removes all expired entries from all tables.
// Returns a map of table name to number of rows deleted.
func (r *Repository) DeleteAllExpired() (map[string]int64, error) {
	results := make(map[string]int64)

	for _, table := range AllTables {
		deleted, err := r.DeleteExpired(table)
		if err != nil {
			return results, fmt.Errorf("failed to delete expired from %s: %w", table, err)
		}
		results[table] = deleted
	}

	return results, nil
}

// Count returns the number of rows currently cached in a table.
func (r *Repository) Count(table string) (int, error) {
	if err := validateTable(table); err != nil {
		return 0, err
	}

	var n int
	query := fmt.Sprintf("SELECT COUNT(*) FROM %s", table)
	if err := r.db.QueryRow(query).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count rows in %s: %w", table, err)
	}
	return n, nil
}

// evictOverCapacity drops the least-recently-fetched rows so the table never
// holds more than the configured capacity.
func (r *Repository) evictOverCapacity(table string) error {
	query := fmt.Sprintf(
		`DELETE FROM %s WHERE cache_key IN (
			SELECT cache_key FROM %s ORDER BY fetched_at ASC
			LIMIT max(0, (SELECT COUNT(*) FROM %s) - ?)
		)`,
		table, table, table,
	)

	if _, err := r.db.Exec(query, r.capacity); err != nil {
		return fmt.Errorf("failed to evict from %s: %w", table, err)
	}
	return nil
}
