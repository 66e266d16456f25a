package quote

import (
	"database/sql"
	"fmt"
	"log"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"TradeSentinel/internal/model"
)

// SQLiteCache persists fetched bars to a SQLite database with a TTL.
type SQLiteCache struct {
	db  *sql.DB
	ttl time.Duration
	mu  sync.Mutex
	now func() time.Time
}

// NewSQLiteCache opens (or creates) the SQLite database and runs migrations.
func NewSQLiteCache(dbPath string, ttl time.Duration) (*SQLiteCache, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	c := &SQLiteCache{db: db, ttl: ttl, now: time.Now}
	if err := c.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite quote cache opened: %s (ttl %v)", dbPath, ttl)
	return c, nil
}

func (c *SQLiteCache) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS cached_bars (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			symbol     TEXT NOT NULL,
			period     TEXT NOT NULL,
			interval   TEXT NOT NULL,
			fetched_at INTEGER NOT NULL,
			bar_time   INTEGER NOT NULL,
			open       REAL,
			high       REAL,
			low        REAL,
			close      REAL,
			volume     REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_cached_key ON cached_bars(symbol, period, interval)`,
	}
	for _, s := range stmts {
		if _, err := c.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

// Lookup returns the cached series for the key if it was stored within the
// TTL. A stale or missing entry reports a miss.
func (c *SQLiteCache) Lookup(symbol, period, interval string) (model.Series, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var fetchedAt sql.NullInt64
	err := c.db.QueryRow(`SELECT MAX(fetched_at) FROM cached_bars
		WHERE symbol = ? AND period = ? AND interval = ?`,
		symbol, period, interval).Scan(&fetchedAt)
	if err != nil || !fetchedAt.Valid {
		return nil, false
	}
	if c.now().Unix()-fetchedAt.Int64 > int64(c.ttl.Seconds()) {
		return nil, false
	}

	rows, err := c.db.Query(`SELECT bar_time, open, high, low, close, volume
		FROM cached_bars
		WHERE symbol = ? AND period = ? AND interval = ? AND fetched_at = ?
		ORDER BY bar_time ASC`,
		symbol, period, interval, fetchedAt.Int64)
	if err != nil {
		log.Printf("[WARN] cache lookup %s: %v", symbol, err)
		return nil, false
	}
	defer rows.Close()

	var bars model.Series
	for rows.Next() {
		var ts int64
		var b model.Bar
		if err := rows.Scan(&ts, &b.Open, &b.High, &b.Low, &b.Close, &b.Volume); err != nil {
			log.Printf("[WARN] cache scan %s: %v", symbol, err)
			return nil, false
		}
		b.Time = time.Unix(ts, 0)
		bars = append(bars, b)
	}
	if rows.Err() != nil || bars.IsEmpty() {
		return nil, false
	}
	return bars, true
}

// Store replaces any previous entry for the key with the new bars.
func (c *SQLiteCache) Store(symbol, period, interval string, bars model.Series) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	tx, err := c.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM cached_bars
		WHERE symbol = ? AND period = ? AND interval = ?`,
		symbol, period, interval); err != nil {
		return fmt.Errorf("evict: %w", err)
	}

	fetchedAt := c.now().Unix()
	stmt, err := tx.Prepare(`INSERT INTO cached_bars
		(symbol, period, interval, fetched_at, bar_time, open, high, low, close, volume)
		VALUES (?,?,?,?,?,?,?,?,?,?)`)
	if err != nil {
		return fmt.Errorf("prepare: %w", err)
	}
	defer stmt.Close()

	for _, b := range bars {
		if _, err := stmt.Exec(symbol, period, interval, fetchedAt,
			b.Time.Unix(), b.Open, b.High, b.Low, b.Close, b.Volume); err != nil {
			return fmt.Errorf("insert bar: %w", err)
		}
	}
	return tx.Commit()
}

func (c *SQLiteCache) Close() error {
	log.Println("[INFO] closing sqlite quote cache")
	return c.db.Close()
}
