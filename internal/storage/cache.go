package storage

import (
	"database/sql"
	"fmt"

	"github.com/cazan/points/internal/point"
	_ "modernc.org/sqlite"
)

// Cache is an ephemeral SQLite mirror of assets.json used for queries.
// It is always rebuilt from the document and never written back.
type Cache struct {
	db *sql.DB
}

// PointHit is a point returned by a cache query together with its image.
type PointHit struct {
	Path   string      `json:"path"`
	Record int         `json:"record"` // Index of the image record in the document
	Point  point.Point `json:"point"`
}

// ImageSummary aggregates the points of one image record.
// Bounds are zero when the record has no points.
type ImageSummary struct {
	Path   string `json:"path"`
	Record int    `json:"record"`
	Points int    `json:"points"`
	MinX   uint32 `json:"min_x"`
	MinY   uint32 `json:"min_y"`
	MaxX   uint32 `json:"max_x"`
	MaxY   uint32 `json:"max_y"`
}

// OpenCache opens or creates a SQLite cache at the given path.
func OpenCache(path string) (*Cache, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening cache: %w", err)
	}

	db.SetMaxOpenConns(1) // SQLite doesn't support concurrent writes

	if err := createCacheSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating cache schema: %w", err)
	}

	return &Cache{db: db}, nil
}

// Close closes the database connection.
func (c *Cache) Close() error {
	return c.db.Close()
}

func createCacheSchema(db *sql.DB) error {
	schema := `
		CREATE TABLE IF NOT EXISTS images (
			record INTEGER PRIMARY KEY,
			path TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_images_path ON images(path);

		CREATE TABLE IF NOT EXISTS points (
			record INTEGER NOT NULL REFERENCES images(record),
			seq INTEGER NOT NULL,
			x INTEGER NOT NULL,
			y INTEGER NOT NULL,
			n INTEGER NOT NULL,
			PRIMARY KEY (record, seq)
		);

		CREATE INDEX IF NOT EXISTS idx_points_xy ON points(x, y);
	`

	_, err := db.Exec(schema)
	return err
}

// RebuildFromDocument clears the cache and loads the given records.
// Returns the number of points inserted.
func (c *Cache) RebuildFromDocument(records []point.ImageRecord) (int, error) {
	tx, err := c.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("starting rebuild: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM points"); err != nil {
		return 0, fmt.Errorf("clearing points table: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM images"); err != nil {
		return 0, fmt.Errorf("clearing images table: %w", err)
	}

	imageStmt, err := tx.Prepare(`INSERT INTO images (record, path) VALUES (?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("preparing images insert: %w", err)
	}
	defer imageStmt.Close()

	pointStmt, err := tx.Prepare(`INSERT INTO points (record, seq, x, y, n) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("preparing points insert: %w", err)
	}
	defer pointStmt.Close()

	count := 0
	for i, rec := range records {
		if _, err := imageStmt.Exec(i, rec.Path); err != nil {
			return 0, fmt.Errorf("inserting image %s: %w", rec.Path, err)
		}
		for seq, p := range rec.Points {
			if _, err := pointStmt.Exec(i, seq, p.X, p.Y, p.N); err != nil {
				return 0, fmt.Errorf("inserting point %d of %s: %w", seq, rec.Path, err)
			}
			count++
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing rebuild: %w", err)
	}
	return count, nil
}

// PointsInRegion returns points with minX <= x <= maxX and minY <= y <= maxY,
// ordered by record then position within the record.
func (c *Cache) PointsInRegion(minX, minY, maxX, maxY uint32) ([]PointHit, error) {
	rows, err := c.db.Query(`
		SELECT i.path, p.record, p.x, p.y, p.n
		FROM points p
		JOIN images i ON i.record = p.record
		WHERE p.x BETWEEN ? AND ? AND p.y BETWEEN ? AND ?
		ORDER BY p.record, p.seq`,
		minX, maxX, minY, maxY)
	if err != nil {
		return nil, fmt.Errorf("querying region: %w", err)
	}
	defer rows.Close()

	var hits []PointHit
	for rows.Next() {
		var h PointHit
		var x, y uint32
		var n int
		if err := rows.Scan(&h.Path, &h.Record, &x, &y, &n); err != nil {
			return nil, fmt.Errorf("scanning point: %w", err)
		}
		h.Point = point.New(x, y, n)
		hits = append(hits, h)
	}
	return hits, rows.Err()
}

// ImageSummaries returns per-record point counts and bounding boxes in
// document order.
func (c *Cache) ImageSummaries() ([]ImageSummary, error) {
	rows, err := c.db.Query(`
		SELECT i.record, i.path, COUNT(p.seq),
			COALESCE(MIN(p.x), 0), COALESCE(MIN(p.y), 0),
			COALESCE(MAX(p.x), 0), COALESCE(MAX(p.y), 0)
		FROM images i
		LEFT JOIN points p ON p.record = i.record
		GROUP BY i.record, i.path
		ORDER BY i.record`)
	if err != nil {
		return nil, fmt.Errorf("querying summaries: %w", err)
	}
	defer rows.Close()

	var summaries []ImageSummary
	for rows.Next() {
		var s ImageSummary
		if err := rows.Scan(&s.Record, &s.Path, &s.Points, &s.MinX, &s.MinY, &s.MaxX, &s.MaxY); err != nil {
			return nil, fmt.Errorf("scanning summary: %w", err)
		}
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}

// Count returns the number of cached images and points.
func (c *Cache) Count() (images, points int, err error) {
	if err := c.db.QueryRow("SELECT COUNT(*) FROM images").Scan(&images); err != nil {
		return 0, 0, fmt.Errorf("counting images: %w", err)
	}
	if err := c.db.QueryRow("SELECT COUNT(*) FROM points").Scan(&points); err != nil {
		return 0, 0, fmt.Errorf("counting points: %w", err)
	}
	return images, points, nil
}
