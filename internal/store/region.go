package store

import (
	"database/sql"
	"errors"
	"time"
)

// ErrNotFound is returned when a requested resource does not exist.
var ErrNotFound = errors.New("not found")

// Region represents a named capture region preset stored in the database.
// It replaces hand-edited coordinate files: the bot looks up the region to
// watch by name at startup.
type Region struct {
	ID        string
	Name      string
	X         int
	Y         int
	Width     int
	Height    int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// RegionRepository provides CRUD operations for region presets.
type RegionRepository struct {
	db *sql.DB
}

// Regions returns the region repository for this store.
func (s *Store) Regions() *RegionRepository {
	return &RegionRepository{db: s.db}
}

// Create inserts a new region preset into the database.
func (r *RegionRepository) Create(region *Region) error {
	now := time.Now()
	region.CreatedAt = now
	region.UpdatedAt = now

	_, err := r.db.Exec(
		`INSERT INTO regions (id, name, x, y, width, height, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		region.ID, region.Name, region.X, region.Y, region.Width, region.Height,
		region.CreatedAt, region.UpdatedAt,
	)
	if err != nil {
		return err
	}

	return nil
}

// GetByID retrieves a region preset by its ID.
func (r *RegionRepository) GetByID(id string) (*Region, error) {
	region := &Region{}

	err := r.db.QueryRow(
		`SELECT id, name, x, y, width, height, created_at, updated_at
		 FROM regions WHERE id = ?`,
		id,
	).Scan(&region.ID, &region.Name, &region.X, &region.Y, &region.Width,
		&region.Height, &region.CreatedAt, &region.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return region, nil
}

// GetByName retrieves a region preset by its name.
func (r *RegionRepository) GetByName(name string) (*Region, error) {
	region := &Region{}

	err := r.db.QueryRow(
		`SELECT id, name, x, y, width, height, created_at, updated_at
		 FROM regions WHERE name = ?`,
		name,
	).Scan(&region.ID, &region.Name, &region.X, &region.Y, &region.Width,
		&region.Height, &region.CreatedAt, &region.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return region, nil
}

// List retrieves all region presets from the database.
func (r *RegionRepository) List() ([]*Region, error) {
	rows, err := r.db.Query(
		`SELECT id, name, x, y, width, height, created_at, updated_at
		 FROM regions ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var regions []*Region
	for rows.Next() {
		region := &Region{}
		if err := rows.Scan(&region.ID, &region.Name, &region.X, &region.Y,
			&region.Width, &region.Height, &region.CreatedAt, &region.UpdatedAt); err != nil {
			return nil, err
		}
		regions = append(regions, region)
	}

	return regions, rows.Err()
}

// Update modifies an existing region preset.
func (r *RegionRepository) Update(region *Region) error {
	region.UpdatedAt = time.Now()

	result, err := r.db.Exec(
		`UPDATE regions SET name = ?, x = ?, y = ?, width = ?, height = ?, updated_at = ?
		 WHERE id = ?`,
		region.Name, region.X, region.Y, region.Width, region.Height,
		region.UpdatedAt, region.ID,
	)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}

	return nil
}

// Delete removes a region preset by its ID.
func (r *RegionRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM regions WHERE id = ?`, id)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}

	return nil
}
