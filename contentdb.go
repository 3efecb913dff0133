package carmuseum

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// ContentDB is a SQLite content source. The API never writes to it; it is
// filled by the export-sqlite command and read once at startup.
type ContentDB struct {
	db *sql.DB
}

// OpenContentDB opens (or creates) the SQLite database at path, ensures the
// data directory exists, and creates the schema.
func OpenContentDB(path string) (*ContentDB, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
	`); err != nil {
		db.Close()
		return nil, err
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	s := &ContentDB{db: db}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *ContentDB) Close() error {
	return s.db.Close()
}

// Every table carries a position column so source order survives a round trip.
func (s *ContentDB) ensureSchema() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS news_categories (
    position INTEGER PRIMARY KEY,
    name TEXT NOT NULL UNIQUE
);
CREATE TABLE IF NOT EXISTS news_articles (
    position INTEGER PRIMARY KEY,
    id TEXT NOT NULL UNIQUE,
    category TEXT NOT NULL,
    title TEXT NOT NULL,
    summary TEXT NOT NULL,
    image TEXT NOT NULL,
    published_at TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS car_models (
    position INTEGER PRIMARY KEY,
    list TEXT NOT NULL CHECK (list IN ('featured', 'encyclopedia')),
    id TEXT NOT NULL UNIQUE,
    name TEXT NOT NULL,
    description TEXT NOT NULL,
    image TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS brands (
    position INTEGER PRIMARY KEY,
    id TEXT NOT NULL UNIQUE,
    name TEXT NOT NULL,
    image TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS quick_links (
    position INTEGER PRIMARY KEY,
    id TEXT NOT NULL UNIQUE,
    label TEXT NOT NULL,
    icon TEXT NOT NULL,
    route TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS timeline_entries (
    position INTEGER PRIMARY KEY,
    id TEXT NOT NULL UNIQUE,
    title TEXT NOT NULL,
    period TEXT NOT NULL,
    image TEXT NOT NULL,
    description TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS restoration_projects (
    position INTEGER PRIMARY KEY,
    id TEXT NOT NULL UNIQUE,
    title TEXT NOT NULL,
    description TEXT NOT NULL,
    image TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS garage_vehicles (
    position INTEGER PRIMARY KEY,
    id TEXT NOT NULL UNIQUE,
    name TEXT NOT NULL,
    year TEXT NOT NULL,
    image TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS dealerships (
    position INTEGER PRIMARY KEY,
    id TEXT NOT NULL UNIQUE,
    name TEXT NOT NULL,
    address TEXT NOT NULL,
    image TEXT NOT NULL,
    latitude REAL NOT NULL,
    longitude REAL NOT NULL
);
`)
	return err
}

// contentTables lists every table in dependency-free delete order.
var contentTables = []string{
	"news_categories",
	"news_articles",
	"car_models",
	"brands",
	"quick_links",
	"timeline_entries",
	"restoration_projects",
	"garage_vehicles",
	"dealerships",
}

// ReplaceDataset swaps the stored content for d in a single transaction.
func (s *ContentDB) ReplaceDataset(ctx context.Context, d Dataset) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, table := range contentTables {
		if _, err := tx.ExecContext(ctx, `DELETE FROM `+table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	insert := func(query string, args ...any) error {
		_, err := tx.ExecContext(ctx, query, args...)
		return err
	}

	for i, c := range d.NewsCategories {
		if err := insert(`INSERT INTO news_categories (position, name) VALUES (?, ?)`, i, c); err != nil {
			return fmt.Errorf("insert category %q: %w", c, err)
		}
	}
	for i, a := range d.NewsArticles {
		if err := insert(`INSERT INTO news_articles (position, id, category, title, summary, image, published_at) VALUES (?, ?, ?, ?, ?, ?, ?)`,
			i, a.ID, a.Category, a.Title, a.Summary, a.Image, a.PublishedAt); err != nil {
			return fmt.Errorf("insert article %s: %w", a.ID, err)
		}
	}
	pos := 0
	for _, list := range []struct {
		name   string
		models []CarModel
	}{
		{"featured", d.FeaturedModels},
		{"encyclopedia", d.EncyclopediaModels},
	} {
		for _, m := range list.models {
			if err := insert(`INSERT INTO car_models (position, list, id, name, description, image) VALUES (?, ?, ?, ?, ?, ?)`,
				pos, list.name, m.ID, m.Name, m.Description, m.Image); err != nil {
				return fmt.Errorf("insert model %s: %w", m.ID, err)
			}
			pos++
		}
	}
	for i, b := range d.Brands {
		if err := insert(`INSERT INTO brands (position, id, name, image) VALUES (?, ?, ?, ?)`,
			i, b.ID, b.Name, b.Image); err != nil {
			return fmt.Errorf("insert brand %s: %w", b.ID, err)
		}
	}
	for i, l := range d.QuickLinks {
		if err := insert(`INSERT INTO quick_links (position, id, label, icon, route) VALUES (?, ?, ?, ?, ?)`,
			i, l.ID, l.Label, l.Icon, l.Route); err != nil {
			return fmt.Errorf("insert quick link %s: %w", l.ID, err)
		}
	}
	for i, e := range d.TimelineEntries {
		if err := insert(`INSERT INTO timeline_entries (position, id, title, period, image, description) VALUES (?, ?, ?, ?, ?, ?)`,
			i, e.ID, e.Title, e.Period, e.Image, e.Description); err != nil {
			return fmt.Errorf("insert timeline entry %s: %w", e.ID, err)
		}
	}
	for i, p := range d.RestorationProjects {
		if err := insert(`INSERT INTO restoration_projects (position, id, title, description, image) VALUES (?, ?, ?, ?, ?)`,
			i, p.ID, p.Title, p.Description, p.Image); err != nil {
			return fmt.Errorf("insert project %s: %w", p.ID, err)
		}
	}
	for i, g := range d.GarageVehicles {
		if err := insert(`INSERT INTO garage_vehicles (position, id, name, year, image) VALUES (?, ?, ?, ?, ?)`,
			i, g.ID, g.Name, g.Year, g.Image); err != nil {
			return fmt.Errorf("insert garage vehicle %s: %w", g.ID, err)
		}
	}
	for i, dl := range d.Dealerships {
		if err := insert(`INSERT INTO dealerships (position, id, name, address, image, latitude, longitude) VALUES (?, ?, ?, ?, ?, ?, ?)`,
			i, dl.ID, dl.Name, dl.Address, dl.Image, dl.Latitude, dl.Longitude); err != nil {
			return fmt.Errorf("insert dealership %s: %w", dl.ID, err)
		}
	}
	return tx.Commit()
}

// LoadDataset reads every collection in stored order.
func (s *ContentDB) LoadDataset(ctx context.Context) (Dataset, error) {
	var d Dataset

	err := s.each(ctx, `SELECT name FROM news_categories ORDER BY position`, func(rows *sql.Rows) error {
		var c string
		if err := rows.Scan(&c); err != nil {
			return err
		}
		d.NewsCategories = append(d.NewsCategories, c)
		return nil
	})
	if err != nil {
		return Dataset{}, fmt.Errorf("load categories: %w", err)
	}

	err = s.each(ctx, `SELECT id, category, title, summary, image, published_at FROM news_articles ORDER BY position`, func(rows *sql.Rows) error {
		var a NewsArticle
		if err := rows.Scan(&a.ID, &a.Category, &a.Title, &a.Summary, &a.Image, &a.PublishedAt); err != nil {
			return err
		}
		d.NewsArticles = append(d.NewsArticles, a)
		return nil
	})
	if err != nil {
		return Dataset{}, fmt.Errorf("load articles: %w", err)
	}

	err = s.each(ctx, `SELECT list, id, name, description, image FROM car_models ORDER BY position`, func(rows *sql.Rows) error {
		var list string
		var m CarModel
		if err := rows.Scan(&list, &m.ID, &m.Name, &m.Description, &m.Image); err != nil {
			return err
		}
		if list == "featured" {
			d.FeaturedModels = append(d.FeaturedModels, m)
		} else {
			d.EncyclopediaModels = append(d.EncyclopediaModels, m)
		}
		return nil
	})
	if err != nil {
		return Dataset{}, fmt.Errorf("load models: %w", err)
	}

	err = s.each(ctx, `SELECT id, name, image FROM brands ORDER BY position`, func(rows *sql.Rows) error {
		var b Brand
		if err := rows.Scan(&b.ID, &b.Name, &b.Image); err != nil {
			return err
		}
		d.Brands = append(d.Brands, b)
		return nil
	})
	if err != nil {
		return Dataset{}, fmt.Errorf("load brands: %w", err)
	}

	err = s.each(ctx, `SELECT id, label, icon, route FROM quick_links ORDER BY position`, func(rows *sql.Rows) error {
		var l QuickLink
		if err := rows.Scan(&l.ID, &l.Label, &l.Icon, &l.Route); err != nil {
			return err
		}
		d.QuickLinks = append(d.QuickLinks, l)
		return nil
	})
	if err != nil {
		return Dataset{}, fmt.Errorf("load quick links: %w", err)
	}

	err = s.each(ctx, `SELECT id, title, period, image, description FROM timeline_entries ORDER BY position`, func(rows *sql.Rows) error {
		var e TimelineEntry
		if err := rows.Scan(&e.ID, &e.Title, &e.Period, &e.Image, &e.Description); err != nil {
			return err
		}
		d.TimelineEntries = append(d.TimelineEntries, e)
		return nil
	})
	if err != nil {
		return Dataset{}, fmt.Errorf("load timeline: %w", err)
	}

	err = s.each(ctx, `SELECT id, title, description, image FROM restoration_projects ORDER BY position`, func(rows *sql.Rows) error {
		var p RestorationProject
		if err := rows.Scan(&p.ID, &p.Title, &p.Description, &p.Image); err != nil {
			return err
		}
		d.RestorationProjects = append(d.RestorationProjects, p)
		return nil
	})
	if err != nil {
		return Dataset{}, fmt.Errorf("load projects: %w", err)
	}

	err = s.each(ctx, `SELECT id, name, year, image FROM garage_vehicles ORDER BY position`, func(rows *sql.Rows) error {
		var g GarageVehicle
		if err := rows.Scan(&g.ID, &g.Name, &g.Year, &g.Image); err != nil {
			return err
		}
		d.GarageVehicles = append(d.GarageVehicles, g)
		return nil
	})
	if err != nil {
		return Dataset{}, fmt.Errorf("load garage: %w", err)
	}

	err = s.each(ctx, `SELECT id, name, address, image, latitude, longitude FROM dealerships ORDER BY position`, func(rows *sql.Rows) error {
		var dl Dealership
		if err := rows.Scan(&dl.ID, &dl.Name, &dl.Address, &dl.Image, &dl.Latitude, &dl.Longitude); err != nil {
			return err
		}
		d.Dealerships = append(d.Dealerships, dl)
		return nil
	})
	if err != nil {
		return Dataset{}, fmt.Errorf("load dealerships: %w", err)
	}

	return d, nil
}

func (s *ContentDB) each(ctx context.Context, query string, scan func(*sql.Rows) error) error {
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		if err := scan(rows); err != nil {
			return err
		}
	}
	return rows.Err()
}

// ErrEmptyContentDB is returned by LoadContentDB when the database holds no
// news articles.
var ErrEmptyContentDB = errors.New("content db has no news articles")

// LoadContentDB reads the dataset of an existing database at path and builds
// a ContentStore from it. Unlike OpenContentDB it never creates the file.
func LoadContentDB(ctx context.Context, path string) (*ContentStore, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("content db: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("content db: %s is a directory", path)
	}
	db, err := OpenContentDB(path)
	if err != nil {
		return nil, fmt.Errorf("open content db: %w", err)
	}
	defer db.Close()
	d, err := db.LoadDataset(ctx)
	if err != nil {
		return nil, err
	}
	if len(d.NewsArticles) == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrEmptyContentDB)
	}
	return NewContentStore(d)
}
