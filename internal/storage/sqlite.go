package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/labstack/gommon/log"
	_ "modernc.org/sqlite"

	"winedash/internal/models"
)

const schema = `CREATE TABLE IF NOT EXISTS wines (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	points      INTEGER NOT NULL,
	price       REAL    NOT NULL,
	province    TEXT    NOT NULL,
	variety     TEXT    NOT NULL,
	designation TEXT    NOT NULL
)`

// Open opens (and creates if needed) a wines database.
func Open(ctx context.Context, path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return db, nil
}

// Seed replaces the contents of the wines table.
func Seed(ctx context.Context, db *sql.DB, wines []models.Wine) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM wines`); err != nil {
		return err
	}
	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO wines (points, price, province, variety, designation) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, w := range wines {
		if _, err := stmt.ExecContext(ctx, w.Points, w.Price, w.Province, w.Variety, w.Designation); err != nil {
			return fmt.Errorf("insert %+v: %w", w, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	log.Infof("Seeded %d wines", len(wines))
	return nil
}

// SQLiteSource loads the wines table in insertion order.
type SQLiteSource struct {
	Path string
}

func (s SQLiteSource) Load(ctx context.Context) ([]models.Wine, error) {
	db, err := Open(ctx, s.Path)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx,
		`SELECT points, price, province, variety, designation FROM wines ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var wines []models.Wine
	for rows.Next() {
		var w models.Wine
		if err := rows.Scan(&w.Points, &w.Price, &w.Province, &w.Variety, &w.Designation); err != nil {
			return nil, err
		}
		wines = append(wines, w)
	}
	return wines, rows.Err()
}
