package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/rs/xid"

	"github.com/hvaldez/gamestore/internal/apperror"
	"github.com/hvaldez/gamestore/internal/model"
	"github.com/hvaldez/gamestore/internal/repository"
)

// Categories and platforms have identical storage shapes, so both interfaces
// share the row helpers below. They stay separate tables (and separate
// interfaces) because their delete semantics differ: categories are removed,
// platforms are deactivated.
var (
	_ repository.CategoryRepository = (*DB)(nil)
	_ repository.PlatformRepository = (*DB)(nil)
)

type catalogRow struct {
	id          string
	title       string
	description string
	active      bool
	createdAt   time.Time
	updatedAt   time.Time
}

func (db *DB) insertCatalogRow(ctx context.Context, table string, row *catalogRow) error {
	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO `+table+` (id, title, description, active, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		row.id, row.title, row.description, row.active, row.createdAt, row.updatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: inserting into %s: %w", table, err)
	}
	return nil
}

func (db *DB) getCatalogRow(ctx context.Context, table, where string, arg any) (*catalogRow, error) {
	var row catalogRow
	err := db.conn.QueryRowContext(ctx,
		`SELECT id, title, description, active, created_at, updated_at FROM `+table+` `+where,
		arg,
	).Scan(&row.id, &row.title, &row.description, &row.active, &row.createdAt, &row.updatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound(strings.TrimSuffix(table, "s"), fmt.Sprint(arg))
		}
		return nil, fmt.Errorf("sqlite: getting row from %s: %w", table, err)
	}
	return &row, nil
}

func (db *DB) listCatalogRows(ctx context.Context, table string) ([]catalogRow, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, title, description, active, created_at, updated_at FROM `+table+` ORDER BY created_at`,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing %s: %w", table, err)
	}
	defer rows.Close()

	var out []catalogRow
	for rows.Next() {
		var row catalogRow
		if err := rows.Scan(&row.id, &row.title, &row.description, &row.active, &row.createdAt, &row.updatedAt); err != nil {
			return nil, fmt.Errorf("sqlite: scanning %s row: %w", table, err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func (db *DB) updateCatalogRow(ctx context.Context, table, id string, upd repository.CatalogUpdate) (*catalogRow, error) {
	sets := []string{"updated_at = ?"}
	args := []any{time.Now()}

	if upd.Title != nil {
		sets = append(sets, "title = ?")
		args = append(args, *upd.Title)
	}
	if upd.Description != nil {
		sets = append(sets, "description = ?")
		args = append(args, *upd.Description)
	}
	if upd.Active != nil {
		sets = append(sets, "active = ?")
		args = append(args, *upd.Active)
	}
	args = append(args, id)

	res, err := db.conn.ExecContext(ctx,
		`UPDATE `+table+` SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: updating %s %s: %w", table, id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, apperror.NotFound(strings.TrimSuffix(table, "s"), id)
	}

	return db.getCatalogRow(ctx, table, `WHERE id = ?`, id)
}

// --- categories ---

// CreateCategory inserts a new category, assigning its ID and timestamps.
func (db *DB) CreateCategory(ctx context.Context, category *model.Category) error {
	now := time.Now()
	category.ID = xid.New().String()
	category.CreatedAt = now
	category.UpdatedAt = now
	return db.insertCatalogRow(ctx, "categories", &catalogRow{
		id:          category.ID,
		title:       category.Title,
		description: category.Description,
		active:      category.Active,
		createdAt:   category.CreatedAt,
		updatedAt:   category.UpdatedAt,
	})
}

func (db *DB) GetCategoryByID(ctx context.Context, id string) (*model.Category, error) {
	row, err := db.getCatalogRow(ctx, "categories", `WHERE id = ?`, id)
	if err != nil {
		return nil, err
	}
	return categoryFromRow(row), nil
}

// GetCategoryByTitle does an exact-title lookup, used for the uniqueness
// pre-check on create.
func (db *DB) GetCategoryByTitle(ctx context.Context, title string) (*model.Category, error) {
	row, err := db.getCatalogRow(ctx, "categories", `WHERE title = ? LIMIT 1`, title)
	if err != nil {
		return nil, err
	}
	return categoryFromRow(row), nil
}

func (db *DB) ListCategories(ctx context.Context) ([]model.Category, error) {
	rows, err := db.listCatalogRows(ctx, "categories")
	if err != nil {
		return nil, err
	}
	categories := []model.Category{}
	for i := range rows {
		categories = append(categories, *categoryFromRow(&rows[i]))
	}
	return categories, nil
}

func (db *DB) UpdateCategory(ctx context.Context, id string, upd repository.CatalogUpdate) (*model.Category, error) {
	row, err := db.updateCatalogRow(ctx, "categories", id, upd)
	if err != nil {
		return nil, err
	}
	return categoryFromRow(row), nil
}

// DeleteCategory removes a category permanently.
func (db *DB) DeleteCategory(ctx context.Context, id string) error {
	_, err := db.conn.ExecContext(ctx, `DELETE FROM categories WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("sqlite: deleting category %s: %w", id, err)
	}
	return nil
}

func categoryFromRow(row *catalogRow) *model.Category {
	return &model.Category{
		ID:          row.id,
		Title:       row.title,
		Description: row.description,
		Active:      row.active,
		CreatedAt:   row.createdAt,
		UpdatedAt:   row.updatedAt,
	}
}

// --- platforms ---

// CreatePlatform inserts a new platform, assigning its ID and timestamps.
func (db *DB) CreatePlatform(ctx context.Context, platform *model.Platform) error {
	now := time.Now()
	platform.ID = xid.New().String()
	platform.CreatedAt = now
	platform.UpdatedAt = now
	return db.insertCatalogRow(ctx, "platforms", &catalogRow{
		id:          platform.ID,
		title:       platform.Title,
		description: platform.Description,
		active:      platform.Active,
		createdAt:   platform.CreatedAt,
		updatedAt:   platform.UpdatedAt,
	})
}

func (db *DB) GetPlatformByID(ctx context.Context, id string) (*model.Platform, error) {
	row, err := db.getCatalogRow(ctx, "platforms", `WHERE id = ?`, id)
	if err != nil {
		return nil, err
	}
	return platformFromRow(row), nil
}

func (db *DB) GetPlatformByTitle(ctx context.Context, title string) (*model.Platform, error) {
	row, err := db.getCatalogRow(ctx, "platforms", `WHERE title = ? LIMIT 1`, title)
	if err != nil {
		return nil, err
	}
	return platformFromRow(row), nil
}

func (db *DB) ListPlatforms(ctx context.Context) ([]model.Platform, error) {
	rows, err := db.listCatalogRows(ctx, "platforms")
	if err != nil {
		return nil, err
	}
	platforms := []model.Platform{}
	for i := range rows {
		platforms = append(platforms, *platformFromRow(&rows[i]))
	}
	return platforms, nil
}

func (db *DB) UpdatePlatform(ctx context.Context, id string, upd repository.CatalogUpdate) (*model.Platform, error) {
	row, err := db.updateCatalogRow(ctx, "platforms", id, upd)
	if err != nil {
		return nil, err
	}
	return platformFromRow(row), nil
}

func platformFromRow(row *catalogRow) *model.Platform {
	return &model.Platform{
		ID:          row.id,
		Title:       row.title,
		Description: row.description,
		Active:      row.active,
		CreatedAt:   row.createdAt,
		UpdatedAt:   row.updatedAt,
	}
}
