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

var _ repository.GameRepository = (*DB)(nil)

const gameColumns = `id, title, description, developer, category, price, cover_img, discount, active, created_at, updated_at`

func scanGame(row interface{ Scan(...any) error }, g *model.Game) error {
	return row.Scan(
		&g.ID,
		&g.Title,
		&g.Description,
		&g.Developer,
		&g.Category,
		&g.Price,
		&g.CoverImg,
		&g.Discount,
		&g.Active,
		&g.CreatedAt,
		&g.UpdatedAt,
	)
}

// CreateGame inserts a new game, assigning its ID and timestamps.
func (db *DB) CreateGame(ctx context.Context, game *model.Game) error {
	now := time.Now()
	game.ID = xid.New().String()
	game.CreatedAt = now
	game.UpdatedAt = now

	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO games (`+gameColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		game.ID,
		game.Title,
		game.Description,
		game.Developer,
		game.Category,
		game.Price,
		game.CoverImg,
		game.Discount,
		game.Active,
		game.CreatedAt,
		game.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: inserting game: %w", err)
	}
	return nil
}

// GetGameByID retrieves a game. Returns apperror.ErrNotFound when absent.
func (db *DB) GetGameByID(ctx context.Context, id string) (*model.Game, error) {
	var g model.Game
	err := scanGame(db.conn.QueryRowContext(ctx,
		`SELECT `+gameColumns+` FROM games WHERE id = ?`, id,
	), &g)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("game", id)
		}
		return nil, fmt.Errorf("sqlite: getting game %s: %w", id, err)
	}
	return &g, nil
}

// ListGames returns every game, oldest first.
func (db *DB) ListGames(ctx context.Context) ([]model.Game, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT `+gameColumns+` FROM games ORDER BY created_at`,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing games: %w", err)
	}
	defer rows.Close()

	games := []model.Game{}
	for rows.Next() {
		var g model.Game
		if err := scanGame(rows, &g); err != nil {
			return nil, fmt.Errorf("sqlite: scanning game: %w", err)
		}
		games = append(games, g)
	}
	return games, rows.Err()
}

// UpdateGame applies the non-nil fields of upd and returns the updated record.
func (db *DB) UpdateGame(ctx context.Context, id string, upd repository.GameUpdate) (*model.Game, error) {
	sets := []string{"updated_at = ?"}
	args := []any{time.Now()}

	set := func(column string, value any) {
		sets = append(sets, column+" = ?")
		args = append(args, value)
	}
	if upd.Title != nil {
		set("title", *upd.Title)
	}
	if upd.Description != nil {
		set("description", *upd.Description)
	}
	if upd.Developer != nil {
		set("developer", *upd.Developer)
	}
	if upd.Category != nil {
		set("category", *upd.Category)
	}
	if upd.Price != nil {
		set("price", *upd.Price)
	}
	if upd.CoverImg != nil {
		set("cover_img", *upd.CoverImg)
	}
	if upd.Discount != nil {
		set("discount", *upd.Discount)
	}
	if upd.Active != nil {
		set("active", *upd.Active)
	}
	args = append(args, id)

	res, err := db.conn.ExecContext(ctx,
		`UPDATE games SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: updating game %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, apperror.NotFound("game", id)
	}

	return db.GetGameByID(ctx, id)
}

// DeleteGame removes a game permanently.
func (db *DB) DeleteGame(ctx context.Context, id string) error {
	_, err := db.conn.ExecContext(ctx, `DELETE FROM games WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("sqlite: deleting game %s: %w", id, err)
	}
	return nil
}
