package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/hvaldez/gamestore/internal/apperror"
	"github.com/hvaldez/gamestore/internal/model"
	"github.com/hvaldez/gamestore/internal/repository"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// --- game fakes ---

type fakeGameRepo struct {
	games  map[string]*model.Game
	order  []string
	nextID int
}

func newFakeGameRepo() *fakeGameRepo {
	return &fakeGameRepo{games: make(map[string]*model.Game), nextID: 1}
}

func (f *fakeGameRepo) CreateGame(_ context.Context, game *model.Game) error {
	game.ID = fmt.Sprintf("game-%d", f.nextID)
	f.nextID++
	game.CreatedAt = time.Now()
	game.UpdatedAt = game.CreatedAt
	copied := *game
	f.games[game.ID] = &copied
	f.order = append(f.order, game.ID)
	return nil
}

func (f *fakeGameRepo) GetGameByID(_ context.Context, id string) (*model.Game, error) {
	g, ok := f.games[id]
	if !ok {
		return nil, apperror.NotFound("game", id)
	}
	return g, nil
}

func (f *fakeGameRepo) ListGames(_ context.Context) ([]model.Game, error) {
	out := []model.Game{}
	for _, id := range f.order {
		out = append(out, *f.games[id])
	}
	return out, nil
}

func (f *fakeGameRepo) UpdateGame(_ context.Context, id string, upd repository.GameUpdate) (*model.Game, error) {
	g, ok := f.games[id]
	if !ok {
		return nil, apperror.NotFound("game", id)
	}
	if upd.Title != nil {
		g.Title = *upd.Title
	}
	if upd.Description != nil {
		g.Description = *upd.Description
	}
	if upd.Developer != nil {
		g.Developer = *upd.Developer
	}
	if upd.Category != nil {
		g.Category = *upd.Category
	}
	if upd.Price != nil {
		g.Price = *upd.Price
	}
	if upd.CoverImg != nil {
		g.CoverImg = *upd.CoverImg
	}
	if upd.Discount != nil {
		g.Discount = *upd.Discount
	}
	if upd.Active != nil {
		g.Active = *upd.Active
	}
	return g, nil
}

func (f *fakeGameRepo) DeleteGame(_ context.Context, id string) error {
	delete(f.games, id)
	for i, gid := range f.order {
		if gid == id {
			f.order = append(f.order[:i], f.order[i+1:]...)
			break
		}
	}
	return nil
}

// --- game tests ---

func TestGameCreate_Validation(t *testing.T) {
	svc := NewGameService(newFakeGameRepo(), discardLogger())
	ctx := context.Background()

	cases := []struct {
		name string
		in   GameInput
	}{
		{"missing title", GameInput{Price: 10}},
		{"blank title", GameInput{Title: "   "}},
		{"negative price", GameInput{Title: "ok", Price: -1}},
		{"discount above 1", GameInput{Title: "ok", Discount: 1.5}},
		{"negative discount", GameInput{Title: "ok", Discount: -0.1}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Create(ctx, tc.in); !errors.Is(err, apperror.ErrValidation) {
				t.Errorf("Create() error = %v, want ErrValidation", err)
			}
		})
	}
}

func TestGameCreate_DefaultsActive(t *testing.T) {
	svc := NewGameService(newFakeGameRepo(), discardLogger())

	game, err := svc.Create(context.Background(), GameInput{
		Title:    "Juego Test",
		Category: "MMO",
		Price:    15,
		Discount: 0.10,
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if game.ID == "" {
		t.Error("Create() game has no ID")
	}
	if !game.Active {
		t.Error("active should default to true")
	}
}

func TestGameSearch_CaseInsensitiveSubstring(t *testing.T) {
	repo := newFakeGameRepo()
	svc := NewGameService(repo, discardLogger())
	ctx := context.Background()

	for _, title := range []string{"Elden Ring", "Hades", "Stardew Valley"} {
		if _, err := svc.Create(ctx, GameInput{Title: title, Price: 10}); err != nil {
			t.Fatalf("Create(%q) error = %v", title, err)
		}
	}

	// "A" matches Hades and Stardew Valley but not Elden Ring
	got, err := svc.Search(ctx, "A")
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Search() returned %d games, want 2", len(got))
	}

	// Empty result is not an error for games
	none, err := svc.Search(ctx, "zzz")
	if err != nil {
		t.Fatalf("Search() with no matches error = %v", err)
	}
	if len(none) != 0 {
		t.Errorf("Search() = %v, want empty", none)
	}
}

func TestGameSearch_RequiresTitle(t *testing.T) {
	svc := NewGameService(newFakeGameRepo(), discardLogger())

	if _, err := svc.Search(context.Background(), ""); !errors.Is(err, apperror.ErrValidation) {
		t.Errorf("Search(\"\") error = %v, want ErrValidation", err)
	}
}

func TestGameUpdate_PartialValidation(t *testing.T) {
	repo := newFakeGameRepo()
	svc := NewGameService(repo, discardLogger())
	ctx := context.Background()

	game, err := svc.Create(ctx, GameInput{Title: "Original", Price: 20})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	blank := "  "
	if _, err := svc.Update(ctx, game.ID, repository.GameUpdate{Title: &blank}); !errors.Is(err, apperror.ErrValidation) {
		t.Errorf("Update() blank title error = %v, want ErrValidation", err)
	}

	price := 25.0
	developer := "New Studio"
	updated, err := svc.Update(ctx, game.ID, repository.GameUpdate{Price: &price, Developer: &developer})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if updated.Price != 25 || updated.Developer != "New Studio" {
		t.Errorf("Update() = %+v, want price and developer changed", updated)
	}
	if updated.Title != "Original" {
		t.Errorf("Update() changed title to %q, should be untouched", updated.Title)
	}
}

// --- category fakes ---

type fakeCategoryRepo struct {
	categories map[string]*model.Category
	order      []string
	nextID     int
}

func newFakeCategoryRepo() *fakeCategoryRepo {
	return &fakeCategoryRepo{categories: make(map[string]*model.Category), nextID: 1}
}

func (f *fakeCategoryRepo) CreateCategory(_ context.Context, c *model.Category) error {
	c.ID = fmt.Sprintf("cat-%d", f.nextID)
	f.nextID++
	copied := *c
	f.categories[c.ID] = &copied
	f.order = append(f.order, c.ID)
	return nil
}

func (f *fakeCategoryRepo) GetCategoryByID(_ context.Context, id string) (*model.Category, error) {
	c, ok := f.categories[id]
	if !ok {
		return nil, apperror.NotFound("category", id)
	}
	return c, nil
}

func (f *fakeCategoryRepo) GetCategoryByTitle(_ context.Context, title string) (*model.Category, error) {
	for _, c := range f.categories {
		if c.Title == title {
			return c, nil
		}
	}
	return nil, apperror.NotFound("category", title)
}

func (f *fakeCategoryRepo) ListCategories(_ context.Context) ([]model.Category, error) {
	out := []model.Category{}
	for _, id := range f.order {
		out = append(out, *f.categories[id])
	}
	return out, nil
}

func (f *fakeCategoryRepo) UpdateCategory(_ context.Context, id string, upd repository.CatalogUpdate) (*model.Category, error) {
	c, ok := f.categories[id]
	if !ok {
		return nil, apperror.NotFound("category", id)
	}
	if upd.Title != nil {
		c.Title = *upd.Title
	}
	if upd.Description != nil {
		c.Description = *upd.Description
	}
	if upd.Active != nil {
		c.Active = *upd.Active
	}
	return c, nil
}

func (f *fakeCategoryRepo) DeleteCategory(_ context.Context, id string) error {
	delete(f.categories, id)
	return nil
}

// --- category tests ---

func TestCategoryCreate_TrimsAndDefaults(t *testing.T) {
	svc := NewCategoryService(newFakeCategoryRepo(), discardLogger())

	c, err := svc.Create(context.Background(), "  MMO  ", "  massive  ", nil)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if c.Title != "MMO" || c.Description != "massive" {
		t.Errorf("Create() = %+v, want trimmed fields", c)
	}
	if !c.Active {
		t.Error("active should default to true")
	}
}

func TestCategoryCreate_DuplicateTitle(t *testing.T) {
	svc := NewCategoryService(newFakeCategoryRepo(), discardLogger())
	ctx := context.Background()

	if _, err := svc.Create(ctx, "MMO", "", nil); err != nil {
		t.Fatalf("first Create() error = %v", err)
	}
	// Same title after trimming collides
	_, err := svc.Create(ctx, " MMO ", "different description", nil)
	if !errors.Is(err, apperror.ErrConflict) {
		t.Fatalf("duplicate Create() error = %v, want ErrConflict", err)
	}
}

func TestCategorySearch_NoMatchIsNotFound(t *testing.T) {
	svc := NewCategoryService(newFakeCategoryRepo(), discardLogger())
	ctx := context.Background()

	if _, err := svc.Create(ctx, "RPG", "", nil); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	got, err := svc.Search(ctx, "rp")
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("Search() returned %d categories, want 1", len(got))
	}

	// Unlike games, zero matches is a not-found error here
	if _, err := svc.Search(ctx, "zzz"); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("Search() no-match error = %v, want ErrNotFound", err)
	}
	if _, err := svc.Search(ctx, ""); !errors.Is(err, apperror.ErrValidation) {
		t.Errorf("Search(\"\") error = %v, want ErrValidation", err)
	}
}

func TestCategoryDelete_ReturnsRemovedRecord(t *testing.T) {
	repo := newFakeCategoryRepo()
	svc := NewCategoryService(repo, discardLogger())
	ctx := context.Background()

	c, err := svc.Create(ctx, "Indie", "", nil)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	deleted, err := svc.Delete(ctx, c.ID)
	if err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if deleted.Title != "Indie" {
		t.Errorf("Delete() returned %+v, want the removed category", deleted)
	}
	if _, err := svc.Delete(ctx, c.ID); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("second Delete() error = %v, want ErrNotFound", err)
	}
}

// --- platform fakes ---

type fakePlatformRepo struct {
	platforms map[string]*model.Platform
	order     []string
	nextID    int
}

func newFakePlatformRepo() *fakePlatformRepo {
	return &fakePlatformRepo{platforms: make(map[string]*model.Platform), nextID: 1}
}

func (f *fakePlatformRepo) CreatePlatform(_ context.Context, p *model.Platform) error {
	p.ID = fmt.Sprintf("plat-%d", f.nextID)
	f.nextID++
	copied := *p
	f.platforms[p.ID] = &copied
	f.order = append(f.order, p.ID)
	return nil
}

func (f *fakePlatformRepo) GetPlatformByID(_ context.Context, id string) (*model.Platform, error) {
	p, ok := f.platforms[id]
	if !ok {
		return nil, apperror.NotFound("platform", id)
	}
	return p, nil
}

func (f *fakePlatformRepo) GetPlatformByTitle(_ context.Context, title string) (*model.Platform, error) {
	for _, p := range f.platforms {
		if p.Title == title {
			return p, nil
		}
	}
	return nil, apperror.NotFound("platform", title)
}

func (f *fakePlatformRepo) ListPlatforms(_ context.Context) ([]model.Platform, error) {
	out := []model.Platform{}
	for _, id := range f.order {
		out = append(out, *f.platforms[id])
	}
	return out, nil
}

func (f *fakePlatformRepo) UpdatePlatform(_ context.Context, id string, upd repository.CatalogUpdate) (*model.Platform, error) {
	p, ok := f.platforms[id]
	if !ok {
		return nil, apperror.NotFound("platform", id)
	}
	if upd.Title != nil {
		p.Title = *upd.Title
	}
	if upd.Description != nil {
		p.Description = *upd.Description
	}
	if upd.Active != nil {
		p.Active = *upd.Active
	}
	return p, nil
}

// --- platform tests ---

func TestPlatformSearch_HidesInactive(t *testing.T) {
	repo := newFakePlatformRepo()
	svc := NewPlatformService(repo, discardLogger())
	ctx := context.Background()

	pc, err := svc.Create(ctx, "PC", "", nil)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if _, err := svc.Create(ctx, "PS5 Pro", "", nil); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if _, err := svc.Deactivate(ctx, pc.ID); err != nil {
		t.Fatalf("Deactivate() error = %v", err)
	}

	got, err := svc.Search(ctx, "p")
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(got) != 1 || got[0].Title != "PS5 Pro" {
		t.Errorf("Search() = %v, want only the active platform", got)
	}

	// List still shows everything
	all, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(all) != 2 {
		t.Errorf("List() returned %d platforms, want 2", len(all))
	}
}

func TestPlatformDeactivate_SoftDelete(t *testing.T) {
	repo := newFakePlatformRepo()
	svc := NewPlatformService(repo, discardLogger())
	ctx := context.Background()

	p, err := svc.Create(ctx, "Switch", "", nil)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	got, err := svc.Deactivate(ctx, p.ID)
	if err != nil {
		t.Fatalf("Deactivate() error = %v", err)
	}
	if got.Active {
		t.Error("Deactivate() should clear the active flag")
	}

	// The record survives; deactivation is repeatable
	if _, err := svc.Deactivate(ctx, p.ID); err != nil {
		t.Errorf("second Deactivate() error = %v", err)
	}
}

func TestPlatformUpdate_RequiresAField(t *testing.T) {
	svc := NewPlatformService(newFakePlatformRepo(), discardLogger())

	_, err := svc.Update(context.Background(), "plat-1", repository.CatalogUpdate{})
	if !errors.Is(err, apperror.ErrValidation) {
		t.Fatalf("Update() with no fields error = %v, want ErrValidation", err)
	}
}

func TestPlatformCreate_DuplicateTitle(t *testing.T) {
	svc := NewPlatformService(newFakePlatformRepo(), discardLogger())
	ctx := context.Background()

	if _, err := svc.Create(ctx, "PC", "", nil); err != nil {
		t.Fatalf("first Create() error = %v", err)
	}
	if _, err := svc.Create(ctx, "PC", "", nil); !errors.Is(err, apperror.ErrConflict) {
		t.Errorf("duplicate Create() error = %v, want ErrConflict", err)
	}
}
