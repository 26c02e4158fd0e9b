package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/hvaldez/gamestore/internal/apperror"
	"github.com/hvaldez/gamestore/internal/model"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := New(":memory:")
	if err != nil {
		t.Fatalf("New(\":memory:\"): %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func createTestUser(t *testing.T, db *DB, email string) *model.User {
	t.Helper()
	u := &model.User{
		Email:        email,
		PasswordHash: "$2a$04$fakehash",
		UserName:     "tester",
		Active:       true,
	}
	if err := db.CreateUser(context.Background(), u); err != nil {
		t.Fatalf("CreateUser(%s): %v", email, err)
	}
	return u
}

func TestCreateUser_AssignsIDAndTimestamps(t *testing.T) {
	db := newTestDB(t)

	u := createTestUser(t, db, "a@x.com")
	if u.ID == "" {
		t.Error("CreateUser() did not assign an ID")
	}
	if u.CreatedAt.IsZero() || u.UpdatedAt.IsZero() {
		t.Error("CreateUser() did not set timestamps")
	}
}

func TestGetUserByID(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	want := createTestUser(t, db, "a@x.com")

	got, err := db.GetUserByID(ctx, want.ID)
	if err != nil {
		t.Fatalf("GetUserByID() error = %v", err)
	}
	if got.Email != want.Email || got.UserName != want.UserName || !got.Active {
		t.Errorf("GetUserByID() = %+v, want %+v", got, want)
	}

	_, err = db.GetUserByID(ctx, "no-such-id")
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("GetUserByID() missing user error = %v, want ErrNotFound", err)
	}
}

func TestGetUserByEmail(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	want := createTestUser(t, db, "a@x.com")
	createTestUser(t, db, "b@x.com")

	got, err := db.GetUserByEmail(ctx, "a@x.com")
	if err != nil {
		t.Fatalf("GetUserByEmail() error = %v", err)
	}
	if got.ID != want.ID {
		t.Errorf("GetUserByEmail() returned user %s, want %s", got.ID, want.ID)
	}

	_, err = db.GetUserByEmail(ctx, "nobody@x.com")
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("GetUserByEmail() missing user error = %v, want ErrNotFound", err)
	}
}

func TestUpdateUserProfile_SkipsEmptyFields(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	u := createTestUser(t, db, "a@x.com")

	if err := db.UpdateUserProfile(ctx, u.ID, "newname", ""); err != nil {
		t.Fatalf("UpdateUserProfile() error = %v", err)
	}

	got, err := db.GetUserByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("GetUserByID() error = %v", err)
	}
	if got.UserName != "newname" {
		t.Errorf("userName = %q, want %q", got.UserName, "newname")
	}
	if got.ProfileImg != u.ProfileImg {
		t.Errorf("profileImg changed to %q, should be untouched", got.ProfileImg)
	}
}

func TestUpdateUserProfile_MissingUser(t *testing.T) {
	db := newTestDB(t)

	err := db.UpdateUserProfile(context.Background(), "no-such-id", "name", "")
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Fatalf("UpdateUserProfile() error = %v, want ErrNotFound", err)
	}
}

func TestSessionTokens_AppendKeepsOrderAndDuplicates(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	u := createTestUser(t, db, "a@x.com")

	// Deliberately append the same value twice
	for _, token := range []string{"tok-1", "tok-2", "tok-1"} {
		if err := db.AppendSessionToken(ctx, u.ID, token); err != nil {
			t.Fatalf("AppendSessionToken(%s): %v", token, err)
		}
	}

	got, err := db.ListSessionTokens(ctx, u.ID)
	if err != nil {
		t.Fatalf("ListSessionTokens() error = %v", err)
	}
	want := []string{"tok-1", "tok-2", "tok-1"}
	if len(got) != len(want) {
		t.Fatalf("ListSessionTokens() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestSessionTokenExists(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	u := createTestUser(t, db, "a@x.com")
	other := createTestUser(t, db, "b@x.com")

	if err := db.AppendSessionToken(ctx, u.ID, "tok-1"); err != nil {
		t.Fatalf("AppendSessionToken(): %v", err)
	}

	exists, err := db.SessionTokenExists(ctx, u.ID, "tok-1")
	if err != nil {
		t.Fatalf("SessionTokenExists() error = %v", err)
	}
	if !exists {
		t.Error("SessionTokenExists() = false for a stored token")
	}

	// Another user's list does not contain it
	exists, err = db.SessionTokenExists(ctx, other.ID, "tok-1")
	if err != nil {
		t.Fatalf("SessionTokenExists() error = %v", err)
	}
	if exists {
		t.Error("SessionTokenExists() = true for another user's token")
	}
}

func TestRemoveSessionToken_DeletesEveryCopy(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	u := createTestUser(t, db, "a@x.com")

	for _, token := range []string{"tok-1", "tok-2", "tok-1"} {
		if err := db.AppendSessionToken(ctx, u.ID, token); err != nil {
			t.Fatalf("AppendSessionToken(%s): %v", token, err)
		}
	}

	if err := db.RemoveSessionToken(ctx, u.ID, "tok-1"); err != nil {
		t.Fatalf("RemoveSessionToken() error = %v", err)
	}

	got, err := db.ListSessionTokens(ctx, u.ID)
	if err != nil {
		t.Fatalf("ListSessionTokens() error = %v", err)
	}
	if len(got) != 1 || got[0] != "tok-2" {
		t.Errorf("ListSessionTokens() = %v, want [tok-2]", got)
	}
}

func TestRemoveSessionToken_AbsentValueIsNoop(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	u := createTestUser(t, db, "a@x.com")

	if err := db.RemoveSessionToken(ctx, u.ID, "never-stored"); err != nil {
		t.Fatalf("RemoveSessionToken() absent token error = %v", err)
	}
}
