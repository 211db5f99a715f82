package repository

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/Dan9191/calc-hub/internal/models"
)

func TestMemoryStore(t *testing.T) {
	testStore(t, NewMemory())
}

func TestSQLiteStore(t *testing.T) {
	store, db, err := Open(context.Background(), "sqlite", "file::memory:?cache=shared")
	if err != nil {
		t.Skipf("sqlite unavailable: %v", err)
	}
	defer db.Close()
	testStore(t, store)
}

func TestRebind(t *testing.T) {
	pg := NewRepository(nil, Postgres)
	if got := pg.rebind("a = ? AND b = ?"); got != "a = $1 AND b = $2" {
		t.Errorf("postgres rebind = %q", got)
	}
	lite := NewRepository(nil, SQLite)
	if got := lite.rebind("a = ?"); got != "a = ?" {
		t.Errorf("sqlite rebind = %q", got)
	}
}

func TestOpenUnknownDriver(t *testing.T) {
	if _, _, err := Open(context.Background(), "mongo", ""); err == nil {
		t.Error("expected error for unknown driver")
	}
}

func testStore(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	user := &models.User{Email: "admin@example.com", PasswordHash: "hash"}
	if err := s.CreateUser(ctx, user); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if user.ID == 0 {
		t.Error("CreateUser should assign an id")
	}
	found, err := s.FindUserByEmail(ctx, "admin@example.com")
	if err != nil || found.ID != user.ID || found.PasswordHash != "hash" {
		t.Fatalf("FindUserByEmail = %+v, %v", found, err)
	}
	if _, err := s.FindUserByEmail(ctx, "nobody@example.com"); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing user error = %v, want ErrNotFound", err)
	}

	first := &models.ContentItem{ID: "a", Kind: models.KindGames, Data: json.RawMessage(`{"title":"Dice","path":"/dice"}`)}
	second := &models.ContentItem{ID: "b", Kind: models.KindGames, Data: json.RawMessage(`{"title":"Coin","path":"/coin"}`)}
	other := &models.ContentItem{ID: "c", Kind: models.KindSubnav, Data: json.RawMessage(`{"label":"Odds","path":"/odds"}`)}
	for _, it := range []*models.ContentItem{first, second, other} {
		if err := s.AddContent(ctx, it); err != nil {
			t.Fatalf("AddContent(%s): %v", it.ID, err)
		}
	}
	if first.Position != 1 || second.Position != 2 || other.Position != 1 {
		t.Errorf("positions = %d, %d, %d; want 1, 2, 1", first.Position, second.Position, other.Position)
	}

	games, err := s.ListContent(ctx, models.KindGames)
	if err != nil {
		t.Fatalf("ListContent: %v", err)
	}
	if len(games) != 2 || games[0].ID != "a" || games[1].ID != "b" {
		t.Fatalf("ListContent = %+v", games)
	}

	second.Position = 0
	second.Data = json.RawMessage(`{"title":"Coin flip","path":"/coin"}`)
	if err := s.UpdateContent(ctx, second); err != nil {
		t.Fatalf("UpdateContent: %v", err)
	}
	if second.Position != 2 {
		t.Errorf("zero position on update should keep 2, got %d", second.Position)
	}
	got, err := s.GetContent(ctx, models.KindGames, "b")
	if err != nil {
		t.Fatalf("GetContent: %v", err)
	}
	if string(got.Data) != `{"title":"Coin flip","path":"/coin"}` {
		t.Errorf("updated data = %s", got.Data)
	}

	missing := &models.ContentItem{ID: "zzz", Kind: models.KindGames, Data: json.RawMessage(`{}`)}
	if err := s.UpdateContent(ctx, missing); !errors.Is(err, ErrNotFound) {
		t.Errorf("update missing = %v, want ErrNotFound", err)
	}
	if _, err := s.GetContent(ctx, models.KindSubnav, "a"); !errors.Is(err, ErrNotFound) {
		t.Errorf("get with wrong kind = %v, want ErrNotFound", err)
	}

	if err := s.RemoveContent(ctx, models.KindGames, "a"); err != nil {
		t.Fatalf("RemoveContent: %v", err)
	}
	if err := s.RemoveContent(ctx, models.KindGames, "a"); !errors.Is(err, ErrNotFound) {
		t.Errorf("second remove = %v, want ErrNotFound", err)
	}
	games, _ = s.ListContent(ctx, models.KindGames)
	if len(games) != 1 {
		t.Errorf("after remove len = %d, want 1", len(games))
	}
}
