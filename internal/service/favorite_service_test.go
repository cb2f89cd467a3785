package service

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/pizzeria-next/internal/constants"
	"github.com/pizzeria-next/internal/models"
	"github.com/pizzeria-next/internal/state"
	"github.com/pizzeria-next/internal/store"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupFavoriteServiceTest(t *testing.T) (*FavoriteService, *state.Manager) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.StoreEntry{}); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	s := store.NewStore(db)
	st := state.NewManager(s, state.NewBus())
	return NewFavoriteService(s, st), st
}

func TestFavoriteSaveListDelete(t *testing.T) {
	svc, st := setupFavoriteServiceTest(t)
	sid := "sess-1"

	var events int
	st.Bus().Subscribe(constants.TopicFavoritesChanged, func(state.Event) { events++ })

	saved, err := svc.Save(sid, SaveInput{
		Name: "My Pizza", Base: "Thin", Sauce: "Tomato", Cheese: "Mozzarella",
		Veggies: []string{"Onion", "Capsicum"},
	})
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if saved.Price.String() != "160.00" {
		t.Fatalf("recipe price want 160.00, got=%s", saved.Price)
	}
	if events != 1 {
		t.Fatalf("save must publish favorites change, events=%d", events)
	}

	list, err := svc.List(sid)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(list) != 1 || list[0].Name != "My Pizza" {
		t.Fatalf("unexpected list: %+v", list)
	}

	got, err := svc.Get(sid, "My Pizza")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.Base != "Thin" || len(got.Veggies) != 2 {
		t.Fatalf("unexpected recipe: %+v", got)
	}

	if err := svc.Delete(sid, "My Pizza"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if events != 2 {
		t.Fatalf("delete must publish favorites change, events=%d", events)
	}
	if _, err := svc.Get(sid, "My Pizza"); !errors.Is(err, ErrFavoriteNotFound) {
		t.Fatalf("deleted favorite must be gone, got=%v", err)
	}
}

func TestFavoriteSaveValidation(t *testing.T) {
	svc, _ := setupFavoriteServiceTest(t)
	sid := "sess-1"

	if _, err := svc.Save(sid, SaveInput{Name: "  ", Base: "Thin", Sauce: "Tomato", Cheese: "Mozzarella"}); !errors.Is(err, ErrFavoriteInvalid) {
		t.Fatalf("blank name must be rejected as invalid, got=%v", err)
	}
	if _, err := svc.Save(sid, SaveInput{Name: "My Pizza", Base: "Thin"}); !errors.Is(err, ErrRecipeIncomplete) {
		t.Fatalf("incomplete recipe must be rejected, got=%v", err)
	}
	if err := svc.Delete(sid, "Missing"); !errors.Is(err, ErrFavoriteNotFound) {
		t.Fatalf("deleting missing favorite must fail, got=%v", err)
	}
}
