package store

import (
	"fmt"
	"strings"
	"testing"

	"github.com/pizzeria-next/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupStoreTest(t *testing.T) *GormStore {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.StoreEntry{}); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	return NewStore(db)
}

func TestStorePutGetRoundTrip(t *testing.T) {
	s := setupStoreTest(t)

	type payload struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}
	if err := s.Put("sess-1", "cart", payload{Name: "margherita", Count: 2}); err != nil {
		t.Fatalf("put failed: %v", err)
	}

	var got payload
	if !s.Get("sess-1", "cart", &got) {
		t.Fatalf("expected hit after put")
	}
	if got.Name != "margherita" || got.Count != 2 {
		t.Fatalf("unexpected payload: %+v", got)
	}
}

func TestStoreGetMissReturnsFalse(t *testing.T) {
	s := setupStoreTest(t)

	var dest map[string]interface{}
	if s.Get("sess-1", "missing", &dest) {
		t.Fatalf("expected miss for absent key")
	}
}

func TestStorePutOverwrites(t *testing.T) {
	s := setupStoreTest(t)

	if err := s.Put("sess-1", "address", map[string]string{"city": "Mumbai"}); err != nil {
		t.Fatalf("first put failed: %v", err)
	}
	if err := s.Put("sess-1", "address", map[string]string{"city": "Pune"}); err != nil {
		t.Fatalf("second put failed: %v", err)
	}

	var got map[string]string
	if !s.Get("sess-1", "address", &got) {
		t.Fatalf("expected hit after overwrite")
	}
	if got["city"] != "Pune" {
		t.Fatalf("city want Pune, got=%s", got["city"])
	}

	keys, err := s.Keys("sess-1", "")
	if err != nil {
		t.Fatalf("keys failed: %v", err)
	}
	if len(keys) != 1 {
		t.Fatalf("want single key after overwrite, got=%v", keys)
	}
}

func TestStoreCorruptedValueIsMiss(t *testing.T) {
	s := setupStoreTest(t)

	entry := models.StoreEntry{Namespace: "sess-1", Key: "cart", Value: "{not json"}
	if err := s.db.Create(&entry).Error; err != nil {
		t.Fatalf("seed corrupted entry failed: %v", err)
	}

	var dest map[string]interface{}
	if s.Get("sess-1", "cart", &dest) {
		t.Fatalf("corrupted entry must behave like a miss")
	}
}

func TestStoreNamespaceIsolation(t *testing.T) {
	s := setupStoreTest(t)

	if err := s.Put("sess-a", "cart", []string{"pepperoni"}); err != nil {
		t.Fatalf("put sess-a failed: %v", err)
	}
	if err := s.Put("sess-b", "cart", []string{"veggie"}); err != nil {
		t.Fatalf("put sess-b failed: %v", err)
	}

	var got []string
	if !s.Get("sess-b", "cart", &got) {
		t.Fatalf("expected hit in sess-b")
	}
	if len(got) != 1 || got[0] != "veggie" {
		t.Fatalf("namespace leak: %v", got)
	}

	if err := s.Clear("sess-a"); err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	if s.Get("sess-a", "cart", &got) {
		t.Fatalf("sess-a must be empty after clear")
	}
	if !s.Get("sess-b", "cart", &got) {
		t.Fatalf("clear must not touch sess-b")
	}
}

func TestStoreKeysPrefixFilter(t *testing.T) {
	s := setupStoreTest(t)

	seed := map[string]string{
		"favorite_Spicy Paneer": "a",
		"favorite_BBQ Chicken":  "b",
		"favoriteX":             "c",
		"cart":                  "d",
	}
	for k, v := range seed {
		if err := s.Put("sess-1", k, v); err != nil {
			t.Fatalf("put %s failed: %v", k, err)
		}
	}

	keys, err := s.Keys("sess-1", "favorite_")
	if err != nil {
		t.Fatalf("keys failed: %v", err)
	}
	if len(keys) != 2 {
		t.Fatalf("want 2 favorite keys, got=%v", keys)
	}
	// 下划线按字面匹配，不作为通配符
	if keys[0] != "favorite_BBQ Chicken" || keys[1] != "favorite_Spicy Paneer" {
		t.Fatalf("unexpected key order: %v", keys)
	}

	if err := s.Delete("sess-1", "favorite_BBQ Chicken"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	keys, err = s.Keys("sess-1", "favorite_")
	if err != nil {
		t.Fatalf("keys after delete failed: %v", err)
	}
	if len(keys) != 1 || keys[0] != "favorite_Spicy Paneer" {
		t.Fatalf("unexpected keys after delete: %v", keys)
	}
}
