package storage

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/lumeris/adventure/pkg/quest"
	"github.com/lumeris/adventure/pkg/state"
)

func setupTestRedis(t *testing.T) (*RedisStorage, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to start miniredis: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	storage := NewRedisStorage(mr.Addr(), "../../data", logger)

	return storage, mr
}

func TestRedisStorage_Ping(t *testing.T) {
	storage, mr := setupTestRedis(t)
	defer mr.Close()
	defer func() { _ = storage.Close() }()

	if err := storage.Ping(context.Background()); err != nil {
		t.Errorf("Ping failed: %v", err)
	}
}

func TestRedisStorage_SaveAndLoadGameState(t *testing.T) {
	storage, mr := setupTestRedis(t)
	defer mr.Close()
	defer func() { _ = storage.Close() }()

	ctx := context.Background()
	gs := state.NewGameState("lumeris.json")
	gs.CurrentMap = "outside_village"
	gs.Prompt = "Collect the three ancient totems around the village."
	gs.Disabled = []string{"quest_totem_a"}
	qs := quest.NewState(quest.FindArtifacts, "Gather the shards.", 3)
	qs.RecordItem("quest_totem_a")
	gs.Quests[quest.FindArtifacts] = qs

	if err := storage.SaveGameState(ctx, gs.ID, gs); err != nil {
		t.Fatalf("SaveGameState failed: %v", err)
	}

	loaded, err := storage.LoadGameState(ctx, gs.ID)
	if err != nil {
		t.Fatalf("LoadGameState failed: %v", err)
	}
	if loaded == nil {
		t.Fatal("Expected gamestate, got nil")
	}
	if loaded.ID != gs.ID {
		t.Errorf("Expected id %s, got %s", gs.ID, loaded.ID)
	}
	if loaded.Pack != "lumeris.json" || loaded.CurrentMap != "outside_village" {
		t.Errorf("Unexpected loaded state %+v", loaded)
	}
	if len(loaded.Disabled) != 1 || loaded.Disabled[0] != "quest_totem_a" {
		t.Errorf("Expected disabled items preserved, got %v", loaded.Disabled)
	}
	lq := loaded.Quests[quest.FindArtifacts]
	if lq == nil || !lq.ItemsCollected["quest_totem_a"] {
		t.Errorf("Expected quest progress preserved, got %+v", lq)
	}

	// Saves carry a TTL so abandoned sessions expire.
	key := "gamestate:" + gs.ID.String()
	if mr.TTL(key) <= 0 {
		t.Error("Expected save key to carry a TTL")
	}
}

func TestRedisStorage_LoadGameStateNotFound(t *testing.T) {
	storage, mr := setupTestRedis(t)
	defer mr.Close()
	defer func() { _ = storage.Close() }()

	loaded, err := storage.LoadGameState(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("LoadGameState failed: %v", err)
	}
	if loaded != nil {
		t.Errorf("Expected nil for missing gamestate, got %+v", loaded)
	}
}

func TestRedisStorage_DeleteGameState(t *testing.T) {
	storage, mr := setupTestRedis(t)
	defer mr.Close()
	defer func() { _ = storage.Close() }()

	ctx := context.Background()
	gs := state.NewGameState("lumeris.json")
	if err := storage.SaveGameState(ctx, gs.ID, gs); err != nil {
		t.Fatalf("SaveGameState failed: %v", err)
	}

	if err := storage.DeleteGameState(ctx, gs.ID); err != nil {
		t.Fatalf("DeleteGameState failed: %v", err)
	}
	loaded, err := storage.LoadGameState(ctx, gs.ID)
	if err != nil {
		t.Fatalf("LoadGameState failed: %v", err)
	}
	if loaded != nil {
		t.Error("Expected gamestate gone after delete")
	}
}

func TestRedisStorage_ListPacks(t *testing.T) {
	storage, mr := setupTestRedis(t)
	defer mr.Close()
	defer func() { _ = storage.Close() }()

	packs, err := storage.ListPacks(context.Background())
	if err != nil {
		t.Fatalf("ListPacks failed: %v", err)
	}
	if packs["lumeris"] != "lumeris.json" {
		t.Errorf("Expected lumeris pack listed, got %v", packs)
	}
}

func TestRedisStorage_GetPack(t *testing.T) {
	storage, mr := setupTestRedis(t)
	defer mr.Close()
	defer func() { _ = storage.Close() }()

	pack, err := storage.GetPack(context.Background(), "lumeris.json")
	if err != nil {
		t.Fatalf("GetPack failed: %v", err)
	}
	if pack.Name != "lumeris" || pack.StartMap != "outside_village" {
		t.Errorf("Unexpected pack %q start %q", pack.Name, pack.StartMap)
	}

	if _, err := storage.GetPack(context.Background(), "missing.json"); err == nil {
		t.Error("Expected error for missing pack")
	}
}
