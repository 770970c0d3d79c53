package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	if cfg.PartySize != 4 {
		t.Fatalf("expected party size 4, got %d", cfg.PartySize)
	}
	if cfg.GuesserPoints != 200 || cfg.CluePoints != 100 {
		t.Fatalf("unexpected scoring defaults: %d/%d", cfg.GuesserPoints, cfg.CluePoints)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PARTY_SIZE", "6")
	t.Setenv("CLUE_SECONDS", "30")
	t.Setenv("GUESSER_POINTS", "500")

	cfg := Load()
	if cfg.PartySize != 6 {
		t.Fatalf("expected party size 6, got %d", cfg.PartySize)
	}
	if cfg.ClueDurationSeconds != 30 {
		t.Fatalf("expected 30 clue seconds, got %d", cfg.ClueDurationSeconds)
	}
	if cfg.GuesserPoints != 500 {
		t.Fatalf("expected 500 guesser points, got %d", cfg.GuesserPoints)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	t.Setenv("PARTY_SIZE", "one")
	t.Setenv("CLUE_SECONDS", "0")

	cfg := Load()
	if cfg.PartySize != 4 {
		t.Fatalf("invalid PARTY_SIZE must keep the default, got %d", cfg.PartySize)
	}
	if cfg.ClueDurationSeconds != 15 {
		t.Fatalf("non-positive CLUE_SECONDS must keep the default, got %d", cfg.ClueDurationSeconds)
	}
}
