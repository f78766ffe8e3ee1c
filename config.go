package main

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	defaultAddr    = ":8080"
	defaultDBPath  = "arena.db"
	defaultEnemies = 5
	maxEnemies     = 50
)

// Config is the server configuration. Values come from flags, falling back
// to ARENA_* environment variables, which may be set in a .env file.
type Config struct {
	Addr      string
	ClientDir string
	DBPath    string
	PublicURL string
	Enemies   int
	Seed      int64 // 0 picks a fresh seed per match
}

// LoadConfig reads .env (if present), the environment, then args
func LoadConfig(args []string) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	enemies, err := envInt("ARENA_ENEMIES", defaultEnemies)
	if err != nil {
		return Config{}, err
	}
	seed, err := envInt("ARENA_SEED", 0)
	if err != nil {
		return Config{}, err
	}

	var cfg Config
	fsFlags := flag.NewFlagSet("arena-server", flag.ContinueOnError)
	fsFlags.StringVar(&cfg.Addr, "addr", envOr("ARENA_ADDR", defaultAddr), "HTTP listen address")
	fsFlags.StringVar(&cfg.ClientDir, "client", os.Getenv("ARENA_CLIENT_DIR"), "Path to client directory (default: ../client)")
	fsFlags.StringVar(&cfg.DBPath, "db", envOr("ARENA_DB", defaultDBPath), "SQLite database path")
	fsFlags.StringVar(&cfg.PublicURL, "public-url", os.Getenv("ARENA_PUBLIC_URL"), "Base URL encoded in match QR codes")
	fsFlags.IntVar(&cfg.Enemies, "enemies", enemies, "Enemies per match")
	fsFlags.Int64Var(&cfg.Seed, "seed", int64(seed), "Fixed match seed (0 = random)")
	if err := fsFlags.Parse(args); err != nil {
		return Config{}, err
	}

	if cfg.Enemies < 1 || cfg.Enemies > maxEnemies {
		return Config{}, fmt.Errorf("enemies must be 1-%d, got %d", maxEnemies, cfg.Enemies)
	}
	return cfg, nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}
