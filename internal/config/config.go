// Package config resolves runtime settings from the environment and an
// optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"

	"github.com/abhisek/dass21/internal/questionnaire"
	"github.com/abhisek/dass21/internal/store"
)

// Environment variable names.
const (
	EnvDB      = "DASS21_DB"
	EnvCSV     = "DASS21_CSV"
	EnvVariant = "DASS21_VARIANT"
	EnvBank    = "DASS21_BANK"
	EnvAddr    = "DASS21_ADDR"
)

// DefaultAddr is the listen address of the HTTP collector.
const DefaultAddr = ":8080"

// Config holds resolved settings. Flags override these after Load.
type Config struct {
	DBPath   string // SQLite log; "" resolves via store.DefaultDBPath
	CSVPath  string // optional CSV log
	Variant  string // default question bank id
	BankFile string // optional extra bank document
	Addr     string // HTTP listen address
}

// LoadEnv loads .env files into the process environment. Missing files are
// ignored; variables already set take precedence.
func LoadEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

// Load reads settings from the environment with defaults applied.
func Load() Config {
	return Config{
		DBPath:   os.Getenv(EnvDB),
		CSVPath:  os.Getenv(EnvCSV),
		Variant:  GetEnv(EnvVariant, questionnaire.DefaultVariant),
		BankFile: os.Getenv(EnvBank),
		Addr:     GetEnv(EnvAddr, DefaultAddr),
	}
}

// GetEnv returns the value of key, or fallback when unset or empty.
func GetEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// ResolveDBPath returns DBPath or the default location, creating the
// parent directory.
func (c Config) ResolveDBPath() (string, error) {
	if c.DBPath == "" {
		return store.DefaultDBPath()
	}
	return c.DBPath, store.EnsureDir(c.DBPath)
}

// LoadBank loads the built-in banks plus BankFile with Variant as default.
func (c Config) LoadBank() (*questionnaire.Bank, error) {
	return questionnaire.LoadBank(c.Variant, c.BankFile)
}

// OpenSink opens the SQLite log and, when configured, the CSV log.
// The caller owns the returned sink and must Close it.
func (c Config) OpenSink() (store.Sink, *store.Store, error) {
	dbPath, err := c.ResolveDBPath()
	if err != nil {
		return nil, nil, fmt.Errorf("resolve db path: %w", err)
	}
	db, err := store.Open(dbPath)
	if err != nil {
		return nil, nil, err
	}
	if c.CSVPath == "" {
		return db, db, nil
	}
	csvSink, err := store.OpenCSV(c.CSVPath)
	if err != nil {
		db.Close()
		return nil, nil, err
	}
	return store.Tee(db, csvSink), db, nil
}
