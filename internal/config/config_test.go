package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{EnvDB, EnvCSV, EnvVariant, EnvBank, EnvAddr} {
		t.Setenv(k, "")
	}
	c := Load()
	assert.Equal(t, "ms", c.Variant)
	assert.Equal(t, DefaultAddr, c.Addr)
	assert.Empty(t, c.DBPath)
	assert.Empty(t, c.CSVPath)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv(EnvDB, "/tmp/x.db")
	t.Setenv(EnvCSV, "/tmp/x.csv")
	t.Setenv(EnvVariant, "en")
	t.Setenv(EnvBank, "/tmp/bank.yaml")
	t.Setenv(EnvAddr, "127.0.0.1:9000")

	c := Load()
	assert.Equal(t, Config{
		DBPath:   "/tmp/x.db",
		CSVPath:  "/tmp/x.csv",
		Variant:  "en",
		BankFile: "/tmp/bank.yaml",
		Addr:     "127.0.0.1:9000",
	}, c)
}

func TestLoadEnv_File(t *testing.T) {
	t.Setenv(EnvAddr, "")
	os.Unsetenv(EnvAddr)

	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("DASS21_ADDR=:7070\n"), 0o600))

	require.NoError(t, LoadEnv(path))
	assert.Equal(t, ":7070", os.Getenv(EnvAddr))
}

func TestLoadEnv_MissingFileIgnored(t *testing.T) {
	assert.NoError(t, LoadEnv(filepath.Join(t.TempDir(), "absent.env")))
}

func TestLoadBank_UnknownDefault(t *testing.T) {
	_, err := Config{Variant: "xx"}.LoadBank()
	assert.Error(t, err)
}

func TestOpenSink_WithCSV(t *testing.T) {
	dir := t.TempDir()
	c := Config{
		DBPath:  filepath.Join(dir, "db", "log.db"),
		CSVPath: filepath.Join(dir, "csv", "log.csv"),
		Variant: "ms",
	}
	sink, db, err := c.OpenSink()
	require.NoError(t, err)
	defer sink.Close()

	n, err := db.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, n)
	assert.FileExists(t, c.CSVPath)
}
