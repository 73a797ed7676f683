package config

import (
	"errors"
	"io/fs"

	"github.com/joho/godotenv"
)

// loadEnvFile loads ./.env into the process environment. A missing file is
// not an error and variables already set are never overridden.
func loadEnvFile() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}
