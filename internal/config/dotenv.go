package config

import (
	"os"

	"github.com/joho/godotenv"
)

// LoadDotEnv loads environment variables from .env files in the current
// directory. Missing files are not an error. Already-set variables win.
func LoadDotEnv() error {
	for _, name := range []string{".env", ".env.local"} {
		if _, err := os.Stat(name); err != nil {
			continue
		}
		if err := godotenv.Load(name); err != nil {
			return err
		}
	}
	return nil
}

// LoadDotEnvFile loads one specific env file. The file must exist.
func LoadDotEnvFile(path string) error {
	return godotenv.Load(path)
}
