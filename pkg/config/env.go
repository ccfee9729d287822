// Package config holds the env helpers shared by the service binaries.
package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// LoadDotenv loads a .env file when one is present. A missing file is not an
// error: production supplies real environment variables.
func LoadDotenv() {
	_ = godotenv.Load()
}

func EnvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func EnvIntDefault(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("config: %s=%q is not an integer, using %d", key, v, def)
		return def
	}
	return n
}

// CSV splits a comma-separated value, trimming whitespace and dropping empty
// entries. An empty input yields nil.
func CSV(value string) []string {
	if value == "" {
		return nil
	}
	var out []string
	for _, p := range strings.Split(value, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// MustNonEmpty exits the process when a required setting is missing.
func MustNonEmpty(value, envName string) string {
	if value == "" {
		log.Fatalf("%s is required", envName)
	}
	return value
}
