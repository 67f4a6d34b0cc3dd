package main

import (
	"testing"

	"github.com/limbo/dayslide/pkg/config"
)

func newTestConfig(t *testing.T) *config.Config {
	t.Helper()
	t.Setenv("DAYSLIDE_ENV_FILE", "testdata/missing.env")
	return config.New()
}
