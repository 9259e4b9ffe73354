package database

import (
	"testing"

	"arch_quiz_backend/internal/config"
)

func TestShouldMigrate(t *testing.T) {
	cases := []struct {
		name  string
		mode  string
		force bool
		want  bool
	}{
		{"debug mode", "debug", false, true},
		{"release mode", "release", false, false},
		{"release with flag", "release", true, true},
		{"empty mode", "", false, true},
	}
	for _, tc := range cases {
		cfg := &config.Config{ForceMigrate: tc.force}
		cfg.Server.Mode = tc.mode
		if got := ShouldMigrate(cfg); got != tc.want {
			t.Errorf("%s: ShouldMigrate = %v, want %v", tc.name, got, tc.want)
		}
	}
}
