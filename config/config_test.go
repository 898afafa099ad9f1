package config

import (
	"strings"
	"testing"

	"github.com/spf13/viper"
)

func TestSetDefaults(t *testing.T) {
	v := viper.New()
	setDefaults(v)

	t.Run("server defaults", func(t *testing.T) {
		if got := v.GetString("server.port"); got != "8080" {
			t.Errorf("server.port = %q, want 8080", got)
		}
		if got := v.GetString("server.environment"); got != "development" {
			t.Errorf("server.environment = %q, want development", got)
		}
	})

	t.Run("search defaults", func(t *testing.T) {
		if got := v.GetInt("search.score_threshold"); got != 60 {
			t.Errorf("search.score_threshold = %d, want 60", got)
		}
		if got := v.GetInt("search.fuzzy_limit"); got != 5 {
			t.Errorf("search.fuzzy_limit = %d, want 5", got)
		}
		if got := v.GetInt("search.max_candidates"); got != 5000 {
			t.Errorf("search.max_candidates = %d, want 5000", got)
		}
	})

	t.Run("cache default TTL", func(t *testing.T) {
		if got := v.GetString("cache.ttl"); got != "60s" {
			t.Errorf("cache.ttl = %q, want 60s", got)
		}
	})

	t.Run("rate limit defaults", func(t *testing.T) {
		if got := v.GetFloat64("ratelimit.per_ip"); got != 20 {
			t.Errorf("ratelimit.per_ip = %v, want 20", got)
		}
		if got := v.GetInt("ratelimit.burst"); got != 40 {
			t.Errorf("ratelimit.burst = %d, want 40", got)
		}
	})
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Database:  DatabaseConfig{URL: "postgres://localhost:5432/promoprecio"},
			RateLimit: RateLimitConfig{PerIP: 20, Burst: 40},
			Search:    SearchConfig{ScoreThreshold: 60, FuzzyLimit: 5, MaxCandidates: 5000},
		}
	}

	t.Run("valid config passes", func(t *testing.T) {
		if err := validate(valid()); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("missing database URL", func(t *testing.T) {
		cfg := valid()
		cfg.Database.URL = ""
		err := validate(cfg)
		if err == nil || !strings.Contains(err.Error(), "database URL") {
			t.Errorf("error = %v, want database URL error", err)
		}
	})

	t.Run("threshold out of range", func(t *testing.T) {
		cfg := valid()
		cfg.Search.ScoreThreshold = 150
		if err := validate(cfg); err == nil {
			t.Error("expected error for threshold > 100")
		}
	})

	t.Run("non-positive fuzzy limit", func(t *testing.T) {
		cfg := valid()
		cfg.Search.FuzzyLimit = 0
		if err := validate(cfg); err == nil {
			t.Error("expected error for fuzzy limit 0")
		}
	})

	t.Run("non-positive rate limit", func(t *testing.T) {
		cfg := valid()
		cfg.RateLimit.PerIP = 0
		if err := validate(cfg); err == nil {
			t.Error("expected error for rate limit 0")
		}
	})
}
