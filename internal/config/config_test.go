package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/tribe-app/matchd/internal/config"
	"github.com/tribe-app/matchd/internal/domain/scoring"
)

func TestNew(t *testing.T) {
	Convey("Given a default configuration", t, func() {
		cfg := config.New()

		Convey("Then sensible defaults are set", func() {
			So(cfg.Addr, ShouldEqual, ":9080")
			So(cfg.LogLevel, ShouldEqual, "info")
			So(cfg.TopK, ShouldEqual, 10)
			So(cfg.MaxLimit, ShouldEqual, 50)
			So(cfg.PoolLimit, ShouldEqual, 20)
			So(cfg.BatchWorkers, ShouldBeGreaterThan, 0)
			So(cfg.Seed, ShouldBeTrue)
		})

		Convey("And both preset weight vectors validate", func() {
			So(cfg.ProfileWeights.Validate(), ShouldBeNil)
			So(cfg.UniversityWeights.Validate(), ShouldBeNil)
			So(cfg.Validate(), ShouldBeNil)
		})
	})
}

func TestLoad(t *testing.T) {
	Convey("Given the environment-driven loader", t, func() {
		ctx := context.Background()

		Convey("When no overrides are present", func() {
			cfg, err := config.Load(ctx)

			Convey("Then defaults load cleanly", func() {
				So(err, ShouldBeNil)
				So(cfg.Addr, ShouldEqual, ":9080")
			})
		})

		Convey("When environment variables override fields", func() {
			_ = os.Setenv("MATCHD_ADDR", ":7070")
			_ = os.Setenv("MATCHD_LOG_LEVEL", "debug")
			_ = os.Setenv("MATCHD_POOL_LIMIT", "35")
			defer func() {
				_ = os.Unsetenv("MATCHD_ADDR")
				_ = os.Unsetenv("MATCHD_LOG_LEVEL")
				_ = os.Unsetenv("MATCHD_POOL_LIMIT")
			}()

			cfg, err := config.Load(ctx)

			Convey("Then the overrides win", func() {
				So(err, ShouldBeNil)
				So(cfg.Addr, ShouldEqual, ":7070")
				So(cfg.LogLevel, ShouldEqual, "debug")
				So(cfg.PoolLimit, ShouldEqual, 35)
			})
		})

		Convey("When a YAML file is supplied", func() {
			dir := t.TempDir()
			path := filepath.Join(dir, "config.yaml")
			yaml := "addr: \":6060\"\ntop_k: 5\nprofile_weights:\n  interest: 0.7\n  commitment: 0.1\n  experience: 0.1\n  schedule: 0.1\n"
			So(os.WriteFile(path, []byte(yaml), 0o600), ShouldBeNil)

			_ = os.Setenv("MATCHD_CONFIG", path)
			defer func() { _ = os.Unsetenv("MATCHD_CONFIG") }()

			cfg, err := config.Load(ctx)

			Convey("Then file values layer over the defaults", func() {
				So(err, ShouldBeNil)
				So(cfg.Addr, ShouldEqual, ":6060")
				So(cfg.TopK, ShouldEqual, 5)
				So(cfg.ProfileWeights, ShouldResemble, scoring.Weights{
					Interest: 0.7, Commitment: 0.1, Experience: 0.1, Schedule: 0.1,
				})
			})

			Convey("And environment variables still win over the file", func() {
				_ = os.Setenv("MATCHD_ADDR", ":5050")
				defer func() { _ = os.Unsetenv("MATCHD_ADDR") }()

				cfg, err := config.Load(ctx)
				So(err, ShouldBeNil)
				So(cfg.Addr, ShouldEqual, ":5050")
			})
		})

		Convey("When the config file path is bogus", func() {
			_ = os.Setenv("MATCHD_CONFIG", "/nonexistent/config.yaml")
			defer func() { _ = os.Unsetenv("MATCHD_CONFIG") }()

			_, err := config.Load(ctx)

			Convey("Then loading fails with the sentinel", func() {
				So(err, ShouldWrap, config.ErrLoadConfig)
			})
		})
	})
}

func TestValidate(t *testing.T) {
	Convey("Given configuration validation", t, func() {
		Convey("When a field is out of range", func() {
			cases := []func(*config.Config){
				func(c *config.Config) { c.Addr = "" },
				func(c *config.Config) { c.TopK = 0 },
				func(c *config.Config) { c.MaxLimit = 1 },
				func(c *config.Config) { c.MinScore = 120 },
				func(c *config.Config) { c.MinScore = -1 },
				func(c *config.Config) { c.ProfileWeights = scoring.Weights{Interest: 0.5} },
				func(c *config.Config) { c.UniversityWeights = scoring.Weights{Interest: -1} },
			}

			Convey("Then validation fails for each", func() {
				for _, mutate := range cases {
					cfg := config.New()
					mutate(cfg)
					So(cfg.Validate(), ShouldWrap, config.ErrInvalidConfig)
				}
			})
		})
	})
}
