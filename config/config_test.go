package config

import (
	"os"
	"path/filepath"
	"testing"

	"tictacmcts/game"
	"tictacmcts/meta"
	"tictacmcts/searcher"

	"github.com/matryer/is"
	"github.com/rs/zerolog"
)

func TestDefaults(t *testing.T) {
	is := is.New(t)

	cfg, err := Load("play", nil)
	is.NoErr(err)
	is.Equal(cfg.Iterations, meta.ITERATIONS)
	is.Equal(cfg.Ponder, meta.PONDER)
	is.Equal(cfg.Seed, uint64(0))
	is.Equal(cfg.Human, game.X)
	is.True(cfg.HumanStarts)
	is.Equal(cfg.Backprop, searcher.BackpropSelectedPath)
	is.Equal(cfg.LogLevel, zerolog.InfoLevel)
	is.Equal(cfg.Arena.Games, meta.ARENA_GAMES)
	is.Equal(cfg.Serve.Addr, ":8080")
	is.Equal(cfg.Remote, "")
	is.Equal(cfg.Rollout, searcher.RolloutFromChild)
	is.Equal(len(cfg.SearchOptions()), 2)
}

func TestFlags(t *testing.T) {
	is := is.New(t)

	cfg, err := Load("play", []string{
		"-iterations", "64", "-seed", "9", "-human", "none",
		"-backprop", "best", "-rollout", "frontier", "-log-level", "debug", "-first=false",
	})
	is.NoErr(err)
	is.Equal(cfg.Iterations, 64)
	is.Equal(cfg.Seed, uint64(9))
	is.Equal(cfg.Human, game.Empty)
	is.True(!cfg.HumanStarts)
	is.Equal(cfg.Backprop, searcher.BackpropBestPath)
	is.Equal(cfg.LogLevel, zerolog.DebugLevel)
	is.Equal(cfg.Rollout, searcher.RolloutFromFrontier)
	is.Equal(len(cfg.SearchOptions()), 3) // backprop, rollout and seed
}

func TestEnvironment(t *testing.T) {
	is := is.New(t)
	t.Setenv("TICTAC_PONDER", "7")
	t.Setenv("TICTAC_ARENA_GAMES", "3")

	cfg, err := Load("arena", []string{"-ponder", "11"})
	is.NoErr(err)
	is.Equal(cfg.Ponder, 11) // flags beat the environment
	is.Equal(cfg.Arena.Games, 3)
}

func TestConfigFile(t *testing.T) {
	is := is.New(t)
	path := filepath.Join(t.TempDir(), "tictac.yaml")
	err := os.WriteFile(path, []byte("iterations: 123\nhuman: o\narena:\n  output: /tmp/out\n"), 0644)
	is.NoErr(err)

	cfg, err := Load("play", []string{"-config", path})
	is.NoErr(err)
	is.Equal(cfg.Iterations, 123)
	is.Equal(cfg.Human, game.O)
	is.Equal(cfg.Arena.Output, "/tmp/out")
}

func TestInvalid(t *testing.T) {
	is := is.New(t)

	for _, args := range [][]string{
		{"-iterations", "0"},
		{"-ponder", "-1"},
		{"-human", "z"},
		{"-backprop", "sideways"},
		{"-rollout", "leaf"},
		{"-log-level", "loud"},
		{"-config", "/does/not/exist.yaml"},
	} {
		_, err := Load("play", args)
		is.True(err != nil) // invalid args must fail
	}
}
