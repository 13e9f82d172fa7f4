package config

import (
	"flag"
	"fmt"
	"strings"

	"tictacmcts/game"
	"tictacmcts/meta"
	"tictacmcts/searcher"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

type Config struct {
	Iterations  int
	Ponder      int
	Seed        uint64 // 0 means non-reproducible
	Human       game.Piece
	HumanStarts bool
	Backprop    searcher.BackpropPolicy
	Rollout     searcher.RolloutStart
	LogLevel    zerolog.Level
	Arena       ArenaConfig
	Serve       ServeConfig
	Remote      string // agent server URL used by play instead of a local search
}

type ServeConfig struct {
	Addr string
}

type ArenaConfig struct {
	Games  int
	Output string
	Sweep  bool
}

// flag name -> viper key
var flagKeys = map[string]string{
	"iterations": "iterations",
	"ponder":     "ponder",
	"seed":       "seed",
	"human":      "human",
	"first":      "human_starts",
	"backprop":   "backprop",
	"rollout":    "rollout",
	"log-level":  "log_level",
	"games":      "arena.games",
	"output":     "arena.output",
	"sweep":      "arena.sweep",
	"addr":       "serve.addr",
	"remote":     "remote",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("iterations", meta.ITERATIONS)
	v.SetDefault("ponder", meta.PONDER)
	v.SetDefault("seed", 0)
	v.SetDefault("human", "x")
	v.SetDefault("human_starts", true)
	v.SetDefault("backprop", searcher.BackpropSelectedPath.String())
	v.SetDefault("rollout", searcher.RolloutFromChild.String())
	v.SetDefault("log_level", "info")
	v.SetDefault("arena.games", meta.ARENA_GAMES)
	v.SetDefault("arena.output", "")
	v.SetDefault("arena.sweep", false)
	v.SetDefault("serve.addr", ":8080")
	v.SetDefault("remote", "")
}

// Load layers defaults, an optional config file, TICTAC_* environment
// variables and finally explicitly passed flags.
func Load(name string, args []string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(meta.ENV_PREFIX)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	configFile := fs.String("config", "", "path to a yaml/toml/json config file")
	fs.Int("iterations", meta.ITERATIONS, "train calls before each engine move")
	fs.Int("ponder", meta.PONDER, "train calls while following an opponent move")
	fs.Uint64("seed", 0, "random seed, 0 for a non-reproducible source")
	fs.String("human", "x", "piece played by the human: x, o or none")
	fs.Bool("first", true, "whether the human moves first")
	fs.String("backprop", searcher.BackpropSelectedPath.String(), "backpropagation policy: selected or best")
	fs.String("rollout", searcher.RolloutFromChild.String(), "rollout start: child or frontier")
	fs.String("log-level", "info", "zerolog level")
	fs.Int("games", meta.ARENA_GAMES, "arena games per matchup")
	fs.String("output", "", "directory for arena csv records")
	fs.Bool("sweep", false, "run the iteration sweep instead of a single arena")
	fs.String("addr", ":8080", "listen address of the agent server")
	fs.String("remote", "", "agent server URL to play against")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if *configFile != "" {
		v.SetConfigFile(*configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	fs.Visit(func(f *flag.Flag) {
		if key, ok := flagKeys[f.Name]; ok {
			v.Set(key, f.Value.String())
		}
	})

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Iterations:  v.GetInt("iterations"),
		Ponder:      v.GetInt("ponder"),
		Seed:        v.GetUint64("seed"),
		HumanStarts: v.GetBool("human_starts"),
		Arena: ArenaConfig{
			Games:  v.GetInt("arena.games"),
			Output: v.GetString("arena.output"),
			Sweep:  v.GetBool("arena.sweep"),
		},
		Serve:  ServeConfig{Addr: v.GetString("serve.addr")},
		Remote: v.GetString("remote"),
	}

	if cfg.Iterations < 1 {
		return nil, fmt.Errorf("iterations must be positive, got %d", cfg.Iterations)
	}
	if cfg.Ponder < 0 {
		return nil, fmt.Errorf("ponder cannot be negative, got %d", cfg.Ponder)
	}
	if cfg.Arena.Games < 0 {
		return nil, fmt.Errorf("arena games cannot be negative, got %d", cfg.Arena.Games)
	}

	human := v.GetString("human")
	if strings.EqualFold(human, "none") {
		cfg.Human = game.Empty
	} else {
		piece, err := game.ParsePiece(human)
		if err != nil {
			return nil, err
		}
		cfg.Human = piece
	}

	policy, err := searcher.ParseBackpropPolicy(v.GetString("backprop"))
	if err != nil {
		return nil, err
	}
	cfg.Backprop = policy

	rollout, err := searcher.ParseRolloutStart(v.GetString("rollout"))
	if err != nil {
		return nil, err
	}
	cfg.Rollout = rollout

	level, err := zerolog.ParseLevel(v.GetString("log_level"))
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}
	cfg.LogLevel = level

	return cfg, nil
}

// SearchOptions translates the search settings into searcher options.
func (c *Config) SearchOptions() []searcher.Option {
	options := []searcher.Option{
		searcher.WithBackprop(c.Backprop),
		searcher.WithRolloutStart(c.Rollout),
	}
	if c.Seed != 0 {
		options = append(options, searcher.WithSeed(c.Seed))
	}
	return options
}
