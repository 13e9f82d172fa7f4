// meta/meta.go
package meta

// ITERATIONS defines the number of MCTS train calls before each engine move.
const ITERATIONS = 500

// PONDER defines the number of train calls while following an opponent move.
const PONDER = 50

// ARENA_GAMES defines the number of games per arena run.
const ARENA_GAMES = 20

// ENV_PREFIX prefixes every environment variable read by config.
const ENV_PREFIX = "TICTAC"
