/*
 * file: config.go
 * package: config
 * description:
 *     Command-line surface for the server process: which transports to
 *     bind, the turn cap, and the idle timeout. Parsed directly with the
 *     standard flag package, the same way ChickenIQ-VibeShitCraft's
 *     cmd/server/main.go builds its CLI.
 */
package config

import (
	"errors"
	"flag"
)

// Config holds the parsed CLI surface: which transports to bind, the turn
// cap, and the idle timeout.
type Config struct {
	TCPAddr  string
	WSAddr   string
	MaxTurns uint
	Timeout  int
}

// ErrNoTransport is returned when neither --tcp nor --ws was given.
var ErrNoTransport = errors.New("at least one of --tcp or --ws is required")

/*
 * Parse reads args (typically os.Args[1:]) into a Config.
 *
 * Returns:
 *   - Config: the parsed flags.
 *   - error: ErrNoTransport if neither transport address was set, or a
 *     flag-parsing error.
 */
func Parse(args []string) (Config, error) {
	fs := flag.NewFlagSet("sternhalma-server", flag.ContinueOnError)

	tcpAddr := fs.String("tcp", "", "host:port to bind the length-prefixed TCP listener on")
	wsAddr := fs.String("ws", "", "host:port to bind the WebSocket listener on")
	maxTurns := fs.Uint("max-turns", 300, "turn cap before the game ends in MaxTurns")
	fs.UintVar(maxTurns, "n", *maxTurns, "shorthand for --max-turns")
	timeout := fs.Int("timeout", 300, "per-connection idle timeout, in seconds")
	fs.IntVar(timeout, "t", *timeout, "shorthand for --timeout")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if *tcpAddr == "" && *wsAddr == "" {
		return Config{}, ErrNoTransport
	}

	return Config{
		TCPAddr:  *tcpAddr,
		WSAddr:   *wsAddr,
		MaxTurns: *maxTurns,
		Timeout:  *timeout,
	}, nil
}
