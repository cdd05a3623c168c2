// Package config gathers pathkit settings from the environment and the
// command line.
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	flag "github.com/spf13/pflag"
)

// Config is everything pathkit needs to start: where Redis is, which volume
// to open and how to present output.
type Config struct {
	Conn Connection

	Volume string
	// Flavor picks the path type used by the algebra commands: path, url or key.
	Flavor string
	// Index keeps the segment index current on every tree mutation.
	Index bool

	JSON    bool
	NoColor bool
	Color   bool

	HistoryFile string
	LogLevel    string

	// Args is what is left after flag parsing; non-empty means single-command mode.
	Args []string
}

func envOr(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}

// DefaultConfig seeds a Config from PATHKIT_* variables and REDISCLI_AUTH.
func DefaultConfig() *Config {
	history := ".pathkit_history"
	if home, err := os.UserHomeDir(); err == nil {
		history = filepath.Join(home, history)
	}

	return &Config{
		Conn: Connection{
			Host:     defaultHost,
			Port:     defaultPort,
			Password: os.Getenv("REDISCLI_AUTH"),
		},
		Volume:      envOr("PATHKIT_VOLUME", "main"),
		Flavor:      "path",
		Index:       true,
		HistoryFile: envOr("PATHKIT_HISTORY", history),
		LogLevel:    envOr("PATHKIT_LOG_LEVEL", "warn"),
	}
}

// RegisterFlags binds every setting to fs. Connection flags mirror redis-cli.
func (c *Config) RegisterFlags(fs *flag.FlagSet) {
	conn := &c.Conn
	fs.StringVarP(&conn.Host, "host", "h", conn.Host, "Redis hostname")
	fs.IntVarP(&conn.Port, "port", "p", conn.Port, "Redis port")
	fs.StringVarP(&conn.Socket, "socket", "s", conn.Socket, "Redis unix socket")
	fs.StringVarP(&conn.Password, "password", "a", conn.Password, "Redis password")
	fs.IntVarP(&conn.DB, "db", "n", conn.DB, "Redis database number")
	fs.StringVarP(&conn.URI, "uri", "u", conn.URI, "Redis URI (redis://...)")
	fs.BoolVar(&conn.TLS, "tls", conn.TLS, "Connect over TLS")
	fs.StringVar(&conn.CACert, "cacert", conn.CACert, "CA certificate bundle (PEM)")
	fs.StringVar(&conn.Cert, "cert", conn.Cert, "Client certificate (PEM)")
	fs.StringVar(&conn.Key, "key", conn.Key, "Client private key (PEM)")

	fs.StringVar(&c.Volume, "volume", c.Volume, "Tree volume to open")
	fs.StringVar(&c.Flavor, "flavor", c.Flavor, "Path type for algebra commands (path, url, key)")
	fs.BoolVar(&c.Index, "index", c.Index, "Maintain the segment index on writes")

	fs.BoolVar(&c.JSON, "json", c.JSON, "Print results as JSON")
	fs.BoolVar(&c.NoColor, "no-color", c.NoColor, "Never color output")
	fs.BoolVar(&c.Color, "color", c.Color, "Always color output")
	fs.StringVar(&c.HistoryFile, "history", c.HistoryFile, "REPL history file")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "Log level (debug, info, warn, error)")
}

// Logger builds the logger writing to w at the configured level.
func (c *Config) Logger(w io.Writer) (*log.Logger, error) {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("log level %q: %w", c.LogLevel, err)
	}
	return log.NewWithOptions(w, log.Options{
		Prefix: "pathkit",
		Level:  level,
	}), nil
}

// ShouldColor reports whether output gets ANSI colors. --no-color beats
// --color, which beats NO_COLOR.
func (c *Config) ShouldColor() bool {
	switch {
	case c.NoColor:
		return false
	case c.Color:
		return true
	}
	return os.Getenv("NO_COLOR") == ""
}
