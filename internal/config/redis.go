package config

import (
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"net"
	"os"
	"strconv"

	"github.com/redis/go-redis/v9"
)

const (
	defaultHost = "127.0.0.1"
	defaultPort = 6379
)

// Connection describes how to reach the Redis server holding the trees.
type Connection struct {
	Host     string
	Port     int
	Socket   string
	Password string
	DB       int
	URI      string

	TLS    bool
	CACert string
	Cert   string
	Key    string
}

// Addr is the address shown to users in messages.
func (c Connection) Addr() string {
	switch {
	case c.Socket != "":
		return c.Socket
	case c.URI != "":
		if opts, err := redis.ParseURL(c.URI); err == nil {
			return opts.Addr
		}
		return c.URI
	}
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// Options converts the connection settings to go-redis options. A URI wins
// over host/port/socket; an explicit --db still overrides the URI's database.
func (c Connection) Options() (*redis.Options, error) {
	var opts *redis.Options
	if c.URI != "" {
		parsed, err := redis.ParseURL(c.URI)
		if err != nil {
			return nil, fmt.Errorf("uri %q: %w", c.URI, err)
		}
		opts = parsed
		if c.DB != 0 {
			opts.DB = c.DB
		}
	} else {
		opts = &redis.Options{
			Addr:     net.JoinHostPort(c.Host, strconv.Itoa(c.Port)),
			Password: c.Password,
			DB:       c.DB,
		}
		if c.Socket != "" {
			opts.Network, opts.Addr = "unix", c.Socket
		}
	}

	if c.TLS {
		tlsConfig, err := c.tlsConfig()
		if err != nil {
			return nil, err
		}
		opts.TLSConfig = tlsConfig
	}
	return opts, nil
}

func (c Connection) tlsConfig() (*tls.Config, error) {
	cfg := &tls.Config{MinVersion: tls.VersionTLS12}
	if c.CACert != "" {
		pem, err := os.ReadFile(c.CACert)
		if err != nil {
			return nil, fmt.Errorf("cacert: %w", err)
		}
		pool := x509.NewCertPool()
		if !pool.AppendCertsFromPEM(pem) {
			return nil, fmt.Errorf("cacert %s: no certificates found", c.CACert)
		}
		cfg.RootCAs = pool
	}
	if c.Cert != "" || c.Key != "" {
		pair, err := tls.LoadX509KeyPair(c.Cert, c.Key)
		if err != nil {
			return nil, fmt.Errorf("client certificate: %w", err)
		}
		cfg.Certificates = []tls.Certificate{pair}
	}
	return cfg, nil
}

// CLIArgs renders the same settings as redis-cli flags, for passthrough
// commands.
func (c Connection) CLIArgs() []string {
	var args []string
	switch {
	case c.URI != "":
		args = append(args, "-u", c.URI)
	case c.Socket != "":
		args = append(args, "-s", c.Socket)
	default:
		if c.Host != defaultHost {
			args = append(args, "-h", c.Host)
		}
		if c.Port != defaultPort {
			args = append(args, "-p", strconv.Itoa(c.Port))
		}
	}
	if c.Password != "" {
		args = append(args, "-a", c.Password)
	}
	if c.DB != 0 {
		args = append(args, "-n", strconv.Itoa(c.DB))
	}
	if !c.TLS {
		return args
	}
	args = append(args, "--tls")
	for _, f := range [][2]string{{"--cacert", c.CACert}, {"--cert", c.Cert}, {"--key", c.Key}} {
		if f[1] != "" {
			args = append(args, f[0], f[1])
		}
	}
	return args
}
