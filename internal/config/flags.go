package config

import (
	"errors"
	"flag"
	"fmt"
	"net"
	"strconv"
	"time"
)

// NetAddress is a host:port flag value.
type NetAddress struct {
	Host string
	Port int
}

// ParseFlags parses args into a partial config. Unset flags stay zero so they
// do not shadow other sources.
//
// Flags:
//
//	-a                  HTTP listen address host:port
//	-g                  gRPC listen address host:port
//	-d                  Postgres DSN
//	-db                 device SQLite path
//	-s                  server base URL used by the device
//	-c, -config         JSON config file
//	-k                  integrity hash key
//	-token-sign-key     token signing key
//	-token-issuer       token issuer
//	-token-duration     token lifetime (e.g. 24h)
//	-request-timeout    server request timeout
//	-page-size          pull page size
//	-rate-limit         requests per window
//	-rate-limit-window  rate limit window (e.g. 1m)
//	-rate-limit-store   memory | postgres
//	-sync-interval      device sync timer interval
//	-login              device account login
func ParseFlags(args []string) (*StructuredConfig, error) {
	fs := flag.NewFlagSet("go-fin-keeper", flag.ContinueOnError)

	var (
		httpAddress, grpcAddress NetAddress
		cfg                      StructuredConfig
		tokenDuration            time.Duration
		requestTimeout           time.Duration
		rateLimitWindow          time.Duration
		syncInterval             time.Duration
	)

	fs.Var(&httpAddress, "a", "HTTP listen address host:port")
	fs.Var(&grpcAddress, "g", "gRPC listen address host:port")
	fs.StringVar(&cfg.Storage.DB.DSN, "d", "", "Postgres DSN")
	fs.StringVar(&cfg.Storage.SQLite.Path, "db", "", "Device SQLite path")
	fs.StringVar(&cfg.Adapter.ServerAddress, "s", "", "Server base URL")
	fs.StringVar(&cfg.JSONFilePath, "c", "", "JSON config file path")
	fs.StringVar(&cfg.JSONFilePath, "config", "", "JSON config file path (alias)")
	fs.StringVar(&cfg.App.HashKey, "k", "", "Integrity hash key")
	fs.StringVar(&cfg.App.TokenSignKey, "token-sign-key", "", "Token signing key")
	fs.StringVar(&cfg.App.TokenIssuer, "token-issuer", "", "Token issuer")
	fs.DurationVar(&tokenDuration, "token-duration", 0, "Token duration (e.g. 24h)")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g. 30s)")
	fs.IntVar(&cfg.Sync.PageSize, "page-size", 0, "Pull page size")
	fs.IntVar(&cfg.RateLimit.Requests, "rate-limit", 0, "Requests per rate limit window")
	fs.DurationVar(&rateLimitWindow, "rate-limit-window", 0, "Rate limit window (e.g. 1m)")
	fs.StringVar(&cfg.RateLimit.Store, "rate-limit-store", "", "Rate limit counter store: memory | postgres")
	fs.DurationVar(&syncInterval, "sync-interval", 0, "Device sync interval (e.g. 30s)")
	fs.StringVar(&cfg.Client.Login, "login", "", "Device account login")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	cfg.Server.HTTPAddress = httpAddress.String()
	cfg.Server.GRPCAddress = grpcAddress.String()
	cfg.Server.RequestTimeout = requestTimeout
	cfg.App.TokenDuration = tokenDuration
	cfg.RateLimit.Window = rateLimitWindow
	cfg.Workers.SyncInterval = syncInterval

	return &cfg, nil
}

func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return net.JoinHostPort(a.Host, strconv.Itoa(a.Port))
}

// Set accepts host:port where host is an IP, "localhost" or empty.
func (a *NetAddress) Set(s string) error {
	host, portStr, err := net.SplitHostPort(s)
	if err != nil {
		return errors.New("need address in a form `host:port`")
	}

	port, err := strconv.Atoi(portStr)
	if err != nil {
		return err
	}
	if port < 1 || port > 65535 {
		return errors.New("port number must be within 1..65535")
	}

	if host != "" && host != "localhost" && net.ParseIP(host) == nil {
		return errors.New("incorrect IP-address provided")
	}

	a.Host = host
	a.Port = port
	return nil
}
