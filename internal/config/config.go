// Package config builds the application options from defaults, an optional
// JSON file, command-line flags and environment variables, in that order of
// increasing priority.
package config

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Options holds the configuration values for the application.
type Options struct {
	// Port defines the server's listening address (ip:port).
	Port string

	// ResultHostname is the base URL used for result links.
	ResultHostname string

	// FilePath is the SQLite database file, used when DatabaseDSN is empty.
	FilePath string

	// DatabaseDSN is the PostgreSQL connection string.
	DatabaseDSN string

	// RedisURL enables the lookup cache when set.
	RedisURL string

	CacheTTL time.Duration

	// GRPCPort enables the gRPC server when positive.
	GRPCPort int

	// TrustedSubnet is the CIDR allowed to read internal stats.
	TrustedSubnet string

	LogLevel string
	LogFile  string

	EnablePprof bool
	EnableHTTPS bool

	// Config is the path of the JSON configuration file.
	Config string
}

// fileOptions mirrors the JSON configuration file. Absent keys keep the
// defaults.
type fileOptions struct {
	ServerAddress   string `json:"server_address"`
	BaseURL         string `json:"base_url"`
	FileStoragePath string `json:"file_storage_path"`
	DatabaseDSN     string `json:"database_dsn"`
	RedisURL        string `json:"redis_url"`
	CacheTTL        string `json:"cache_ttl"`
	GRPCPort        int    `json:"grpc_port"`
	TrustedSubnet   string `json:"trusted_subnet"`
	LogLevel        string `json:"log_level"`
	LogFile         string `json:"log_file"`
	EnablePprof     *bool  `json:"enable_pprof"`
	EnableHTTPS     *bool  `json:"enable_https"`
}

type setting struct {
	flag   string
	env    string
	usage  string
	isBool bool
	set    func(o *Options, v string) error
}

var settings = []setting{
	{flag: "a", env: "SERVER_ADDRESS", usage: "run on ip:port server", set: func(o *Options, v string) error { o.Port = v; return nil }},
	{flag: "b", env: "BASE_URL", usage: "result base url", set: func(o *Options, v string) error { o.ResultHostname = v; return nil }},
	{flag: "f", env: "FILE_STORAGE_PATH", usage: "path to sqlite database file", set: func(o *Options, v string) error { o.FilePath = v; return nil }},
	{flag: "d", env: "DATABASE_DSN", usage: "postgres dsn", set: func(o *Options, v string) error { o.DatabaseDSN = v; return nil }},
	{flag: "r", env: "REDIS_URL", usage: "redis url for the lookup cache", set: func(o *Options, v string) error { o.RedisURL = v; return nil }},
	{flag: "ttl", env: "CACHE_TTL", usage: "cache entry lifetime", set: func(o *Options, v string) error {
		d, err := time.ParseDuration(v)
		o.CacheTTL = d
		return err
	}},
	{flag: "g", env: "GRPC_PORT", usage: "grpc port, 0 disables grpc", set: func(o *Options, v string) error {
		p, err := strconv.Atoi(v)
		o.GRPCPort = p
		return err
	}},
	{flag: "t", env: "TRUSTED_SUBNET", usage: "trusted subnet in CIDR notation", set: func(o *Options, v string) error { o.TrustedSubnet = v; return nil }},
	{flag: "l", env: "LOG_LEVEL", usage: "log level", set: func(o *Options, v string) error { o.LogLevel = v; return nil }},
	{flag: "lf", env: "LOG_FILE", usage: "rotate logs into this file", set: func(o *Options, v string) error { o.LogFile = v; return nil }},
	{flag: "p", env: "ENABLE_PPROF", usage: "enable pprof", isBool: true, set: func(o *Options, v string) error {
		b, err := strconv.ParseBool(v)
		o.EnablePprof = b
		return err
	}},
	{flag: "s", env: "ENABLE_HTTPS", usage: "enable https", isBool: true, set: func(o *Options, v string) error {
		b, err := strconv.ParseBool(v)
		o.EnableHTTPS = b
		return err
	}},
	{flag: "c", env: "CONFIG", usage: "path to json config", set: func(o *Options, v string) error { o.Config = v; return nil }},
}

func defaults() *Options {
	return &Options{
		Port:           "localhost:8080",
		ResultHostname: "http://localhost:8080",
		FilePath:       "data/shortener.db",
		CacheTTL:       time.Hour,
		LogLevel:       "info",
	}
}

// Parse loads a .env file if present and builds the options from the process
// arguments and environment.
func Parse() (*Options, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	return ParseArgs(os.Args[1:])
}

// ParseArgs builds the options from args and the environment.
func ParseArgs(args []string) (*Options, error) {
	fset := flag.NewFlagSet("shortener", flag.ContinueOnError)
	flagged := make(map[string]string)

	for _, s := range settings {
		name := s.flag
		record := func(v string) error {
			flagged[name] = v
			return nil
		}
		if s.isBool {
			fset.BoolFunc(name, s.usage, record)
		} else {
			fset.Func(name, s.usage, record)
		}
	}

	if err := fset.Parse(args); err != nil {
		return nil, err
	}

	o := defaults()

	path := flagged["c"]
	if v := os.Getenv("CONFIG"); v != "" {
		path = v
	}
	if path != "" {
		if err := o.loadFile(path); err != nil {
			return nil, err
		}
	}

	for _, s := range settings {
		if v, ok := flagged[s.flag]; ok {
			if err := s.set(o, v); err != nil {
				return nil, fmt.Errorf("flag -%s: %w", s.flag, err)
			}
		}
	}

	for _, s := range settings {
		if v := os.Getenv(s.env); v != "" {
			if err := s.set(o, v); err != nil {
				return nil, fmt.Errorf("env %s: %w", s.env, err)
			}
		}
	}

	return o, nil
}

func (o *Options) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	var f fileOptions
	if err := json.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	o.Config = path
	setIfNotEmpty(&o.Port, f.ServerAddress)
	setIfNotEmpty(&o.ResultHostname, f.BaseURL)
	setIfNotEmpty(&o.FilePath, f.FileStoragePath)
	setIfNotEmpty(&o.DatabaseDSN, f.DatabaseDSN)
	setIfNotEmpty(&o.RedisURL, f.RedisURL)
	setIfNotEmpty(&o.TrustedSubnet, f.TrustedSubnet)
	setIfNotEmpty(&o.LogLevel, f.LogLevel)
	setIfNotEmpty(&o.LogFile, f.LogFile)

	if f.CacheTTL != "" {
		if o.CacheTTL, err = time.ParseDuration(f.CacheTTL); err != nil {
			return fmt.Errorf("config cache_ttl: %w", err)
		}
	}
	if f.GRPCPort != 0 {
		o.GRPCPort = f.GRPCPort
	}
	if f.EnablePprof != nil {
		o.EnablePprof = *f.EnablePprof
	}
	if f.EnableHTTPS != nil {
		o.EnableHTTPS = *f.EnableHTTPS
	}

	return nil
}

func setIfNotEmpty(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
