package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// File is the optional YAML configuration file. Every value can be
// overridden by its environment variable.
type File struct {
	Server struct {
		ListenPort      string `yaml:"listen_port"`
		ShutdownTimeout string `yaml:"shutdown_timeout"`
		RequestTimeout  string `yaml:"request_timeout"`
		ServeWeb        *bool  `yaml:"serve_web"`
	} `yaml:"server"`

	Log struct {
		Level  string `yaml:"level"`
		Pretty *bool  `yaml:"pretty"`
	} `yaml:"log"`

	Store struct {
		Backend string `yaml:"backend"`
		Redis   struct {
			Addr             string `yaml:"addr"`
			Username         string `yaml:"username"`
			Password         string `yaml:"password"`
			PasswordRequired *bool  `yaml:"password_required"`
			DB               *int   `yaml:"db"`
			PoolSize         *int   `yaml:"pool_size"`
			ConnectTimeout   string `yaml:"connect_timeout"`
		} `yaml:"redis"`
		Postgres struct {
			URL string `yaml:"url"`
		} `yaml:"postgres"`
	} `yaml:"store"`

	Events struct {
		NATSURL string `yaml:"nats_url"`
	} `yaml:"events"`

	Access struct {
		AllowedHosts []string `yaml:"allowed_hosts"`
		AllowedCIDRs []string `yaml:"allowed_cidrs"`
		TrustProxy   *bool    `yaml:"trust_proxy"`
	} `yaml:"access"`
}

// LoadFile reads a YAML config file and returns its values keyed by the
// environment variable they stand for.
func LoadFile(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	return ParseFile(data)
}

// ParseFile decodes YAML config data. Unknown keys are rejected.
func ParseFile(data []byte) (map[string]string, error) {
	var f File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return f.values(), nil
}

func (f *File) values() map[string]string {
	v := make(map[string]string)
	set := func(key, val string) {
		if val != "" {
			v[key] = val
		}
	}
	setBool := func(key string, val *bool) {
		if val != nil {
			v[key] = strconv.FormatBool(*val)
		}
	}
	setInt := func(key string, val *int) {
		if val != nil {
			v[key] = strconv.Itoa(*val)
		}
	}

	set("COMMENTS_LISTEN_PORT", f.Server.ListenPort)
	set("COMMENTS_SHUTDOWN_TIMEOUT", f.Server.ShutdownTimeout)
	set("COMMENTS_REQUEST_TIMEOUT", f.Server.RequestTimeout)
	setBool("COMMENTS_SERVE_WEB", f.Server.ServeWeb)

	set("COMMENTS_LOG_LEVEL", f.Log.Level)
	setBool("COMMENTS_PRETTY_LOG", f.Log.Pretty)

	set("COMMENTS_STORE", f.Store.Backend)
	set("COMMENTS_REDIS_ADDR", f.Store.Redis.Addr)
	set("COMMENTS_REDIS_USERNAME", f.Store.Redis.Username)
	set("COMMENTS_REDIS_PASSWORD", f.Store.Redis.Password)
	setBool("COMMENTS_REDIS_PASSWORD_REQUIRED", f.Store.Redis.PasswordRequired)
	setInt("COMMENTS_REDIS_DB", f.Store.Redis.DB)
	setInt("REDIS_POOL_SIZE", f.Store.Redis.PoolSize)
	set("REDIS_CONNECT_TIMEOUT", f.Store.Redis.ConnectTimeout)
	set("COMMENTS_POSTGRES_URL", f.Store.Postgres.URL)

	set("COMMENTS_NATS_URL", f.Events.NATSURL)

	set("COMMENTS_ALLOWED_HOSTS", strings.Join(f.Access.AllowedHosts, ","))
	set("COMMENTS_ALLOWED_CIDRS", strings.Join(f.Access.AllowedCIDRs, ","))
	setBool("COMMENTS_TRUST_PROXY", f.Access.TrustProxy)

	return v
}

// loadDotEnv loads a .env file into the environment without overriding
// variables that are already set. A missing file is not an error.
func loadDotEnv(path string) {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("[WARN] failed to load %s: %v", path, err)
	}
}
