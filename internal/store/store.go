// Package store selects the durable string-keyed store that backs the
// shopping list. Backends live in subpackages; Open picks one from a DSN.
package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/idilsaglam/shelf/internal/store/jsonstore"
	"github.com/idilsaglam/shelf/internal/store/redisstore"
	"github.com/idilsaglam/shelf/internal/store/sqlitestore"
)

// KV is a durable string-keyed store. Get reports ok=false for a missing key.
type KV interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Close() error
}

// Kind names a backend.
type Kind string

const (
	KindFile   Kind = "file"
	KindSQLite Kind = "sqlite"
	KindRedis  Kind = "redis"
	KindMemory Kind = "memory"
)

// DSN is a parsed store location.
type DSN struct {
	Kind     Kind
	Location string // file path or redis URL
}

// ParseDSN accepts:
//
//	file:<path>       JSON file (also a bare path)
//	sqlite:<path>     SQLite database
//	redis://...       Redis (rediss:// too)
//	memory:           process memory, lost on exit
func ParseDSN(s string) (DSN, error) {
	s = strings.TrimSpace(s)
	switch {
	case s == "":
		return DSN{Kind: KindFile, Location: jsonstore.DefaultFileName}, nil
	case strings.HasPrefix(s, "redis://"), strings.HasPrefix(s, "rediss://"):
		return DSN{Kind: KindRedis, Location: s}, nil
	case strings.HasPrefix(s, "memory:"):
		return DSN{Kind: KindMemory}, nil
	case strings.HasPrefix(s, "sqlite:"):
		p := strings.TrimPrefix(s, "sqlite:")
		if p == "" {
			return DSN{}, fmt.Errorf("sqlite dsn %q: missing path", s)
		}
		return DSN{Kind: KindSQLite, Location: p}, nil
	case strings.HasPrefix(s, "file:"):
		p := strings.TrimPrefix(s, "file:")
		if p == "" {
			return DSN{}, fmt.Errorf("file dsn %q: missing path", s)
		}
		return DSN{Kind: KindFile, Location: p}, nil
	}
	if i := strings.Index(s, "://"); i > 0 {
		return DSN{}, fmt.Errorf("unsupported store scheme %q", s[:i])
	}
	return DSN{Kind: KindFile, Location: s}, nil
}

// Options carry backend settings that do not fit in the DSN.
type Options struct {
	Password string // redis, used when the URL has none
	Logger   zerolog.Logger
}

// Open parses dsn and opens the matching backend.
func Open(ctx context.Context, dsn string, opt Options) (KV, error) {
	d, err := ParseDSN(dsn)
	if err != nil {
		return nil, err
	}
	switch d.Kind {
	case KindSQLite:
		return sqlitestore.Open(ctx, d.Location)
	case KindRedis:
		return redisstore.Open(ctx, d.Location, opt.Password)
	case KindMemory:
		return NewMemory(), nil
	default:
		return jsonstore.New(d.Location, opt.Logger), nil
	}
}
