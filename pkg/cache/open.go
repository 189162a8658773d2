package cache

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Open creates a cache from a URL:
//
//	none:                          NullCache (also the empty string)
//	memory:[?size=N]               MemoryCache
//	file:///path/to/dir            FileCache
//	redis://host:6379/0            RedisCache (also rediss://)
//	badger:///path/to/dir          BadgerCache on disk
//	badger:mem                     BadgerCache in memory
//	mongodb://host/db?collection=c MongoCache (also mongodb+srv://)
func Open(ctx context.Context, rawURL string) (Cache, error) {
	if rawURL == "" || rawURL == "none" {
		return NewNullCache(), nil
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse cache url: %w", err)
	}

	switch u.Scheme {
	case "none":
		return NewNullCache(), nil
	case "memory":
		size := 0
		if s := u.Query().Get("size"); s != "" {
			if size, err = strconv.Atoi(s); err != nil {
				return nil, fmt.Errorf("memory cache size %q: %w", s, err)
			}
		}
		return NewMemoryCache(size)
	case "file":
		if u.Path == "" {
			return nil, fmt.Errorf("file cache url %q has no path", rawURL)
		}
		return NewFileCache(u.Path)
	case "redis", "rediss":
		return NewRedisCache(ctx, rawURL)
	case "badger":
		if u.Opaque == "mem" {
			return NewBadgerCache("")
		}
		if u.Path == "" {
			return nil, fmt.Errorf("badger cache url %q has no path", rawURL)
		}
		return NewBadgerCache(u.Path)
	case "mongodb", "mongodb+srv":
		db := strings.TrimPrefix(u.Path, "/")
		if db == "" {
			db = DefaultMongoDatabase
		}
		q := u.Query()
		coll := q.Get("collection")
		if coll == "" {
			coll = DefaultMongoCollection
		}
		q.Del("collection")
		u.RawQuery = q.Encode()
		return NewMongoCache(ctx, u.String(), db, coll)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedScheme, u.Scheme)
	}
}
