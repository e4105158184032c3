package cache

import (
	"context"
	"fmt"
	"strings"
)

// Open returns the cache described by location:
//
//   - "" or "none": a [NullCache]
//   - "redis://..." or "rediss://...": a [RedisCache]
//   - "mongodb://..." or "mongodb+srv://...": a [MongoCache]
//   - "file://<dir>" or a plain directory path: a [FileCache]
//
// Network backends retry their first ping with [DefaultRetryPolicy].
func Open(ctx context.Context, location string) (Cache, error) {
	switch {
	case location == "" || location == "none":
		return NewNullCache(), nil
	case strings.HasPrefix(location, "redis://"), strings.HasPrefix(location, "rediss://"):
		return opened(NewRedisCache(ctx, location, DefaultRetryPolicy))
	case strings.HasPrefix(location, "mongodb://"), strings.HasPrefix(location, "mongodb+srv://"):
		return opened(NewMongoCache(ctx, location, DefaultRetryPolicy))
	case strings.HasPrefix(location, "file://"):
		return opened(NewFileCache(strings.TrimPrefix(location, "file://")))
	case strings.Contains(location, "://"):
		return nil, fmt.Errorf("%w: %s", ErrUnsupported, location)
	}
	return opened(NewFileCache(location))
}

// opened keeps a failed constructor from yielding a non-nil Cache that
// holds a nil pointer.
func opened[C Cache](c C, err error) (Cache, error) {
	if err != nil {
		return nil, err
	}
	return c, nil
}
