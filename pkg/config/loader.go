package config

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var (
	mu     sync.RWMutex
	loaded = make(map[string]any)

	dotenvOnce sync.Once
)

// Load populates the configuration struct from environment variables and
// caches the result, so each configuration type is parsed at most once per
// process. The default .env file is loaded lazily before the first parse;
// a missing .env file is not an error.
//
// Example:
//
//	var cfg sessions.Config
//	if err := config.Load(&cfg); err != nil {
//		// handle error
//	}
func Load[T any](v *T) error {
	if v == nil {
		return ErrNilPointer
	}

	dotenvOnce.Do(func() {
		_ = godotenv.Load()
	})

	key := typeName[T]()

	mu.RLock()
	cached, ok := loaded[key]
	mu.RUnlock()
	if ok {
		*v = cached.(T)
		return nil
	}

	mu.Lock()
	defer mu.Unlock()

	// Re-check under the write lock; a concurrent Load may have won.
	if cached, ok := loaded[key]; ok {
		*v = cached.(T)
		return nil
	}

	if err := env.Parse(v); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}

	loaded[key] = *v
	return nil
}

// MustLoad works like Load but panics on failure. Intended for configuration
// without which the process cannot start.
func MustLoad[T any](v *T) {
	if err := Load(v); err != nil {
		panic(fmt.Sprintf("failed to load required configuration: %v", err))
	}
}

// Reset drops every cached configuration so the next Load re-reads the
// environment. Tests that mutate the environment between loads rely on this.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	loaded = make(map[string]any)
}

func typeName[T any]() string {
	t := reflect.TypeOf(*new(T))
	if t == nil {
		return fmt.Sprintf("%T", *new(T))
	}
	return t.String()
}
