// Package theme resolves and persists the light/dark preference.
package theme

import (
	"log/slog"

	"github.com/cbdev/portfolio/internal/logfields"
)

// Theme is a colour scheme.
type Theme string

const (
	Dark  Theme = "dark"
	Light Theme = "light"
)

// Key is the storage key for the preference.
const Key = "cb-theme"

// LightClass is applied to <body> for the light theme.
const LightClass = "light-theme"

// Parse returns the theme named by s and whether it is known.
func Parse(s string) (Theme, bool) {
	switch Theme(s) {
	case Dark, Light:
		return Theme(s), true
	default:
		return "", false
	}
}

// Toggle returns the other theme.
func (t Theme) Toggle() Theme {
	if t == Light {
		return Dark
	}
	return Light
}

// Store persists the preference. Implementations may fail, for example
// when the client refuses cookies.
type Store interface {
	Get(key string) (string, error)
	Set(key, value string) error
}

// Resolve picks the stored preference when there is one, else the
// client's colour-scheme hint, else dark. A failing store counts as empty.
func Resolve(store Store, prefersLight bool) Theme {
	if t, ok := stored(store); ok {
		return t
	}
	if prefersLight {
		return Light
	}
	return Dark
}

// Flip toggles the current theme and persists it. A failed write is
// logged and the new theme is still returned.
func Flip(store Store, prefersLight bool) Theme {
	next := Resolve(store, prefersLight).Toggle()
	if store != nil {
		if err := store.Set(Key, string(next)); err != nil {
			slog.Warn("Unable to persist theme preference", logfields.Error(err))
		}
	}
	return next
}

// Stored reports whether an explicit preference exists. Only without one
// does a change of the client hint switch the theme.
func Stored(store Store) bool {
	_, ok := stored(store)
	return ok
}

func stored(store Store) (Theme, bool) {
	if store == nil {
		return "", false
	}
	v, err := store.Get(Key)
	if err != nil {
		slog.Warn("Theme storage unavailable", logfields.Error(err))
		return "", false
	}
	return Parse(v)
}
