package observability

import (
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"strings"
	"sync"
)

var (
	observers = map[string]Observer{
		"noop": NoOpObserver{},
		"slog": NewSlogObserver(slog.Default()),
	}
	mutex sync.RWMutex
)

// GetObserver resolves an observer by the name a form Config carries.
// "noop" and "slog" are always available.
func GetObserver(name string) (Observer, error) {
	mutex.RLock()
	defer mutex.RUnlock()

	obs, exists := observers[name]
	if !exists {
		return nil, fmt.Errorf("%w: %q (registered: %s)", ErrUnknownObserver, name, strings.Join(names(), ", "))
	}
	return obs, nil
}

// RegisterObserver adds or replaces a named observer. A nil observer
// removes the name; "noop" and "slog" cannot be removed.
func RegisterObserver(name string, observer Observer) {
	mutex.Lock()
	defer mutex.Unlock()

	if observer == nil {
		if name != "noop" && name != "slog" {
			delete(observers, name)
		}
		return
	}
	observers[name] = observer
}

// Names lists the registered observer names in sorted order.
func Names() []string {
	mutex.RLock()
	defer mutex.RUnlock()
	return names()
}

func names() []string {
	return slices.Sorted(maps.Keys(observers))
}
