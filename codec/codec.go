// Package codec provides the JSON backends that strictjson validates and
// classifies. A backend serializes and parses JSON and reports each failure
// as a Status instead of an arbitrary error value.
package codec

import (
	"sort"
	"sync"
)

// DefaultName is the name of the backend returned by Default.
const DefaultName = "go-json"

// Codec is a JSON backend.
type Codec interface {
	// Name returns the backend identifier (e.g., "go-json").
	Name() string

	// Serialize encodes v as JSON. Nesting deeper than depth is a failure.
	Serialize(v any, flags Flags, depth int) ([]byte, Report)

	// Parse decodes data. Objects become map[string]any when mapping is true
	// and *Record otherwise. Nesting deeper than depth is a failure.
	Parse(data []byte, mapping bool, flags Flags, depth int) (any, Report)
}

var (
	registryMu sync.RWMutex
	registry   = make(map[string]Codec)
)

// Register adds a backend to the global registry.
// Panics if name is empty or codec is nil.
func Register(codec Codec) {
	if codec == nil {
		panic("codec: Register codec is nil")
	}
	name := codec.Name()
	if name == "" {
		panic("codec: Register codec name is empty")
	}

	registryMu.Lock()
	defer registryMu.Unlock()

	registry[name] = codec
}

// Get retrieves a backend by name from the registry.
// Returns nil if not found.
func Get(name string) Codec {
	registryMu.RLock()
	defer registryMu.RUnlock()

	return registry[name]
}

// Names returns the sorted names of all registered backends.
func Names() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Default returns the default backend (go-json).
func Default() Codec {
	return Get(DefaultName)
}
