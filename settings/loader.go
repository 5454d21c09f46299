// Package settings loads Codec settings from YAML, TOML, or JSON files.
//
// Usage:
//
//	s, err := settings.Load("strictjson.yaml")
//	if err != nil { ... }
//	c, err := strictjson.NewFromSettings(s)
//
// A settings file looks like:
//
//	backend: go-json
//	depth: 64
//	flags: [pretty_print, escape_slashes]
//	max_file_size: 1048576
package settings

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/go-viper/mapstructure/v2"
	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/rbaliyan/strictjson/codec"
)

// Settings configures a Codec.
type Settings struct {
	Backend     string   `mapstructure:"backend"`
	Depth       int      `mapstructure:"depth"`
	Flags       []string `mapstructure:"flags"`
	MaxFileSize int64    `mapstructure:"max_file_size"`
}

// Default returns the settings of a Codec created without options.
func Default() *Settings {
	return &Settings{
		Backend: codec.DefaultName,
		Depth:   512,
	}
}

// Validate checks that every field holds a usable value.
func (s *Settings) Validate() error {
	if codec.Get(s.Backend) == nil {
		return fmt.Errorf("settings: unknown backend %q (registered: %v)", s.Backend, codec.Names())
	}
	if s.Depth <= 0 {
		return fmt.Errorf("settings: depth must be positive, got %d", s.Depth)
	}
	if s.MaxFileSize < 0 {
		return fmt.Errorf("settings: max_file_size must not be negative, got %d", s.MaxFileSize)
	}
	if _, err := codec.ParseFlags(s.Flags); err != nil {
		return fmt.Errorf("settings: %w", err)
	}
	return nil
}

// ParsedFlags combines Flags into a codec.Flags value.
func (s *Settings) ParsedFlags() (codec.Flags, error) {
	return codec.ParseFlags(s.Flags)
}

// Load reads the settings file at path. The format is detected from the
// extension (.yaml, .yml, .toml, .json) unless WithFormat is given.
// Fields missing from the file keep their Default values.
func Load(path string, opts ...Option) (*Settings, error) {
	o := newLoaderOptions(opts)
	if o.format == "" {
		o.format = strings.TrimPrefix(filepath.Ext(path), ".")
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("settings: open %s: %w", path, err)
	}
	defer f.Close()

	s, err := load(f, o)
	if err != nil {
		return nil, err
	}
	o.logger.Debug("settings: loaded", "path", path, "backend", s.Backend, "depth", s.Depth)
	return s, nil
}

// LoadReader reads settings from r. The format must be set via WithFormat.
func LoadReader(r io.Reader, opts ...Option) (*Settings, error) {
	return load(r, newLoaderOptions(opts))
}

func load(r io.Reader, o loaderOptions) (*Settings, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("settings: read: %w", err)
	}

	format := normalizeFormat(o.format)
	if format == "" {
		return nil, fmt.Errorf("settings: cannot detect format; use WithFormat option")
	}

	raw, err := parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("settings: parse %s: %w", format, err)
	}

	var input any = raw
	if o.section != "" {
		section, ok := raw[o.section]
		if !ok {
			o.logger.Warn("settings: section not found, using defaults", "section", o.section)
			return Default(), nil
		}
		input = section
	}

	s := Default()
	if err := decode(input, s, o.strict); err != nil {
		return nil, fmt.Errorf("settings: unmarshal: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// normalizeFormat normalizes format names.
func normalizeFormat(format string) string {
	switch strings.ToLower(format) {
	case "yaml", "yml":
		return "yaml"
	case "toml":
		return "toml"
	case "json":
		return "json"
	default:
		return ""
	}
}

// parse decodes raw bytes into a map based on the format.
func parse(data []byte, format string) (map[string]any, error) {
	var raw map[string]any

	switch format {
	case "yaml":
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
	case "toml":
		if _, err := toml.Decode(string(data), &raw); err != nil {
			return nil, err
		}
	case "json":
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}

	if raw == nil {
		raw = make(map[string]any)
	}
	return raw, nil
}

// decode uses mapstructure to decode a raw value into the settings.
func decode(input any, output *Settings, strict bool) error {
	config := &mapstructure.DecoderConfig{
		Result:           output,
		TagName:          "mapstructure",
		WeaklyTypedInput: true,
		ErrorUnused:      strict,
	}

	decoder, err := mapstructure.NewDecoder(config)
	if err != nil {
		return err
	}
	return decoder.Decode(input)
}
