package cli

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"
)

// loadYAML is a [kong.ConfigurationLoader] that parses YAML config files.
//
// It can be used with [kong.Configuration] like this:
//
//	kong.Configuration(loadYAML, "/path/to/config.yaml")
//
// Keys name flags without the leading dashes. Hyphens and underscores are
// interchangeable, and nested mappings are joined with hyphens, so the
// following documents are equivalent:
//
//	log-level: debug
//
//	log_level: debug
//
//	log:
//	  level: debug
//
// A mapping under the name of a map-valued flag (such as define) supplies
// its entries:
//
//	define:
//	  a: 1
//	  b: 2.5
//
// Command-line flags override config file values.
func loadYAML(r io.Reader) (kong.Resolver, error) {
	var doc map[string]any

	err := yaml.NewDecoder(r).Decode(&doc)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg := config{}
	for key, value := range doc {
		cfg.add(normalize(key), value)
	}

	return cfg, nil
}

// config implements [kong.Resolver] for YAML configs.
//
// Values are stored in the form Kong expects from a resolver: scalars as
// strings and mappings as "key=value" pairs joined by ";".
type config map[string]any

func normalize(key string) string {
	return strings.ReplaceAll(strings.ToLower(key), "_", "-")
}

// add stores value under key. Mappings are stored both as a whole, for
// map-valued flags, and flattened into hyphen-joined keys.
func (c config) add(key string, value any) {
	m, ok := value.(map[string]any)
	if !ok {
		c[key] = scalar(value)

		return
	}

	pairs := make([]string, 0, len(m))

	for _, k := range slices.Sorted(maps.Keys(m)) {
		pairs = append(pairs, k+"="+fmt.Sprint(scalar(m[k])))
		c.add(key+"-"+normalize(k), m[k])
	}

	c[key] = strings.Join(pairs, ";")
}

// scalar converts YAML numbers to strings, which Kong requires for parsing.
func scalar(value any) any {
	switch v := value.(type) {
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	case []any:
		parts := make([]string, len(v))
		for i, e := range v {
			parts[i] = fmt.Sprint(scalar(e))
		}

		return strings.Join(parts, ",")
	default:
		return v
	}
}

// Validate implements [kong.Resolver].
func (config) Validate(*kong.Application) error {
	return nil
}

// Resolve implements [kong.Resolver].
func (c config) Resolve(
	_ *kong.Context,
	_ *kong.Path,
	flag *kong.Flag,
) (any, error) {
	// Not found returns nil to let Kong use defaults
	if value, ok := c[normalize(flag.Name)]; ok {
		return value, nil
	}

	return nil, nil
}
