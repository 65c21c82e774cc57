package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/stratumcfg/stratum"
	"github.com/stratumcfg/stratum/source"
	"github.com/stratumcfg/stratum/source/etcd"
)

// buildStack assembles the layer stack the flags describe, lowest precedence
// first: defaults, then each --source in order, then environment, then the
// command-line layer.
func buildStack(flags *stackFlags) (*stratum.Config, error) {
	var specs []stratum.LayerSpec
	add := func(name string, src source.Source) {
		if name == flags.WriteTo {
			specs = append(specs, stratum.WritableLayer(name, src))
			return
		}
		specs = append(specs, stratum.Layer(name, src))
	}

	if len(flags.Defaults) > 0 {
		defaults, err := parseDefaults(flags.Defaults)
		if err != nil {
			return nil, err
		}
		add("defaults", defaults)
	}

	for _, spec := range flags.Sources {
		src, err := openSource(spec, flags)
		if err != nil {
			return nil, err
		}
		// The layer keeps the spec string as its name so --write-to and
		// provenance output can refer to it unambiguously.
		add(spec, src)
	}

	if flags.EnvPrefix != "" {
		var opts []source.EnvOption
		if flags.EnvEmptyUnset {
			opts = append(opts, source.EmptyIsUnset())
		}
		add("env", source.NewEnvironment(flags.EnvPrefix, opts...))
	}

	if len(flags.Sets) > 0 || len(flags.Unsets) > 0 {
		values := make(map[string]string, len(flags.Sets))
		for _, entry := range flags.Sets {
			path, value, ok := strings.Cut(entry, "=")
			if !ok {
				return nil, fmt.Errorf("--set %q: want path=value", entry)
			}
			values[path] = value
		}
		args := source.NewArgs(values)
		for _, path := range flags.Unsets {
			args.Unset(path)
		}
		add("args", args)
	}

	if len(specs) == 0 {
		return nil, fmt.Errorf("no layers: give at least one --source, --default, --env-prefix, or --set")
	}

	cfg, err := stratum.New(specs...)
	if err != nil {
		return nil, err
	}
	if flags.WriteTo != "" && cfg.WritableLayerName() == "" {
		return nil, fmt.Errorf("--write-to %q matches no layer", flags.WriteTo)
	}
	if flags.Verbose {
		logger, err := zap.NewDevelopment()
		if err != nil {
			return nil, fmt.Errorf("build logger: %w", err)
		}
		cfg.WithLogger(logger)
	}
	return cfg, nil
}

func openSource(spec string, flags *stackFlags) (source.Source, error) {
	kind, ref, ok := strings.Cut(spec, ":")
	if !ok {
		return nil, fmt.Errorf("--source %q: want kind:ref", spec)
	}
	switch kind {
	case "ini":
		return source.NewINIFile(ref), nil
	case "json":
		return source.NewJSONFile(ref), nil
	case "yaml", "yml":
		return source.NewYAMLFile(ref), nil
	case "etcd":
		timeout, err := time.ParseDuration(flags.EtcdTimeout)
		if err != nil {
			return nil, fmt.Errorf("--etcd-timeout %q: %w", flags.EtcdTimeout, err)
		}
		opts := []etcd.Option{
			etcd.WithPrefix(flags.EtcdPrefix),
			etcd.WithTimeout(timeout),
		}
		return etcd.New(ref, opts...), nil
	}
	return nil, fmt.Errorf("--source %q: unknown kind %q", spec, kind)
}

// parseDefaults seeds the defaults layer from path=value entries. Values get
// a best-effort native type so the layer can act as the stack's type oracle:
// integers, floats, and booleans parse; everything else stays a string.
func parseDefaults(entries []string) (*source.Defaults, error) {
	defaults := source.NewDefaults(nil)
	for _, entry := range entries {
		path, raw, ok := strings.Cut(entry, "=")
		if !ok {
			return nil, fmt.Errorf("--default %q: want path=value", entry)
		}
		if err := defaults.Write(source.ParsePath(path), guessType(raw)); err != nil {
			return nil, fmt.Errorf("--default %q: %w", entry, err)
		}
	}
	return defaults, nil
}

func guessType(raw string) any {
	if n, err := strconv.Atoi(raw); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return f
	}
	switch strings.ToLower(raw) {
	case "true":
		return true
	case "false":
		return false
	}
	return raw
}
