// Package stratum gives an application one uniform, mapping-like view over
// configuration values that live in several heterogeneous sources: built-in
// defaults, INI/JSON/YAML files, environment variables, command-line
// arguments, and an etcd-style remote key-value store.
//
// A stack is assembled once from ordered layers and is immutable afterwards.
// Layers are listed lowest precedence first: for any path defined by several
// layers, the layer listed last wins. This matches the conventional
// defaults < config file < environment < command line ordering:
//
//	cfg, err := stratum.New(
//		stratum.Layer("defaults", source.NewDefaults(map[string]any{
//			"server": map[string]any{"port": 8080, "timeout": 30 * time.Second},
//		})),
//		stratum.WritableLayer("file", source.NewYAMLFile("app.yaml")),
//		stratum.Layer("env", source.NewEnvironment("MYAPP")),
//	)
//
//	port, err := cfg.GetInt("server.port")
//	err = cfg.Set("server.port", 9090) // routed to the "file" layer
//
// Values read from string-only backends are coerced on the fly: either to an
// explicitly requested type (GetInt, GetBool, ...) or to the type of the
// same key in the closest typed layer, usually the defaults.
//
// Every operation is synchronous and blocks for the duration of the
// underlying adapter calls; a stack performs no internal locking. Callers
// sharing one stack across goroutines must serialize access themselves.
package stratum
