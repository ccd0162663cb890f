package main

import "flag"

// demoConfig holds the resolved CLI configuration for one run of mlkemdemo.
type demoConfig struct {
	ParamSet  string // "512", "768", "1024", or "all"
	Metrics   bool   // print a JSON metrics snapshot plus per-paramset latency percentiles
	LogFormat string // "json" (default, via slog), "text", or "color"
	Serve     string // if non-empty, listen address for a Prometheus /metrics endpoint
}

func defaultDemoConfig() demoConfig {
	return demoConfig{ParamSet: "all", Metrics: false, LogFormat: "json", Serve: ""}
}

// newFlagSet builds the flag.FlagSet for mlkemdemo, binding each flag
// directly into cfg.
func newFlagSet(cfg *demoConfig) *flag.FlagSet {
	fs := flag.NewFlagSet("mlkemdemo", flag.ContinueOnError)
	fs.StringVar(&cfg.ParamSet, "paramset", cfg.ParamSet, "parameter set: 512, 768, 1024, or all")
	fs.BoolVar(&cfg.Metrics, "metrics", cfg.Metrics, "print a metrics snapshot after running")
	fs.StringVar(&cfg.LogFormat, "logformat", cfg.LogFormat, "pqc debug log rendering: json, text, or color")
	fs.StringVar(&cfg.Serve, "serve", cfg.Serve, "if set, listen address (e.g. :9090) for a Prometheus /metrics endpoint")
	return fs
}
