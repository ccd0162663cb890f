// Command mlkemdemo runs one KeyGen/Encaps/Decaps cycle per ML-KEM
// parameter set and reports key and ciphertext sizes. It exists purely as
// a demonstration surface and exercises the exported pqc API the way any
// caller would; it is not part of the cryptographic core.
//
// Usage:
//
//	mlkemdemo [flags]
//
// Flags:
//
//	--paramset   Parameter set: 512, 768, 1024, or all (default: all)
//	--metrics    Print a metrics snapshot (and per-paramset latency
//	             percentiles) after running (default: false)
//	--logformat  pqc debug log rendering: json, text, or color (default: json)
//	--serve      If set, listen address for a Prometheus /metrics endpoint
//	--version    Print version and exit
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	stdlog "log"
	"net/http"
	"os"

	"github.com/eth2030/mlkem/crypto/pqc"
	"github.com/eth2030/mlkem/log"
	"github.com/eth2030/mlkem/metrics"
)

var version = "v0.1.0-dev"

func main() {
	os.Exit(run(os.Args[1:]))
}

// run is the actual entry point, returning an exit code. Accepts CLI
// arguments (without the program name) so it can be tested in isolation.
func run(args []string) int {
	cfg, exit, code := parseFlags(args)
	if exit {
		return code
	}

	stdlog.SetFlags(0)

	if err := applyLogFormat(cfg.LogFormat); err != nil {
		stdlog.Printf("%v", err)
		return 1
	}

	var server *http.Server
	if cfg.Serve != "" {
		server = startMetricsServer(cfg.Serve)
		defer server.Close()
	}

	sets, err := resolveParamSets(cfg.ParamSet)
	if err != nil {
		stdlog.Printf("%v", err)
		return 1
	}

	for _, p := range sets {
		if err := runOne(p); err != nil {
			stdlog.Printf("%s: %v", p, err)
			return 1
		}
	}

	if cfg.Metrics {
		printMetricsSnapshot(sets)
	}
	return 0
}

// applyLogFormat switches crypto/pqc's debug/warn logger to render through
// the requested log.LogFormatter instead of the default slog JSON handler.
func applyLogFormat(format string) error {
	switch format {
	case "", "json":
		// default: pqc already logs through log.Default().Module("pqc")
		return nil
	case "text":
		pqc.SetLogger(log.NewWithFormatter(&log.TextFormatter{}).Module("pqc"))
	case "color":
		pqc.SetLogger(log.NewWithFormatter(&log.ColorFormatter{}).Module("pqc"))
	default:
		return fmt.Errorf("unknown -logformat %q (want json, text, or color)", format)
	}
	return nil
}

// startMetricsServer serves the Prometheus text-exposition format at
// addr's /metrics path, backed by the same DefaultRegistry every
// crypto/pqc and internal/kpke counter writes into.
func startMetricsServer(addr string) *http.Server {
	exporter := metrics.NewPrometheusExporter(metrics.DefaultRegistry, metrics.DefaultPrometheusConfig())
	server := &http.Server{Addr: addr, Handler: exporter.Handler()}
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			stdlog.Printf("metrics server: %v", err)
		}
	}()
	stdlog.Printf("metrics server listening on %s%s", addr, metrics.DefaultPrometheusConfig().Path)
	return server
}

func runOne(p pqc.ParameterSet) error {
	kp, err := pqc.GenerateKeyPair(p)
	if err != nil {
		return fmt.Errorf("keygen: %w", err)
	}
	defer kp.Zero()

	K1, ct, err := pqc.Encapsulate(p, kp.EncapsulationKey)
	if err != nil {
		return fmt.Errorf("encaps: %w", err)
	}

	K2, err := pqc.Decapsulate(p, kp.DecapsulationKey, ct)
	if err != nil {
		return fmt.Errorf("decaps: %w", err)
	}

	match := bytes.Equal(K1, K2)
	stdlog.Printf("%s: ek=%dB dk=%dB c=%dB K=%dB shared-secret-match=%v",
		p, len(kp.EncapsulationKey), len(kp.DecapsulationKey), len(ct), len(K1), match)
	if !match {
		return fmt.Errorf("shared secrets diverged between encaps and decaps")
	}
	return nil
}

func resolveParamSets(name string) ([]pqc.ParameterSet, error) {
	switch name {
	case "512":
		return []pqc.ParameterSet{pqc.MLKEM512}, nil
	case "768":
		return []pqc.ParameterSet{pqc.MLKEM768}, nil
	case "1024":
		return []pqc.ParameterSet{pqc.MLKEM1024}, nil
	case "all":
		return []pqc.ParameterSet{pqc.MLKEM512, pqc.MLKEM768, pqc.MLKEM1024}, nil
	default:
		return nil, fmt.Errorf("unknown parameter set %q (want 512, 768, 1024, or all)", name)
	}
}

func printMetricsSnapshot(sets []pqc.ParameterSet) {
	snap := metrics.DefaultRegistry.Snapshot()
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(snap)

	for _, op := range []string{"keygen", "encaps", "decaps"} {
		for _, p := range sets {
			key := "mlkem." + op + "_us." + p.String()
			p50 := metrics.OperationCollector.HistogramPercentile(key, 50)
			p99 := metrics.OperationCollector.HistogramPercentile(key, 99)
			if p50 == 0 && p99 == 0 {
				continue
			}
			stdlog.Printf("%-6s %-12s p50=%.1fus p99=%.1fus", op, p.String(), p50, p99)
		}
	}
}

// parseFlags parses CLI arguments into a demoConfig. Returns the config,
// whether the caller should exit immediately, and the exit code.
func parseFlags(args []string) (demoConfig, bool, int) {
	cfg := defaultDemoConfig()
	fs := newFlagSet(&cfg)
	showVersion := fs.Bool("version", false, "print version and exit")

	if err := fs.Parse(args); err != nil {
		return cfg, true, 2
	}
	if *showVersion {
		fmt.Println(version)
		return cfg, true, 0
	}
	return cfg, false, 0
}
