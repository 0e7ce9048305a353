// Package main provides the mlkem-cli command line interface for ML-KEM
// operations: key generation, encapsulation, decapsulation, parameter
// inspection and benchmarking.
package main

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	mlkem "github.com/BackendStack21/ml-kem-go"
	"github.com/BackendStack21/ml-kem-go/core"
	"github.com/BackendStack21/ml-kem-go/kem"
)

const (
	version = "1.0.0"
	appName = "mlkem-cli"
)

var logger zerolog.Logger

// OutputFormat selects how command results are written.
type OutputFormat string

const (
	// FormatJSON wraps results in an indented JSON export object.
	FormatJSON OutputFormat = "json"
	// FormatHex writes the bare hex values, one per line.
	FormatHex OutputFormat = "hex"
)

// KeyPairExport is the JSON envelope written by the keygen command.
type KeyPairExport struct {
	SecurityLevel string `json:"security_level"`
	PublicKey     string `json:"public_key"`
	PrivateKey    string `json:"private_key"`
	CreatedAt     string `json:"created_at"`
}

// EncapsulationExport is the JSON envelope written by the encaps command.
type EncapsulationExport struct {
	SecurityLevel string `json:"security_level"`
	Ciphertext    string `json:"ciphertext"`
	SharedSecret  string `json:"shared_secret"`
}

// DecapsulationExport is the JSON envelope written by the decaps command.
type DecapsulationExport struct {
	SharedSecret string `json:"shared_secret"`
}

// ParameterInfo is one entry of the info command output.
type ParameterInfo struct {
	mlkem.Params
	PublicKeyBytes    int `json:"public_key_bytes"`
	PrivateKeyBytes   int `json:"private_key_bytes"`
	CiphertextBytes   int `json:"ciphertext_bytes"`
	SharedSecretBytes int `json:"shared_secret_bytes"`
}

// BenchmarkResult holds the measured averages for one parameter set.
type BenchmarkResult struct {
	Level      string  `json:"level"`
	Iterations int     `json:"iterations"`
	KeyGenUs   float64 `json:"keygen_us"`
	EncapsUs   float64 `json:"encaps_us"`
	DecapsUs   float64 `json:"decaps_us"`
}

// cliDefaults mirrors the optional TOML configuration file.
type cliDefaults struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

var levelFlag = &cli.StringFlag{
	Name:  "level",
	Value: string(mlkem.MLKEM768),
	Usage: "security level: 512, 768 or 1024 (or the full ML-KEM-* name)",
}

var formatFlag = &cli.StringFlag{
	Name:  "format",
	Value: string(FormatJSON),
	Usage: "output format: json (export object) or hex (bare values)",
}

var outFlag = &cli.StringFlag{
	Name:  "out",
	Usage: "write the result to a file instead of stdout",
}

var configFlag = &cli.StringFlag{
	Name:  "config",
	Usage: "TOML file providing default level and format",
}

var publicKeyFlag = &cli.StringFlag{
	Name:     "public-key",
	Usage:    "encapsulation key: hex string, hex file, or keygen JSON file",
	Required: true,
}

var privateKeyFlag = &cli.StringFlag{
	Name:     "private-key",
	Usage:    "decapsulation key: hex string, hex file, or keygen JSON file",
	Required: true,
}

var ciphertextFlag = &cli.StringFlag{
	Name:     "ciphertext",
	Usage:    "ciphertext: hex string, hex file, or encaps JSON file",
	Required: true,
}

var iterationsFlag = &cli.IntFlag{
	Name:  "iterations",
	Value: 50,
	Usage: "number of measured iterations per operation",
}

var chartFlag = &cli.StringFlag{
	Name:  "chart",
	Usage: "additionally render the benchmark as an HTML bar chart",
}

var logLevelFlag = &cli.StringFlag{
	Name:  "log-level",
	Value: "info",
	Usage: "log verbosity: debug, info, warn or error",
}

func main() {
	if err := CLI().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", appName, err)
		os.Exit(1)
	}
}

// CLI builds the mlkem-cli application.
func CLI() *cli.App {
	app := cli.NewApp()
	app.Name = appName
	app.Version = version
	app.Usage = "ML-KEM (FIPS 203) key encapsulation operations"
	cli.VersionPrinter = func(c *cli.Context) {
		fmt.Fprintf(c.App.Writer, "%s version %s (ml-kem-go %s)\n", appName, version, mlkem.Version)
	}

	app.Flags = toArray(logLevelFlag)
	app.Before = setupLogger
	app.Commands = []*cli.Command{
		{
			Name:   "keygen",
			Usage:  "Generate a new ML-KEM key pair.",
			Flags:  toArray(levelFlag, formatFlag, outFlag, configFlag),
			Action: keygenCmd,
		},
		{
			Name:    "encaps",
			Aliases: []string{"encapsulate"},
			Usage:   "Derive a fresh shared secret and its ciphertext for a public key.",
			Flags:   toArray(levelFlag, formatFlag, outFlag, configFlag, publicKeyFlag),
			Action:  encapsCmd,
		},
		{
			Name:    "decaps",
			Aliases: []string{"decapsulate"},
			Usage:   "Recover the shared secret from a ciphertext.",
			Flags:   toArray(levelFlag, formatFlag, outFlag, configFlag, privateKeyFlag, ciphertextFlag),
			Action:  decapsCmd,
		},
		{
			Name:   "info",
			Usage:  "Print the standardized parameter sets and byte sizes.",
			Flags:  toArray(levelFlag, outFlag, configFlag),
			Action: infoCmd,
		},
		{
			Name:   "benchmark",
			Usage:  "Measure KeyGen/Encaps/Decaps latency across all parameter sets.",
			Flags:  toArray(iterationsFlag, outFlag, chartFlag),
			Action: benchmarkCmd,
		},
	}
	return app
}

func setupLogger(c *cli.Context) error {
	lvl, err := zerolog.ParseLevel(c.String(logLevelFlag.Name))
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", c.String(logLevelFlag.Name), err)
	}
	w := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	logger = zerolog.New(w).With().Timestamp().Logger().Level(lvl)
	return nil
}

// =============================================================================
// Commands
// =============================================================================

func keygenCmd(c *cli.Context) error {
	cfg, err := resolveConfig(c)
	if err != nil {
		return err
	}

	start := time.Now()
	kp, err := kem.GenerateKeyPair(cfg.level)
	if err != nil {
		return fmt.Errorf("generate key pair: %w", err)
	}
	logger.Debug().Dur("elapsed", time.Since(start)).Msg("key pair generated")

	pkBytes := kp.PublicKey.Bytes()
	skBytes := kp.PrivateKey.Bytes()
	logger.Info().
		Str("level", string(cfg.level)).
		Int("public_key_bytes", len(pkBytes)).
		Int("private_key_bytes", len(skBytes)).
		Msg("generated key pair")

	if cfg.format == FormatHex {
		out := hex.EncodeToString(pkBytes) + "\n" + hex.EncodeToString(skBytes) + "\n"
		return writeOutput([]byte(out), cfg.out)
	}
	export := KeyPairExport{
		SecurityLevel: string(cfg.level),
		PublicKey:     hex.EncodeToString(pkBytes),
		PrivateKey:    hex.EncodeToString(skBytes),
		CreatedAt:     time.Now().UTC().Format(time.RFC3339),
	}
	return writeJSON(export, cfg.out)
}

func encapsCmd(c *cli.Context) error {
	cfg, err := resolveConfig(c)
	if err != nil {
		return err
	}

	pkBytes, err := loadMaterial(c.String(publicKeyFlag.Name), "public_key")
	if err != nil {
		return fmt.Errorf("load public key: %w", err)
	}
	pk, err := kem.ParsePublicKey(cfg.level, pkBytes)
	if err != nil {
		return fmt.Errorf("parse public key: %w", err)
	}

	start := time.Now()
	res, err := kem.Encapsulate(pk)
	if err != nil {
		return fmt.Errorf("encapsulate: %w", err)
	}
	logger.Debug().Dur("elapsed", time.Since(start)).Msg("encapsulation done")
	logger.Info().
		Str("level", string(cfg.level)).
		Int("ciphertext_bytes", len(res.Ciphertext)).
		Msg("encapsulated shared secret")

	if cfg.format == FormatHex {
		out := hex.EncodeToString(res.Ciphertext) + "\n" + hex.EncodeToString(res.SharedSecret) + "\n"
		return writeOutput([]byte(out), cfg.out)
	}
	export := EncapsulationExport{
		SecurityLevel: string(cfg.level),
		Ciphertext:    hex.EncodeToString(res.Ciphertext),
		SharedSecret:  hex.EncodeToString(res.SharedSecret),
	}
	return writeJSON(export, cfg.out)
}

func decapsCmd(c *cli.Context) error {
	cfg, err := resolveConfig(c)
	if err != nil {
		return err
	}

	skBytes, err := loadMaterial(c.String(privateKeyFlag.Name), "private_key")
	if err != nil {
		return fmt.Errorf("load private key: %w", err)
	}
	sk, err := kem.ParsePrivateKey(cfg.level, skBytes)
	if err != nil {
		return fmt.Errorf("parse private key: %w", err)
	}

	ct, err := loadMaterial(c.String(ciphertextFlag.Name), "ciphertext")
	if err != nil {
		return fmt.Errorf("load ciphertext: %w", err)
	}

	start := time.Now()
	ss, err := kem.Decapsulate(sk, ct)
	if err != nil {
		return fmt.Errorf("decapsulate: %w", err)
	}
	logger.Debug().Dur("elapsed", time.Since(start)).Msg("decapsulation done")

	if cfg.format == FormatHex {
		return writeOutput([]byte(hex.EncodeToString(ss)+"\n"), cfg.out)
	}
	return writeJSON(DecapsulationExport{SharedSecret: hex.EncodeToString(ss)}, cfg.out)
}

func infoCmd(c *cli.Context) error {
	levels := core.Levels()
	if c.IsSet(levelFlag.Name) {
		level, err := parseLevel(c.String(levelFlag.Name))
		if err != nil {
			return err
		}
		levels = []mlkem.SecurityLevel{level}
	}

	infos := make([]ParameterInfo, 0, len(levels))
	for _, level := range levels {
		params, err := core.GetParams(level)
		if err != nil {
			return err
		}
		infos = append(infos, ParameterInfo{
			Params:            params,
			PublicKeyBytes:    params.PublicKeySize(),
			PrivateKeyBytes:   params.PrivateKeySize(),
			CiphertextBytes:   params.CiphertextSize(),
			SharedSecretBytes: mlkem.SharedSecretSize,
		})
	}
	return writeJSON(infos, c.String(outFlag.Name))
}

func benchmarkCmd(c *cli.Context) error {
	iterations := c.Int(iterationsFlag.Name)
	if iterations < 1 {
		iterations = 1
	}

	results := make([]BenchmarkResult, 0, len(core.Levels()))
	for _, level := range core.Levels() {
		res, err := benchmarkLevel(level, iterations)
		if err != nil {
			return fmt.Errorf("benchmark %s: %w", level, err)
		}
		logger.Info().
			Str("level", res.Level).
			Float64("keygen_us", res.KeyGenUs).
			Float64("encaps_us", res.EncapsUs).
			Float64("decaps_us", res.DecapsUs).
			Msg("benchmark complete")
		results = append(results, res)
	}

	if path := c.String(chartFlag.Name); path != "" {
		if err := renderBenchmarkChart(path, results, iterations); err != nil {
			return fmt.Errorf("render chart: %w", err)
		}
		logger.Info().Str("path", path).Msg("chart written")
	}
	return writeJSON(results, c.String(outFlag.Name))
}

func benchmarkLevel(level mlkem.SecurityLevel, iterations int) (BenchmarkResult, error) {
	var keygenTotal, encapsTotal, decapsTotal time.Duration

	var kp *kem.KeyPair
	for i := 0; i < iterations; i++ {
		start := time.Now()
		var err error
		kp, err = kem.GenerateKeyPair(level)
		keygenTotal += time.Since(start)
		if err != nil {
			return BenchmarkResult{}, err
		}
	}

	var res *kem.EncapsulationResult
	for i := 0; i < iterations; i++ {
		start := time.Now()
		var err error
		res, err = kem.Encapsulate(&kp.PublicKey)
		encapsTotal += time.Since(start)
		if err != nil {
			return BenchmarkResult{}, err
		}
	}

	for i := 0; i < iterations; i++ {
		start := time.Now()
		_, err := kem.Decapsulate(&kp.PrivateKey, res.Ciphertext)
		decapsTotal += time.Since(start)
		if err != nil {
			return BenchmarkResult{}, err
		}
	}

	avg := func(total time.Duration) float64 {
		return float64(total.Microseconds()) / float64(iterations)
	}
	return BenchmarkResult{
		Level:      string(level),
		Iterations: iterations,
		KeyGenUs:   avg(keygenTotal),
		EncapsUs:   avg(encapsTotal),
		DecapsUs:   avg(decapsTotal),
	}, nil
}

func toBarItems(vals []float64) []opts.BarData {
	out := make([]opts.BarData, len(vals))
	for i, v := range vals {
		out[i] = opts.BarData{Value: v}
	}
	return out
}

func renderBenchmarkChart(path string, results []BenchmarkResult, iterations int) error {
	levels := make([]string, len(results))
	keygen := make([]float64, len(results))
	encaps := make([]float64, len(results))
	decaps := make([]float64, len(results))
	for i, r := range results {
		levels[i] = r.Level
		keygen[i] = r.KeyGenUs
		encaps[i] = r.EncapsUs
		decaps[i] = r.DecapsUs
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "ML-KEM operation latency",
			Subtitle: fmt.Sprintf("average over %d iterations, microseconds", iterations),
		}),
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "ML-KEM benchmark", Width: "900px", Height: "500px"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	bar.SetXAxis(levels).
		AddSeries("KeyGen", toBarItems(keygen)).
		AddSeries("Encapsulate", toBarItems(encaps)).
		AddSeries("Decapsulate", toBarItems(decaps))

	page := components.NewPage()
	page.AddCharts(bar)

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return page.Render(f)
}

// =============================================================================
// Configuration and I/O helpers
// =============================================================================

type runConfig struct {
	level  mlkem.SecurityLevel
	format OutputFormat
	out    string
}

// resolveConfig merges flag values with the optional TOML defaults file.
// Explicit flags win over the file; the file wins over built-in defaults.
func resolveConfig(c *cli.Context) (runConfig, error) {
	levelStr := c.String(levelFlag.Name)
	formatStr := c.String(formatFlag.Name)

	if path := c.String(configFlag.Name); path != "" {
		var d cliDefaults
		if _, err := toml.DecodeFile(path, &d); err != nil {
			return runConfig{}, fmt.Errorf("read config %s: %w", path, err)
		}
		if !c.IsSet(levelFlag.Name) && d.Level != "" {
			levelStr = d.Level
		}
		if !c.IsSet(formatFlag.Name) && d.Format != "" {
			formatStr = d.Format
		}
	}

	level, err := parseLevel(levelStr)
	if err != nil {
		return runConfig{}, err
	}
	format, err := parseFormat(formatStr)
	if err != nil {
		return runConfig{}, err
	}
	return runConfig{level: level, format: format, out: c.String(outFlag.Name)}, nil
}

func parseLevel(s string) (mlkem.SecurityLevel, error) {
	switch s {
	case "512", string(mlkem.MLKEM512):
		return mlkem.MLKEM512, nil
	case "768", string(mlkem.MLKEM768):
		return mlkem.MLKEM768, nil
	case "1024", string(mlkem.MLKEM1024):
		return mlkem.MLKEM1024, nil
	default:
		return "", fmt.Errorf("invalid security level %q: must be one of 512, 768, 1024", s)
	}
}

func parseFormat(s string) (OutputFormat, error) {
	switch OutputFormat(s) {
	case FormatJSON:
		return FormatJSON, nil
	case FormatHex:
		return FormatHex, nil
	default:
		return "", fmt.Errorf("invalid format %q: must be json or hex", s)
	}
}

// loadMaterial resolves a flag value into raw bytes. The value may be a hex
// string, the path of a file containing hex, or the path of a JSON export
// from which jsonField is extracted.
func loadMaterial(src, jsonField string) ([]byte, error) {
	raw := []byte(src)
	if info, err := os.Stat(src); err == nil && info.Mode().IsRegular() {
		raw, err = os.ReadFile(src)
		if err != nil {
			return nil, err
		}
	}

	text := strings.TrimSpace(string(raw))
	if strings.HasPrefix(text, "{") {
		var fields map[string]string
		if err := json.Unmarshal([]byte(text), &fields); err != nil {
			return nil, fmt.Errorf("parse JSON input: %w", err)
		}
		value, ok := fields[jsonField]
		if !ok {
			return nil, fmt.Errorf("JSON input has no %q field", jsonField)
		}
		text = value
	}

	b, err := hex.DecodeString(text)
	if err != nil {
		return nil, fmt.Errorf("decode hex: %w", err)
	}
	return b, nil
}

func writeJSON(v interface{}, path string) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return writeOutput(append(data, '\n'), path)
}

func writeOutput(data []byte, path string) error {
	if path == "" {
		_, err := os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0600)
}

func toArray(flags ...cli.Flag) []cli.Flag {
	return flags
}
