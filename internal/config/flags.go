package config

import "flag"

var (
	flagConfig    = flag.String("config", "", "Path to config file")
	flagDebug     = flag.Bool("debug", false, "Enable debug logging")
	flagSize      = flag.Int("size", 0, "Height field size (2^k+1)")
	flagLevels    = flag.Int("levels", 0, "Number of contour levels")
	flagRoughness = flag.Float64("roughness", -1, "Initial displacement amplitude [0,1]")
	flagHurst     = flag.Float64("hurst", -1, "Displacement decay exponent [0,1]")
	flagSeed      = flag.Uint64("seed", 0, "Random seed (0 = random)")
	flagAddr      = flag.String("addr", "", "Websocket listen address")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// Args returns the non-flag command-line arguments.
func Args() []string {
	return flag.Args()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagSize > 0 {
		cfg.Terrain.Size = *flagSize
	}
	if *flagLevels > 0 {
		cfg.Terrain.Levels = *flagLevels
	}
	if *flagRoughness >= 0 {
		cfg.Terrain.Roughness = float32(*flagRoughness)
	}
	if *flagHurst >= 0 {
		cfg.Terrain.Hurst = float32(*flagHurst)
	}
	if *flagSeed != 0 {
		cfg.Terrain.Seed = *flagSeed
	}
	if *flagAddr != "" {
		cfg.Server.Addr = *flagAddr
	}
}
