package config

import "flag"

var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging")
	flagWindowed   = flag.Bool("windowed", false, "Run in windowed mode")
	flagFullscreen = flag.Bool("fullscreen", false, "Run in fullscreen mode")
	flagWidth      = flag.Int("width", 0, "Window width")
	flagHeight     = flag.Int("height", 0, "Window height")
	flagMatcap     = flag.String("matcap", "", "Matcap texture path")
	flagFont       = flag.String("font", "", "Bundled font name or font path (typeface JSON, TTF or OTF)")
	flagSeed       = flag.Int64("seed", 0, "Random seed for the donut scatter")
	flagNoWatch    = flag.Bool("nowatch", false, "Do not reload the matcap when its file changes")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
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
	if *flagWindowed {
		cfg.Graphics.Fullscreen = false
	}
	if *flagFullscreen {
		cfg.Graphics.Fullscreen = true
	}
	if *flagWidth > 0 {
		cfg.Graphics.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Graphics.Height = *flagHeight
	}
	if *flagMatcap != "" {
		cfg.Assets.Matcap = *flagMatcap
	}
	if *flagFont != "" {
		cfg.Assets.Font = *flagFont
	}
	if *flagSeed != 0 {
		cfg.Donuts.Seed = *flagSeed
	}
	if *flagNoWatch {
		cfg.Assets.WatchMatcap = false
	}
}
