package config

import "flag"

var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging")
	flagWindowed   = flag.Bool("windowed", false, "Run in windowed mode")
	flagFullscreen = flag.Bool("fullscreen", false, "Run in fullscreen mode")
	flagWidth      = flag.Int("width", 0, "Window width")
	flagHeight     = flag.Int("height", 0, "Window height")
	flagTimeScale  = flag.Float64("time-scale", 0, "Simulation seconds per real second")
	flagPaused     = flag.Bool("paused", false, "Start with every planet's rotation disabled")
	flagData       = flag.String("data", "", "Extra asset directory searched before the configured ones")
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
		cfg.Window.Fullscreen = false
	}
	if *flagFullscreen {
		cfg.Window.Fullscreen = true
	}
	if *flagWidth > 0 {
		cfg.Window.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Window.Height = *flagHeight
	}
	if *flagTimeScale > 0 {
		cfg.Scene.TimeScale = *flagTimeScale
	}
	if *flagPaused {
		for i := range cfg.Scene.Planets {
			cfg.Scene.Planets[i].Rotation.Enabled = false
		}
	}
	if *flagData != "" {
		cfg.Data.SearchPaths = append([]string{*flagData}, cfg.Data.SearchPaths...)
	}
}
