package config

// Config represents the analytics service configuration
type Config struct {
	HTTPAddr string   `yaml:"http_addr"`
	LogLevel string   `yaml:"log_level"`
	Analysis Analysis `yaml:"analysis"`
}

// Analysis holds the tunable parameters of the metric pipeline.
type Analysis struct {
	// Simulations is the number of Independent-Cascade trials per seed node.
	Simulations int `yaml:"simulations"`
	// ActivationThreshold caps the per-edge activation probability, in (0, 1).
	ActivationThreshold float64 `yaml:"activation_threshold"`
	// PathLength is the node-sequence length mined from the event stream.
	PathLength int `yaml:"path_length"`
	// TopPaths is how many frequent sequences are reported.
	TopPaths int `yaml:"top_paths"`
	// Seed fixes the diffusion random source; 0 seeds from the clock.
	Seed int64 `yaml:"seed"`
}

// Default returns the configuration used when no file is supplied.
func Default() *Config {
	return &Config{
		HTTPAddr: ":8080",
		LogLevel: "info",
		Analysis: Analysis{
			Simulations:         100,
			ActivationThreshold: 0.3,
			PathLength:          3,
			TopPaths:            5,
			Seed:                0,
		},
	}
}
