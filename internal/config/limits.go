package config

// Limits bound the work a single run or batch may do.
type Limits struct {
	// MaxTextChars caps the text handed to the analyzers; counts are
	// still computed against the full input.
	MaxTextChars int `yaml:"max_text_chars" validate:"required,min=1000,max=5000000"`
	// BatchWorkers is the fan-out when analyzing a directory of
	// manuscripts. The engine itself stays single-threaded.
	BatchWorkers int             `yaml:"batch_workers" validate:"required,min=1,max=64"`
	RateLimit    RateLimitConfig `yaml:"rate_limit" validate:"required"`
}

// RateLimitConfig throttles batch analysis starts so a directory sweep
// does not saturate disk IO.
type RateLimitConfig struct {
	AnalysesPerMinute int `yaml:"analyses_per_minute" validate:"required,min=1,max=10000"`
	BurstSize         int `yaml:"burst_size" validate:"required,min=1,max=256"`
}

func DefaultLimits() Limits {
	return Limits{
		MaxTextChars: 500000,
		BatchWorkers: 4,
		RateLimit: RateLimitConfig{
			AnalysesPerMinute: 120,
			BurstSize:         8,
		},
	}
}
