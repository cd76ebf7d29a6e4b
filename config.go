package qsim

import "math/rand/v2"

type Config struct {
	// Seed feeds the measurement RNG. Zero picks a random seed.
	Seed uint64
	// MaxQubits caps allocation; the register holds 2^n complex128 values.
	MaxQubits int
	// Tolerance is the norm drift accepted by Normalized.
	Tolerance float64
}

func NewConfig() *Config {
	return &Config{
		Seed:      0,
		MaxQubits: 30,
		Tolerance: 1e-9,
	}
}

// Option configures a Simulator at construction.
type Option func(*Simulator)

// WithConfig replaces the default configuration.
func WithConfig(config *Config) Option {
	return func(s *Simulator) {
		if config != nil {
			c := *config
			s.config = &c
		}
	}
}

func WithSeed(seed uint64) Option {
	return func(s *Simulator) {
		s.config.Seed = seed
	}
}

func WithMaxQubits(n int) Option {
	return func(s *Simulator) {
		s.config.MaxQubits = n
	}
}

// WithRand injects the random source used by Measure. It takes precedence over Seed.
func WithRand(rng *rand.Rand) Option {
	return func(s *Simulator) {
		s.rng = rng
	}
}

func newRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = rand.Uint64()
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}
