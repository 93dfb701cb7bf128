// Package backoff computes exponential retry delays as pure functions
// so cancellation and tests never depend on real wall-clock time.
package backoff

import (
	"math/rand"
	"time"

	"github.com/avast/retry-go/v4"
)

type Config struct {
	Base           time.Duration `env:"BASE" envDefault:"1s"`
	Cap            time.Duration `env:"CAP" envDefault:"30s"`
	JitterFraction float64       `env:"JITTER" envDefault:"0.25"`
}

func DefaultConfig() Config {
	return Config{
		Base:           time.Second,
		Cap:            30 * time.Second,
		JitterFraction: 0.25,
	}
}

// Delay returns the nominal delay before retry number attempt
// (zero-based): base * 2^attempt, capped.
func (c Config) Delay(attempt uint) time.Duration {
	d := c.Base
	for i := uint(0); i < attempt; i++ {
		d *= 2
		if d >= c.Cap {
			return c.Cap
		}
	}
	if d > c.Cap {
		return c.Cap
	}
	return d
}

// Jittered spreads the nominal delay by ±JitterFraction. randFloat must
// return values in [0, 1); tests pass a deterministic source.
func (c Config) Jittered(attempt uint, randFloat func() float64) time.Duration {
	nominal := c.Delay(attempt)
	if c.JitterFraction <= 0 {
		return nominal
	}

	// Scale into [1-j, 1+j).
	factor := 1 - c.JitterFraction + 2*c.JitterFraction*randFloat()
	return time.Duration(float64(nominal) * factor)
}

// DelayType plugs the jittered schedule into retry-go.
func (c Config) DelayType(n uint, _ error, _ *retry.Config) time.Duration {
	return c.Jittered(n, rand.Float64)
}
