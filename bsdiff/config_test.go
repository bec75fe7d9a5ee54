package bsdiff

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfigValidates(t *testing.T) {
	assert.NoError(t, Default().Validate())
}

func TestValidateRejectsOutOfRangeFields(t *testing.T) {
	cases := []func(*Config){
		func(c *Config) { c.SmallMatch = -1 },
		func(c *Config) { c.MismatchCount = -1 },
		func(c *Config) { c.LongSuffix = 10 },
		func(c *Config) { c.BufferSize = 10 },
		func(c *Config) { c.CompressionLevel = 10 },
		func(c *Config) { c.ParallelScheme.Kind = ParallelKind(99) },
	}
	for _, mutate := range cases {
		cfg := Default()
		mutate(&cfg)
		assert.Error(t, cfg.Validate())
	}
}
