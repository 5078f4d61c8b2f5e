package obslog

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInitFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	Init(&buf, "warn")

	Info().Log("msg", "should be filtered")
	assert.Empty(t, buf.String())

	Warn().Log("msg", "should appear")
	assert.Contains(t, buf.String(), "should appear")
}

func TestInitDefaultsToInfoOnUnknownLevel(t *testing.T) {
	var buf bytes.Buffer
	Init(&buf, "not-a-real-level")

	Debug().Log("msg", "filtered")
	assert.Empty(t, buf.String())

	Info().Log("msg", "visible")
	assert.True(t, strings.Contains(buf.String(), "visible"))
}

func TestWithAppendsKeyvals(t *testing.T) {
	var buf bytes.Buffer
	Init(&buf, "debug")

	logger := With("component", "engine")
	logger.Log("msg", "hello")
	assert.Contains(t, buf.String(), "component=engine")
}
