package log

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetOutput(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(discard{})
	SetInfoOutput(discard{})

	Info("hidden")
	Perff("shown %d", 1)
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), perfLabel+" ")
}

func TestWarnLabel(t *testing.T) {
	var buf bytes.Buffer
	SetWarnOutput(&buf)
	defer SetWarnOutput(discard{})

	Warnf("glBindBuffer failed: %v", 7)
	assert.True(t, strings.HasPrefix(buf.String(), warnLabel+" "))
	assert.Contains(t, buf.String(), "glBindBuffer failed: 7")
}

func TestColorized(t *testing.T) {
	var buf bytes.Buffer
	SetDebugOutput(&buf)
	defer SetDebugOutput(discard{})
	SetColorized(true)
	defer SetColorized(false)

	Debug("x")
	assert.Contains(t, buf.String(), "\033["+brightMagenta+"m"+debugLabel)
	assert.Contains(t, buf.String(), "log_test.go")
}

func TestFatalExits(t *testing.T) {
	var buf bytes.Buffer
	SetFatalOutput(&buf)
	defer SetFatalOutput(discard{})
	var code int
	old := exit
	exit = func(c int) { code = c }
	defer func() { exit = old }()

	Fatalf("context lost: %s", "gone")
	require.Equal(t, 1, code)
	assert.Contains(t, buf.String(), "context lost: gone")
}

func TestConstErr(t *testing.T) {
	const errThing ConstErr = "thing failed"
	var err error = errThing
	assert.Equal(t, "thing failed", err.Error())
}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }
