package logger

import (
	"bytes"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

// capture enables verbose output into a buffer and restores the defaults
// when the test ends.
func capture(t *testing.T, verboseOn bool) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(verboseOn)
	t.Cleanup(func() {
		SetVerbose(false)
		SetOutput(os.Stderr)
	})
	return &buf
}

func TestSetVerbose(t *testing.T) {
	capture(t, false)
	assert.False(t, IsVerbose())

	SetVerbose(true)
	assert.True(t, IsVerbose())

	SetVerbose(false)
	assert.False(t, IsVerbose())
}

func TestLevels(t *testing.T) {
	tests := []struct {
		name string
		log  func()
		want string
	}{
		{"debug", func() { Debug("loaded %s", "lease.pdf") }, "[DEBUG] loaded lease.pdf\n"},
		{"info", func() { Info("Submitted as %s", "doc-1") }, "[INFO] Submitted as doc-1\n"},
		{"warn", func() { Warn("signing API disabled") }, "[WARN] signing API disabled\n"},
		{"section", func() { Section("Submit") }, "\n=== Submit ===\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := capture(t, true)
			tt.log()
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestQuietWhenNotVerbose(t *testing.T) {
	buf := capture(t, false)

	Debug("placeholder %d moved", 1)
	Info("session saved")
	Warn("reload failed")
	Section("Bootstrap")

	assert.Zero(t, buf.Len())
}

func TestSetOutput_NilDiscards(t *testing.T) {
	capture(t, true)
	SetOutput(nil)

	assert.NotPanics(t, func() { Debug("dropped") })
}

func TestConcurrentWrites(t *testing.T) {
	buf := capture(t, true)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			Debug("tick %d", n)
		}(i)
	}
	wg.Wait()

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	assert.Len(t, lines, 20)
	for _, line := range lines {
		assert.True(t, strings.HasPrefix(line, "[DEBUG] tick "), line)
	}
}
