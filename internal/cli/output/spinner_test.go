package output

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSpinner_NotATerminal(t *testing.T) {
	var out, errOut bytes.Buffer
	r := NewRendererWithTTY(&out, &errOut, false, ModeText)

	s := r.NewSpinner("Seeding...")
	s.Start()
	s.Success("seeded")

	assert.Empty(t, errOut.String())
	assert.Equal(t, "✓ seeded\n", out.String())
}

func TestSpinner_Terminal(t *testing.T) {
	var out, errOut bytes.Buffer
	r := NewRendererWithTTY(&out, &errOut, true, ModeText)

	s := r.NewSpinner("Seeding...")
	s.Start()
	s.Start() // second start is ignored
	time.Sleep(10 * time.Millisecond)
	s.Fail("seed failed")
	s.Fail("seed failed")

	assert.Contains(t, errOut.String(), "Seeding...")
	assert.Contains(t, errOut.String(), "\r\x1b[K")
	assert.Contains(t, out.String(), "✗ seed failed")
}
