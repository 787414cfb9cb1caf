package dslctx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetAndGet(t *testing.T) {
	c := New()
	assert.Equal(t, "", c.Get("missing"))

	c.Set("x", "A")
	assert.Equal(t, "A", c.Get("x"))
}

func TestFormatTemplateBasic(t *testing.T) {
	c := New()
	c.Set("x", "A")
	assert.Equal(t, "value is A", c.FormatTemplate("value is $x"))
}

// TestFormatTemplateOverlappingNames pins down the documented
// longest-name-first substitution order: "$xy" must not be corrupted by
// a substitution of "$x" run first.
func TestFormatTemplateOverlappingNames(t *testing.T) {
	c := New()
	c.Set("x", "SHORT")
	c.Set("xy", "LONG")

	got := c.FormatTemplate("$xy and $x")
	assert.Equal(t, "LONG and SHORT", got)
}

func TestHistoryIsolatedCopy(t *testing.T) {
	c := New()
	c.AppendHistory("one")
	hist := c.History()
	hist[0] = "mutated"
	assert.Equal(t, "one", c.LastInput())
}
