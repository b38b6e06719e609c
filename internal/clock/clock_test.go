package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFixed(t *testing.T) {
	t.Parallel()

	at := time.Date(2024, 3, 4, 10, 0, 0, 0, time.FixedZone("MSK", 3*3600))
	c := NewFixed(at)

	assert.Equal(t, time.UTC, c.Now().Location())
	assert.True(t, c.Now().Equal(at))
	assert.Equal(t, at.UnixMilli(), UnixMilli(c))
}

func TestSystem_IsUTC(t *testing.T) {
	t.Parallel()

	assert.Equal(t, time.UTC, NewSystem().Now().Location())
}
