package saleid

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := New()
		assert.Len(t, id, Length)
		for _, r := range id {
			ok := (r >= '0' && r <= '9') || (r >= 'A' && r <= 'Z')
			assert.True(t, ok, "unexpected character %q in %s", r, id)
		}
		seen[id] = true
	}
	// 100 draws from a UUID prefix should not collide.
	assert.Greater(t, len(seen), 95)
}
