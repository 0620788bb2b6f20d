package publicapi

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExcerpt(t *testing.T) {
	t.Run("ShortContentUnchanged", func(t *testing.T) {
		assert.Equal(t, "short", Excerpt("short"))
	})

	t.Run("ExactBoundaryUnchanged", func(t *testing.T) {
		content := strings.Repeat("a", 150)
		assert.Equal(t, content, Excerpt(content))
	})

	t.Run("OverBoundaryTruncatedWithSuffix", func(t *testing.T) {
		content := strings.Repeat("a", 151)
		got := Excerpt(content)
		assert.Equal(t, strings.Repeat("a", 150)+"...", got)
	})

	t.Run("MultibyteCountedAsCharacters", func(t *testing.T) {
		content := strings.Repeat("ñ", 160)
		got := Excerpt(content)
		assert.Equal(t, strings.Repeat("ñ", 150)+"...", got)
	})
}
