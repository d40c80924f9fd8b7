//go:build !integration

package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInputSet(t *testing.T) {
	set := InputSet{"tag": "v1.0.0", "registry": "", "image-name": "myapp"}

	assert.Equal(t, "v1.0.0", set.Get("tag"))
	assert.Empty(t, set.Get("absent"))

	assert.True(t, set.Has("registry"), "present even when empty")
	assert.False(t, set.Has("absent"))

	assert.True(t, set.HasValue("tag"))
	assert.False(t, set.HasValue("registry"))
	assert.False(t, set.HasValue("absent"))

	assert.Equal(t, []string{"image-name", "registry", "tag"}, set.Names())
}

func TestInputSet_Clone(t *testing.T) {
	original := InputSet{"tag": "v1.0.0"}
	clone := original.Clone()
	clone["tag"] = "v2.0.0"
	clone["extra"] = "x"

	assert.Equal(t, "v1.0.0", original.Get("tag"))
	assert.False(t, original.Has("extra"))
}
