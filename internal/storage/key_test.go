package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestObjectKey(t *testing.T) {
	now := time.UnixMilli(1700000000000)

	key := ObjectKey("user-42", "scene.jpg", now)
	assert.Equal(t, "emergencies/user-42/1700000000000_scene.jpg", key)
}

func TestObjectKey_StripsDirectories(t *testing.T) {
	now := time.UnixMilli(1700000000000)

	assert.Equal(t,
		"emergencies/u/1700000000000_evil.png",
		ObjectKey("u", "../../evil.png", now))
	assert.Equal(t,
		"emergencies/u/1700000000000_shot.png",
		ObjectKey("u", `C:\photos\shot.png`, now))
}

func TestObjectKey_EmptyFilename(t *testing.T) {
	now := time.UnixMilli(42)

	assert.Equal(t, "emergencies/u/42_attachment", ObjectKey("u", "", now))
}

func TestEscapeKey_PreservesSeparators(t *testing.T) {
	assert.Equal(t, "emergencies/u/1_a%20b.jpg", escapeKey("emergencies/u/1_a b.jpg"))
}
