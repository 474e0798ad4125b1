package helpers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublicURLEscapesSegments(t *testing.T) {
	assert.Equal(t, "https://storage.googleapis.com/hotel/rooms/101/front%20view.jpg", PublicURL("hotel", "/rooms/101/front view.jpg"))
}

func TestCacheControlFor(t *testing.T) {
	assert.Equal(t, "public, max-age=86400", CacheControlFor("image/png"))
	assert.Equal(t, "private, no-store", CacheControlFor("application/json"))
}

func TestNewESClientNeedsAddresses(t *testing.T) {
	_, err := NewESClient(nil, "", "")
	assert.Error(t, err)

	c, err := NewESClient([]string{"http://127.0.0.1:9200"}, "elastic", "secret")
	require.NoError(t, err)
	assert.NotNil(t, c)
}

func TestESRetryBackoffRestartsPerRequest(t *testing.T) {
	next := esRetryBackoff()
	first := next(1)
	assert.Greater(t, first, time.Duration(0))
	assert.LessOrEqual(t, first, 150*time.Millisecond)
	assert.LessOrEqual(t, next(3), 2*time.Second+time.Second)
	again := next(1)
	assert.LessOrEqual(t, again, 150*time.Millisecond)
}
