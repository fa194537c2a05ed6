package objectstore_test

import (
	"context"
	"testing"

	"github.com/book-expert/elevenlabs-tts/internal/objectstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMinio_RequiresEndpointAndBucket(t *testing.T) {
	t.Parallel()

	_, err := objectstore.NewMinio(context.Background(), objectstore.S3Config{Bucket: "clips"})
	require.ErrorIs(t, err, objectstore.ErrEndpointEmpty)

	_, err = objectstore.NewMinio(context.Background(), objectstore.S3Config{Endpoint: "localhost:9000"})
	require.ErrorIs(t, err, objectstore.ErrBucketEmpty)
}

func TestS3Config_Enabled(t *testing.T) {
	t.Parallel()

	assert.False(t, objectstore.S3Config{}.Enabled())
	assert.True(t, objectstore.S3Config{Endpoint: "s3.example.com"}.Enabled())
}

func TestContentTypeForKey(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "audio/mpeg", objectstore.ContentTypeForKey("Rachel_001.mp3"))
	assert.Equal(t, "audio/wav", objectstore.ContentTypeForKey("clip.WAV"))
	assert.Equal(t, "text/plain; charset=utf-8", objectstore.ContentTypeForKey("page-1.txt"))
	assert.Equal(t, "application/octet-stream", objectstore.ContentTypeForKey("blob"))
}
