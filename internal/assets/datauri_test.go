package assets

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecodeDataURI(t *testing.T) {
	raw := []byte{0xFF, 0xD8, 0xFF, 0xE0}
	payload := "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(raw)

	b, contentType, err := DecodeDataURI(payload)
	require.NoError(t, err)
	require.Equal(t, raw, b)
	require.Equal(t, "image/jpeg", contentType)
}

func TestDecodeDataURIRejects(t *testing.T) {
	cases := map[string]string{
		"no prefix":            "image/jpeg;base64,AAAA",
		"no comma":             "data:image/jpeg;base64",
		"not base64 encoding":  "data:image/jpeg;utf8,AAAA",
		"unknown content type": "data:text/html;base64,AAAA",
		"bad base64":           "data:image/png;base64,$$$$",
		"empty":                "",
	}
	for name, payload := range cases {
		t.Run(name, func(t *testing.T) {
			_, _, err := DecodeDataURI(payload)
			require.ErrorIs(t, err, ErrInvalidPayload)
		})
	}
}

func TestGCSStoreManagedRefs(t *testing.T) {
	s := NewGCSStore(nil, "feed-images")

	require.True(t, s.IsManaged("https://storage.googleapis.com/feed-images/events/abc.jpg"))
	require.False(t, s.IsManaged("https://storage.googleapis.com/other-bucket/events/abc.jpg"))
	require.False(t, s.IsManaged("https://res.cloudinary.com/demo/image/upload/abc.jpg"))
	require.False(t, s.IsManaged("https://storage.googleapis.com/feed-images/"))
	require.False(t, s.IsManaged(""))
}

func TestGCSStoreUnconfiguredBucketManagesNothing(t *testing.T) {
	s := NewGCSStore(nil, "")
	require.False(t, s.IsManaged("https://storage.googleapis.com//events/abc.jpg"))
}
