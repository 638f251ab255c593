package assets

import (
	"encoding/base64"
	"errors"
	"strings"
)

var ErrInvalidPayload = errors.New("assets: payload is not a base64 data URI")

// extByContentType maps the content types we accept to object name extensions.
var extByContentType = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// DecodeDataURI parses a "data:<type>;base64,<data>" payload into raw bytes
// and a content type. Clients submit images inline as data URIs.
func DecodeDataURI(payload string) ([]byte, string, error) {
	rest, ok := strings.CutPrefix(payload, "data:")
	if !ok {
		return nil, "", ErrInvalidPayload
	}
	meta, data, ok := strings.Cut(rest, ",")
	if !ok {
		return nil, "", ErrInvalidPayload
	}
	contentType, enc, ok := strings.Cut(meta, ";")
	if !ok || enc != "base64" {
		return nil, "", ErrInvalidPayload
	}
	if _, known := extByContentType[contentType]; !known {
		return nil, "", ErrInvalidPayload
	}
	b, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return nil, "", ErrInvalidPayload
	}
	return b, contentType, nil
}
