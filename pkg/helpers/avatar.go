package helpers

import "net/url"

// AvatarURL builds the deterministic default avatar for a username.
// The same username always maps to the same image.
func AvatarURL(baseURL, username string) string {
	return baseURL + "?seed=" + url.QueryEscape(username)
}
