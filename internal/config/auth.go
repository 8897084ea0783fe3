package config

import "encoding/base64"

// BasicAuth builds an HTTP Basic Authorization header value.
func BasicAuth(login, password string) string {
	credentials := login + ":" + password
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(credentials))
}
