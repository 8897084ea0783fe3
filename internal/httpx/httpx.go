// Package httpx holds HTTP helpers shared by the outbound clients.
package httpx

import (
	"errors"
	"fmt"
	"net/url"
)

// RedactError strips the request URL from a transport error. The URL of a
// *url.Error can carry a bot token in the path or an API key in the query,
// and transport errors end up in the log file. Only scheme and host are kept.
// The underlying cause stays reachable through errors.Is and errors.As.
func RedactError(err error) error {
	var uerr *url.Error
	if !errors.As(err, &uerr) {
		return err
	}
	return fmt.Errorf("%s %s: %w", uerr.Op, origin(uerr.URL), uerr.Err)
}

func origin(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return "[redacted]"
	}
	return u.Scheme + "://" + u.Host
}
