package config

// Version is injected at build time via ldflags.
//
// Build with:
//
//	go build -ldflags "-X 'github.com/slipstream/tautulli-notify/internal/config.Version=1.2.0'" ./cmd/tautulli-notify
var Version = "dev"

// UserAgent is sent with every outbound request.
func UserAgent() string {
	return "tautulli-notify/" + Version
}
