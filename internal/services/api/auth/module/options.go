package module

import "spacebio/internal/platform/config"

// Options controls login throttling and the bootstrap admin
type Options struct {
	LoginRPS   float64
	LoginBurst int

	AdminUsername string
	AdminEmail    string
	AdminPassword string
}

// FromConfig reads LOGIN_RPS, LOGIN_BURST and ADMIN_* values
func FromConfig(cfg config.Conf) Options {
	return Options{
		LoginRPS:      cfg.MayFloat64("LOGIN_RPS", 1),
		LoginBurst:    cfg.MayInt("LOGIN_BURST", 5),
		AdminUsername: cfg.MayString("ADMIN_USERNAME", "admin"),
		AdminEmail:    cfg.MayString("ADMIN_EMAIL", ""),
		AdminPassword: cfg.MayString("ADMIN_PASSWORD", ""),
	}
}

// HasAdmin reports whether a bootstrap admin is configured
func (o Options) HasAdmin() bool { return o.AdminEmail != "" && o.AdminPassword != "" }
