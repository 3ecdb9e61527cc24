package modkit

import (
	"spacebio/internal/modkit/httpkit"
	"spacebio/internal/modkit/module"
	pstrings "spacebio/internal/platform/strings"
)

// Module is the surface the API mounts
type Module = module.Module

// Base implements the routing half of Module; modules embed it and add Ports
type Base struct {
	spec     Spec
	register func(httpkit.Router)
}

// NewBase validates the spec and binds the module's route registration
// a missing name or malformed prefix panics at wiring time
func NewBase(s Spec, register func(httpkit.Router)) Base {
	s.Name = pstrings.MustString(s.Name, "module name")
	s.Prefix = pstrings.MustPrefix(s.Prefix)
	return Base{spec: s, register: register}
}

// MountRoutes mounts the module under its prefix behind its middlewares
func (b Base) MountRoutes(r httpkit.Router) {
	httpkit.MountUnder(r, b.spec.Prefix, b.spec.Mw, func(sub httpkit.Router) {
		if b.register != nil {
			b.register(sub)
		}
	})
}

// Name is the module name
func (b Base) Name() string { return b.spec.Name }

// Prefix is the normalized route prefix
func (b Base) Prefix() string { return b.spec.Prefix }
