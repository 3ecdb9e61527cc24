package module

import "spacebio/internal/services/api/annotations/domain"

// Ports is what annotations exposes to other modules
type Ports struct {
	Lookup domain.LookupPort
}

// Ports returns the module ports
func (m *Module) Ports() any { return Ports{Lookup: m.svc} }
