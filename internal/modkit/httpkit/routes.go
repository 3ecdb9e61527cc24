package httpkit

import (
	"net/http"
	"strings"
)

// APIV1 is the root every module route hangs off
const APIV1 = "/api/v1"

// MountUnder mounts a subrouter at prefix and applies per-module middlewares
// prefix is cleaned to a single leading slash and no trailing slash
func MountUnder(r Router, prefix string, mw []func(http.Handler) http.Handler, mount func(Router)) {
	r.Route("/"+strings.Trim(prefix, "/"), func(sub Router) {
		if len(mw) > 0 {
			sub.Use(mw...)
		}
		mount(sub)
	})
}

// MountAPIV1 mounts the API root with the common stack in mw
func MountAPIV1(r Router, mw []func(http.Handler) http.Handler, mount func(Router)) {
	MountUnder(r, APIV1, mw, mount)
}
