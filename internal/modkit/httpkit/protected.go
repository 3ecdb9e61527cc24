package httpkit

import (
	phttp "spacebio/internal/platform/net/http"
	"spacebio/internal/platform/net/middleware"
)

// Protected groups routes that need a logged in session
func Protected(r Router, fn func(Router)) {
	r.Group(func(gr Router) {
		gr.Use(middleware.RequireLogin(phttp.JSON))
		fn(gr)
	})
}

// Admin groups routes that need the admin role
func Admin(r Router, fn func(Router)) {
	r.Group(func(gr Router) {
		gr.Use(middleware.RequireAdmin(phttp.JSON))
		fn(gr)
	})
}

// Gated is Protected unless public is set, for routes whose exposure is a deploy choice
func Gated(r Router, public bool, fn func(Router)) {
	if public {
		fn(r)
		return
	}
	Protected(r, fn)
}
