package middleware

import perr "spacebio/internal/platform/errors"

var (
	errLoginRequired = perr.Unauthorizedf("login required")
	errAdminOnly     = perr.Forbiddenf("admin role required")
)
