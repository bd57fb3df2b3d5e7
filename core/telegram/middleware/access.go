package middleware

import tele "gopkg.in/telebot.v4"

// RoleChecker resolves whether the update sender holds the named role.
type RoleChecker interface {
	HasRole(c tele.Context, role string) bool
}

// GateOptions defines how role-gated checks should behave.
type GateOptions struct {
	Checker RoleChecker
	// OnReject runs instead of the guarded handler when the check fails.
	// Rejection is not an error: the handler chain ends silently when nil.
	OnReject tele.HandlerFunc
}

// RequireRole ensures that only users holding the role can invoke downstream handlers.
func RequireRole(opts GateOptions, role string) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			if role == "" || opts.Checker == nil {
				return next(c)
			}
			if !opts.Checker.HasRole(c, role) {
				if opts.OnReject != nil {
					return opts.OnReject(c)
				}
				return nil
			}
			return next(c)
		}
	}
}
