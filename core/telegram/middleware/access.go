package middleware

import tele "gopkg.in/telebot.v4"

// SessionChecker reports whether a user currently holds a valid
// authorization grant. The bot's session registry implements it.
type SessionChecker interface {
	IsValid(userID int64) bool
}

// SessionGateOptions defines how session-gated checks should behave.
type SessionGateOptions struct {
	Sessions SessionChecker
	OnReject tele.HandlerFunc
}

// SessionGateMiddleware ensures that only users with a valid session can
// invoke downstream handlers. Rejected updates run OnReject when provided
// and are otherwise dropped silently.
func SessionGateMiddleware(opts SessionGateOptions) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			if opts.Sessions == nil || !opts.Sessions.IsValid(c.Sender().ID) {
				if opts.OnReject != nil {
					return opts.OnReject(c)
				}
				return nil
			}
			return next(c)
		}
	}
}
