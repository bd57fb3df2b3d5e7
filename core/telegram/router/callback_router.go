package router

import (
	"time"

	tg "github.com/Rokoth/ROTGBot-sub000/core/telegram"
	"github.com/Rokoth/ROTGBot-sub000/core/telegram/callbacks"
	"github.com/Rokoth/ROTGBot-sub000/core/telegram/middleware"
	"log/slog"

	tele "gopkg.in/telebot.v4"
)

// InertTag marks decorative buttons: pressing one is a no-op with no role
// check and no side effects.
const InertTag = "-"

// Gate authorizes a callback against the role required by its registry entry.
// Implementations send their own denial message; a false return only
// short-circuits the handler.
type Gate interface {
	Allow(c tele.Context, role string) bool
}

// CallbackOptions customises dispatch behaviour for callbacks.
type CallbackOptions struct {
	NotFound tele.HandlerFunc
	Gate     Gate
	// ParamPrefixes lists tag base names that may carry an embedded
	// identifier after an underscore, e.g. "ApproveNews" for "ApproveNews_<id>".
	ParamPrefixes []string
}

// CallbackRoute returns a handler that routes callbacks through the registry:
// parse and normalize the tag, look up the (role, handler) pair, gate, invoke.
func CallbackRoute(reg *tg.Registry, opts CallbackOptions) tg.Route {
	handler := func(c tele.Context) error {
		start := time.Now()
		if c.Callback() == nil {
			return nil
		}

		key, payload := parseCallback(c.Callback())
		if key == InertTag {
			return c.Respond()
		}
		base, param := callbacks.NormalizeTag(key, opts.ParamPrefixes)
		if param == "" {
			param = payload
		}
		callbacks.SetParam(c, param)

		name := "callback." + normalizeHandlerName(base)
		extras := []slog.Attr{slog.String("cb_key", base)}

		_ = c.Respond()

		def, ok := reg.GetCallback(base)
		if !ok || def.Handler == nil {
			fallback := reg.CallbackNotFound()
			if fallback == nil {
				fallback = opts.NotFound
			}
			extras = append(extras, slog.String("reason", "not_found"))
			return handleWithSummary(c, name, start, "", "", func() error {
				if fallback != nil {
					return fallback(c)
				}
				return nil
			}, extras...)
		}

		if def.Role != "" && opts.Gate != nil && !opts.Gate.Allow(c, def.Role) {
			extras = append(extras, slog.String("reason", "denied"), slog.String("role", def.Role))
			logHandlerSummary(c, name, start, "skip", "ok", nil, extras...)
			return nil
		}

		return handleWithSummary(c, name, start, "", "", func() error {
			return def.Handler(c)
		}, extras...)
	}
	return tg.Route{
		Endpoint: tele.OnCallback,
		Handler:  middleware.RecoverMiddleware(middleware.LoggerMiddleware(handler)),
	}
}
