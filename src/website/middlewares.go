package website

import (
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"time"

	"git.teamcore.network/tcn/tcn/src/auth"
	"git.teamcore.network/tcn/tcn/src/db"
	"git.teamcore.network/tcn/tcn/src/logging"
	"git.teamcore.network/tcn/tcn/src/oops"
	"git.teamcore.network/tcn/tcn/src/tcndata"
	"git.teamcore.network/tcn/tcn/src/tcnurl"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/time/rate"
)

func panicCatcherMiddleware(h Handler) Handler {
	return func(c *RequestContext) (res ResponseData) {
		defer func() {
			if recovered := recover(); recovered != nil {
				maybeError, ok := recovered.(*error)
				var err error
				if ok {
					err = *maybeError
				} else {
					err = oops.New(nil, fmt.Sprintf("Recovered from panic with value: %v", recovered))
				}
				res = c.ErrorResponse(http.StatusInternalServerError, err)
			}
		}()

		return h(c)
	}
}

func logContextErrorsMiddleware(h Handler) Handler {
	return func(c *RequestContext) ResponseData {
		res := h(c)
		logContextErrors(c, res.Errors...)
		return res
	}
}

func attachConn(conn *pgxpool.Pool) Middleware {
	return func(h Handler) Handler {
		return func(c *RequestContext) ResponseData {
			c.Conn = conn
			return h(c)
		}
	}
}

func attachLogger(h Handler) Handler {
	return func(c *RequestContext) ResponseData {
		logger := logging.With().Str("method", c.Req.Method).Stringer("url", c.Req.URL).Logger()
		c.Logger = &logger
		c.ctx = logging.AttachLoggerToContext(&logger, c.ctx)
		return h(c)
	}
}

/*
Resolves the session cookie to a user. The user's role is loaded fresh on
every request, so a role change takes effect on the user's next click, not
their next login.
*/
func trackCurrentUser(h Handler) Handler {
	return func(c *RequestContext) ResponseData {
		sessionCookie, err := c.Req.Cookie(auth.SessionCookieName)
		if err != nil {
			// no session cookie
			return h(c)
		}

		session, err := auth.GetSession(c, c.Conn, sessionCookie.Value)
		if err != nil {
			if !errors.Is(err, auth.ErrNoSession) {
				return c.ErrorResponse(http.StatusInternalServerError, oops.New(err, "failed to load session"))
			}
			// Stale cookie; clear it.
			res := h(c)
			res.SetCookie(auth.DeleteSessionCookie)
			return res
		}

		user, err := tcndata.FetchUser(c, c.Conn, session.UserID)
		if err != nil {
			if errors.Is(err, db.NotFound) {
				// The account is gone but the session outlived it.
				res := h(c)
				res.SetCookie(auth.DeleteSessionCookie)
				return res
			}
			return c.ErrorResponse(http.StatusInternalServerError, oops.New(err, "failed to load user for session"))
		}

		c.CurrentSession = session
		c.CurrentUser = user
		return h(c)
	}
}

func needsAuth(h Handler) Handler {
	return func(c *RequestContext) ResponseData {
		if c.CurrentUser == nil {
			return c.Redirect(tcnurl.BuildLogin(c.FullUrl()), http.StatusSeeOther)
		}

		return h(c)
	}
}

func moderatorsOnly(h Handler) Handler {
	return func(c *RequestContext) ResponseData {
		if c.CurrentUser == nil || !c.CurrentUser.IsModerator() {
			return FourOhFour(c)
		}

		return h(c)
	}
}

// Blunt protection against credential stuffing on the auth endpoints.
func rateLimit(r rate.Limit, burst int) Middleware {
	limiter := rate.NewLimiter(r, burst)
	return func(h Handler) Handler {
		return func(c *RequestContext) ResponseData {
			if !limiter.Allow() {
				res := c.Redirect(tcnurl.BuildHomepage(), http.StatusSeeOther)
				res.StatusCode = http.StatusTooManyRequests
				return res
			}
			return h(c)
		}
	}
}

// Will make sure that the request takes at least `duration` to finish. Adds a
// 10% random duration.
func securityTimerMiddleware(duration time.Duration, h Handler) Handler {
	return func(c *RequestContext) ResponseData {
		additionalDuration := time.Duration(rand.Int63n(max(1, int64(duration)/10)))
		timer := time.NewTimer(duration + additionalDuration)
		res := h(c)
		select {
		case <-c.Done():
		case <-timer.C:
		}
		return res
	}
}

func max(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}
