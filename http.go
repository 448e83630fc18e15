package auth

import (
	"context"
	"net/http"

	"github.com/gemstack/go-auth/middleware/guardware"
	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-print"
	"github.com/goliatone/go-router"
)

type RouteAuthenticator struct {
	auth             Authenticator
	cfg              Config
	Logger           Logger
	AuthErrorHandler func(c router.Context, err error) error
	ErrorHandler     func(c router.Context, err error) error
}

func NewHTTPAuthenticator(auther Authenticator, cfg Config) (*RouteAuthenticator, error) {
	a := &RouteAuthenticator{
		cfg:    cfg,
		auth:   auther,
		Logger: defLogger{},
	}

	a.ErrorHandler = a.defaultErrHandler
	a.AuthErrorHandler = a.defaultAuthErrHandler

	return a, nil
}

func (a *RouteAuthenticator) WithLogger(logger Logger) *RouteAuthenticator {
	a.Logger = logger
	return a
}

// Login exchanges credentials for a signed access token.
func (a *RouteAuthenticator) Login(ctx router.Context, payload LoginPayload) (string, error) {
	token, err := a.auth.Login(ctx.Context(), payload.GetIdentifier(), payload.GetPassword())
	if err != nil {
		a.Logger.Error("Login error: %s", err)
		return "", err
	}

	return token, nil
}

// ProtectedRoute guards a route group with bearer token validation. The
// validated claims end up in the router locals under the configured context
// key and in the request context for downstream handlers.
func (a *RouteAuthenticator) ProtectedRoute(cfg Config, errorHandler func(router.Context, error) error) router.MiddlewareFunc {
	return guardware.New(guardware.Config{
		ErrorHandler: errorHandler,
		AuthScheme:   cfg.GetAuthScheme(),
		ContextKey:   cfg.GetContextKey(),
		TokenLookup:  cfg.GetTokenLookup(),
		TokenValidator: guardware.TokenValidatorFunc(func(raw string) (guardware.AuthClaims, error) {
			return a.auth.TokenService().Validate(raw)
		}),
		ContextEnricher: func(c context.Context, claims guardware.AuthClaims) context.Context {
			if ac, ok := claims.(AuthClaims); ok {
				return WithClaimsContext(c, ac)
			}
			return c
		},
	})
}

// MakeAPIAuthErrorHandler maps middleware failures to the API error contract:
// a request with no usable credential is unauthenticated, anything carrying a
// token that failed validation is forbidden.
func (a *RouteAuthenticator) MakeAPIAuthErrorHandler() func(router.Context, error) error {
	return func(ctx router.Context, err error) error {
		var richErr *errors.Error

		if IsMissingTokenError(err) {
			richErr = ErrNotAuthenticated
		} else {
			richErr = ErrTokenInvalid.Clone()
			richErr.Source = err
		}

		return a.ErrorHandler(ctx, richErr)
	}
}

func (a *RouteAuthenticator) defaultAuthErrHandler(c router.Context, err error) error {
	var richErr *errors.Error
	if !errors.As(err, &richErr) {
		richErr = errors.Wrap(err, errors.CategoryAuth, "An unexpected authentication error").
			WithCode(errors.CodeUnauthorized)
	}

	a.Logger.Info(
		"Authentication error: %s text_code=%s path=%s",
		richErr.Message,
		richErr.TextCode,
		c.OriginalURL(),
	)

	return writeError(c, richErr)
}

func (a *RouteAuthenticator) defaultErrHandler(c router.Context, err error) error {
	var richErr *errors.Error
	if !errors.As(err, &richErr) {
		richErr = errors.Wrap(err, errors.CategoryInternal, "An unexpected server error occurred").
			WithCode(errors.CodeInternal)
	}

	a.Logger.Info(
		"Middleware error handler: %s category=%s details=%s",
		richErr.Message,
		richErr.Category,
		print.MaybePrettyJSON(richErr.Metadata),
	)

	switch richErr.Category {
	case errors.CategoryAuth, errors.CategoryAuthz:
		return a.AuthErrorHandler(c, richErr)
	default:
		return writeError(c, richErr)
	}
}

// writeError serializes a rich error as the JSON envelope API clients expect.
func writeError(c router.Context, err *errors.Error) error {
	status := err.Code
	if status == 0 {
		status = http.StatusInternalServerError
	}

	body := map[string]any{
		"message": err.Message,
	}

	if err.TextCode != "" {
		body["text_code"] = err.TextCode
	}

	return c.JSON(status, map[string]any{"error": body})
}
