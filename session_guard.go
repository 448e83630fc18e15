package auth

import (
	"context"

	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-repository-bun"
)

// UserFinder is the read-only slice of the users repository the guard needs.
type UserFinder interface {
	GetByUsername(ctx context.Context, username string) (*User, error)
}

// Guard turns a bearer token into the user record behind it and enforces
// the account checks that protected handlers rely on.
type Guard struct {
	validator TokenValidator
	store     UserFinder
	logger    Logger
}

func NewSessionGuard(validator TokenValidator, store UserFinder) *Guard {
	return &Guard{
		validator: validator,
		store:     store,
		logger:    defLogger{},
	}
}

func (g *Guard) WithLogger(l Logger) *Guard {
	if l != nil {
		g.logger = l
	}
	return g
}

// ResolveUser validates the raw token and loads the user it names. A token
// that fails validation is an error; a valid token whose user no longer
// exists returns (nil, nil) so the caller decides whether that is fatal.
func (g *Guard) ResolveUser(ctx context.Context, raw string) (*User, error) {
	claims, err := g.validator.Validate(raw)
	if err != nil {
		g.logger.Error("ResolveUser token validation: %v", err)
		return nil, tokenValidationError(err)
	}

	return g.UserFromClaims(ctx, claims)
}

// UserFromClaims loads the user named by already validated claims.
func (g *Guard) UserFromClaims(ctx context.Context, claims AuthClaims) (*User, error) {
	if claims == nil {
		return nil, tokenValidationError(ErrUnableToDecodeSession)
	}

	user, err := g.store.GetByUsername(ctx, claims.Username())
	if err != nil {
		if errors.IsNotFound(err) || repository.IsRecordNotFound(err) {
			return nil, nil
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to load session user")
	}

	return user, nil
}

// RequireActiveUser rejects missing and disabled accounts.
func (g *Guard) RequireActiveUser(user *User) error {
	if user == nil {
		return ErrNotAuthenticated
	}

	if user.Disabled {
		return ErrInactiveUser
	}

	return nil
}

// ActiveUserFromClaims is UserFromClaims plus the active-account check. This
// is the path protected handlers take once the middleware validated the
// token: a missing user here means the session no longer maps to an account.
func (g *Guard) ActiveUserFromClaims(ctx context.Context, claims AuthClaims) (*User, error) {
	user, err := g.UserFromClaims(ctx, claims)
	if err != nil {
		return nil, err
	}

	if err := g.RequireActiveUser(user); err != nil {
		return nil, err
	}

	return user, nil
}

func tokenValidationError(cause error) error {
	clone := ErrTokenInvalid.Clone()
	if clone == nil {
		return ErrTokenInvalid
	}
	clone.Source = cause
	return clone
}
