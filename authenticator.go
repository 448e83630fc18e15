package auth

import (
	"context"
	"fmt"
	"reflect"

	"github.com/goliatone/go-errors"
)

type Auther struct {
	provider     IdentityProvider
	signingKey   []byte
	issuer       string
	logger       Logger
	tokenService TokenService
}

// NewAuthenticator returns a new Authenticator. Tokens are always signed
// with HS256; a config asking for any other method is a wiring mistake.
func NewAuthenticator(provider IdentityProvider, opts Config) *Auther {
	if alg := opts.GetSigningMethod(); alg != "" && alg != "HS256" {
		panic(fmt.Sprintf("AUTH: unsupported signing method %q, only HS256 is supported", alg))
	}

	tokenService := NewTokenService(
		[]byte(opts.GetSigningKey()),
		opts.GetTokenTTL(),
		opts.GetIssuer(),
		defLogger{},
	)

	return &Auther{
		provider:     provider,
		signingKey:   []byte(opts.GetSigningKey()),
		issuer:       opts.GetIssuer(),
		logger:       defLogger{},
		tokenService: tokenService,
	}
}

func (s *Auther) WithLogger(logger Logger) *Auther {
	s.logger = logger
	if ts, ok := s.tokenService.(*TokenServiceImpl); ok {
		ts.WithLogger(logger)
	}
	return s
}

// TokenService returns the TokenService instance used by this Authenticator
func (s *Auther) TokenService() TokenService {
	return s.tokenService
}

// Login checks the credentials and mints an access token for the user.
// Unknown usernames and wrong passwords produce the same error. A disabled
// account with correct credentials still gets a token; activeness is
// enforced where the token is spent, not where it is minted.
func (s *Auther) Login(ctx context.Context, identifier, password string) (string, error) {
	identity, err := s.provider.VerifyIdentity(ctx, identifier, password)
	if err != nil {
		s.logger.Error("Login verify identity error: %v", err)
		return "", s.invalidCredentials(err)
	}

	if identity == nil || reflect.ValueOf(identity).IsZero() {
		s.logger.Error("Login identity is nil or zero value")
		return "", s.invalidCredentials(ErrIdentityNotFound)
	}

	token, err := s.tokenService.Issue(identity.Username())
	if err != nil {
		s.logger.Error("Login token issue error: %v", err)
		return "", errors.Wrap(err, errors.CategoryInternal, "failed to issue access token")
	}

	return token, nil
}

// IdentityFromClaims resolves the identity a validated token belongs to.
func (s *Auther) IdentityFromClaims(ctx context.Context, claims AuthClaims) (Identity, error) {
	if claims == nil {
		return nil, ErrTokenInvalid
	}

	identity, err := s.provider.FindIdentityByUsername(ctx, claims.Username())
	if err != nil {
		s.logger.Error("IdentityFromClaims find identity: %v", err)
		return nil, err
	}

	return identity, nil
}

// invalidCredentials collapses credential failures into the one public error,
// letting genuine internal faults through for the transport to report as such.
func (s *Auther) invalidCredentials(cause error) error {
	var rich *errors.Error
	if errors.As(cause, &rich) && rich.Category == errors.CategoryInternal {
		return cause
	}

	return ErrInvalidCredentials
}

var _ Authenticator = (*Auther)(nil)
