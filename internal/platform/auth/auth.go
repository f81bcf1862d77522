package auth

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"golang.org/x/oauth2"
)

// Role is account taking part in migration.
type Role string

// Account roles.
const (
	RoleSource Role = "source"
	RoleTarget Role = "target"
)

// Scopes are OAuth scopes requested for both accounts.
var Scopes = []string{
	"https://api.ebay.com/oauth/api_scope",
	"https://api.ebay.com/oauth/api_scope/sell.inventory",
	"https://api.ebay.com/oauth/api_scope/sell.account",
}

const tokenType = "Bearer"

// ErrNoToken is returned when there is no usable token for role and user has to authorize again.
var ErrNoToken = errors.New("no usable token")

//go:generate mockery --name Store --filename store.go

// Store persists tokens per account role.
type Store interface {
	// Load returns saved token or ErrNoToken if there is none.
	Load(role Role) (*oauth2.Token, error)
	Save(role Role, token *oauth2.Token) error
	Delete(role Role) error
}

// Config holds application keys and OAuth endpoints.
type Config struct {
	AppID    string
	CertID   string
	RuName   string
	AuthURL  string
	TokenURL string
}

// OAuth2 returns authorization code flow configuration.
func (c Config) OAuth2() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     c.AppID,
		ClientSecret: c.CertID,
		RedirectURL:  c.RuName,
		Scopes:       Scopes,
		Endpoint: oauth2.Endpoint{
			AuthURL:   c.AuthURL,
			TokenURL:  c.TokenURL,
			AuthStyle: oauth2.AuthStyleInHeader,
		},
	}
}

// Session holds token state of source and target accounts.
// It is safe for concurrent use.
type Session struct {
	config *oauth2.Config
	store  Store

	mu     sync.Mutex
	tokens map[Role]*oauth2.Token
}

// NewSession returns new Session.
func NewSession(config *oauth2.Config, store Store) *Session {
	return &Session{
		config: config,
		store:  store,
		tokens: map[Role]*oauth2.Token{},
	}
}

// Token returns valid token of role, refreshing and saving it when expired.
// It returns ErrNoToken when user has to authorize the account again.
func (s *Session) Token(ctx context.Context, role Role) (*oauth2.Token, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	token, ok := s.tokens[role]
	if !ok {
		loaded, err := s.store.Load(role)
		if err != nil {
			return nil, fmt.Errorf("can't load %s token: %w", role, err)
		}
		token = loaded
		s.tokens[role] = token
	}

	if token.Valid() {
		return token, nil
	}

	if token.RefreshToken == "" {
		return nil, fmt.Errorf("%s token expired: %w", role, ErrNoToken)
	}

	refreshed, err := s.config.TokenSource(ctx, &oauth2.Token{RefreshToken: token.RefreshToken}).Token()
	if err != nil {
		return nil, fmt.Errorf("can't refresh %s token: %w: %w", role, ErrNoToken, err)
	}

	if refreshed.RefreshToken == "" {
		refreshed.RefreshToken = token.RefreshToken
	}

	if err := s.save(role, refreshed); err != nil {
		return nil, err
	}

	return refreshed, nil
}

// AuthCodeURL returns URL where user authorizes account of provided role.
func (s *Session) AuthCodeURL(role Role) string {
	return s.config.AuthCodeURL(string(role))
}

// Exchange exchanges authorization code for token of role and saves it.
// Input may be either raw code or whole redirect URL containing the code.
func (s *Session) Exchange(ctx context.Context, role Role, input string) error {
	code, err := parseCode(input)
	if err != nil {
		return err
	}

	token, err := s.config.Exchange(ctx, code)
	if err != nil {
		return fmt.Errorf("can't exchange %s authorization code: %w", role, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.save(role, token)
}

// Forget drops saved token of role, so the account has to be authorized again.
func (s *Session) Forget(role Role) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.tokens, role)
	if err := s.store.Delete(role); err != nil {
		return fmt.Errorf("can't delete %s token: %w", role, err)
	}

	return nil
}

// TokenSource returns oauth2.TokenSource serving tokens of role from the session.
func (s *Session) TokenSource(ctx context.Context, role Role) oauth2.TokenSource {
	return sessionTokenSource{
		ctx:     ctx,
		session: s,
		role:    role,
	}
}

func (s *Session) save(role Role, token *oauth2.Token) error {
	// token endpoint reports type "User Access Token" which isn't valid in Authorization header.
	token.TokenType = tokenType

	if err := s.store.Save(role, token); err != nil {
		return fmt.Errorf("can't save %s token: %w", role, err)
	}
	s.tokens[role] = token

	return nil
}

type sessionTokenSource struct {
	ctx     context.Context
	session *Session
	role    Role
}

// Token returns current token of the source role.
func (ts sessionTokenSource) Token() (*oauth2.Token, error) {
	return ts.session.Token(ts.ctx, ts.role)
}

func parseCode(input string) (string, error) {
	input = strings.TrimSpace(input)

	if _, after, found := strings.Cut(input, "code="); found {
		code, _, _ := strings.Cut(after, "&")
		unescaped, err := url.QueryUnescape(code)
		if err != nil {
			return "", fmt.Errorf("can't unescape authorization code: %w", err)
		}
		input = unescaped
	}

	if input == "" {
		return "", errors.New("authorization code is empty")
	}

	return input, nil
}
