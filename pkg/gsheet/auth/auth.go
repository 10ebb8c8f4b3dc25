// Package auth obtains OAuth2 credentials for the spreadsheet API and keeps
// the token on disk so it can be reused across runs.
package auth

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const (
	// CredentialsFile holds the OAuth client secrets downloaded from the
	// Google Cloud console.
	CredentialsFile = "credentials.json"
	// TokenFile holds the persisted token.
	TokenFile = "token.json"
)

// AuthorizeFunc obtains a new token when the cached one cannot be reused.
type AuthorizeFunc func(ctx context.Context, cfg *oauth2.Config) (*oauth2.Token, error)

// Config configures Load.
type Config struct {
	// Dir contains CredentialsFile and receives TokenFile.
	Dir string
	// Scopes requested for new tokens.
	Scopes []string
	// Authorize runs when there is no usable token. If nil, the loopback
	// browser flow is used and the consent URL is printed to stderr.
	Authorize AuthorizeFunc
	// Logger defaults to the logrus standard logger.
	Logger *logrus.Logger
}

// Load returns a token source for the credentials in c.Dir. A cached valid
// token is reused, an expired one is refreshed, and otherwise a new one is
// obtained through c.Authorize. The token is persisted whenever it changes,
// including refreshes made later by the returned source.
func Load(ctx context.Context, c Config) (oauth2.TokenSource, error) {
	log := c.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}

	cfg, err := ClientConfig(c.Dir, c.Scopes...)
	if err != nil {
		return nil, err
	}

	tokenPath := filepath.Join(c.Dir, TokenFile)
	tok, err := ReadToken(tokenPath)
	if err != nil && !os.IsNotExist(errors.Cause(err)) {
		log.WithError(err).Warn("ignoring unreadable token file")
	}

	if tok == nil || !tok.Valid() {
		tok, err = obtain(ctx, cfg, tok, c, log)
		if err != nil {
			return nil, err
		}
		if err := WriteToken(tokenPath, tok); err != nil {
			return nil, err
		}
	}

	return &persistingSource{
		base: cfg.TokenSource(ctx, tok),
		path: tokenPath,
		last: tok.AccessToken,
		log:  log,
	}, nil
}

func obtain(ctx context.Context, cfg *oauth2.Config, tok *oauth2.Token, c Config, log *logrus.Logger) (*oauth2.Token, error) {
	if tok != nil && tok.RefreshToken != "" {
		fresh, err := cfg.TokenSource(ctx, tok).Token()
		if err == nil {
			log.Debug("refreshed cached token")
			return fresh, nil
		}
		log.WithError(err).Warn("token refresh failed, requesting a new token")
	}

	authorize := c.Authorize
	if authorize == nil {
		authorize = LocalServerFlow(PrintURL(os.Stderr))
	}
	fresh, err := authorize(ctx, cfg)
	if err != nil {
		return nil, errors.Wrap(err, "authorizing")
	}
	return fresh, nil
}

// ClientConfig reads the OAuth client secrets in dir.
func ClientConfig(dir string, scopes ...string) (*oauth2.Config, error) {
	data, err := os.ReadFile(filepath.Join(dir, CredentialsFile))
	if err != nil {
		return nil, errors.Wrap(err, "reading client credentials")
	}
	cfg, err := google.ConfigFromJSON(data, scopes...)
	if err != nil {
		return nil, errors.Wrap(err, "parsing client credentials")
	}
	return cfg, nil
}

// ReadToken loads a token saved by WriteToken.
func ReadToken(path string) (*oauth2.Token, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	tok := &oauth2.Token{}
	if err := json.Unmarshal(data, tok); err != nil {
		return nil, errors.Wrapf(err, "decoding token %s", path)
	}
	return tok, nil
}

// WriteToken saves tok to path, readable by the owner only.
func WriteToken(path string, tok *oauth2.Token) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return errors.WithStack(err)
	}
	data, err := json.Marshal(tok)
	if err != nil {
		return errors.WithStack(err)
	}
	return errors.Wrapf(os.WriteFile(path, data, 0600), "writing token %s", path)
}

// persistingSource saves every token its base source hands out for the
// first time.
type persistingSource struct {
	base oauth2.TokenSource
	path string
	log  *logrus.Logger

	mu   sync.Mutex
	last string
}

func (s *persistingSource) Token() (*oauth2.Token, error) {
	tok, err := s.base.Token()
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if tok.AccessToken != s.last {
		if err := WriteToken(s.path, tok); err != nil {
			s.log.WithError(err).Warn("could not persist refreshed token")
		} else {
			s.last = tok.AccessToken
		}
	}
	return tok, nil
}
