package service_host_auth

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInternal = errors.New("internal error")
)

type TokenCache interface {
	SetToken(token string, sessionCode string, ttl time.Duration) error
	SessionForToken(token string) (string, error)
	RevokeToken(token string) error
}

// Service issues and validates host tokens. A token is bound to one
// session code at open time; host-only operations check the binding.
type Service struct {
	cache TokenCache
	ttl   time.Duration
}

func New(
	cache TokenCache,
	ttl *time.Duration,
) *Service {
	if ttl == nil {
		ttl = func() *time.Duration {
			defaultTokenTTL := 24 * time.Hour
			return &defaultTokenTTL
		}()
	}

	return &Service{
		cache: cache,
		ttl:   *ttl,
	}
}

func (s *Service) Issue(sessionCode string) (string, error) {
	t := s.genToken()
	if err := s.cache.SetToken(t, sessionCode, s.ttl); err != nil {
		return "", errors.Join(ErrInternal, err)
	}
	return t, nil
}

// IsHostOf reports whether the token controls the given session.
func (s *Service) IsHostOf(token string, sessionCode string) (bool, error) {
	bound, err := s.cache.SessionForToken(token)
	if err != nil {
		return false, errors.Join(ErrInternal, err)
	}
	return bound != "" && bound == sessionCode, nil
}

func (s *Service) Revoke(token string) error {
	if err := s.cache.RevokeToken(token); err != nil {
		return errors.Join(ErrInternal, err)
	}
	return nil
}

func (s *Service) genToken() string {
	return uuid.New().String()
}
