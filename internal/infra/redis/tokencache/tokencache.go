package infra_token_cache

import (
	"time"

	"github.com/go-redis/redis"
)

// Driver maps issued host tokens to the session code they control.
type Driver struct {
	client *redis.Client
	prefix string
}

func New(
	client *redis.Client,
	prefix string,
) *Driver {
	return &Driver{
		client: client,
		prefix: prefix,
	}
}

func (d *Driver) SetToken(token string, sessionCode string, ttl time.Duration) error {
	return d.client.Set(d.fullKey(token), sessionCode, ttl).Err()
}

// SessionForToken returns the controlled session code, or "" for an
// unknown or expired token.
func (d *Driver) SessionForToken(token string) (string, error) {
	val, err := d.client.Get(d.fullKey(token)).Result()
	if err != nil {
		if err == redis.Nil {
			return "", nil
		}
		return "", err
	}

	return val, nil
}

func (d *Driver) RevokeToken(token string) error {
	return d.client.Del(d.fullKey(token)).Err()
}

func (d *Driver) fullKey(token string) string {
	if d.prefix != "" {
		return d.prefix + ":" + token
	}
	return token
}
