// Package session keeps short-lived per-browser state, used here for flash
// messages shown once after a redirect.
//
// The authentication key should be 32 or 64 bytes and the encryption key 16,
// 24 or 32 bytes:
//
//	openssl rand -base64 32
package session

import (
	"bytes"
	"context"
	"encoding/gob"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"github.com/redis/go-redis/v9"
)

const (
	redisKeyPrefix = "session:"
	defaultMaxAge  = 24 * 60 * 60
)

// Keys sign and encrypt the session cookie.
type Keys struct {
	Auth       []byte
	Encryption []byte
}

// NewCookieStore keeps the values in the encrypted cookie itself.
func NewCookieStore(keys Keys, secureCookie bool) *sessions.CookieStore {
	store := sessions.NewCookieStore(keys.Auth, keys.Encryption)
	store.Options = cookieOptions(secureCookie)
	return store
}

func cookieOptions(secureCookie bool) *sessions.Options {
	return &sessions.Options{
		Path:     "/",
		MaxAge:   defaultMaxAge,
		HttpOnly: true,
		Secure:   secureCookie,
		SameSite: http.SameSiteLaxMode,
	}
}

// RedisStore keeps the values in Redis under "session:<uuid>"; the cookie
// only carries the signed and encrypted id. A session whose values are all
// consumed is removed from Redis, so popped flashes leave nothing behind.
type RedisStore struct {
	client  redis.UniversalClient
	codecs  []securecookie.Codec
	options *sessions.Options
}

func NewRedisStore(client redis.UniversalClient, keys Keys, secureCookie bool) *RedisStore {
	return &RedisStore{
		client:  client,
		codecs:  securecookie.CodecsFromPairs(keys.Auth, keys.Encryption),
		options: cookieOptions(secureCookie),
	}
}

// Get returns the session cached in the request registry.
func (s *RedisStore) Get(r *http.Request, name string) (*sessions.Session, error) {
	return sessions.GetRegistry(r).Get(s, name)
}

// New loads the session named by the request cookie. A missing, forged or
// expired cookie yields a fresh session and no error. Redis failures are
// returned alongside the fresh session.
func (s *RedisStore) New(r *http.Request, name string) (*sessions.Session, error) {
	session := sessions.NewSession(s, name)
	opts := *s.options
	session.Options = &opts
	session.IsNew = true

	c, err := r.Cookie(name)
	if err != nil {
		return session, nil
	}
	var id string
	if err := securecookie.DecodeMulti(name, c.Value, &id, s.codecs...); err != nil {
		return session, nil
	}
	if _, err := uuid.Parse(id); err != nil {
		return session, nil
	}

	found, err := s.load(r.Context(), id, session)
	if err != nil {
		return session, err
	}
	if found {
		session.ID = id
		session.IsNew = false
	}
	return session, nil
}

// Save writes the values and the cookie. MaxAge < 0 deletes both.
func (s *RedisStore) Save(r *http.Request, w http.ResponseWriter, session *sessions.Session) error {
	ctx := r.Context()
	if session.Options.MaxAge < 0 || (len(session.Values) == 0 && session.ID != "") {
		if session.ID != "" {
			if err := s.client.Del(ctx, redisKeyPrefix+session.ID).Err(); err != nil {
				return fmt.Errorf("delete session: %w", err)
			}
		}
		expired := *session.Options
		expired.MaxAge = -1
		http.SetCookie(w, sessions.NewCookie(session.Name(), "", &expired))
		return nil
	}
	if len(session.Values) == 0 {
		return nil
	}

	if session.ID == "" {
		session.ID = uuid.NewString()
	}
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(session.Values); err != nil {
		return fmt.Errorf("encode session values: %w", err)
	}
	ttl := time.Duration(session.Options.MaxAge) * time.Second
	if err := s.client.Set(ctx, redisKeyPrefix+session.ID, buf.Bytes(), ttl).Err(); err != nil {
		return fmt.Errorf("store session: %w", err)
	}

	encoded, err := securecookie.EncodeMulti(session.Name(), session.ID, s.codecs...)
	if err != nil {
		return fmt.Errorf("encode session cookie: %w", err)
	}
	http.SetCookie(w, sessions.NewCookie(session.Name(), encoded, session.Options))
	return nil
}

func (s *RedisStore) load(ctx context.Context, id string, session *sessions.Session) (bool, error) {
	data, err := s.client.Get(ctx, redisKeyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("load session: %w", err)
	}
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&session.Values); err != nil {
		return false, fmt.Errorf("decode session values: %w", err)
	}
	return true, nil
}
