package auth

import (
	"context"
	"errors"
	"time"

	"github.com/drashti611/gowear-frontend/internal/bus"
	"github.com/drashti611/gowear-frontend/internal/kvstore"
	"github.com/drashti611/gowear-frontend/internal/shared/apperr"
	"github.com/drashti611/gowear-frontend/pkg/logger"
)

// sessionKeys are removed on logout.
var sessionKeys = []string{
	kvstore.KeyToken,
	kvstore.KeyRole,
	kvstore.KeyUserID,
	kvstore.KeyCart,
	kvstore.KeyLikes,
}

type Sessions struct {
	store kvstore.Store
	pub   bus.Publisher
	locks *kvstore.Locks
}

// NewSessions builds the session store. locks must be the set the cart and
// likes services use so logout waits for their in-flight writes.
func NewSessions(store kvstore.Store, pub bus.Publisher, locks *kvstore.Locks) *Sessions {
	if locks == nil {
		locks = kvstore.NewLocks()
	}
	return &Sessions{store: store, pub: pub, locks: locks}
}

func (s *Sessions) Save(ctx context.Context, ns string, id Identity) error {
	for _, kv := range [][2]string{
		{kvstore.KeyToken, id.Token},
		{kvstore.KeyRole, id.Role},
		{kvstore.KeyUserID, id.UserID},
	} {
		if err := s.store.Set(ctx, ns, kv[0], kv[1]); err != nil {
			return err
		}
	}
	return nil
}

// Load returns the stored identity; ok is false when nobody is logged in.
func (s *Sessions) Load(ctx context.Context, ns string) (Identity, bool, error) {
	token, ok, err := s.store.Get(ctx, ns, kvstore.KeyToken)
	if err != nil || !ok || token == "" {
		return Identity{}, false, err
	}
	role, _, err := s.store.Get(ctx, ns, kvstore.KeyRole)
	if err != nil {
		return Identity{}, false, err
	}
	userID, _, err := s.store.Get(ctx, ns, kvstore.KeyUserID)
	if err != nil {
		return Identity{}, false, err
	}
	return Identity{Token: token, Role: role, UserID: userID}, true, nil
}

// Logout forgets the identity and both collections, then tells every open
// view of the session to re-read.
func (s *Sessions) Logout(ctx context.Context, ns string) error {
	unlock := s.locks.Lock(ns)
	defer unlock()

	if err := s.store.Delete(ctx, ns, sessionKeys...); err != nil {
		return err
	}
	s.pub.Publish(ns)
	return nil
}

// Service ties the backend client to the session store.
type Service struct {
	client   *Client
	sessions *Sessions
	secret   string
	now      func() time.Time
}

func NewService(c *Client, s *Sessions, jwtSecret string) *Service {
	return &Service{client: c, sessions: s, secret: jwtSecret, now: time.Now}
}

func (s *Service) Client() *Client     { return s.client }
func (s *Service) Sessions() *Sessions { return s.sessions }

func (s *Service) Login(ctx context.Context, ns string, cred Credentials) (Identity, error) {
	token, err := s.client.Login(ctx, cred)
	if err != nil {
		return Identity{}, err
	}
	id, err := ParseToken(token, s.secret, s.now())
	if err != nil {
		logger.Warn(ctx).Err(err).Msg("login_token_rejected")
		return Identity{}, apperr.UnauthorizedErr("Login failed")
	}
	if err := s.sessions.Save(ctx, ns, id); err != nil {
		return Identity{}, apperr.Wrap(err)
	}
	logger.Info(ctx).Str("user_id", id.UserID).Str("role", id.Role).Msg("login_ok")
	return id, nil
}

// Current returns the logged-in identity. An expired or tampered token ends
// the session.
func (s *Service) Current(ctx context.Context, ns string) (Identity, bool, error) {
	stored, ok, err := s.sessions.Load(ctx, ns)
	if err != nil || !ok {
		return Identity{}, false, err
	}
	id, err := ParseToken(stored.Token, s.secret, s.now())
	if err != nil {
		if errors.Is(err, ErrTokenExpired) || errors.Is(err, ErrInvalidToken) {
			_ = s.sessions.Logout(ctx, ns)
			return Identity{}, false, nil
		}
		return Identity{}, false, err
	}
	if id.UserID == "" {
		id.UserID = stored.UserID
	}
	return id, true, nil
}
