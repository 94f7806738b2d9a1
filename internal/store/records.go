package store

import (
	"context"

	"github.com/adube/examterm/internal/session"
	"github.com/adube/examterm/internal/stats"
)

// Credentials is the cached registration identity, used to prefill the
// registration form.
type Credentials struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// LoadStats returns the persisted user statistics, or the zero record for a
// first-time user.
func (s *Store) LoadStats(ctx context.Context) (stats.UserStats, error) {
	var st stats.UserStats
	_, err := s.LoadInto(ctx, KeyStats, &st)
	return st, err
}

// SaveStats persists the user statistics.
func (s *Store) SaveStats(ctx context.Context, st stats.UserStats) error {
	return s.Save(ctx, KeyStats, st)
}

// LoadCredentials returns the cached identity; ok is false when none is
// cached.
func (s *Store) LoadCredentials(ctx context.Context) (Credentials, bool, error) {
	var c Credentials
	ok, err := s.LoadInto(ctx, KeyCredentials, &c)
	return c, ok, err
}

// SaveCredentials caches the identity for future registrations.
func (s *Store) SaveCredentials(ctx context.Context, c Credentials) error {
	return s.Save(ctx, KeyCredentials, c)
}

// LoadProgress returns the saved in-flight session, if any. Only a session
// still in progress qualifies for resumption; anything else reads as absent.
func (s *Store) LoadProgress(ctx context.Context) (*session.Session, bool, error) {
	var sess session.Session
	ok, err := s.LoadInto(ctx, KeyProgress, &sess)
	if err != nil || !ok {
		return nil, false, err
	}
	if sess.State != session.StateInProgress || len(sess.Questions) == 0 {
		return nil, false, nil
	}
	return &sess, true, nil
}

// ClearProgress drops the in-flight session record, called on completion and
// on retake.
func (s *Store) ClearProgress(ctx context.Context) error {
	return s.Delete(ctx, KeyProgress)
}
