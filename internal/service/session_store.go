package service

import (
	"arch_quiz_backend/internal/model"
	"arch_quiz_backend/internal/util"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// SessionQuestion is one question as issued to the user, together with the
// submission state that used to live in ambient UI globals.
type SessionQuestion struct {
	Question  model.Question `json:"question"`
	IssuedAt  time.Time      `json:"issuedAt"`
	Submitted string         `json:"submitted,omitempty"`
	Revealed  bool           `json:"revealed"`
	Correct   bool           `json:"correct"`
}

// QuizSession is the per-user quiz context. Created at quiz start, read by
// submit, destroyed by restart or logout. One active session per user.
type QuizSession struct {
	ID        string            `json:"id"`
	UserID    uint              `json:"userId"`
	Source    string            `json:"source"`
	Questions []SessionQuestion `json:"questions"`
	Graded    bool              `json:"graded"`
	CreatedAt time.Time         `json:"createdAt"`
}

// ElapsedSeconds reports the solve time of the i-th question at the moment
// of submission.
func (s *QuizSession) ElapsedSeconds(i int, submittedAt time.Time) int {
	if i < 0 || i >= len(s.Questions) {
		return 0
	}
	sec := int(submittedAt.Sub(s.Questions[i].IssuedAt).Seconds())
	if sec < 0 {
		return 0
	}
	return sec
}

type SessionStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewSessionStore(rdb *redis.Client, ttl time.Duration) *SessionStore {
	return &SessionStore{rdb: rdb, ttl: ttl}
}

func sessionKey(userID uint) string {
	return fmt.Sprintf("quiz:session:%d", userID)
}

func (s *SessionStore) Save(ctx context.Context, session *QuizSession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, sessionKey(session.UserID), data, s.ttl).Err()
}

func (s *SessionStore) Get(ctx context.Context, userID uint) (*QuizSession, error) {
	data, err := s.rdb.Get(ctx, sessionKey(userID)).Bytes()
	if err == redis.Nil {
		return nil, util.ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}
	var session QuizSession
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (s *SessionStore) Delete(ctx context.Context, userID uint) error {
	return s.rdb.Del(ctx, sessionKey(userID)).Err()
}
