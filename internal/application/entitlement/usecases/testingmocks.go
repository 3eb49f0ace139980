package usecases

import (
	"context"
	"time"

	"melodia/internal/domain/generation"
	"melodia/internal/domain/practice"
	"melodia/internal/domain/song"
	"melodia/internal/domain/subscription"
	"melodia/internal/domain/user"
	"melodia/internal/shared/logger"

	"github.com/stretchr/testify/mock"
)

type mockLogger struct {
	mock.Mock
}

func (m *mockLogger) Debug(msg string, args ...any) {
	m.Called(msg, args)
}

func (m *mockLogger) Info(msg string, args ...any) {
	m.Called(msg, args)
}

func (m *mockLogger) Warn(msg string, args ...any) {
	m.Called(msg, args)
}

func (m *mockLogger) Error(msg string, args ...any) {
	m.Called(msg, args)
}

func (m *mockLogger) With(args ...any) logger.Interface {
	margs := m.Called(args)
	if margs.Get(0) == nil {
		return m
	}
	return margs.Get(0).(logger.Interface)
}

func (m *mockLogger) Named(name string) logger.Interface {
	margs := m.Called(name)
	if margs.Get(0) == nil {
		return m
	}
	return margs.Get(0).(logger.Interface)
}

func (m *mockLogger) Debugw(msg string, keysAndValues ...interface{}) {
	m.Called(msg, keysAndValues)
}

func (m *mockLogger) Infow(msg string, keysAndValues ...interface{}) {
	m.Called(msg, keysAndValues)
}

func (m *mockLogger) Warnw(msg string, keysAndValues ...interface{}) {
	m.Called(msg, keysAndValues)
}

func (m *mockLogger) Errorw(msg string, keysAndValues ...interface{}) {
	m.Called(msg, keysAndValues)
}

type mockUserRepository struct {
	mock.Mock
}

func (m *mockUserRepository) Create(ctx context.Context, u *user.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *mockUserRepository) GetByID(ctx context.Context, userID uint) (*user.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *mockUserRepository) GetBySID(ctx context.Context, sid string) (*user.User, error) {
	args := m.Called(ctx, sid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *mockUserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *mockUserRepository) Update(ctx context.Context, u *user.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *mockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

type mockSubscriptionRepository struct {
	mock.Mock
}

func (m *mockSubscriptionRepository) Create(ctx context.Context, sub *subscription.Subscription) error {
	args := m.Called(ctx, sub)
	return args.Error(0)
}

func (m *mockSubscriptionRepository) GetByID(ctx context.Context, subID uint) (*subscription.Subscription, error) {
	args := m.Called(ctx, subID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*subscription.Subscription), args.Error(1)
}

func (m *mockSubscriptionRepository) GetBySID(ctx context.Context, sid string) (*subscription.Subscription, error) {
	args := m.Called(ctx, sid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*subscription.Subscription), args.Error(1)
}

func (m *mockSubscriptionRepository) GetCurrentByUserID(ctx context.Context, userID uint, now time.Time) (*subscription.Subscription, error) {
	args := m.Called(ctx, userID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*subscription.Subscription), args.Error(1)
}

func (m *mockSubscriptionRepository) ListByUserID(ctx context.Context, userID uint) ([]*subscription.Subscription, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*subscription.Subscription), args.Error(1)
}

func (m *mockSubscriptionRepository) Update(ctx context.Context, sub *subscription.Subscription) error {
	args := m.Called(ctx, sub)
	return args.Error(0)
}

type mockSongRepository struct {
	mock.Mock
}

func (m *mockSongRepository) Create(ctx context.Context, s *song.Song) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *mockSongRepository) GetByID(ctx context.Context, songID uint) (*song.Song, error) {
	args := m.Called(ctx, songID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*song.Song), args.Error(1)
}

func (m *mockSongRepository) GetBySID(ctx context.Context, sid string) (*song.Song, error) {
	args := m.Called(ctx, sid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*song.Song), args.Error(1)
}

func (m *mockSongRepository) ListPublic(ctx context.Context, filter song.Filter) ([]*song.Song, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*song.Song), args.Get(1).(int64), args.Error(2)
}

func (m *mockSongRepository) CountByAuthorSince(ctx context.Context, authorID uint, since time.Time) (int64, error) {
	args := m.Called(ctx, authorID, since)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockSongRepository) RatingSummaries(ctx context.Context, songIDs []uint) (map[uint]song.RatingSummary, error) {
	args := m.Called(ctx, songIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uint]song.RatingSummary), args.Error(1)
}

func (m *mockSongRepository) CreateReview(ctx context.Context, r *song.Review) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

type mockPracticeRepository struct {
	mock.Mock
}

func (m *mockPracticeRepository) Create(ctx context.Context, s *practice.Session) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *mockPracticeRepository) ListByUserID(ctx context.Context, userID uint, sessionType string, limit int) ([]*practice.Session, error) {
	args := m.Called(ctx, userID, sessionType, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*practice.Session), args.Error(1)
}

func (m *mockPracticeRepository) SumDurationSince(ctx context.Context, userID uint, since time.Time) (int64, error) {
	args := m.Called(ctx, userID, since)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockPracticeRepository) StatsByUserID(ctx context.Context, userID uint, sessionType string) (*practice.Stats, error) {
	args := m.Called(ctx, userID, sessionType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*practice.Stats), args.Error(1)
}

type mockGenerationRepository struct {
	mock.Mock
}

func (m *mockGenerationRepository) Create(ctx context.Context, g *generation.Generation) error {
	args := m.Called(ctx, g)
	return args.Error(0)
}

func (m *mockGenerationRepository) CountByUserSince(ctx context.Context, userID uint, since time.Time) (int64, error) {
	args := m.Called(ctx, userID, since)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockGenerationRepository) ListByUserID(ctx context.Context, userID uint, kind string, limit int) ([]*generation.Generation, error) {
	args := m.Called(ctx, userID, kind, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*generation.Generation), args.Error(1)
}
