package api

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/prisma-study/srs-api/internal/api/shared"
	"github.com/prisma-study/srs-api/internal/domain"
	"github.com/prisma-study/srs-api/internal/service"
)

// Function-field mocks for the service interfaces used by handlers.

type mockUserService struct {
	RegisterFn       func(ctx context.Context, username, password string) (*domain.User, error)
	AuthenticateFn   func(ctx context.Context, username, password string) (*domain.User, error)
	GetUserFn        func(ctx context.Context, username string) (*domain.User, error)
	ChangePasswordFn func(ctx context.Context, username, currentPassword, newPassword string) error
	ListUsersFn      func(ctx context.Context) ([]*domain.User, error)
	DeleteUserFn     func(ctx context.Context, username string) error
	EnsureAdminFn    func(ctx context.Context, password string) error
}

func (m *mockUserService) Register(ctx context.Context, username, password string) (*domain.User, error) {
	return m.RegisterFn(ctx, username, password)
}

func (m *mockUserService) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	return m.AuthenticateFn(ctx, username, password)
}

func (m *mockUserService) GetUser(ctx context.Context, username string) (*domain.User, error) {
	return m.GetUserFn(ctx, username)
}

func (m *mockUserService) ChangePassword(ctx context.Context, username, currentPassword, newPassword string) error {
	return m.ChangePasswordFn(ctx, username, currentPassword, newPassword)
}

func (m *mockUserService) ListUsers(ctx context.Context) ([]*domain.User, error) {
	return m.ListUsersFn(ctx)
}

func (m *mockUserService) DeleteUser(ctx context.Context, username string) error {
	return m.DeleteUserFn(ctx, username)
}

func (m *mockUserService) EnsureAdmin(ctx context.Context, password string) error {
	return m.EnsureAdminFn(ctx, password)
}

type mockQuestionService struct {
	CreateQuestionFn func(ctx context.Context, owner, statement string, options []string, correct, feedback string, category domain.Category, topic string) (*domain.Question, error)
	GetQuestionFn    func(ctx context.Context, id uuid.UUID) (*domain.Question, error)
	ListQuestionsFn  func(ctx context.Context, requester *domain.User) ([]*domain.Question, error)
	DeleteQuestionFn func(ctx context.Context, requester *domain.User, id uuid.UUID) error
}

func (m *mockQuestionService) CreateQuestion(
	ctx context.Context,
	owner, statement string,
	options []string,
	correct, feedback string,
	category domain.Category,
	topic string,
) (*domain.Question, error) {
	return m.CreateQuestionFn(ctx, owner, statement, options, correct, feedback, category, topic)
}

func (m *mockQuestionService) GetQuestion(ctx context.Context, id uuid.UUID) (*domain.Question, error) {
	return m.GetQuestionFn(ctx, id)
}

func (m *mockQuestionService) ListQuestions(ctx context.Context, requester *domain.User) ([]*domain.Question, error) {
	return m.ListQuestionsFn(ctx, requester)
}

func (m *mockQuestionService) DeleteQuestion(ctx context.Context, requester *domain.User, id uuid.UUID) error {
	return m.DeleteQuestionFn(ctx, requester, id)
}

type mockStudyService struct {
	NextQuestionFn func(ctx context.Context, username string, practiceMode bool) (*domain.Question, error)
	RecordAnswerFn func(ctx context.Context, username string, questionID uuid.UUID, difficulty domain.Difficulty) (*domain.ReviewRecord, error)
}

func (m *mockStudyService) NextQuestion(ctx context.Context, username string, practiceMode bool) (*domain.Question, error) {
	return m.NextQuestionFn(ctx, username, practiceMode)
}

func (m *mockStudyService) RecordAnswer(
	ctx context.Context,
	username string,
	questionID uuid.UUID,
	difficulty domain.Difficulty,
) (*domain.ReviewRecord, error) {
	return m.RecordAnswerFn(ctx, username, questionID, difficulty)
}

type mockStatsService struct {
	RankingFn   func(ctx context.Context) ([]service.RankingEntry, error)
	UserStatsFn func(ctx context.Context, username string) (*service.UserStats, error)
}

func (m *mockStatsService) Ranking(ctx context.Context) ([]service.RankingEntry, error) {
	return m.RankingFn(ctx)
}

func (m *mockStatsService) UserStats(ctx context.Context, username string) (*service.UserStats, error) {
	return m.UserStatsFn(ctx, username)
}

// withIdentity attaches an authenticated identity to the request context,
// as the auth middleware would have left it.
func withIdentity(r *http.Request, username string, role domain.Role) *http.Request {
	return r.WithContext(shared.WithIdentity(r.Context(), username, role))
}
