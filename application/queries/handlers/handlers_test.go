package handlers

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"essay-backend/application/ports"
	"essay-backend/application/queries"
	"essay-backend/domain/core/entities"
	"essay-backend/domain/core/valueobjects"
	apperrors "essay-backend/pkg/errors"
)

type mockEssays struct {
	mock.Mock
}

func (m *mockEssays) Create(ctx context.Context, e *entities.Essay) error {
	return m.Called(ctx, e).Error(0)
}

func (m *mockEssays) FindByID(ctx context.Context, userID, essayID string) (*entities.Essay, error) {
	args := m.Called(ctx, userID, essayID)
	essay, _ := args.Get(0).(*entities.Essay)
	return essay, args.Error(1)
}

func (m *mockEssays) Update(ctx context.Context, userID, essayID string, u ports.EssayUpdate) error {
	return m.Called(ctx, userID, essayID, u).Error(0)
}

func (m *mockEssays) Delete(ctx context.Context, userID, essayID string) error {
	return m.Called(ctx, userID, essayID).Error(0)
}

func (m *mockEssays) ListByUser(ctx context.Context, userID string, opts ports.ListOptions) (*ports.EssayPage, error) {
	args := m.Called(ctx, userID, opts)
	page, _ := args.Get(0).(*ports.EssayPage)
	return page, args.Error(1)
}

func (m *mockEssays) ListByStatus(ctx context.Context, userID string, status valueobjects.EssayStatus, opts ports.ListOptions) (*ports.EssayPage, error) {
	args := m.Called(ctx, userID, status, opts)
	page, _ := args.Get(0).(*ports.EssayPage)
	return page, args.Error(1)
}

type mockStorage struct {
	mock.Mock
}

func (m *mockStorage) PresignUpload(ctx context.Context, key, contentType string, expires time.Duration) (string, error) {
	args := m.Called(ctx, key, contentType, expires)
	return args.String(0), args.Error(1)
}

func (m *mockStorage) PresignDownload(ctx context.Context, key string, expires time.Duration) (string, error) {
	args := m.Called(ctx, key, expires)
	return args.String(0), args.Error(1)
}

func (m *mockStorage) GetObject(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	data, _ := args.Get(0).([]byte)
	return data, args.Error(1)
}

func (m *mockStorage) DeleteObject(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

type mockUsers struct {
	mock.Mock
}

func (m *mockUsers) Create(ctx context.Context, u *entities.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *mockUsers) FindByID(ctx context.Context, id string) (*entities.User, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*entities.User)
	return user, args.Error(1)
}

func (m *mockUsers) FindByEmail(ctx context.Context, email string) (*entities.User, error) {
	args := m.Called(ctx, email)
	user, _ := args.Get(0).(*entities.User)
	return user, args.Error(1)
}

func (m *mockUsers) Update(ctx context.Context, id string, u ports.UserUpdate) (*entities.User, error) {
	args := m.Called(ctx, id, u)
	user, _ := args.Get(0).(*entities.User)
	return user, args.Error(1)
}

func essayOf(t *testing.T, userID, title string) *entities.Essay {
	t.Helper()
	essay, err := entities.NewEssay(entities.NewEssayParams{UserID: userID, Title: title, Content: "Texto."}, time.Now())
	require.NoError(t, err)
	return essay
}

func TestListEssaysByStatusDropsOtherOwners(t *testing.T) {
	ctx := context.Background()
	essays := new(mockEssays)

	mine := essayOf(t, "user-a", "Minha")
	theirs := essayOf(t, "user-b", "Deles")
	essays.On("ListByStatus", ctx, "user-a", valueobjects.StatusCompleted, ports.ListOptions{Limit: 10}).
		Return(&ports.EssayPage{Items: []*entities.Essay{mine, theirs}, NextToken: "next"}, nil)

	res, err := NewListEssaysHandler(essays, zap.NewNop()).Handle(ctx, queries.ListEssaysQuery{
		UserID: "user-a", Status: "completed", Limit: 10,
	})
	require.NoError(t, err)

	require.Len(t, res.Items, 1)
	assert.Equal(t, mine.ID, res.Items[0].ID)
	assert.Equal(t, "next", res.NextToken)
	essays.AssertExpectations(t)
}

func TestListEssaysEmptyStatusPageKeepsToken(t *testing.T) {
	ctx := context.Background()
	essays := new(mockEssays)

	theirs := essayOf(t, "user-b", "Deles")
	mine := essayOf(t, "user-a", "Minha")
	essays.On("ListByStatus", ctx, "user-a", valueobjects.StatusPending, ports.ListOptions{Limit: 1}).
		Return(&ports.EssayPage{Items: []*entities.Essay{theirs}, NextToken: "page-2"}, nil)
	essays.On("ListByStatus", ctx, "user-a", valueobjects.StatusPending, ports.ListOptions{Limit: 1, NextToken: "page-2"}).
		Return(&ports.EssayPage{Items: []*entities.Essay{mine}}, nil)

	handler := NewListEssaysHandler(essays, zap.NewNop())

	first, err := handler.Handle(ctx, queries.ListEssaysQuery{UserID: "user-a", Status: "pending", Limit: 1})
	require.NoError(t, err)
	assert.Empty(t, first.Items)
	assert.Equal(t, "page-2", first.NextToken)

	second, err := handler.Handle(ctx, queries.ListEssaysQuery{UserID: "user-a", Status: "pending", Limit: 1, NextToken: first.NextToken})
	require.NoError(t, err)
	require.Len(t, second.Items, 1)
	assert.Equal(t, mine.ID, second.Items[0].ID)
	assert.Empty(t, second.NextToken)
	essays.AssertExpectations(t)
}

func TestListEssaysWithoutStatusUsesOwnerIndex(t *testing.T) {
	ctx := context.Background()
	essays := new(mockEssays)
	essays.On("ListByUser", ctx, "user-a", ports.ListOptions{}).
		Return(&ports.EssayPage{}, nil)

	res, err := NewListEssaysHandler(essays, zap.NewNop()).Handle(ctx, queries.ListEssaysQuery{UserID: "user-a"})
	require.NoError(t, err)
	assert.NotNil(t, res.Items)
	assert.Empty(t, res.Items)
	essays.AssertNotCalled(t, "ListByStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestListEssaysValidation(t *testing.T) {
	essays := new(mockEssays)
	handler := NewListEssaysHandler(essays, zap.NewNop())

	_, err := handler.Handle(context.Background(), queries.ListEssaysQuery{UserID: "user-a", Status: "archived"})
	assert.True(t, apperrors.IsValidation(err))

	_, err = handler.Handle(context.Background(), queries.ListEssaysQuery{UserID: "user-a", Limit: 500})
	assert.True(t, apperrors.IsValidation(err))

	essays.AssertNotCalled(t, "ListByUser", mock.Anything, mock.Anything, mock.Anything)
}

func TestGetEssay(t *testing.T) {
	ctx := context.Background()
	expiry := 15 * time.Minute

	t.Run("not found", func(t *testing.T) {
		essays := new(mockEssays)
		essays.On("FindByID", ctx, "user-a", "missing").Return(nil, apperrors.NewNotFoundError("Essay"))

		_, err := NewGetEssayHandler(essays, new(mockStorage), expiry, zap.NewNop()).Handle(ctx, queries.GetEssayQuery{
			UserID: "user-a", EssayID: "missing",
		})
		assert.True(t, apperrors.IsNotFound(err))
	})

	t.Run("other owner", func(t *testing.T) {
		essays := new(mockEssays)
		theirs := essayOf(t, "user-b", "Deles")
		essays.On("FindByID", ctx, "user-a", theirs.ID).Return(theirs, nil)

		_, err := NewGetEssayHandler(essays, new(mockStorage), expiry, zap.NewNop()).Handle(ctx, queries.GetEssayQuery{
			UserID: "user-a", EssayID: theirs.ID,
		})
		assert.True(t, apperrors.IsForbidden(err))
	})

	t.Run("text essay has no link", func(t *testing.T) {
		essays := new(mockEssays)
		storage := new(mockStorage)
		mine := essayOf(t, "user-a", "Minha")
		essays.On("FindByID", ctx, "user-a", mine.ID).Return(mine, nil)

		res, err := NewGetEssayHandler(essays, storage, expiry, zap.NewNop()).Handle(ctx, queries.GetEssayQuery{
			UserID: "user-a", EssayID: mine.ID,
		})
		require.NoError(t, err)
		assert.Empty(t, res.FileURL)
		storage.AssertNotCalled(t, "PresignDownload", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("file essay gets a download link", func(t *testing.T) {
		essays := new(mockEssays)
		storage := new(mockStorage)
		mine := essayOf(t, "user-a", "Minha")
		mine.FileKey = "uploads/user-a/k/redacao.pdf"
		mine.FileType = valueobjects.FileTypePDF
		essays.On("FindByID", ctx, "user-a", mine.ID).Return(mine, nil)
		storage.On("PresignDownload", ctx, mine.FileKey, expiry).Return("https://signed", nil)

		res, err := NewGetEssayHandler(essays, storage, expiry, zap.NewNop()).Handle(ctx, queries.GetEssayQuery{
			UserID: "user-a", EssayID: mine.ID,
		})
		require.NoError(t, err)
		assert.Equal(t, "https://signed", res.FileURL)
		assert.Equal(t, mine.ID, res.ID)
	})

	t.Run("presign failure keeps the essay", func(t *testing.T) {
		essays := new(mockEssays)
		storage := new(mockStorage)
		mine := essayOf(t, "user-a", "Minha")
		mine.FileKey = "uploads/user-a/k/redacao.pdf"
		mine.FileType = valueobjects.FileTypePDF
		essays.On("FindByID", ctx, "user-a", mine.ID).Return(mine, nil)
		storage.On("PresignDownload", ctx, mine.FileKey, expiry).Return("", errors.New("denied"))

		res, err := NewGetEssayHandler(essays, storage, expiry, zap.NewNop()).Handle(ctx, queries.GetEssayQuery{
			UserID: "user-a", EssayID: mine.ID,
		})
		require.NoError(t, err)
		assert.Empty(t, res.FileURL)
	})
}

func TestGetProfile(t *testing.T) {
	ctx := context.Background()
	users := new(mockUsers)
	user := entities.NewUser("u-1", "ana@example.com", "Ana", "", time.Now())
	users.On("FindByID", ctx, "u-1").Return(user, nil)
	users.On("FindByID", ctx, "ghost").Return(nil, apperrors.NewNotFoundError("User"))

	handler := NewGetProfileHandler(users, zap.NewNop())

	got, err := handler.Handle(ctx, queries.GetProfileQuery{UserID: "u-1"})
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", got.Email)

	_, err = handler.Handle(ctx, queries.GetProfileQuery{UserID: "ghost"})
	assert.True(t, apperrors.IsNotFound(err))

	_, err = handler.Handle(ctx, queries.GetProfileQuery{})
	assert.True(t, apperrors.IsValidation(err))
}
