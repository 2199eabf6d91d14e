package profileservice

import (
	"context"
	"errors"
	"goatedvips/pkg/database/models"
	"goatedvips/pkg/wager"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetUsersByGoatedUIDs(ctx context.Context, uids []string) (map[string]*models.User, error) {
	args := m.Called(ctx, uids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]*models.User), args.Error(1)
}

func (m *MockUserRepository) CreateUser(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func syncRecords() []wager.Record {
	return []wager.Record{
		{UID: "u1", Name: "Alice", Wagered: wager.Breakdown{ThisMonth: 500, AllTime: 5000}},
		{UID: "u2", Name: "Bob", Wagered: wager.Breakdown{ThisMonth: 300, AllTime: 9000}},
	}
}

func TestSyncProfilesCreatesMissingUsers(t *testing.T) {
	userRepo := new(MockUserRepository)
	service := NewProfileService(userRepo)
	ctx := context.Background()

	userRepo.On("GetUsersByGoatedUIDs", ctx, []string{"u1", "u2"}).
		Return(map[string]*models.User{}, nil)
	userRepo.On("CreateUser", ctx, mock.Anything).Return(nil).Twice()

	result, err := service.SyncProfiles(ctx, syncRecords())

	require.NoError(t, err)
	assert.Equal(t, 2, result.Created)
	assert.Equal(t, 0, result.Failed)
	userRepo.AssertExpectations(t)

	// Created profiles are placeholders until a real signup claims them.
	created := userRepo.Calls[1].Arguments.Get(1).(*models.User)
	assert.True(t, created.ExternallyLinked)
	assert.NotEmpty(t, created.PlaceholderSecret)
}

func TestSyncProfilesAssignsPeriodRanks(t *testing.T) {
	userRepo := new(MockUserRepository)
	service := NewProfileService(userRepo)
	ctx := context.Background()

	var created []*models.User
	userRepo.On("GetUsersByGoatedUIDs", ctx, mock.Anything).
		Return(map[string]*models.User{}, nil)
	userRepo.On("CreateUser", ctx, mock.Anything).
		Run(func(args mock.Arguments) {
			created = append(created, args.Get(1).(*models.User))
		}).
		Return(nil)

	_, err := service.SyncProfiles(ctx, syncRecords())
	require.NoError(t, err)
	require.Len(t, created, 2)

	byUID := map[string]*models.User{}
	for _, user := range created {
		byUID[user.GoatedUID] = user
	}

	// Alice leads the month, Bob leads all time.
	assert.Equal(t, 1, byUID["u1"].RankMonthly)
	assert.Equal(t, 2, byUID["u2"].RankMonthly)
	assert.Equal(t, 1, byUID["u2"].RankAllTime)
	assert.Equal(t, 2, byUID["u1"].RankAllTime)
}

func TestSyncProfilesSkipsUnchangedUsers(t *testing.T) {
	userRepo := new(MockUserRepository)
	service := NewProfileService(userRepo)
	ctx := context.Background()

	unchanged := &models.User{
		GoatedUID: "u1", Username: "Alice",
		WagerThisMonth: 500, WagerAllTime: 5000,
		RankDaily: 1, RankWeekly: 1, RankMonthly: 1, RankAllTime: 2,
	}
	changed := &models.User{GoatedUID: "u2", Username: "Bob"}

	userRepo.On("GetUsersByGoatedUIDs", ctx, mock.Anything).
		Return(map[string]*models.User{"u1": unchanged, "u2": changed}, nil)
	userRepo.On("SaveUser", ctx, changed).Return(nil).Once()

	result, err := service.SyncProfiles(ctx, syncRecords())

	require.NoError(t, err)
	assert.Equal(t, 1, result.Existing)
	assert.Equal(t, 1, result.Updated)
	userRepo.AssertExpectations(t)
}

func TestSyncProfilesToleratesSingleFailure(t *testing.T) {
	userRepo := new(MockUserRepository)
	service := NewProfileService(userRepo)
	ctx := context.Background()

	userRepo.On("GetUsersByGoatedUIDs", ctx, mock.Anything).
		Return(map[string]*models.User{}, nil)
	userRepo.On("CreateUser", ctx, mock.MatchedBy(func(u *models.User) bool {
		return u.GoatedUID == "u1"
	})).Return(errors.New("duplicate key"))
	userRepo.On("CreateUser", ctx, mock.MatchedBy(func(u *models.User) bool {
		return u.GoatedUID == "u2"
	})).Return(nil)

	result, err := service.SyncProfiles(ctx, syncRecords())

	require.NoError(t, err)
	assert.Equal(t, 1, result.Created)
	assert.Equal(t, 1, result.Failed)
}

func TestSyncProfilesLoadFailureAborts(t *testing.T) {
	userRepo := new(MockUserRepository)
	service := NewProfileService(userRepo)
	ctx := context.Background()

	userRepo.On("GetUsersByGoatedUIDs", ctx, mock.Anything).
		Return(nil, errors.New("connection refused"))

	_, err := service.SyncProfiles(ctx, syncRecords())

	assert.Error(t, err)
	userRepo.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything)
}

func TestSyncProfilesEmptyInput(t *testing.T) {
	userRepo := new(MockUserRepository)
	service := NewProfileService(userRepo)

	result, err := service.SyncProfiles(context.Background(), nil)

	require.NoError(t, err)
	assert.Zero(t, result.Created)
	userRepo.AssertNotCalled(t, "GetUsersByGoatedUIDs", mock.Anything, mock.Anything)
}
