package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/templui/tripjournal/internal/model"
	"github.com/templui/tripjournal/internal/repository"
	"github.com/templui/tripjournal/internal/repository/repotest"
	"github.com/templui/tripjournal/internal/validation"
)

func TestProfileGetOrCreate(t *testing.T) {
	store := repotest.NewStore()
	svc := NewUserService(store.Users())
	ctx := context.Background()

	user, err := svc.Profile(ctx, &model.Identity{UID: "uid-1", Email: "ada@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", *user.DisplayName, "falls back to email")

	again, err := svc.Profile(ctx, &model.Identity{UID: "uid-1", Email: "ada@example.com", Name: "Ada"})
	require.NoError(t, err)
	assert.Equal(t, user.ID, again.ID)
	assert.Equal(t, "ada@example.com", *again.DisplayName, "existing row is not overwritten")

	named, err := svc.Profile(ctx, &model.Identity{UID: "uid-2", Email: "b@example.com", Name: "Bea"})
	require.NoError(t, err)
	assert.Equal(t, "Bea", *named.DisplayName)
}

func TestUpdateProfile(t *testing.T) {
	store := repotest.NewStore()
	store.AddUser("uid-1", "Ada")
	svc := NewUserService(store.Users())
	ctx := context.Background()

	user, err := svc.UpdateProfile(ctx, "uid-1", model.ProfileUpdate{IsPublic: ptr(true)})
	require.NoError(t, err)
	assert.True(t, user.IsPublic)
	assert.Equal(t, "Ada", *user.DisplayName)

	user, err = svc.UpdateProfile(ctx, "uid-1", model.ProfileUpdate{DisplayName: ptr("  Ada L.  ")})
	require.NoError(t, err)
	assert.Equal(t, "Ada L.", *user.DisplayName)
	assert.True(t, user.IsPublic)

	_, err = svc.UpdateProfile(ctx, "uid-1", model.ProfileUpdate{DisplayName: ptr(strings.Repeat("a", 101))})
	var verr *validation.Error
	assert.ErrorAs(t, err, &verr)

	_, err = svc.UpdateProfile(ctx, "ghost", model.ProfileUpdate{})
	assert.ErrorIs(t, err, repository.ErrUserNotFound)
}

func TestStats(t *testing.T) {
	store := repotest.NewStore()
	store.AddUser("alice", "")
	trips := newTripService(store, &fakeGeocoder{})
	ctx := context.Background()

	for _, body := range []string{
		`{"title":"a","destination":"x","country":"Japan"}`,
		`{"title":"b","destination":"y","country":"Japan"}`,
		`{"title":"c","destination":"z","country":"Peru"}`,
		`{"title":"d","destination":"w"}`,
	} {
		_, err := trips.Create(ctx, "alice", tripInput(t, body))
		require.NoError(t, err)
	}

	svc := NewUserService(store.Users())

	stats, err := svc.Stats(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, &model.UserStats{TotalTrips: 4, CountriesVisited: 2, TotalLikes: 0}, stats)

	stats, err = svc.Stats(ctx, "nobody")
	require.NoError(t, err)
	assert.Equal(t, &model.UserStats{}, stats)
}
