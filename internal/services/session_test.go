package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/bankledger/internal/api"
	"github.com/dmitrijs2005/bankledger/internal/common"
	"github.com/dmitrijs2005/bankledger/internal/models"
)

func TestLogin_Success_PersistsCredentialAndFetchesIdentity(t *testing.T) {
	fc := &fakeClient{LoginRet: "tok-1", UserRet: &models.User{ID: 7, Username: "alice"}}
	s, meta := newTestSession(t, fc)
	ctx := context.Background()

	user, err := s.Login(ctx, "alice", "pw")
	require.NoError(t, err)
	require.Equal(t, "alice", user.Username)
	require.True(t, s.Authenticated())
	require.Equal(t, "tok-1", s.Token())

	saved, err := meta.Get(ctx, credentialKey)
	require.NoError(t, err)
	require.Equal(t, []byte("tok-1"), saved)
}

func TestLogin_InvalidCredentials_IsAuthErrorAndLeavesNothing(t *testing.T) {
	fc := &fakeClient{LoginErr: api.ErrUnauthorized}
	s, meta := newTestSession(t, fc)
	ctx := context.Background()

	_, err := s.Login(ctx, "alice", "wrong")
	require.ErrorIs(t, err, common.ErrAuth)
	require.False(t, s.Authenticated())
	require.Empty(t, s.Token())

	saved, err := meta.Get(ctx, credentialKey)
	require.NoError(t, err)
	require.Nil(t, saved)
}

func TestLogin_IdentityFetchFails_NeverVisiblyAuthenticated(t *testing.T) {
	// a token that fails the subsequent identity fetch must not leave any
	// credential behind
	fc := &fakeClient{LoginRet: "tok-1", UserErr: api.ErrUnauthorized}
	s, meta := newTestSession(t, fc)
	ctx := context.Background()

	_, err := s.Login(ctx, "alice", "pw")
	require.ErrorIs(t, err, common.ErrAuth)
	require.False(t, s.Authenticated())
	require.Empty(t, s.Token())

	saved, err := meta.Get(ctx, credentialKey)
	require.NoError(t, err)
	require.Nil(t, saved)
}

func TestLogin_EmptyInputRejectedWithoutNetworkCall(t *testing.T) {
	fc := &fakeClient{}
	s, _ := newTestSession(t, fc)

	_, err := s.Login(context.Background(), "", "pw")
	require.Error(t, err)
	_, err = s.Login(context.Background(), "alice", "")
	require.Error(t, err)
	require.Zero(t, fc.LoginCalls)
}

func TestRegister_DuplicateUsername_SurfacesServerDetail(t *testing.T) {
	fc := &fakeClient{RegisterErr: &api.APIError{StatusCode: 400, Message: "Username already registered"}}
	s, _ := newTestSession(t, fc)

	err := s.Register(context.Background(), "alice", "pw")
	require.ErrorIs(t, err, common.ErrAuth)
	require.Contains(t, err.Error(), "Username already registered")
	require.False(t, s.Authenticated())
}

func TestRegister_DoesNotEstablishSession(t *testing.T) {
	fc := &fakeClient{}
	s, meta := newTestSession(t, fc)
	ctx := context.Background()

	require.NoError(t, s.Register(ctx, "alice", "pw"))
	require.False(t, s.Authenticated())

	saved, err := meta.Get(ctx, credentialKey)
	require.NoError(t, err)
	require.Nil(t, saved)
}

func TestRestore_NoPersistedCredential(t *testing.T) {
	fc := &fakeClient{}
	s, _ := newTestSession(t, fc)

	user, err := s.Restore(context.Background())
	require.NoError(t, err)
	require.Nil(t, user)
	require.Zero(t, fc.UserCalls)
}

func TestRestore_ValidCredential(t *testing.T) {
	fc := &fakeClient{UserRet: &models.User{ID: 7, Username: "alice"}}
	s, meta := newTestSession(t, fc)
	ctx := context.Background()

	require.NoError(t, meta.Set(ctx, credentialKey, []byte("tok-old")))

	user, err := s.Restore(ctx)
	require.NoError(t, err)
	require.Equal(t, "alice", user.Username)
	require.True(t, s.Authenticated())
	require.Equal(t, "tok-old", s.Token())
}

func TestRestore_ExpiredCredential_ClearsAndIsIdempotent(t *testing.T) {
	fc := &fakeClient{UserErr: api.ErrUnauthorized}
	s, meta := newTestSession(t, fc)
	ctx := context.Background()

	require.NoError(t, meta.Set(ctx, credentialKey, []byte("tok-expired")))

	user, err := s.Restore(ctx)
	require.NoError(t, err)
	require.Nil(t, user)
	require.False(t, s.Authenticated())

	saved, err := meta.Get(ctx, credentialKey)
	require.NoError(t, err)
	require.Nil(t, saved)

	// second restore is a no-op with the same result and no server call
	user, err = s.Restore(ctx)
	require.NoError(t, err)
	require.Nil(t, user)
	require.Equal(t, 1, fc.UserCalls)
}

func TestLoginThenLogout_FinalStateEqualsInitial(t *testing.T) {
	fc := &fakeClient{}
	s, meta := newTestSession(t, fc)
	ctx := context.Background()

	loginAs(t, s, fc, "alice")
	require.NoError(t, s.Logout(ctx))

	require.False(t, s.Authenticated())
	require.Empty(t, s.Token())
	require.Nil(t, s.User())

	saved, err := meta.Get(ctx, credentialKey)
	require.NoError(t, err)
	require.Nil(t, saved)
}

func TestLogout_IdempotentAndBumpsGeneration(t *testing.T) {
	fc := &fakeClient{}
	s, _ := newTestSession(t, fc)
	ctx := context.Background()

	loginAs(t, s, fc, "alice")
	gen := s.Generation()

	require.NoError(t, s.Logout(ctx))
	require.Greater(t, s.Generation(), gen)

	gen = s.Generation()
	require.NoError(t, s.Logout(ctx))
	require.False(t, s.Authenticated())
	require.Greater(t, s.Generation(), gen)
}

func TestLogout_RunsTeardownHooks(t *testing.T) {
	fc := &fakeClient{}
	s, _ := newTestSession(t, fc)

	var cleared int
	s.OnTeardown(func() { cleared++ })
	s.OnTeardown(func() { cleared++ })

	require.NoError(t, s.Logout(context.Background()))
	require.Equal(t, 2, cleared)
}
