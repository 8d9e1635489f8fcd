package session

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainErrors "github.com/polkiloo/findash/internal/domain/errors"
	"github.com/polkiloo/findash/internal/domain/model"
	"github.com/polkiloo/findash/internal/logger"
	"github.com/polkiloo/findash/internal/storage/memory"
	testhelpers "github.com/polkiloo/findash/internal/test"
)

func newTestStore(t *testing.T, repo *memory.Storage) *Store {
	t.Helper()
	s, err := New(context.Background(), repo, logger.Discard())
	require.NoError(t, err)
	return s
}

func TestNewStartsEmpty(t *testing.T) {
	s := newTestStore(t, memory.New())

	assert.False(t, s.Authenticated())
	assert.Equal(t, "", s.Token())
	assert.Nil(t, s.Current().User)
}

func TestNewRequiresRepository(t *testing.T) {
	_, err := New(context.Background(), nil, nil)
	require.Error(t, err)
}

func TestLoginPersistsAcrossStores(t *testing.T) {
	repo := memory.New()
	s := newTestStore(t, repo)

	sess, err := s.Login(context.Background(), "tok-1", &model.User{ID: "7", Name: "Demo", Email: "demo@fins.io"})
	require.NoError(t, err)
	assert.Equal(t, "tok-1", sess.Token)
	assert.True(t, s.Authenticated())

	restored := newTestStore(t, repo)
	cur := restored.Current()
	assert.Equal(t, "tok-1", cur.Token)
	require.NotNil(t, cur.User)
	assert.Equal(t, "demo@fins.io", cur.User.Email)
	assert.Equal(t, model.ID("7"), cur.User.ID)
}

func TestLoginRejectsEmptyToken(t *testing.T) {
	s := newTestStore(t, memory.New())

	_, err := s.Login(context.Background(), "", &model.User{Name: "x"})
	assert.ErrorIs(t, err, domainErrors.ErrEmptyToken)
	assert.False(t, s.Authenticated())
}

func TestLoginWithoutProfileStoresEmptyUser(t *testing.T) {
	s := newTestStore(t, memory.New())

	_, err := s.Login(context.Background(), "tok", nil)
	require.NoError(t, err)
	require.NotNil(t, s.Current().User)
}

func TestLoginPersistFailureKeepsPreviousSession(t *testing.T) {
	repo := testhelpers.NewStateRepositoryStub()
	s, err := New(context.Background(), repo, logger.Discard())
	require.NoError(t, err)

	_, err = s.Login(context.Background(), "first", nil)
	require.NoError(t, err)

	repo.SaveErr = errors.New("disk full")
	_, err = s.Login(context.Background(), "second", nil)
	require.Error(t, err)
	assert.Equal(t, "first", s.Token())
}

func TestLogoutClearsMemoryEvenWhenRemoveFails(t *testing.T) {
	repo := testhelpers.NewStateRepositoryStub()
	repo.RemoveErr = errors.New("locked")
	s, err := New(context.Background(), repo, logger.Discard())
	require.NoError(t, err)
	_, err = s.Login(context.Background(), "tok", nil)
	require.NoError(t, err)

	err = s.Logout(context.Background())
	require.Error(t, err)
	assert.False(t, s.Authenticated())
}

func TestLogoutRemovesPersistedCopy(t *testing.T) {
	repo := memory.New()
	s := newTestStore(t, repo)
	_, err := s.Login(context.Background(), "tok", nil)
	require.NoError(t, err)

	require.NoError(t, s.Logout(context.Background()))

	assert.False(t, newTestStore(t, repo).Authenticated())
}

func TestCorruptPersistedUserReadsAsEmpty(t *testing.T) {
	repo := memory.New()
	require.NoError(t, repo.Save(context.Background(), map[string]string{keyToken: "tok", keyUser: "{not json"}))

	s := newTestStore(t, repo)
	assert.False(t, s.Authenticated())
}

func TestUnreadableRepositoryReadsAsEmpty(t *testing.T) {
	repo := testhelpers.NewStateRepositoryStub()
	repo.LoadErr = errors.New("io")
	s, err := New(context.Background(), repo, logger.Discard())
	require.NoError(t, err)
	assert.False(t, s.Authenticated())
}

func TestCurrentReturnsCopy(t *testing.T) {
	s := newTestStore(t, memory.New())
	_, err := s.Login(context.Background(), "tok", &model.User{Name: "Demo"})
	require.NoError(t, err)

	cur := s.Current()
	cur.User.Name = "changed"

	assert.Equal(t, "Demo", s.Current().User.Name)
}

func TestSubscribeObservesChanges(t *testing.T) {
	s := newTestStore(t, memory.New())

	var seen []bool
	cancel := s.Subscribe(func(sess Session) { seen = append(seen, sess.Authenticated()) })

	_, err := s.Login(context.Background(), "tok", nil)
	require.NoError(t, err)
	require.NoError(t, s.Logout(context.Background()))

	cancel()
	cancel()
	_, err = s.Login(context.Background(), "again", nil)
	require.NoError(t, err)

	assert.Equal(t, []bool{false, true, false}, seen)
}
