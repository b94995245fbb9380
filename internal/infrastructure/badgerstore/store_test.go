package badgerstore_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-console/internal/application/session"
	"github.com/jhoicas/Inventario-console/internal/infrastructure/badgerstore"
)

var _ session.Store = (*badgerstore.Store)(nil)

func TestStore_EscribeLeeYBorra(t *testing.T) {
	s, err := badgerstore.Open(badgerstore.Options{InMemory: true})
	require.NoError(t, err)
	defer s.Close()

	_, ok, err := s.Get("token")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set("token", "abc"))
	v, ok, err := s.Get("token")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "abc", v)

	require.NoError(t, s.Delete("token"))
	require.NoError(t, s.Delete("token"))
	_, ok, _ = s.Get("token")
	assert.False(t, ok)
}

func TestStore_PersisteEntreAperturasConCifrado(t *testing.T) {
	dir := t.TempDir()
	s, err := badgerstore.Open(badgerstore.Options{Path: dir, Secret: "clave-local"})
	require.NoError(t, err)
	require.NoError(t, s.Set("role", "manager"))
	require.NoError(t, s.Close())

	s, err = badgerstore.Open(badgerstore.Options{Path: dir, Secret: "clave-local"})
	require.NoError(t, err)
	defer s.Close()
	v, ok, err := s.Get("role")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "manager", v)
}

func TestDeriveKey_DeterministaY32Bytes(t *testing.T) {
	a, err := badgerstore.DeriveKey("x")
	require.NoError(t, err)
	b, _ := badgerstore.DeriveKey("x")
	c, _ := badgerstore.DeriveKey("y")
	assert.Len(t, a, 32)
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}

func TestSession_RecordarmeSobreBadger(t *testing.T) {
	durable, err := badgerstore.Open(badgerstore.Options{InMemory: true})
	require.NoError(t, err)
	defer durable.Close()

	sess := session.New(durable, session.NewMemoryStore())
	require.NoError(t, sess.Login(session.Profile{Token: "tok", Role: "admin", Username: "ana"}, true))

	restored := session.New(durable, session.NewMemoryStore())
	require.NoError(t, restored.Init())
	p, ok := restored.Profile()
	require.True(t, ok)
	assert.Equal(t, "ana", p.Username)
	assert.True(t, restored.Remembered())
}

func TestOpen_RutaVacia(t *testing.T) {
	_, err := badgerstore.Open(badgerstore.Options{})
	assert.Error(t, err)
}
