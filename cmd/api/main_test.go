package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-console/internal/infrastructure/badgerstore"
)

func TestRun_ConfiguracionInvalidaDevuelveError(t *testing.T) {
	t.Setenv("BACKEND_TIMEOUT_SECONDS", "-1")

	err := run()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cargar configuración")
}

func TestRun_AlmacenBloqueadoDevuelveErrorSinSalir(t *testing.T) {
	dir := t.TempDir()
	held, err := badgerstore.Open(badgerstore.Options{Path: dir})
	require.NoError(t, err)
	defer held.Close()
	t.Setenv("SESSION_STORE_PATH", dir)

	err = run()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "abrir almacén de sesión")
}
