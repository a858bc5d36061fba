package catalogo_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appcatalogo "github.com/nutrichain/almacen-service/internal/application/catalogo"
	"github.com/nutrichain/almacen-service/internal/domain"
	infracatalogo "github.com/nutrichain/almacen-service/internal/infrastructure/catalogo"
)

// stubCatalog catálogo programable que cuenta llamadas.
type stubCatalog struct {
	result appcatalogo.Existence
	err    error
	calls  int
}

func (s *stubCatalog) Verify(_ context.Context, _ string) (appcatalogo.Existence, error) {
	s.calls++
	return s.result, s.err
}

func TestCachedCatalog_CacheaVeredictosDefinitivos(t *testing.T) {
	stub := &stubCatalog{result: appcatalogo.ExistenceConfirmed}
	cached := infracatalogo.NewCachedCatalog(stub, time.Minute, 100)

	for i := 0; i < 5; i++ {
		res, err := cached.Verify(context.Background(), "prod-1")
		require.NoError(t, err)
		assert.Equal(t, appcatalogo.ExistenceConfirmed, res)
	}
	assert.Equal(t, 1, stub.calls, "las consultas repetidas deben salir del caché")
}

func TestCachedCatalog_CacheaNotFound(t *testing.T) {
	stub := &stubCatalog{result: appcatalogo.ExistenceNotFound}
	cached := infracatalogo.NewCachedCatalog(stub, time.Minute, 100)

	_, _ = cached.Verify(context.Background(), "prod-x")
	res, err := cached.Verify(context.Background(), "prod-x")
	require.NoError(t, err)
	assert.Equal(t, appcatalogo.ExistenceNotFound, res)
	assert.Equal(t, 1, stub.calls, "la inexistencia también es un veredicto definitivo")
}

func TestCachedCatalog_NuncaCacheaIndeterminados(t *testing.T) {
	stub := &stubCatalog{result: appcatalogo.ExistenceIndeterminate, err: domain.ErrCatalogUnavailable}
	cached := infracatalogo.NewCachedCatalog(stub, time.Minute, 100)

	_, err := cached.Verify(context.Background(), "prod-1")
	require.ErrorIs(t, err, domain.ErrCatalogUnavailable)

	// El catálogo se recupera: la siguiente consulta debe llegar al servicio real
	stub.result = appcatalogo.ExistenceConfirmed
	stub.err = nil
	res, err := cached.Verify(context.Background(), "prod-1")
	require.NoError(t, err)
	assert.Equal(t, appcatalogo.ExistenceConfirmed, res)
	assert.Equal(t, 2, stub.calls)
}

func TestCachedCatalog_RespetaTTL(t *testing.T) {
	stub := &stubCatalog{result: appcatalogo.ExistenceConfirmed}
	cached := infracatalogo.NewCachedCatalog(stub, 10*time.Millisecond, 100)

	_, _ = cached.Verify(context.Background(), "prod-1")
	time.Sleep(20 * time.Millisecond)
	_, _ = cached.Verify(context.Background(), "prod-1")
	assert.Equal(t, 2, stub.calls, "un veredicto vencido se reconsulta")
}

func TestCachedCatalog_Invalidate(t *testing.T) {
	stub := &stubCatalog{result: appcatalogo.ExistenceConfirmed}
	cached := infracatalogo.NewCachedCatalog(stub, time.Minute, 100)

	_, _ = cached.Verify(context.Background(), "prod-1")
	cached.Invalidate("prod-1")
	_, _ = cached.Verify(context.Background(), "prod-1")
	assert.Equal(t, 2, stub.calls)
}
