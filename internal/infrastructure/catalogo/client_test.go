package catalogo_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appcatalogo "github.com/nutrichain/almacen-service/internal/application/catalogo"
	"github.com/nutrichain/almacen-service/internal/domain"
	infracatalogo "github.com/nutrichain/almacen-service/internal/infrastructure/catalogo"
)

func TestVerify_ProductoExiste(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/productos/prod-1", r.URL.Path)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"id":"prod-1","nombre":"Harina"}`))
	}))
	defer srv.Close()

	client := infracatalogo.NewHTTPClient(srv.URL, 2*time.Second)
	res, err := client.Verify(context.Background(), "prod-1")
	require.NoError(t, err)
	assert.Equal(t, appcatalogo.ExistenceConfirmed, res)
}

func TestVerify_ProductoNoExiste(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	client := infracatalogo.NewHTTPClient(srv.URL, 2*time.Second)
	res, err := client.Verify(context.Background(), "prod-x")
	require.NoError(t, err, "un 404 es un veredicto definitivo, no un error")
	assert.Equal(t, appcatalogo.ExistenceNotFound, res)
}

func TestVerify_ErrorDelServidorEsIndeterminado(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := infracatalogo.NewHTTPClient(srv.URL, 2*time.Second)
	res, err := client.Verify(context.Background(), "prod-1")
	require.ErrorIs(t, err, domain.ErrExternalService)
	assert.Equal(t, appcatalogo.ExistenceIndeterminate, res,
		"un 5xx jamás se interpreta como existencia ni inexistencia")
}

func TestVerify_TimeoutEsIndeterminado(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := infracatalogo.NewHTTPClient(srv.URL, 20*time.Millisecond)
	res, err := client.Verify(context.Background(), "prod-1")
	require.ErrorIs(t, err, domain.ErrCatalogUnavailable)
	assert.Equal(t, appcatalogo.ExistenceIndeterminate, res)
}

func TestVerify_ServidorCaido(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // cerrado de inmediato: conexión rechazada

	client := infracatalogo.NewHTTPClient(srv.URL, time.Second)
	res, err := client.Verify(context.Background(), "prod-1")
	require.ErrorIs(t, err, domain.ErrCatalogUnavailable)
	assert.Equal(t, appcatalogo.ExistenceIndeterminate, res)
}
