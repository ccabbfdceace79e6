package api

import (
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/arkivoapp/solr-connector/internal/errors"
	"github.com/arkivoapp/solr-connector/internal/store"
)

func TestEnvelopeTransformer_Success(t *testing.T) {
	out, err := EnvelopeTransformer(nil, "200", map[string]string{"id": "core-1"})
	require.NoError(t, err)

	env, ok := out.(envelope)
	require.True(t, ok)
	assert.Equal(t, 1, env.V)
	assert.True(t, env.Success)
	assert.Equal(t, map[string]string{"id": "core-1"}, env.Data)
	assert.Nil(t, env.Error)
}

func TestEnvelopeTransformer_APIError(t *testing.T) {
	apiErr := &APIError{status: 404, Code: "NOT_FOUND", Message: "core not found"}

	out, err := EnvelopeTransformer(nil, "404", apiErr)
	require.NoError(t, err)

	env, ok := out.(envelope)
	require.True(t, ok)
	assert.False(t, env.Success)
	assert.Equal(t, apiErr, env.Error)
	assert.Equal(t, "core not found", env.Message)
	assert.Nil(t, env.Data)
}

func TestEnvelopeTransformer_GenericErrorStatus(t *testing.T) {
	out, err := EnvelopeTransformer(nil, "500", "boom")
	require.NoError(t, err)

	env := out.(envelope)
	assert.False(t, env.Success)
	assert.Equal(t, "boom", env.Error)
}

func TestRegisterErrorHandler_DomainError(t *testing.T) {
	RegisterErrorHandler()

	statusErr := huma.NewError(http.StatusInternalServerError, "ignored",
		domainerrors.NotFound("core not found"))

	apiErr, ok := statusErr.(*APIError)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, apiErr.GetStatus())
	assert.Equal(t, "NOT_FOUND", apiErr.Code)
	assert.Equal(t, "core not found", apiErr.Message)
}

func TestRegisterErrorHandler_StoreSentinel(t *testing.T) {
	RegisterErrorHandler()

	statusErr := huma.NewError(http.StatusInternalServerError, "ignored", store.ErrNotFound)

	apiErr, ok := statusErr.(*APIError)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, apiErr.GetStatus())
}

func TestRegisterErrorHandler_FallbackCodes(t *testing.T) {
	RegisterErrorHandler()

	tests := []struct {
		status int
		code   string
	}{
		{http.StatusBadRequest, "VALIDATION"},
		{http.StatusNotFound, "NOT_FOUND"},
		{http.StatusConflict, "CONFLICT"},
		{http.StatusServiceUnavailable, "UNAVAILABLE"},
		{http.StatusInternalServerError, "INTERNAL"},
	}

	for _, tt := range tests {
		statusErr := huma.NewError(tt.status, "msg")
		apiErr, ok := statusErr.(*APIError)
		require.True(t, ok)
		assert.Equal(t, tt.status, apiErr.GetStatus())
		assert.Equal(t, tt.code, apiErr.Code)
	}
}
