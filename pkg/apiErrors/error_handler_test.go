package apiErrors

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteError(t *testing.T) {
	rec := httptest.NewRecorder()

	WriteError(rec, ErrCustomerAlreadyExists, "Cliente já cadastrado", map[string]any{"name": "John"})

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body APIError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, ErrCustomerAlreadyExists, body.Code)
	assert.Equal(t, "Cliente já cadastrado", body.Message)
}

func TestStatusForUnknownCode(t *testing.T) {
	assert.Equal(t, http.StatusInternalServerError, StatusFor("XXX_999"))
	assert.Equal(t, http.StatusBadRequest, StatusFor(ErrInvalidPhone))
}
