package shared

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppErrorStatusCodes(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, ErrBadRequest("x").StatusCode)
	assert.Equal(t, http.StatusUnauthorized, ErrUnauthorized("x").StatusCode)
	assert.Equal(t, http.StatusForbidden, ErrForbidden("x").StatusCode)
	assert.Equal(t, http.StatusNotFound, ErrNotFound("x").StatusCode)
	assert.Equal(t, http.StatusConflict, ErrConflict("x").StatusCode)
}

func TestGetAppErrorUnwraps(t *testing.T) {
	inner := ErrNotFound("Pedido no encontrado")
	wrapped := fmt.Errorf("looking up order: %w", inner)

	appErr, ok := GetAppError(wrapped)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, appErr.StatusCode)
	assert.Equal(t, "Pedido no encontrado", appErr.Message)

	_, ok = GetAppError(errors.New("plain"))
	assert.False(t, ok)
}
