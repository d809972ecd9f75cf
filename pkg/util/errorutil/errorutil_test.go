package errorutil

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotFoundIsDistinguishable(t *testing.T) {
	err := NewNotFound("ticket", map[string]any{"id": int64(7)})

	assert.True(t, IsNotFound(err))
	assert.False(t, IsStoreFault(err))
	assert.Equal(t, "ticket not found", err.Error())

	wrapped := fmt.Errorf("delete: %w", err)
	assert.True(t, IsNotFound(wrapped))
}

func TestStoreFaultKeepsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewStoreFault(cause)

	assert.True(t, IsStoreFault(err))
	assert.ErrorIs(t, err, cause)

	de := ToDomainError(err)
	require.NotNil(t, de)
	assert.Equal(t, http.StatusServiceUnavailable, de.HTTPStatus)
	assert.Contains(t, de.Error(), "connection refused")
}

func TestToDomainErrorDefaultsToInternal(t *testing.T) {
	assert.Nil(t, ToDomainError(nil))

	de := ToDomainError(errors.New("boom"))
	require.NotNil(t, de)
	assert.Equal(t, CodeInternal, de.Code)
	assert.Equal(t, http.StatusInternalServerError, de.HTTPStatus)
}
