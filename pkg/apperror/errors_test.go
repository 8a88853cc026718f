package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestErrorKinds(t *testing.T) {
	nf := NewNotFoundError("Order")
	require.Equal(t, "Order not found", nf.Message)
	require.Equal(t, http.StatusNotFound, nf.Code)
	require.True(t, IsNotFound(nf))
	require.False(t, IsValidation(nf))

	val := NewValidationErrorf("Invalid quantity %d", 0)
	require.Equal(t, "Invalid quantity 0", val.Message)
	require.Equal(t, http.StatusUnprocessableEntity, val.Code)
	require.True(t, IsValidation(val))

	conf := NewConflictError("Order number already exists for this business")
	require.Equal(t, http.StatusConflict, conf.Code)
	require.True(t, IsConflict(conf))
}

func TestPredicatesUnwrap(t *testing.T) {
	wrapped := fmt.Errorf("creating order: %w", NewValidationError("bad input"))
	require.True(t, IsValidation(wrapped))
	require.True(t, IsAppError(wrapped))
	require.False(t, IsValidation(errors.New("plain")))
}

func TestGetAppErrorFallsBackToInternal(t *testing.T) {
	appErr := GetAppError(errors.New("connection refused"))
	require.Equal(t, http.StatusInternalServerError, appErr.Code)
	require.Equal(t, "connection refused", appErr.Message)
	require.Equal(t, KindInternal, appErr.Kind)

	// internal errors never classify as a client-facing kind
	require.False(t, IsNotFound(appErr))
	require.False(t, IsNotFound(ErrInternalServer))
	require.False(t, IsValidation(appErr))
	require.False(t, IsConflict(appErr))

	original := NewNotFoundError("Business")
	require.Same(t, original, GetAppError(original))
}
