package errors

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError_Error(t *testing.T) {
	err := Validation("phone is invalid")
	assert.Equal(t, "phone is invalid", err.Error())

	wrapped := Wrap(errors.New("dial tcp: refused"), ErrCodeInfrastructure, "store unavailable")
	assert.Equal(t, "store unavailable: dial tcp: refused", wrapped.Error())
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("boom")
	err := Wrap(cause, ErrCodeExchange, "exchange failed")

	assert.ErrorIs(t, err, cause)
}

func TestWrap_NilPassthrough(t *testing.T) {
	assert.Nil(t, Wrap(nil, ErrCodeInfrastructure, "ignored"))
	assert.Nil(t, Wrapf(nil, ErrCodeInfrastructure, "ignored %d", 1))
}

func TestCodePredicates(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		check func(error) bool
	}{
		{name: "validation", err: Validation("bad"), check: IsValidation},
		{name: "unauthenticated", err: Unauthenticated("no session"), check: IsUnauthenticated},
		{name: "exchange", err: Exchange("provider said no"), check: IsExchange},
		{name: "infrastructure", err: Infrastructure("db down"), check: IsInfrastructure},
		{name: "not found", err: NotFound("missing"), check: IsNotFound},
		{name: "conflict", err: Conflict("exists"), check: IsConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.check(tt.err))
			assert.False(t, tt.check(errors.New("plain")))
		})
	}
}

func TestCodePredicates_ThroughWrapping(t *testing.T) {
	inner := Unauthenticated("session expired")
	outer := fmt.Errorf("resolve session: %w", inner)

	assert.True(t, IsUnauthenticated(outer))
	assert.Equal(t, ErrCodeUnauthenticated, GetCode(outer))
}

func TestValidationField(t *testing.T) {
	err := ValidationField("password", "Password is too short")

	assert.True(t, IsValidation(err))
	assert.Equal(t, "password", GetField(err))
	assert.Equal(t, "Password is too short", err.Message)
}

func TestMapDBError_NoRows(t *testing.T) {
	err := MapDBError(fmt.Errorf("lookup user: %w", pgx.ErrNoRows))
	assert.True(t, IsNotFound(err))
}

func TestMapDBError_ContextErrors(t *testing.T) {
	assert.True(t, IsTimeout(MapDBError(context.DeadlineExceeded)))
	assert.Equal(t, ErrCodeCanceled, GetCode(MapDBError(context.Canceled)))
}

func TestMapDBError_UniqueViolation(t *testing.T) {
	pgErr := &pgconn.PgError{
		Code:   "23505",
		Detail: "Key (phone)=(+15555550100) already exists.",
	}

	err := MapDBError(pgErr)
	require.True(t, IsConflict(err))
	assert.Equal(t, "phone", GetField(err))
}

func TestMapDBError_UnknownDriverError(t *testing.T) {
	err := MapDBError(errors.New("connection reset by peer"))
	assert.True(t, IsInfrastructure(err))
}

func TestMapDBError_Nil(t *testing.T) {
	assert.NoError(t, MapDBError(nil))
}
