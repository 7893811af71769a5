package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsMatchesByKind(t *testing.T) {
	err := New(NotFound, MsgGameNotFound)

	assert.True(t, errors.Is(err, ErrNotFound))
	assert.False(t, errors.Is(err, ErrForbidden))

	wrapped := fmt.Errorf("finish game 12: %w", err)
	assert.True(t, errors.Is(wrapped, ErrNotFound))
	assert.Equal(t, NotFound, KindOf(wrapped))
	assert.Equal(t, MsgGameNotFound, MessageOf(wrapped))
}

func TestUnexpectedMoveIndex(t *testing.T) {
	err := UnexpectedMoveIndex(1, 0)

	assert.Equal(t, SequenceMismatch, err.Kind)
	assert.Equal(t, "Unexpected move index. Expected 1, got 0", err.Message)
	assert.True(t, errors.Is(err, ErrSequenceMismatch))
}

func TestPlainErrorsAreInternal(t *testing.T) {
	err := errors.New("connection reset by peer")

	assert.Equal(t, Internal, KindOf(err))
	assert.Empty(t, MessageOf(err))
	assert.Equal(t, "internal", KindOf(err).String())
}

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("bcrypt: password length exceeds 72 bytes")
	err := Wrap(Validation, "password too long", cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "password too long", MessageOf(err))
	assert.Contains(t, err.Error(), "72 bytes")
}
