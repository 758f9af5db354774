package errs

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCode(t *testing.T) {
	assert.Equal(t, CodeNotFound, Code(New(CodeNotFound, "gone")))
	assert.Equal(t, CodeAlreadyExists, Code(Newf(CodeAlreadyExists, "dup %s", "x")))

	// wrapped through fmt the code still surfaces
	wrapped := fmt.Errorf("outer: %w", New(CodeInvalidArgument, "bad"))
	assert.Equal(t, CodeInvalidArgument, Code(wrapped))

	// foreign errors default to storage
	assert.Equal(t, CodeStorage, Code(errors.New("driver exploded")))
}

func TestIs_MatchesByCode(t *testing.T) {
	err := Newf(CodeNotFound, "profile %q not found", "rahul")
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.False(t, errors.Is(err, ErrAlreadyExists))
}

func TestWrap_PreservesCause(t *testing.T) {
	cause := errors.New("unique constraint failed")
	err := Wrap(cause, CodeAlreadyExists, "insert request")

	assert.True(t, errors.Is(err, cause))
	assert.Equal(t, "insert request: unique constraint failed", err.Error())
	assert.Equal(t, CodeAlreadyExists, Code(err))
}
