package memerr

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCodeOf(t *testing.T) {
	err := New(CodeStoreNotFound, "gone")
	assert.Equal(t, CodeStoreNotFound, CodeOf(err))
	assert.Equal(t, Code(""), CodeOf(errors.New("plain")))
	assert.Equal(t, Code(""), CodeOf(nil))
}

func TestWrapfNil(t *testing.T) {
	assert.NoError(t, Wrapf(nil, CodeStoreDatabase, "ignored"))
}

func TestPredicates(t *testing.T) {
	assert.True(t, IsNotFound(New(CodeStoreNotFound, "x")))
	assert.False(t, IsNotFound(New(CodeStoreDatabase, "x")))

	assert.True(t, IsInvalidInput(New(CodeStoreInvalidInput, "x")))
	assert.True(t, IsInvalidInput(New(CodeImportInvalid, "x")))
	assert.False(t, IsInvalidInput(New(CodeStoreDatabase, "x")))

	assert.True(t, HasCode(Errorf(CodeConfigResolve, "p %d", 1), CodeConfigResolve))
}

func TestWrapPreservesCause(t *testing.T) {
	cause := errors.New("disk full")
	err := Wrapf(cause, CodeStoreDatabase, "save")
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, CodeStoreDatabase, CodeOf(err))
}
