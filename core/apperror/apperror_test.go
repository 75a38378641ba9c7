package apperror_test

import (
	"errors"
	"fmt"
	"testing"

	"listing-media/core/apperror"

	"github.com/stretchr/testify/assert"
)

func TestError_Is(t *testing.T) {
	err := apperror.Validation("media.upload", "file too large: %d bytes", 11)

	assert.True(t, errors.Is(err, apperror.ErrValidation))
	assert.False(t, errors.Is(err, apperror.ErrCapacity))
	assert.Equal(t, "media.upload: file too large: 11 bytes", err.Error())
}

func TestError_WrappedChain(t *testing.T) {
	cause := errors.New("connection refused")
	err := fmt.Errorf("upload failed: %w", apperror.Wrap(apperror.KindTransientStorage, "blob.put", cause))

	assert.True(t, errors.Is(err, apperror.ErrTransientStorage))
	assert.True(t, errors.Is(err, cause))
	assert.Equal(t, apperror.KindTransientStorage, apperror.KindOf(err))
}

func TestWrap_Nil(t *testing.T) {
	assert.Nil(t, apperror.Wrap(apperror.KindNotFound, "op", nil))
	assert.Equal(t, apperror.Kind(""), apperror.KindOf(errors.New("plain")))
}
