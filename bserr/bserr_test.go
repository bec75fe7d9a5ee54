package bserr

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestWrappersPreserveSentinelForErrorsIs(t *testing.T) {
	assert.True(t, errors.Is(InvalidArgument("too large"), ErrInvalidArgument))
	assert.True(t, errors.Is(InvalidData("bad magic"), ErrInvalidData))
	assert.True(t, errors.Is(UnexpectedEOF("truncated"), ErrUnexpectedEOF))

	assert.False(t, errors.Is(InvalidArgument("too large"), ErrInvalidData))
}
