package messages

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorOccurred_Error(t *testing.T) {
	assert.Equal(t, "boom", ErrorOccurred{Err: errors.New("boom")}.Error())
	assert.Equal(t, "", ErrorOccurred{}.Error())
}
