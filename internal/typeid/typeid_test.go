package typeid

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewAndValidate(t *testing.T) {
	id := NewShapeID()
	assert.True(t, strings.HasPrefix(id, PrefixShape+"_"))
	assert.NoError(t, Validate(id, PrefixShape))
	assert.Error(t, Validate(id, PrefixSession))

	assert.NotEqual(t, NewSessionID(), NewSessionID())
	assert.Error(t, Validate("not-an-id", PrefixSession))
}
