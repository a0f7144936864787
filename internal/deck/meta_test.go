package deck

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMetaLine(t *testing.T) {
	key, value, err := ParseMetaLine("// Name: Mono Red Burn")
	require.NoError(t, err)
	assert.Equal(t, "name", key, "key is lower-cased")
	assert.Equal(t, "Mono Red Burn", value, "value kept verbatim")
}

func TestParseMetaLineNoColon(t *testing.T) {
	_, _, err := ParseMetaLine("// just a comment")
	assert.Error(t, err, "metadata line without a colon is malformed")
}

func TestParseMetaLineExtraColon(t *testing.T) {
	_, _, err := ParseMetaLine("// Name: One: Two")
	assert.Error(t, err, "a second colon is reported, not silently tolerated")
}

func TestParseMetaLineEmptyKey(t *testing.T) {
	_, _, err := ParseMetaLine("// : value")
	assert.Error(t, err)
}
