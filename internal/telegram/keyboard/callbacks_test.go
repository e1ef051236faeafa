package keyboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeParseRoundTrip(t *testing.T) {
	cb, err := ParseCallback(EncodeCallback(ActionExport, "pdf"))
	require.NoError(t, err)
	assert.Equal(t, ActionExport, cb.Action)
	assert.Equal(t, "pdf", cb.Value)
}

func TestParseCallbackActionOnly(t *testing.T) {
	cb, err := ParseCallback("plan")
	require.NoError(t, err)
	assert.Equal(t, ActionPlan, cb.Action)
	assert.Empty(t, cb.Value)
}

func TestParseCallbackEmpty(t *testing.T) {
	_, err := ParseCallback("")
	assert.Error(t, err)
}

func TestParseCallbackValueWithColon(t *testing.T) {
	cb, err := ParseCallback("export:a:b")
	require.NoError(t, err)
	assert.Equal(t, "export", cb.Action)
	assert.Equal(t, "a:b", cb.Value)
}
