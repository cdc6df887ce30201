package mysql

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStringOrDash(t *testing.T) {
	assert.Equal(t, "-", stringOrDash(""))
	assert.Equal(t, "-", stringOrDash("   "))
	assert.Equal(t, "sub-1", stringOrDash("sub-1"))
}

func TestJSONOrUsesColumnTypedEmpty(t *testing.T) {
	// suspicious_elements is an array column, analysis_result an object
	assert.Equal(t, "[]", jsonOr("", "[]"))
	assert.Equal(t, "{}", jsonOr("  ", "{}"))
	assert.Equal(t, `["x"]`, jsonOr(`["x"]`, "[]"))
}
