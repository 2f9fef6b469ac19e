package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnvOr(t *testing.T) {
	t.Setenv("LARK_TEST_VAR", "set-value")
	assert.Equal(t, "set-value", envOr("LARK_TEST_VAR", "fallback"))

	t.Setenv("LARK_TEST_VAR", "")
	assert.Equal(t, "fallback", envOr("LARK_TEST_VAR", "fallback"))

	assert.Equal(t, "fallback", envOr("LARK_TEST_UNSET_VAR", "fallback"))
}
