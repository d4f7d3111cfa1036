package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"holidaykeeper/internal/platform/crypto"
)

func TestRun_IssuesVerifiableToken(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, run(&out, "s3cret", "ops", crypto.RoleAdmin, time.Minute))

	claims, err := crypto.ParseToken("s3cret", strings.TrimSpace(out.String()))
	require.NoError(t, err)
	assert.Equal(t, "ops", claims.Sub)
	assert.Equal(t, crypto.RoleAdmin, claims.Role)
}

func TestRun_RequiresSecret(t *testing.T) {
	var out bytes.Buffer
	err := run(&out, "", "ops", crypto.RoleAdmin, time.Minute)
	assert.ErrorIs(t, err, errNoSecret)
	assert.Empty(t, out.String())
}

func TestRun_RejectsNonPositiveTTL(t *testing.T) {
	var out bytes.Buffer
	assert.Error(t, run(&out, "s3cret", "ops", crypto.RoleAdmin, 0))
}
