package security

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastArgon() *ArgonHash {
	return &ArgonHash{
		Memory:      8 * 1024,
		Iterations:  1,
		Parallelism: 1,
		SaltLength:  16,
		KeyLength:   32,
	}
}

func TestHashAndVerify(t *testing.T) {
	a := fastArgon()

	hash, err := a.GenerateFromPassword("hunter22")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hash, "$argon2id$v=19$"))

	ok, err := a.VerifyPasswd("hunter22", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = a.VerifyPasswd("hunter23", hash)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHashesAreSalted(t *testing.T) {
	a := fastArgon()

	h1, err := a.GenerateFromPassword("hunter22")
	require.NoError(t, err)
	h2, err := a.GenerateFromPassword("hunter22")
	require.NoError(t, err)

	assert.NotEqual(t, h1, h2)
}

func TestVerifyReadsParamsFromHash(t *testing.T) {
	hash, err := fastArgon().GenerateFromPassword("hunter22")
	require.NoError(t, err)

	// Verify with different configured costs still succeeds
	ok, err := New().VerifyPasswd("hunter22", hash)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestVerifyMalformedHash(t *testing.T) {
	a := fastArgon()

	for _, bad := range []string{"", "plainhash", "$argon2id$v=19$m=8192"} {
		_, err := a.VerifyPasswd("pw", bad)
		assert.Error(t, err, bad)
	}
}
