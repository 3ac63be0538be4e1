package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hp := HashPassword("hunter2hunter2")

	ok, err := CheckPassword("hunter2hunter2", hp)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = CheckPassword("hunter3hunter3", hp)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPasswordStringRoundTrip(t *testing.T) {
	hp := HashPassword("correct horse battery staple")

	parsed, err := ParsePasswordString(hp.String())
	require.NoError(t, err)
	assert.Equal(t, hp.Algorithm, parsed.Algorithm)
	assert.Equal(t, hp.AlgoConfig, parsed.AlgoConfig)
	assert.Equal(t, hp.Salt, parsed.Salt)
	assert.Equal(t, hp.Hash, parsed.Hash)

	ok, err := CheckPassword("correct horse battery staple", parsed)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestParsePasswordStringRejectsGarbage(t *testing.T) {
	for _, s := range []string{
		"",
		"argon2id",
		"argon2id$not$enough",
	} {
		_, err := ParsePasswordString(s)
		assert.Error(t, err, "input: %q", s)
	}
}

func TestTwoHashesOfSamePasswordDiffer(t *testing.T) {
	a := HashPassword("same password")
	b := HashPassword("same password")
	assert.NotEqual(t, a.Salt, b.Salt)
	assert.NotEqual(t, a.Hash, b.Hash)
}
