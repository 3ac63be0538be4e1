package email

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsEmail(t *testing.T) {
	assert.True(t, IsEmail("test@example.com"))
	assert.True(t, IsEmail("test.test@example.co.uk"))
	assert.False(t, IsEmail("test"))
	assert.False(t, IsEmail("test @example.com"))
	assert.False(t, IsEmail("test@example"))
}

func TestMakeHeaderAddress(t *testing.T) {
	assert.Equal(t, "someone@example.com", makeHeaderAddress("someone@example.com", ""))
	assert.Equal(t, `"Some One" <someone@example.com>`, makeHeaderAddress("someone@example.com", "Some One"))
}

func TestPrepMailContents(t *testing.T) {
	contents := string(prepMailContents("to@example.com", "from@example.com", "Hello", "<p>Hi</p>"))
	assert.Contains(t, contents, "To: to@example.com\r\n")
	assert.Contains(t, contents, "From: from@example.com\r\n")
	assert.Contains(t, contents, "Subject: Hello\r\n")
	assert.Contains(t, contents, "<p>Hi</p>")
}
