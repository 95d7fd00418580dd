package validators

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmailValidator(t *testing.T) {
	assert.NoError(t, EmailValidator("a@x.com"))
	assert.ErrorIs(t, EmailValidator(""), ErrEmailEmpty)
	assert.ErrorIs(t, EmailValidator("not-an-email"), ErrEmailInvalid)
}

func TestPasswordValidator(t *testing.T) {
	assert.NoError(t, PasswordValidator("password1"))
	assert.ErrorIs(t, PasswordValidator(""), ErrPasswordEmpty)
	assert.ErrorIs(t, PasswordValidator("short"), ErrPasswordTooShort)
	assert.ErrorIs(t, PasswordValidator(strings.Repeat("a", 256)), ErrPasswordTooLong)
}

func TestFullNameValidator(t *testing.T) {
	assert.NoError(t, FullNameValidator("Ada Lovelace"))
	assert.ErrorIs(t, FullNameValidator("   "), ErrNameEmpty)
	assert.ErrorIs(t, FullNameValidator(strings.Repeat("a", 256)), ErrNameTooLong)
}

func TestOtpValidator(t *testing.T) {
	assert.NoError(t, OtpValidator("123456"))
	assert.ErrorIs(t, OtpValidator("12345"), ErrOtpInvalid)
	assert.ErrorIs(t, OtpValidator("1234567"), ErrOtpInvalid)
	assert.ErrorIs(t, OtpValidator("12a456"), ErrOtpInvalid)
}
