package validators

import "errors"

var ErrOtpInvalid = errors.New("code must be exactly 6 digits")

func OtpValidator(code string) error {
	if len(code) != 6 {
		return ErrOtpInvalid
	}

	for _, r := range code {
		if r < '0' || r > '9' {
			return ErrOtpInvalid
		}
	}

	return nil
}
