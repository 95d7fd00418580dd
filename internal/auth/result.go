package auth

import "encoding/json"

// Kind discriminates the expected business failures the service can
// return. Anything else (store down, insert returned nothing) is a
// plain error and bubbles to the generic failure boundary.
type Kind string

const (
	KindDuplicateEmail     Kind = "duplicate_email"
	KindInvalidOtp         Kind = "invalid_otp"
	KindInvalidCredentials Kind = "invalid_credentials"
	KindNotVerified        Kind = "account_not_verified"
	KindResendCooldown     Kind = "resend_cooldown"
)

type FieldError struct {
	FieldName string `json:"fieldName"`
	Message   string `json:"message"`
}

// Failure is the typed result object handed back for expected
// validation and business failures. It serializes to the
// {failed, type, error} shape the clients consume: field-level
// failures carry a list of fieldName/message pairs, free-form
// failures a single message string.
type Failure struct {
	Kind    Kind
	Fields  []FieldError
	Message string
}

func (f *Failure) MarshalJSON() ([]byte, error) {
	if len(f.Fields) > 0 {
		return json.Marshal(struct {
			Failed bool         `json:"failed"`
			Type   string       `json:"type"`
			Error  []FieldError `json:"error"`
		}{true, "input", f.Fields})
	}

	return json.Marshal(struct {
		Failed bool   `json:"failed"`
		Type   string `json:"type"`
		Error  string `json:"error"`
	}{true, "custom", f.Message})
}

func fieldFailure(kind Kind, field, message string) *Failure {
	return &Failure{
		Kind:   kind,
		Fields: []FieldError{{FieldName: field, Message: message}},
	}
}

func messageFailure(kind Kind, message string) *Failure {
	return &Failure{
		Kind:    kind,
		Message: message,
	}
}
