package model

import (
	"database/sql/driver"
	"fmt"
	"strings"
)

// StringSlice stores a []string column as a comma-joined string so it
// works the same on sqlite and postgres. Elements may not contain
// commas, which is fine for the permission strings kept in it.
type StringSlice []string

// Value implements driver.Valuer.
func (s StringSlice) Value() (driver.Value, error) {
	if len(s) == 0 {
		return "", nil
	}

	for _, v := range s {
		if strings.Contains(v, ",") {
			return "", fmt.Errorf("element %q contains a comma", v)
		}
	}

	return strings.Join(s, ","), nil
}

// Scan implements sql.Scanner.
func (s *StringSlice) Scan(value interface{}) error {
	if value == nil {
		*s = StringSlice{}
		return nil
	}

	var str string
	switch v := value.(type) {
	case string:
		str = v
	case []byte:
		str = string(v)
	default:
		return fmt.Errorf("can't scan %T into StringSlice", value)
	}

	if str == "" {
		*s = StringSlice{}
		return nil
	}

	*s = strings.Split(str, ",")
	return nil
}
