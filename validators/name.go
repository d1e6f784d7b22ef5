package validators

import (
	"errors"
	"strings"
)

var (
	ErrNameEmpty   = errors.New("no name provided")
	ErrNameTooLong = errors.New("name is too long")
)

const maxNameLength = 255

// NameValidator covers usernames and file/folder names
func NameValidator(n string) error {
	if strings.TrimSpace(n) == "" {
		return ErrNameEmpty
	}

	if len(n) > maxNameLength {
		return ErrNameTooLong
	}

	return nil
}
