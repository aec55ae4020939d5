package db

import (
	"errors"

	"gorm.io/gorm"
)

// IsUniqueViolation reports whether err is a unique-constraint failure,
// regardless of which driver produced it. Relies on GORM error
// translation being enabled on the connection.
func IsUniqueViolation(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

// IsNotFound reports whether err means the requested row does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
