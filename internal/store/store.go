// Package store persists users, projects and tasks and enforces the
// ownership rules between them. Every mutating project or task operation
// resolves the project first and compares its creator with the acting user.
package store

import (
	"errors"
	"strings"
)

var (
	ErrNotFound        = errors.New("record not found")
	ErrProjectNotFound = errors.New("project not found")
	ErrForbidden       = errors.New("user does not own this resource")
	ErrDuplicateEmail  = errors.New("email already registered")
	ErrWrongPassword   = errors.New("wrong password")
	ErrEmptyName       = errors.New("name can't be empty")
)

func cleanName(n string) (string, error) {
	n = strings.TrimSpace(n)
	if n == "" {
		return "", ErrEmptyName
	}

	return n, nil
}
