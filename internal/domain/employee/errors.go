package employee

import "errors"

var (
	ErrEmployeeNotFound   = errors.New("employee not found")
	ErrEmployeeCodeExists = errors.New("employee ID already exists")
	ErrUsernameExists     = errors.New("username already exists")
	ErrNotAnEmployee      = errors.New("account has no employee record")
	ErrUnauthorized       = errors.New("unauthorized to access this employee")
)
