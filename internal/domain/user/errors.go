package user

import "errors"

var (
	ErrUserNotFound             = errors.New("user not found")
	ErrUsernameExists           = errors.New("username already exists")
	ErrEmailExists              = errors.New("email already registered")
	ErrManagementAccessRequired = errors.New("management access required")
)
