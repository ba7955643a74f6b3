package security

import "errors"

var (
	ErrTokenNotFound = errors.New("security: refresh token not found")
	ErrUserNotFound  = errors.New("security: user not found")
	ErrEmptyTokenID  = errors.New("security: empty refresh token id")
	ErrQuery         = errors.New("security: query failed")
)
