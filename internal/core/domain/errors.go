package domain

import "errors"

var ErrUserNotFound = errors.New("user not found")
var ErrUserExists = errors.New("user already exists")
var ErrInvalidPassword = errors.New("invalid password")

// ErrKeyNotFound is returned by key-value backends when a key is absent.
var ErrKeyNotFound = errors.New("key not found")

// ErrPersistence wraps I/O failures of the key-value backend.
var ErrPersistence = errors.New("persistence failure")

// ErrCorruptRecord is returned when a stored value cannot be decoded.
var ErrCorruptRecord = errors.New("corrupt record")

// ErrorForMessage maps an AuthResult failure message back to its sentinel.
// Unknown messages map to nil.
func ErrorForMessage(msg string) error {
	switch msg {
	case MsgUserNotFound:
		return ErrUserNotFound
	case MsgUserExists:
		return ErrUserExists
	case MsgInvalidPassword:
		return ErrInvalidPassword
	}
	return nil
}
