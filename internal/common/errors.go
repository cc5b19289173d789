// Package common defines shared constants and sentinel errors used across
// client and server layers of StudentHub. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors.
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")
	ErrorForbidden    = errors.New("forbidden")

	// Token errors.
	ErrInvalidToken        = errors.New("invalid token")
	ErrTokenExpired        = errors.New("token expired")
	ErrRefreshTokenExpired = errors.New("refresh token expired")

	// Sync engine errors.
	ErrNotAuthenticated   = errors.New("not authenticated")
	ErrOffline            = errors.New("offline")
	ErrRemoteSaveFailed   = errors.New("remote save failed")
	ErrRemoteDeleteFailed = errors.New("remote delete failed")
	ErrRemoteFetchFailed  = errors.New("remote fetch failed")
	ErrLocalStore         = errors.New("local store failure")

	// Payload validation.
	ErrInvalidRecord = errors.New("invalid record")
)
