package service

import (
	"errors"

	"github.com/Lixing-Zhang/restaurant-pos/backend/internal/repository"
)

var (
	ErrProductNotFound      = errors.New("product not found")
	ErrProductInUse         = errors.New("product has orders")
	ErrTableNotFound        = errors.New("table not found")
	ErrTableAlreadyOpen     = errors.New("table already has an open session")
	ErrSessionNotFound      = errors.New("session not found")
	ErrSessionClosed        = errors.New("session is closed")
	ErrSessionAlreadyClosed = errors.New("session is already closed")
)

// translate maps repository sentinels to service sentinels and leaves other errors untouched
func translate(err error) error {
	switch {
	case errors.Is(err, repository.ErrProductNotFound):
		return ErrProductNotFound
	case errors.Is(err, repository.ErrProductInUse):
		return ErrProductInUse
	case errors.Is(err, repository.ErrTableNotFound):
		return ErrTableNotFound
	case errors.Is(err, repository.ErrSessionNotFound):
		return ErrSessionNotFound
	}
	return err
}
