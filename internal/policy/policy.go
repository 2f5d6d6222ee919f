package policy

import (
	"errors"

	"github.com/Skotchmaster/shop_orders/internal/models"
)

var ErrForbidden = errors.New("forbidden")

// Principal is the authenticated caller. Values come from a verified access
// token and are trusted as-is below the middleware.
type Principal struct {
	ID    uint
	Role  models.Role
	Email string
}

func (p Principal) IsAdmin() bool {
	return p.Role == models.RoleAdmin
}

func IsOwnerOrAdmin(ownerID uint, p Principal) bool {
	return p.ID == ownerID || p.IsAdmin()
}

func RequireAdmin(p Principal) error {
	if !p.IsAdmin() {
		return ErrForbidden
	}
	return nil
}

func RequireOwnerOrAdmin(ownerID uint, p Principal) error {
	if !IsOwnerOrAdmin(ownerID, p) {
		return ErrForbidden
	}
	return nil
}
