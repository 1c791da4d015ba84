package services

import "booking-backend/models"

// Authorization decisions are pure: they look only at the principal and the
// owner of the target resource. Mapping a deny to a 403 (or an inline form
// error) is the caller's job.

// RequireRole reports whether the principal carries the given role. An empty
// principal never qualifies.
func RequireRole(p models.Principal, role string) bool {
	if p.UserID == 0 {
		return false
	}
	return p.HasRole(role)
}

// CanActOn reports whether the principal may act on a resource owned by
// ownerID: admins may, owners may, everyone else is denied. A principal
// without an identity is denied even when ownerID is zero.
func CanActOn(p models.Principal, ownerID uint) bool {
	if p.UserID == 0 {
		return false
	}
	if p.IsAdmin() {
		return true
	}
	return p.UserID == ownerID
}

// IsSelfTarget reports whether the principal is acting on their own account.
// Used by admin user deletion, where deleting yourself is rejected.
func IsSelfTarget(p models.Principal, targetUserID uint) bool {
	return p.UserID != 0 && p.UserID == targetUserID
}
