package domain

// Access policy: one function per guarded operation, evaluated before the
// workflow or persistence runs. Public operations (catalog reads,
// registration) have no entry here because they need no actor.

// CanCreateLoanRequest authorizes creating a loan request on behalf of
// requesterID. Blocked actors may not borrow; only admins may file a request
// for somebody else.
func CanCreateLoanRequest(a Actor, requesterID uint) error {
	if a.Blocked {
		return ErrAccountBlocked
	}
	if requesterID != a.ID && !a.IsAdmin() {
		return ErrForbidden
	}
	return nil
}

// CanReadLoanRequest allows admins and the request's own requester
func CanReadLoanRequest(a Actor, requesterID uint) bool {
	return a.IsAdmin() || a.ID == requesterID
}

// CanUpdateLoanStatus allows admins only
func CanUpdateLoanStatus(a Actor) bool {
	return a.IsAdmin()
}

// CanReadUser allows admins and the user reading their own record
func CanReadUser(a Actor, targetID uint) bool {
	return a.IsAdmin() || a.ID == targetID
}

// CanUpdateUser allows admins, and users updating their own record.
// Privileged fields (roles, blocked flag) are additionally admin-only and
// checked by CanSetPrivilegedUserFields.
func CanUpdateUser(a Actor, targetID uint) bool {
	return a.IsAdmin() || a.ID == targetID
}

// CanSetPrivilegedUserFields allows admins only; a user never mutates their
// own role set or blocked flag.
func CanSetPrivilegedUserFields(a Actor) bool {
	return a.IsAdmin()
}

// CanDeleteUser allows admins only
func CanDeleteUser(a Actor) bool {
	return a.IsAdmin()
}

// CanManageBooks allows admins only (create/update/delete; reads are public)
func CanManageBooks(a Actor) bool {
	return a.IsAdmin()
}
