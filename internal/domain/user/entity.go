package user

import "errors"

// Role is the actor role resolved from the session token.
type Role string

const (
	RoleEmployee Role = "employee"
	RoleHR       Role = "hr"
	RoleAdmin    Role = "admin"
)

// SystemActorID marks records written by the system itself, such as
// penalty deductions, rather than by a human actor.
const SystemActorID = "system"

// Actor is the calling identity attached to every service operation.
// It is resolved from JWT claims at the handler layer and assumed trustworthy.
type Actor struct {
	UserID     string
	EmployeeID string
	Role       Role
}

// IsApprover reports whether the actor may decide leave requests and
// manage allotments.
func (a Actor) IsApprover() bool {
	return a.Role == RoleHR || a.Role == RoleAdmin
}

// IsSystem reports whether the actor is the internal system actor.
func (a Actor) IsSystem() bool {
	return a.UserID == SystemActorID
}

var (
	ErrUnauthorized     = errors.New("you are not authorized to perform this action")
	ErrHRAccessRequired = errors.New("hr or admin access required")
)
