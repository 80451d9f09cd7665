package domain

// Roles known to the portal. A JWT carries exactly one of these.
const (
	RoleEmployee   = "employee"
	RoleManager    = "manager"
	RoleHRAdmin    = "hr_admin"
	RoleSuperAdmin = "super_admin"
)

type EnforceRequest struct {
	Role     string `json:"role" binding:"required"`
	Resource string `json:"resource" binding:"required"`
	Action   string `json:"action" binding:"required"`
}

type EnforceResponse struct {
	Allowed bool `json:"allowed"`
}
