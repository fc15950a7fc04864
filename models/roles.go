package models

// Role names form a closed set. Every role maps 1:1 to a departmental
// dashboard; routing and handler gates check against these constants.
const (
	RoleAdmin        = "Admin"
	RolePurchaseTeam = "Purchase Team"
	RoleManager      = "Manager"
	RoleVendor       = "Vendor"
	RoleGateSecurity = "Gate Security"
	RoleSampleDept   = "Sample Dept"
	RoleQCDept       = "QC Dept"
	RoleWeighbridge  = "Weighbridge Operator"
	RoleUnloading    = "Unloading Dept"
	RoleAccounts     = "Accounts Dept"
)

// AllRoles lists every assignable role.
var AllRoles = []string{
	RoleAdmin,
	RolePurchaseTeam,
	RoleManager,
	RoleVendor,
	RoleGateSecurity,
	RoleSampleDept,
	RoleQCDept,
	RoleWeighbridge,
	RoleUnloading,
	RoleAccounts,
}

// ValidRole reports whether name is one of the closed role set.
func ValidRole(name string) bool {
	for _, r := range AllRoles {
		if r == name {
			return true
		}
	}
	return false
}
