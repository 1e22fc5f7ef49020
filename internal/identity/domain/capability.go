package domain

// Capability names a privileged action a user may perform.
type Capability string

// Capabilities checked across the admin surface.
const (
	CapabilityManageCatalog Capability = "manage_catalog"
	CapabilityManageOrders  Capability = "manage_orders"
	CapabilityManageMedia   Capability = "manage_media"
	CapabilityManageUsers   Capability = "manage_users"
)

// HasCapability is the single authorization check for the whole application.
// Every privileged route and service decision goes through it; nothing else
// inspects the role string directly.
func HasCapability(user *SessionUser, c Capability) bool {
	if user == nil {
		return false
	}

	switch user.Role {
	case RoleSuperAdmin:
		return true
	case RoleAdmin:
		return c != CapabilityManageUsers
	default:
		return false
	}
}

// AllCapabilities returns every capability in a stable order.
func AllCapabilities() []Capability {
	return []Capability{
		CapabilityManageCatalog,
		CapabilityManageOrders,
		CapabilityManageMedia,
		CapabilityManageUsers,
	}
}

// Grants returns the capabilities the user holds, in AllCapabilities order.
// Access tokens carry this set so clients can gate admin controls without a
// second round trip.
func Grants(user *SessionUser) []Capability {
	var granted []Capability
	for _, c := range AllCapabilities() {
		if HasCapability(user, c) {
			granted = append(granted, c)
		}
	}
	return granted
}

// IsAdmin reports whether the user may enter the admin console at all.
func IsAdmin(user *SessionUser) bool {
	if user == nil {
		return false
	}
	return user.Role == RoleAdmin || user.Role == RoleSuperAdmin
}
