package user

// Permission is an (object, action) pair checked by the authorizer.
type Permission struct {
	Object string
	Action string
}

var (
	// Self service
	PermissionEmployeeViewOwn   = Permission{Object: "employee", Action: "view_own"}
	PermissionAttendanceCheck   = Permission{Object: "attendance", Action: "check"}
	PermissionAttendanceViewOwn = Permission{Object: "attendance", Action: "view_own"}
	PermissionLeaveCreate       = Permission{Object: "leave", Action: "create"}
	PermissionLeaveViewOwn      = Permission{Object: "leave", Action: "view_own"}

	// Administration
	PermissionEmployeeManage     = Permission{Object: "employee", Action: "manage"}
	PermissionAttendanceViewAll  = Permission{Object: "attendance", Action: "view_all"}
	PermissionAttendanceOverride = Permission{Object: "attendance", Action: "override"}
	PermissionLeaveViewAll       = Permission{Object: "leave", Action: "view_all"}
	PermissionLeaveApprove       = Permission{Object: "leave", Action: "approve"}
	PermissionAuditView          = Permission{Object: "audit", Action: "view"}
)

// RolePermissions maps roles to the permissions granted directly to them.
// Inheritance between roles is declared in RoleInheritance.
var RolePermissions = map[Role][]Permission{
	RoleEmployee: {
		PermissionEmployeeViewOwn,
		PermissionAttendanceCheck,
		PermissionAttendanceViewOwn,
		PermissionLeaveCreate,
		PermissionLeaveViewOwn,
	},
	RoleAdmin: {
		PermissionEmployeeManage,
		PermissionAttendanceViewAll,
		PermissionAttendanceOverride,
		PermissionLeaveViewAll,
		PermissionLeaveApprove,
		PermissionAuditView,
	},
}

// RoleInheritance lists child -> parent role edges. An administrator may also
// be an employee and use every self-service operation.
var RoleInheritance = map[Role]Role{
	RoleAdmin: RoleEmployee,
}
