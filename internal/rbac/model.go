package rbac

// Role names carried in JWT claims. Roles are derived from the user record:
// is_admin => ADMIN, having direct reports => MANAGER, else EMPLOYEE.
const (
	RoleAdmin    = "ADMIN"
	RoleManager  = "MANAGER"
	RoleEmployee = "EMPLOYEE"
)

const modelConf = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && r.obj == p.obj && r.act == p.act
`

// permissions is the static policy table: role, resource, action. Service
// level authorization (owner / assigned approver checks) still happens in
// the request service; this table only gates routes.
var permissions = [][3]string{
	{RoleEmployee, "request", "create"},
	{RoleEmployee, "request", "read"},
	{RoleEmployee, "balance", "read"},
	{RoleEmployee, "policy", "read"},

	{RoleManager, "request", "approve"},

	{RoleAdmin, "request", "admin_cancel"},
	{RoleAdmin, "policy", "update"},
	{RoleAdmin, "user", "read"},
	{RoleAdmin, "user", "update"},
}

// roleInheritance: child role inherits every permission of the parent.
var roleInheritance = [][2]string{
	{RoleManager, RoleEmployee},
	{RoleAdmin, RoleManager},
}
