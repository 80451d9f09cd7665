package rbac

// Casbin model and the static policy table. The portal's role set is fixed
// (employee < manager < hr_admin < super_admin), so policies are seeded in
// code instead of loaded from storage.

const modelText = `
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

type policyRule struct {
	Role     string
	Resource string
	Action   string
}

// roleInheritance: each role also holds every permission of the role it
// extends.
var roleInheritance = [][2]string{
	{"manager", "employee"},
	{"hr_admin", "manager"},
	{"super_admin", "hr_admin"},
}

var policyRules = []policyRule{
	// Every authenticated employee.
	{"employee", "employee", "read"},
	{"employee", "orgchart", "read"},
	{"employee", "department", "read"},
	{"employee", "designation", "read"},
	{"employee", "holiday", "read"},
	{"employee", "leave_type", "read"},
	{"employee", "leave", "read"},
	{"employee", "leave", "create"},
	{"employee", "leave", "withdraw"},
	{"employee", "balance", "read"},
	{"employee", "policy", "read"},
	{"employee", "policy", "acknowledge"},
	{"employee", "payroll", "read"},
	{"employee", "exit", "read"},
	{"employee", "exit", "create"},
	{"employee", "exit", "cancel"},

	// Managers decide on their reports' requests.
	{"manager", "leave", "decide"},
	{"manager", "exit", "manager_approve"},

	// HR administers master data and the second exit gate.
	{"hr_admin", "employee", "manage"},
	{"hr_admin", "department", "manage"},
	{"hr_admin", "designation", "manage"},
	{"hr_admin", "holiday", "manage"},
	{"hr_admin", "leave_type", "manage"},
	{"hr_admin", "policy", "manage"},
	{"hr_admin", "payroll", "manage"},
	{"hr_admin", "exit", "hr_approve"},
	{"hr_admin", "exit", "complete"},

	{"super_admin", "rbac", "read"},
}
