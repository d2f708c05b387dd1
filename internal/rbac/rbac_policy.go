package rbac

const (
	RoleEmployee = "EMPLOYEE"
	RoleManager  = "MANAGER"
)

const (
	ResourceLeave      = "leave"
	ResourceBalance    = "balance"
	ResourceMembership = "membership"
)

const (
	ActionOwn     = "own"
	ActionRead    = "read"
	ActionReadAll = "read_all"
	ActionReview  = "review"
	ActionAdjust  = "adjust"
	ActionManage  = "manage"
)

const modelText = `[request_definition]
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

// Permission is one (resource, action) pair granted to a role.
type Permission struct {
	Resource string `json:"resource"`
	Action   string `json:"action"`
}

// defaultPolicy is what every company runs with. Managers inherit all
// employee permissions through the grouping rule.
var defaultPolicy = map[string][]Permission{
	RoleEmployee: {
		{Resource: ResourceLeave, Action: ActionOwn},
		{Resource: ResourceBalance, Action: ActionOwn},
		{Resource: ResourceMembership, Action: ActionRead},
	},
	RoleManager: {
		{Resource: ResourceLeave, Action: ActionReadAll},
		{Resource: ResourceLeave, Action: ActionReview},
		{Resource: ResourceBalance, Action: ActionReadAll},
		{Resource: ResourceBalance, Action: ActionAdjust},
		{Resource: ResourceMembership, Action: ActionManage},
	},
}

// IsValidRole reports whether role is a known membership role.
func IsValidRole(role string) bool {
	return role == RoleEmployee || role == RoleManager
}
