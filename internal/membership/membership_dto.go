package membership

import "go-leave/internal/rbac"

type UpdateRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=EMPLOYEE MANAGER"`
}

type MembershipResponse struct {
	ID        string `json:"id"`
	CompanyID string `json:"companyId"`
	UserID    string `json:"userId"`
	UserName  string `json:"userName,omitempty"`
	UserEmail string `json:"userEmail,omitempty"`
	Role      string `json:"role"`
	OnLeave   bool   `json:"onLeave"`
	CreatedAt string `json:"createdAt"`
}

type MeResponse struct {
	Membership  MembershipResponse `json:"membership"`
	Permissions []rbac.Permission  `json:"permissions"`
}
