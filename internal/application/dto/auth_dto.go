package dto

// StaffLoginRequest entrada de POST /login.
type StaffLoginRequest struct {
	Role     string `json:"role" form:"role"`
	Passcode string `json:"passcode" form:"passcode"`
}

// StaffLoginResponse rol concedido y roles que puede activar.
type StaffLoginResponse struct {
	Role         string   `json:"role"`
	AllowedRoles []string `json:"allowedRoles"`
}

// SessionResponse salida de GET /session. Role es nulo sin cookie de personal.
type SessionResponse struct {
	Role         *string  `json:"role"`
	AllowedRoles []string `json:"allowedRoles"`
	ActiveRole   string   `json:"activeRole"`
}

// SelectRoleRequest preferencia de rol activo.
type SelectRoleRequest struct {
	Role string `json:"role" form:"role"`
}
