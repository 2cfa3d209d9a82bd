package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ActionState forma {error, success} que consumen los formularios de la UI.
type ActionState struct {
	Error   *string `json:"error"`
	Success bool    `json:"success"`
}

// ActionOK estado de acción exitosa.
func ActionOK() ActionState {
	return ActionState{Success: true}
}

// ActionFailed estado de acción fallida con mensaje visible.
func ActionFailed(msg string) ActionState {
	return ActionState{Error: &msg, Success: false}
}
