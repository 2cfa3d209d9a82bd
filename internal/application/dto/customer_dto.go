package dto

import "time"

// RegisterCustomerRequest entrada de registro de cliente.
type RegisterCustomerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// CustomerLoginRequest credenciales email + password.
type CustomerLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateProfileRequest campos editables por el propio cliente.
type UpdateProfileRequest struct {
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	FavoriteDish string `json:"favoriteDish"`
}

// CustomerProfile salida de un cliente (sin hash de password).
type CustomerProfile struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	Phone        *string   `json:"phone"`
	FavoriteDish *string   `json:"favoriteDish"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ProfileResponse envoltorio {profile}.
type ProfileResponse struct {
	Profile *CustomerProfile `json:"profile"`
}

// CustomerLoginResponse token de sesión más perfil.
type CustomerLoginResponse struct {
	Token   string           `json:"token"`
	Profile *CustomerProfile `json:"profile"`
}
