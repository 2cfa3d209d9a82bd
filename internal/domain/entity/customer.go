package entity

import "time"

// Customer cuenta personal de un comensal. El email es único sin distinguir mayúsculas.
type Customer struct {
	ID           string
	Email        string
	Name         string
	Phone        *string
	FavoriteDish *string
	PasswordHash string // bcrypt; nunca sale por ninguna vista
	CreatedAt    time.Time
	UpdatedAt    *time.Time
}
