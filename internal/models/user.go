package models

import "time"

// Role is the access level of a user.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// User represents an account managed from the admin console.
type User struct {
	ID        string    `json:"id" bson:"_id" gorm:"primaryKey;type:varchar(36)"`
	Name      string    `json:"name" bson:"name" gorm:"type:varchar(100);not null"`
	Email     string    `json:"email" bson:"email" gorm:"uniqueIndex;type:varchar(255);not null"`
	Password  string    `json:"-" bson:"password" gorm:"type:varchar(255);not null"` // bcrypt hash, never serialized
	Cart      []string  `json:"cart" bson:"cart" gorm:"serializer:json"`
	Role      Role      `json:"role" bson:"role" gorm:"type:varchar(10);not null;default:user"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}

// UserInput is the body of an add-user request.
type UserInput struct {
	Name     string   `json:"name" validate:"required,max=100"`
	Email    string   `json:"email" validate:"required,email"`
	Password string   `json:"password" validate:"required,min=6"`
	Cart     []string `json:"cart" validate:"omitempty,dive,required"`
	Role     Role     `json:"role" validate:"omitempty,oneof=user admin"`
}

// RoleUpdate is the body of an update-role request.
type RoleUpdate struct {
	UserID string `json:"userId" validate:"required"`
	Role   Role   `json:"role" validate:"required,oneof=user admin"`
}
