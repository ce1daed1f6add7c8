package models

import "time"

// User is a portal profile keyed by email. Profile carries whatever extra
// fields the client stored alongside the name.
type User struct {
	ID        string                 `bson:"_id,omitempty" json:"_id,omitempty"`
	Email     string                 `bson:"email" json:"email"`
	Name      string                 `bson:"name,omitempty" json:"name,omitempty"`
	Role      Role                   `bson:"role,omitempty" json:"role"`
	Profile   map[string]interface{} `bson:",inline" json:"profile,omitempty"`
	CreatedAt time.Time              `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time              `bson:"updatedAt" json:"updatedAt"`
}

func (u *User) IsAdmin() bool { return u != nil && u.Role == RoleAdmin }
