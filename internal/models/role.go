package models

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/x/bsonx/bsoncore"
)

// Role is a user's privilege level. It is stored as the "role" field of a
// user document; an absent field is RoleOrdinary and "admin" is RoleAdmin.
type Role uint8

const (
	RoleOrdinary Role = iota
	RoleAdmin
)

const adminRoleName = "admin"

// ParseRole maps a stored role string to a Role. Anything other than
// "admin" is an ordinary user.
func ParseRole(s string) Role {
	if s == adminRoleName {
		return RoleAdmin
	}
	return RoleOrdinary
}

func (r Role) String() string {
	if r == RoleAdmin {
		return adminRoleName
	}
	return "user"
}

func (r Role) IsZero() bool { return r == RoleOrdinary }

func (r Role) MarshalBSONValue() (bsontype.Type, []byte, error) {
	if r == RoleAdmin {
		return bson.TypeString, bsoncore.AppendString(nil, adminRoleName), nil
	}
	return bson.TypeNull, nil, nil
}

func (r *Role) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	switch t {
	case bson.TypeNull, bson.TypeUndefined:
		*r = RoleOrdinary
		return nil
	case bson.TypeString:
		s, ok := bson.RawValue{Type: t, Value: data}.StringValueOK()
		if !ok {
			return fmt.Errorf("decode role: malformed string")
		}
		*r = ParseRole(s)
		return nil
	default:
		return fmt.Errorf("decode role: unexpected bson type %s", t)
	}
}

func (r Role) MarshalText() ([]byte, error) { return []byte(r.String()), nil }

func (r *Role) UnmarshalText(b []byte) error {
	*r = ParseRole(string(b))
	return nil
}
