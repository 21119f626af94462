package models

import (
	"encoding/json"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	FirstName      string         `json:"firstName"`
	LastName       string         `json:"lastName"`
	Email          string         `json:"email" gorm:"uniqueIndex"`
	PhoneNumber    string         `json:"phoneNumber"`
	Password       string         `json:"-"`
	SocialLogin    bool           `json:"socialLogin"`
	SocialProvider string         `json:"socialProvider"`
	AvatarURL      string         `json:"avatarURL"`
	Position       string         `json:"position"`
	Role           string         `json:"role" gorm:"type:varchar(20);default:staff;index"` // staff, manager, admin, super_admin
	Permissions    datatypes.JSON `json:"permissions"`                                      // JSON array of "entity:verb" strings
}

// Custom JSON marshaling so Permissions is always an array, never null
func (u *User) MarshalJSON() ([]byte, error) {
	type Alias User
	aux := &struct {
		Permissions []string `json:"permissions"`
		*Alias
	}{
		Permissions: []string{},
		Alias:       (*Alias)(u),
	}

	if u.Permissions != nil {
		var perms []string
		if err := json.Unmarshal(u.Permissions, &perms); err == nil {
			aux.Permissions = perms
		}
	}

	return json.Marshal(aux)
}

// PermissionList parses the stored permission strings.
func (u *User) PermissionList() []string {
	perms := []string{}
	if u.Permissions != nil {
		json.Unmarshal(u.Permissions, &perms)
	}
	return perms
}
