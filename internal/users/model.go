package users

import "time"

// Profile is the account record shared by OAuth and email/password sign-in.
type Profile struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	DisplayName  string    `json:"displayName"`
	Username     string    `json:"username"`
	AvatarURL    string    `json:"avatarUrl"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// ProfileUpdate carries the user-editable profile fields.
type ProfileUpdate struct {
	DisplayName string `json:"displayName"`
	Username    string `json:"username"`
}
