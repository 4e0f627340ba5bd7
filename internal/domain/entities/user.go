package entities

import "time"

// User represents a registered patient profile
type User struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Email            string    `json:"email"`
	Phone            string    `json:"phone"`
	Gender           string    `json:"gender"`
	DateOfBirth      time.Time `json:"dateOfBirth"`
	BloodGroup       string    `json:"bloodGroup"`
	Address          string    `json:"address"`
	EmergencyContact string    `json:"emergencyContact"`
	ProfileImage     string    `json:"profileImage"`
	CreatedAt        time.Time `json:"createdAt"`
}

// UserFromDocument decodes a raw store document into a User.
func UserFromDocument(id string, f map[string]any) *User {
	return &User{
		ID:               id,
		Name:             docString(f, "name"),
		Email:            docString(f, "email"),
		Phone:            docString(f, "phone"),
		Gender:           docString(f, "gender"),
		DateOfBirth:      docTime(f, "dateOfBirth"),
		BloodGroup:       docString(f, "bloodGroup"),
		Address:          docString(f, "address"),
		EmergencyContact: docString(f, "emergencyContact"),
		ProfileImage:     docString(f, "profileImage"),
		CreatedAt:        docTime(f, "createdAt"),
	}
}
