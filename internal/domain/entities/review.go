package entities

import "time"

// Review represents a patient review of a doctor. A review belongs to one
// doctor and one patient for its lifetime.
type Review struct {
	ID          string    `json:"id"`
	DoctorID    string    `json:"doctorId"`
	PatientID   string    `json:"patientId"`
	PatientName string    `json:"patientName"`
	DoctorName  string    `json:"doctorName"`
	Rating      int       `json:"rating"`
	Comment     string    `json:"comment"`
	IsApproved  bool      `json:"isApproved"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ReviewFromDocument decodes a raw store document into a Review.
func ReviewFromDocument(id string, f map[string]any) *Review {
	return &Review{
		ID:          id,
		DoctorID:    docString(f, "doctorId"),
		PatientID:   docString(f, "patientId"),
		PatientName: docString(f, "patientName"),
		DoctorName:  docString(f, "doctorName"),
		Rating:      docInt(f, "rating"),
		Comment:     docString(f, "comment"),
		IsApproved:  docBool(f, "isApproved"),
		CreatedAt:   docTime(f, "createdAt"),
	}
}
