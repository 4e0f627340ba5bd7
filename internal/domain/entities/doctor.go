package entities

import "time"

// VerificationStatus represents the verification state of a doctor
type VerificationStatus string

const (
	VerificationPending  VerificationStatus = "pending"
	VerificationApproved VerificationStatus = "approved"
	VerificationRejected VerificationStatus = "rejected"
)

// Doctor represents a doctor profile as stored in the doctors collection
type Doctor struct {
	ID                 string             `json:"id"`
	Name               string             `json:"name"`
	Email              string             `json:"email"`
	Phone              string             `json:"phone"`
	Specialty          string             `json:"specialty"`
	About              string             `json:"about"`
	ProfileImage       string             `json:"profileImage"`
	ExperienceYears    int                `json:"experienceYears"`
	ConsultationFee    float64            `json:"consultationFee"`
	IsAvailable        bool               `json:"isAvailable"`
	IsVerified         bool               `json:"isVerified"`
	VerificationStatus VerificationStatus `json:"verificationStatus"`
	RejectionReason    string             `json:"rejectionReason,omitempty"`
	Rating             float64            `json:"rating"`
	TotalReviews       int                `json:"totalReviews"`
	AvailableDays      []string           `json:"availableDays"`
	StartTime          string             `json:"startTime"`
	EndTime            string             `json:"endTime"`
	HospitalName       string             `json:"hospitalName"`
	HospitalAddress    string             `json:"hospitalAddress"`
	Qualifications     []string           `json:"qualifications"`
	LicenseNumber      string             `json:"licenseNumber"`
	LicenseDocument    string             `json:"licenseDocument"`
	DegreeImages       []string           `json:"degreeImages"`
	CreatedAt          time.Time          `json:"createdAt"`
}

// DoctorFromDocument decodes a raw store document into a Doctor.
// A missing verificationStatus decodes as pending, matching self-registered
// doctors that never went through the admin add flow.
func DoctorFromDocument(id string, f map[string]any) *Doctor {
	status := VerificationStatus(docString(f, "verificationStatus"))
	if status == "" {
		status = VerificationPending
	}
	return &Doctor{
		ID:                 id,
		Name:               docString(f, "name"),
		Email:              docString(f, "email"),
		Phone:              docString(f, "phone"),
		Specialty:          docString(f, "specialty"),
		About:              docString(f, "about"),
		ProfileImage:       docString(f, "profileImage"),
		ExperienceYears:    docInt(f, "experienceYears"),
		ConsultationFee:    docFloat(f, "consultationFee"),
		IsAvailable:        docBool(f, "isAvailable"),
		IsVerified:         docBool(f, "isVerified"),
		VerificationStatus: status,
		RejectionReason:    docString(f, "rejectionReason"),
		Rating:             docFloat(f, "rating"),
		TotalReviews:       docInt(f, "totalReviews"),
		AvailableDays:      docStrings(f, "availableDays"),
		StartTime:          docString(f, "startTime"),
		EndTime:            docString(f, "endTime"),
		HospitalName:       docString(f, "hospitalName"),
		HospitalAddress:    docString(f, "hospitalAddress"),
		Qualifications:     docStrings(f, "qualifications"),
		LicenseNumber:      docString(f, "licenseNumber"),
		LicenseDocument:    docString(f, "licenseDocument"),
		DegreeImages:       docStrings(f, "degreeImages"),
		CreatedAt:          docTime(f, "createdAt"),
	}
}
