package dto

// ContactRequest is a contact-form submission.
type ContactRequest struct {
	FullName     string `json:"fullName" binding:"required"`
	Email        string `json:"email" binding:"required,email"`
	MobileNumber string `json:"mobileNumber"`
	Subject      string `json:"subject" binding:"required"`
	Message      string `json:"message" binding:"required"`
}

// ContactResponse acknowledges a relayed contact message.
type ContactResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
