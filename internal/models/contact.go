package models

// ContactRequest is the contact form as submitted by the client
type ContactRequest struct {
	FirstName string `json:"firstName" form:"firstName"`
	LastName  string `json:"lastName" form:"lastName"`
	Email     string `json:"email" form:"email"`
	Subject   string `json:"subject" form:"subject"`
	Message   string `json:"message" form:"message"`
}

// ContactMessage is the record appended under the contact path
type ContactMessage struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Subject   string `json:"subject"`
	Message   string `json:"message"`
	CreatedAt string `json:"createdAt"`
}
