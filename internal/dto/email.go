package dto

// EmailSendResponse confirms a mail was handed to the SMTP relay
type EmailSendResponse struct {
	Sent bool   `json:"sent"`
	To   string `json:"to"`
}
