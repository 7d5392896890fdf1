package dto

// WhatsAppInboundRequest mirrors the Twilio-style webhook payload. The
// capitalized field names are the provider's, not ours.
type WhatsAppInboundRequest struct {
	From string `json:"From" form:"From" validate:"required"`
	Body string `json:"Body" form:"Body"`
}

type WhatsAppReplyResponse struct {
	Message string `json:"message"`
}

// USSDInboundRequest mirrors the Africa's Talking gateway payload. Text
// is the cumulative *-joined input for the whole session.
type USSDInboundRequest struct {
	SessionID   string `json:"sessionId" form:"sessionId" validate:"required"`
	PhoneNumber string `json:"phoneNumber" form:"phoneNumber" validate:"required"`
	Text        string `json:"text" form:"text"`
}

type USSDReplyResponse struct {
	Response string `json:"response"`
}
