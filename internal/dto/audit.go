package dto

// AuditMessagesResponse wraps audit messages.
type AuditMessagesResponse struct {
	Messages []string `json:"messages"`
}

// ToAuditMessagesResponse never returns a nil list.
func ToAuditMessagesResponse(messages []string) AuditMessagesResponse {
	if messages == nil {
		messages = []string{}
	}
	return AuditMessagesResponse{Messages: messages}
}
