package chat

type InboundMessage struct {
	ExternalUserID string `json:"external_user_id" binding:"required"`
	DisplayName    string `json:"display_name" binding:"required"`
	Text           string `json:"text" binding:"required"`
}

type Reply struct {
	Text string `json:"text"`
}
