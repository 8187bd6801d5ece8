package dto

// DiscordEventRequest is the webhook body for the external ad stream.
// Title/Body/Content are alternatives: content backfills whichever of
// title or body is absent.
type DiscordEventRequest struct {
	Event      string `json:"event"`
	MessageID  string `json:"messageId"`
	ChannelID  string `json:"channelId"`
	AuthorID   string `json:"authorId"`
	AuthorName string `json:"authorName"`
	Title      string `json:"title"`
	Body       string `json:"body"`
	Content    string `json:"content"`
}

// SyncResponse result envelope.
type SyncResponse struct {
	Success bool `json:"success"`
}
