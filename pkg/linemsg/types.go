package linemsg

// Message is one outgoing message. Only text messages are used here.
type Message struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// PushRequest is the payload for /v2/bot/message/push.
type PushRequest struct {
	To       string    `json:"to"`
	Messages []Message `json:"messages"`
}

// BroadcastRequest is the payload for /v2/bot/message/broadcast.
type BroadcastRequest struct {
	Messages []Message `json:"messages"`
}

// ReplyRequest is the payload for /v2/bot/message/reply.
type ReplyRequest struct {
	ReplyToken string    `json:"replyToken"`
	Messages   []Message `json:"messages"`
}

// Profile is the response of /v2/bot/profile/{userId}.
type Profile struct {
	UserID        string `json:"userId"`
	DisplayName   string `json:"displayName"`
	PictureURL    string `json:"pictureUrl"`
	StatusMessage string `json:"statusMessage"`
}

// WebhookBody is the payload LINE posts to the webhook endpoint.
type WebhookBody struct {
	Destination string         `json:"destination"`
	Events      []WebhookEvent `json:"events"`
}

// WebhookEvent is a single event inside a webhook delivery.
type WebhookEvent struct {
	Type       string        `json:"type"`
	ReplyToken string        `json:"replyToken"`
	Source     WebhookSource `json:"source"`
	Message    *EventMessage `json:"message,omitempty"`
	Timestamp  int64         `json:"timestamp"`
}

// WebhookSource identifies who triggered a webhook event.
type WebhookSource struct {
	Type   string `json:"type"`
	UserID string `json:"userId"`
}

// EventMessage is the message part of a message event.
type EventMessage struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Text string `json:"text"`
}
