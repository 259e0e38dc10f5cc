package conversations

import "time"

// Message is a single turn in a conversation.
type Message struct {
	Role      string    `bson:"role" json:"role"`
	Content   string    `bson:"content" json:"content"`
	Timestamp time.Time `bson:"timestamp" json:"timestamp"`
}

// Conversation groups the chat turns a user has had about one document.
type Conversation struct {
	ID         string    `bson:"_id" json:"_id"`
	UserID     string    `bson:"user_id" json:"userId"`
	DocumentID string    `bson:"pdf_id" json:"pdfId"`
	Messages   []Message `bson:"messages" json:"messages"`
	CreatedAt  time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt  time.Time `bson:"updated_at" json:"updatedAt"`
}

// Message roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)
