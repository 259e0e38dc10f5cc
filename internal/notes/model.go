package notes

import "time"

// Note is a piece of user-authored or generated study material tied to a
// document.
type Note struct {
	ID         string    `bson:"_id" json:"_id"`
	UserID     string    `bson:"user_id" json:"userId"`
	DocumentID string    `bson:"pdf_id" json:"pdfId"`
	Title      string    `bson:"title" json:"title"`
	Content    string    `bson:"content" json:"content"`
	Tags       []string  `bson:"tags" json:"tags"`
	CreatedAt  time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt  time.Time `bson:"updated_at" json:"updatedAt"`
}
