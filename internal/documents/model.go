package documents

import "time"

// PageImage is one rasterized page of a document with its caption.
// Page numbers are unique within a document and contiguous from 1.
type PageImage struct {
	Page     int    `bson:"page" json:"page"`
	ImageKey string `bson:"image_key" json:"imagePath"`
	Caption  string `bson:"caption,omitempty" json:"caption,omitempty"`
}

// Document is an uploaded PDF plus everything the ingestion pipeline derived
// from it. Immutable after creation; removed only by explicit delete.
type Document struct {
	ID            string      `bson:"_id"`
	UserID        string      `bson:"user_id"`
	FileName      string      `bson:"file_name"`
	OriginalName  string      `bson:"original_name"`
	SizeBytes     int64       `bson:"size_bytes"`
	MimeType      string      `bson:"mime_type"`
	ExtractedText string      `bson:"extracted_text"`
	Pages         []PageImage `bson:"pages"`
	PageCount     int         `bson:"page_count"`
	CreatedAt     time.Time   `bson:"created_at"`
}
