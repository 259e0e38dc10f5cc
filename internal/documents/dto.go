package documents

import "time"

// DocumentResponse is the outward-facing representation of a document,
// shaped the way the dashboard consumes it.
type DocumentResponse struct {
	ID            string      `json:"_id"`
	FileName      string      `json:"filename"`
	OriginalName  string      `json:"originalName"`
	Size          int64       `json:"size"`
	UploadDate    time.Time   `json:"uploadDate"`
	UserID        string      `json:"userId"`
	ExtractedText string      `json:"extractedText"`
	Images        []PageImage `json:"images"`
	ImageCount    int         `json:"imageCount"`
}

func toResponse(doc Document) DocumentResponse {
	images := doc.Pages
	if images == nil {
		images = []PageImage{}
	}
	return DocumentResponse{
		ID:            doc.ID,
		FileName:      doc.FileName,
		OriginalName:  doc.OriginalName,
		Size:          doc.SizeBytes,
		UploadDate:    doc.CreatedAt,
		UserID:        doc.UserID,
		ExtractedText: doc.ExtractedText,
		Images:        images,
		ImageCount:    doc.PageCount,
	}
}
