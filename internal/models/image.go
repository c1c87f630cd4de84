package models

// ImagePayload is an in-memory generated or uploaded image. Payloads are
// presentation artifacts only and are never stored as notes.
type ImagePayload struct {
	Data     []byte `json:"-"`
	MIMEType string `json:"mime_type"`
}
