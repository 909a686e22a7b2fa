package domain

import "strings"

// Attachment types.
const (
	AttachmentPhoto       = "photo"
	AttachmentDocument    = "document"
	AttachmentCertificate = "certificate"
	AttachmentTestResult  = "test_result"
	AttachmentLabel       = "label"
	AttachmentVideo       = "video"
	AttachmentOther       = "other"
)

var validAttachmentTypes = map[string]bool{
	AttachmentPhoto:       true,
	AttachmentDocument:    true,
	AttachmentCertificate: true,
	AttachmentTestResult:  true,
	AttachmentLabel:       true,
	AttachmentVideo:       true,
	AttachmentOther:       true,
}

// Attachment is a file linked to a batch, process, or event: a photo, a
// certificate, a lab result.
type Attachment struct {
	Type        string `json:"type"`
	URL         string `json:"url"`
	Description string `json:"description,omitempty"`
	MimeType    string `json:"mime_type,omitempty"`
	CreatedAt   string `json:"created_at,omitempty"`
	Hash        string `json:"hash,omitempty"`
}

// Validate checks the attachment type. Custom "x-" prefixed types pass.
func (a Attachment) Validate() error {
	if validAttachmentTypes[a.Type] || strings.HasPrefix(a.Type, CustomTypePrefix) {
		return nil
	}
	return Validationf("invalid attachment type: %s", a.Type)
}
