package analyzer

// ContentType tags what kind of content is being analyzed.
type ContentType string

const (
	ContentTypeEmail ContentType = "email"
	ContentTypeSMS   ContentType = "sms"
	ContentTypeURL   ContentType = "url"
)

// ParseContentType validates a wire-level content type string.
func ParseContentType(s string) (ContentType, bool) {
	switch ContentType(s) {
	case ContentTypeEmail, ContentTypeSMS, ContentTypeURL:
		return ContentType(s), true
	}
	return "", false
}
