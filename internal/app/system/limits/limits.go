// Package limits defines request body size caps. They guard against memory
// exhaustion from oversized submissions.
package limits

const (
	// MaxJSONBodySize caps JSON request bodies (register, login, resource
	// metadata).
	MaxJSONBodySize = 1 << 20 // 1 MB

	// MaxUploadSize caps a multipart resource upload (form fields plus the
	// document itself).
	MaxUploadSize = 32 << 20 // 32 MB
)
