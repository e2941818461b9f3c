// Package attachment validates and normalizes customer file attachments
// transported as base64 data URIs.
package attachment

import (
	"encoding/base64"
	"errors"
	"strings"
	"unicode"
)

// MaxSize is the largest accepted decoded attachment, in bytes
const MaxSize = 5 * 1024 * 1024

// MaxEncodedLength bounds the cleaned base64 payload before decoding
const MaxEncodedLength = (MaxSize+2)/3*4 + 1000

// AllowedMimeTypes is the attachment allow-list
var AllowedMimeTypes = []string{
	"application/pdf",
	"application/msword",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	"application/vnd.ms-excel",
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	"text/plain",
	"image/png",
	"image/jpeg",
}

// Rejection reasons. Their messages are shown to users as-is.
var (
	ErrInvalidType     = errors.New("Invalid file type. Only PDF, DOC, DOCX, XLS, XLSX, TXT, PNG, and JPEG files are allowed.")
	ErrEncodedTooLarge = errors.New("Attachment data exceeds maximum allowed size.")
	ErrInvalidData     = errors.New("Invalid attachment data.")
	ErrTooLarge        = errors.New("File size exceeds 5MB limit.")
)

// IsRejection reports whether err is one of the pipeline's rejection reasons
func IsRejection(err error) bool {
	return errors.Is(err, ErrInvalidType) ||
		errors.Is(err, ErrEncodedTooLarge) ||
		errors.Is(err, ErrInvalidData) ||
		errors.Is(err, ErrTooLarge)
}

// Attachment is an admitted, canonical attachment
type Attachment struct {
	// DataURI is data:<mime>;base64,<payload> with canonical padding
	DataURI  string
	MimeType string
	Size     int
	data     []byte
}

// Bytes returns the decoded content
func (a *Attachment) Bytes() []byte {
	return a.data
}

// IsAllowedMimeType reports whether mimeType is on the allow-list
func IsAllowedMimeType(mimeType string) bool {
	for _, allowed := range AllowedMimeTypes {
		if mimeType == allowed {
			return true
		}
	}
	return false
}

// ValidateAndNormalize admits or rejects an attachment. An empty dataURI means
// no attachment and is admitted with a nil result regardless of mimeType. The
// MIME type in the output always comes from mimeType, never from the input URI.
func ValidateAndNormalize(dataURI, mimeType string) (*Attachment, error) {
	if dataURI == "" {
		return nil, nil
	}

	if !IsAllowedMimeType(mimeType) {
		return nil, ErrInvalidType
	}

	payload := dataURI
	if _, after, found := strings.Cut(dataURI, ","); found {
		payload = after
	}

	clean := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, payload)

	if len(clean) > MaxEncodedLength {
		return nil, ErrEncodedTooLarge
	}

	// Padding is optional on input; it is restored on re-encode.
	data, err := base64.RawStdEncoding.DecodeString(strings.TrimRight(clean, "="))
	if err != nil {
		return nil, ErrInvalidData
	}

	if len(data) > MaxSize {
		return nil, ErrTooLarge
	}

	return &Attachment{
		DataURI:  "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data),
		MimeType: mimeType,
		Size:     len(data),
		data:     data,
	}, nil
}

// Decode extracts the content of a stored, already normalized data URI
func Decode(dataURI string) ([]byte, error) {
	_, payload, found := strings.Cut(dataURI, ",")
	if !found {
		return nil, ErrInvalidData
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, ErrInvalidData
	}
	return data, nil
}
