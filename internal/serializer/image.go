package serializer

import (
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/adboard/adboard-api/internal/domain"
)

// SniffLen is the number of leading bytes ValidateImage needs.
const SniffLen = 512

// ValidateImage checks an uploaded image. header is nil when no file was
// sent; sniff holds up to SniffLen leading bytes of the file. The content
// type is taken from the bytes, never from the client's declared type.
// It returns the detected content type.
func ValidateImage(header *multipart.FileHeader, sniff []byte) (string, error) {
	if header == nil {
		return "", domain.NewValidationError("image", domain.KindRequired, "no file was submitted")
	}
	if header.Size == 0 || len(sniff) == 0 {
		return "", domain.NewValidationError("image", domain.KindInvalid, "the submitted file is empty")
	}
	contentType := http.DetectContentType(sniff)
	if !strings.HasPrefix(contentType, "image/") {
		return "", domain.NewValidationError("image", domain.KindInvalid,
			"upload a valid image; the file you uploaded was either not an image or a corrupted image")
	}
	return contentType, nil
}
