package util

import (
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
)

func NotBlank(value string) bool {
	return strings.TrimSpace(value) != ""
}

// BlobKey builds a collision-resistant object key for an uploaded
// photo: millisecond timestamp plus a random token, keeping the
// original extension so the object store serves the right content type.
func BlobKey(folder, filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	token := strings.ReplaceAll(uuid.New().String(), "-", "")[:12]
	return fmt.Sprintf("%s/%d-%s%s", folder, time.Now().UnixMilli(), token, ext)
}
