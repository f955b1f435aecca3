package util

import (
	"net/http"
	"regexp"
	"strings"
	"testing"

	"github.com/tgarmenliev/sofaccess-api/util/values"
)

func TestStatusCode(t *testing.T) {
	testCases := []struct {
		name     string
		status   string
		expected int
	}{
		{"success", values.Success, http.StatusOK},
		{"created", values.Created, http.StatusCreated},
		{"error", values.Error, http.StatusInternalServerError},
		{"bad request", values.BadRequestBody, http.StatusBadRequest},
		{"not found", values.NotFound, http.StatusNotFound},
		{"not authorised", values.NotAuthorised, http.StatusUnauthorized},
		{"token expired", values.TokenExpired, http.StatusUnauthorized},
		{"not allowed", values.NotAllowed, http.StatusForbidden},
		{"conflict", values.Conflict, http.StatusConflict},
		{"unknown defaults to 200", "anything-else", http.StatusOK},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := StatusCode(tc.status); got != tc.expected {
				t.Errorf("StatusCode(%q) = %d; want %d", tc.status, got, tc.expected)
			}
		})
	}
}

func TestNotBlank(t *testing.T) {
	if NotBlank("   ") {
		t.Error("whitespace-only string should be blank")
	}
	if !NotBlank(" текст ") {
		t.Error("non-empty string should not be blank")
	}
}

func TestBlobKey(t *testing.T) {
	key := BlobKey("reports", "IMG_0123.JPG")

	if !strings.HasPrefix(key, "reports/") {
		t.Errorf("key %q missing folder prefix", key)
	}
	if !strings.HasSuffix(key, ".jpg") {
		t.Errorf("key %q should keep a lowercased extension", key)
	}

	pattern := regexp.MustCompile(`^reports/\d+-[0-9a-f]{12}\.jpg$`)
	if !pattern.MatchString(key) {
		t.Errorf("key %q does not match expected shape", key)
	}

	if BlobKey("reports", "IMG_0123.JPG") == key {
		t.Error("two keys for the same filename should differ")
	}
}

func TestBlobKeyNoExtension(t *testing.T) {
	key := BlobKey("reports", "photo")
	if strings.Contains(key, ".") {
		t.Errorf("key %q should have no extension for an extensionless upload", key)
	}
}
