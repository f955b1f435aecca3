package storage

import "testing"

func TestPublicIDFromURL(t *testing.T) {
	testCases := []struct {
		name     string
		url      string
		expected string
	}{
		{
			"versioned delivery url",
			"https://res.cloudinary.com/demo/image/upload/v1712345678/reports/1712345678000-a1b2c3d4e5f6.jpg",
			"reports/1712345678000-a1b2c3d4e5f6",
		},
		{
			"unversioned url",
			"https://res.cloudinary.com/demo/image/upload/reports/1712345678000-a1b2c3d4e5f6.png",
			"reports/1712345678000-a1b2c3d4e5f6",
		},
		{
			"not a cloudinary url",
			"https://example.com/some/image.jpg",
			"",
		},
		{
			"empty",
			"",
			"",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := PublicIDFromURL(tc.url); got != tc.expected {
				t.Errorf("PublicIDFromURL(%q) = %q; want %q", tc.url, got, tc.expected)
			}
		})
	}
}
