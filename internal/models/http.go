// Package models defines the request and response bodies of the HTTP API.
package models

// Request represents a request to shorten a URL.
type Request struct {
	// URL is the original URL to be shortened.
	URL string `json:"url"`
}

// Response is returned by /api/shorten.
type Response struct {
	// Result contains the full short link.
	Result string `json:"result"`
}

// URLInfo is returned by /shorten and pairs the submitted URL with its
// short link.
type URLInfo struct {
	OriginalURL string `json:"original_url"`
	ShortURL    string `json:"short_url"`
}

// Stats reports the number of stored mappings.
type Stats struct {
	URLs int `json:"urls"`
}
