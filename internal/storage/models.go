package storage

// URLRecord is a single long URL to short code mapping.
type URLRecord struct {
	ID       int64  `json:"-"`
	Original string `json:"original_url"`
	Short    string `json:"short_code"`
}
