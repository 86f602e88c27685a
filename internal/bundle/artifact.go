package bundle

import "time"

// Artifact records one file written into a bundle.
type Artifact struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Kind      string    `json:"kind"`
	Bytes     int       `json:"bytes"`
	CreatedAt time.Time `json:"created_at"`
}
