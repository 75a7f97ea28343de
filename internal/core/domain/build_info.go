package domain

import "time"

// BuildInfo is the persisted record of the last bundle promoted for a target.
type BuildInfo struct {
	Target     string    `json:"target,omitzero"`
	InputHash  string    `json:"input_hash,omitzero"`
	OutputHash string    `json:"output_hash,omitzero"`
	Files      []string  `json:"files,omitempty"`
	Timestamp  time.Time `json:"timestamp,omitzero"`
}
