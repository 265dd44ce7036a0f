package domain

import (
	"encoding/json"
	"path/filepath"
)

// TrackRecord is the normalized metadata of one audio file.
//
// Year and Track are nil when unknown. Zero is a real value for both and
// is never used as a stand-in for "absent".
type TrackRecord struct {
	Path     string   `json:"path"` // file name only
	Title    string   `json:"title"`
	Artist   string   `json:"artist"`
	Album    string   `json:"album"`
	Genre    []string `json:"genre"`
	Year     *int     `json:"year"`
	Track    *int     `json:"track"`
	Duration float64  `json:"duration"` // seconds
}

// MarshalJSON keeps genre an array even when the slice is nil.
func (r TrackRecord) MarshalJSON() ([]byte, error) {
	type plain TrackRecord
	p := plain(r)
	if p.Genre == nil {
		p.Genre = []string{}
	}
	return json.Marshal(p)
}

// FileName returns the base name used for TrackRecord.Path.
func FileName(path string) string {
	return filepath.Base(path)
}

// Batch is an ordered list of records, index-aligned with the input paths of
// the run that produced it.
type Batch []TrackRecord

// MarshalJSON writes an empty batch as [] rather than null.
func (b Batch) MarshalJSON() ([]byte, error) {
	if b == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]TrackRecord(b))
}

// IntPtr returns a pointer to v. Used to build optional year and track values.
func IntPtr(v int) *int {
	return &v
}
