package models

import (
	"time"
)

type SegmentRecord struct {
	Name    string `json:"name"`
	Elapsed uint64 `json:"elapsed"`
	Length  uint64 `json:"length"`
}

// Record is a debate that was timed to completion or abandoned after some
// time was recorded.
type Record struct {
	StartTime time.Time       `json:"start_time"`
	EndTime   time.Time       `json:"end_time"`
	Format    string          `json:"format"`
	Debate    string          `json:"debate"`
	Segments  []SegmentRecord `json:"segments"`
}

// Total is the sum of the time recorded on every segment.
func (r *Record) Total() time.Duration {
	var secs uint64
	for _, s := range r.Segments {
		secs += s.Elapsed
	}

	return time.Duration(secs) * time.Second
}

// Overran reports the segments that ran past their length.
func (r *Record) Overran() []string {
	var names []string

	for _, s := range r.Segments {
		if s.Length > 0 && s.Elapsed > s.Length {
			names = append(names, s.Name)
		}
	}

	return names
}
