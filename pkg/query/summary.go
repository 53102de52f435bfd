package query

import (
	"github.com/soralog/soralog/pkg/field"
	"github.com/soralog/soralog/pkg/record"
	"github.com/soralog/soralog/pkg/source"
)

// Summary tallies files and records across a log directory.
type Summary struct {
	Files           int                 `json:"files" yaml:"files"`
	FilesPerKind    map[source.Kind]int `json:"files_per_kind" yaml:"files_per_kind"`
	Records         int                 `json:"records" yaml:"records"`
	RecordsPerLevel map[field.Level]int `json:"records_per_level" yaml:"records_per_level"`
	RecordsPerKind  map[source.Kind]int `json:"records_per_kind" yaml:"records_per_kind"`
}

// NewSummary returns an empty summary.
func NewSummary() *Summary {
	return &Summary{
		FilesPerKind:    make(map[source.Kind]int),
		RecordsPerLevel: make(map[field.Level]int),
		RecordsPerKind:  make(map[source.Kind]int),
	}
}

// AddFile counts one file of the given kind.
func (s *Summary) AddFile(kind source.Kind) {
	s.Files++
	s.FilesPerKind[kind]++
}

// AddRecord counts one record by its level and kind.
func (s *Summary) AddRecord(r record.Record) {
	s.Records++
	s.RecordsPerLevel[r.Level()]++
	s.RecordsPerKind[r.Kind()]++
}
