// Package persistence stores finished session results on disk through gdata.
package persistence

import (
	"encoding/json"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/quasilyte/gdata"
)

const (
	scoresKey  = "scores"
	maxRecords = 10
)

// Record is one finished session
type Record struct {
	SessionID string    `json:"sessionId"`
	Score     int       `json:"score"`
	Kills     int       `json:"kills"`
	Shots     int       `json:"shots"`
	Survived  bool      `json:"survived"`
	Mode      string    `json:"mode"`
	At        time.Time `json:"at"`
}

// items is the part of gdata.Manager the store uses
type items interface {
	LoadItem(key string) ([]byte, error)
	SaveItem(key string, data []byte) error
}

// Store keeps the best results, highest score first
type Store struct {
	items items
}

// Open opens the per-user data directory of appName
func Open(appName string) (*Store, error) {
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return nil, fmt.Errorf("open score store: %w", err)
	}
	return NewStore(m), nil
}

func NewStore(i items) *Store {
	return &Store{items: i}
}

// Scores returns the saved records, highest score first. A missing or
// unreadable table reads as empty.
func (s *Store) Scores() ([]Record, error) {
	data, err := s.items.LoadItem(scoresKey)
	if err != nil {
		return nil, fmt.Errorf("load scores: %w", err)
	}
	if len(data) == 0 {
		return nil, nil
	}
	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		log.Printf("Warning: Could not parse saved scores: %v", err)
		return nil, nil
	}
	return records, nil
}

// Best returns the top record, if any
func (s *Store) Best() (Record, bool, error) {
	records, err := s.Scores()
	if err != nil || len(records) == 0 {
		return Record{}, false, err
	}
	return records[0], true, nil
}

// Add inserts r and reports whether it is the new best score. Only the top
// results are kept.
func (s *Store) Add(r Record) (bool, error) {
	records, err := s.Scores()
	if err != nil {
		return false, err
	}
	best := len(records) == 0 || r.Score > records[0].Score

	records = append(records, r)
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Score > records[j].Score
	})
	if len(records) > maxRecords {
		records = records[:maxRecords]
	}

	data, err := json.Marshal(records)
	if err != nil {
		return false, fmt.Errorf("encode scores: %w", err)
	}
	if err := s.items.SaveItem(scoresKey, data); err != nil {
		return false, fmt.Errorf("save scores: %w", err)
	}
	return best, nil
}

// Clear removes every saved record
func (s *Store) Clear() error {
	return s.items.SaveItem(scoresKey, nil)
}
