package persistence

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memItems map[string][]byte

func (m memItems) LoadItem(key string) ([]byte, error) { return m[key], nil }

func (m memItems) SaveItem(key string, data []byte) error {
	m[key] = data
	return nil
}

type brokenItems struct{}

func (brokenItems) LoadItem(string) ([]byte, error) { return nil, errors.New("disk on fire") }
func (brokenItems) SaveItem(string, []byte) error   { return errors.New("disk on fire") }

func TestEmptyStore(t *testing.T) {
	s := NewStore(memItems{})
	records, err := s.Scores()
	require.NoError(t, err)
	assert.Empty(t, records)

	_, ok, err := s.Best()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAddKeepsBestFirst(t *testing.T) {
	s := NewStore(memItems{})
	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	best, err := s.Add(Record{SessionID: "a", Score: 50, At: at})
	require.NoError(t, err)
	assert.True(t, best)

	best, err = s.Add(Record{SessionID: "b", Score: 20, At: at})
	require.NoError(t, err)
	assert.False(t, best)

	best, err = s.Add(Record{SessionID: "c", Score: 80, At: at})
	require.NoError(t, err)
	assert.True(t, best)

	records, err := s.Scores()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, []string{"c", "a", "b"}, []string{records[0].SessionID, records[1].SessionID, records[2].SessionID})
	assert.True(t, records[0].At.Equal(at))

	top, ok, err := s.Best()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 80, top.Score)
}

func TestAddTrimsTable(t *testing.T) {
	s := NewStore(memItems{})
	for i := 0; i < maxRecords+5; i++ {
		_, err := s.Add(Record{Score: i})
		require.NoError(t, err)
	}
	records, err := s.Scores()
	require.NoError(t, err)
	require.Len(t, records, maxRecords)
	assert.Equal(t, maxRecords+4, records[0].Score)
	assert.Equal(t, 5, records[maxRecords-1].Score)
}

func TestCorruptTableReadsEmpty(t *testing.T) {
	s := NewStore(memItems{scoresKey: []byte("{oops")})
	records, err := s.Scores()
	require.NoError(t, err)
	assert.Empty(t, records)

	require.NoError(t, s.Clear())
	records, _ = s.Scores()
	assert.Empty(t, records)
}

func TestStoreErrors(t *testing.T) {
	s := NewStore(brokenItems{})
	_, err := s.Scores()
	assert.Error(t, err)
	_, err = s.Add(Record{Score: 1})
	assert.Error(t, err)
}
