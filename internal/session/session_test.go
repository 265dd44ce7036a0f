package session

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSession_LastWriteWins(t *testing.T) {
	s := New()
	assert.Empty(t, s.LastDirectory())
	assert.True(t, s.Snapshot().UpdatedAt.IsZero())

	s.SetLastDirectory("/music/a")
	s.SetLastDirectory("/music/b")
	s.SetLastDirectory("")

	assert.Equal(t, "/music/b", s.LastDirectory())
	snap := s.Snapshot()
	assert.Equal(t, "/music/b", snap.LastDirectory)
	assert.False(t, snap.UpdatedAt.IsZero())
}

func TestSession_ConcurrentAccess(t *testing.T) {
	s := New()
	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.SetLastDirectory(fmt.Sprintf("/music/%d", i))
			_ = s.LastDirectory()
		}()
	}
	wg.Wait()

	assert.Contains(t, s.LastDirectory(), "/music/")
}
