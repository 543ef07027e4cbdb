package interview

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStoreLifecycle(t *testing.T) {
	store := NewStore()
	session := &Session{ID: "1-1-abc", Status: StatusInProgress}

	store.Create(session)
	require.Equal(t, 1, store.Len())

	err := store.Update("1-1-abc", func(s *Session) error {
		s.TotalScore = 3
		return nil
	})
	require.NoError(t, err)

	err = store.Remove("1-1-abc", func(s *Session) error {
		require.Equal(t, 3, s.TotalScore)
		return nil
	})
	require.NoError(t, err)
	require.Zero(t, store.Len())
}

func TestStoreUnknownID(t *testing.T) {
	store := NewStore()

	err := store.Update("missing", func(*Session) error { return nil })
	require.ErrorIs(t, err, ErrSessionNotFound)

	err = store.Remove("missing", func(*Session) error { return nil })
	require.ErrorIs(t, err, ErrSessionNotFound)
}

func TestStoreRemoveKeepsSessionOnFailure(t *testing.T) {
	store := NewStore()
	store.Create(&Session{ID: "s1", Status: StatusInProgress})

	err := store.Remove("s1", func(*Session) error { return ErrInvalidSessionState })
	require.ErrorIs(t, err, ErrInvalidSessionState)
	require.Equal(t, 1, store.Len())

	require.NoError(t, store.Remove("s1", func(*Session) error { return nil }))
	require.Zero(t, store.Len())
}

func TestStoreSerialisesMutationsPerSession(t *testing.T) {
	store := NewStore()
	store.Create(&Session{ID: "hot", Status: StatusInProgress})

	const workers = 32
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			_ = store.Update("hot", func(s *Session) error {
				s.TotalScore++
				return nil
			})
		}()
	}
	wg.Wait()

	var final int
	require.NoError(t, store.Update("hot", func(s *Session) error {
		final = s.TotalScore
		return nil
	}))
	require.Equal(t, workers, final)
}
