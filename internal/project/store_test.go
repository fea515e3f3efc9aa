package project

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sequentialIDs() Option {
	n := 0
	return WithIDFunc(func() string {
		n++
		return fmt.Sprintf("p%d", n)
	})
}

func TestStore_AddProject_NotifiesWithFullSnapshot(t *testing.T) {
	s := NewStore(sequentialIDs())

	var calls [][]Record
	s.AddListener(func(projects []Record) {
		calls = append(calls, projects)
	})

	titles := []string{"first", "second", "third", "fourth"}
	for _, title := range titles {
		s.AddProject(title, "some description", 2)
	}

	require.Len(t, calls, len(titles))
	for k, snapshot := range calls {
		require.Len(t, snapshot, k+1, "call %d", k)
		for i, rec := range snapshot {
			assert.Equal(t, titles[i], rec.Title)
		}
	}
}

func TestStore_AddProject_ReturnsRecord(t *testing.T) {
	s := NewStore(sequentialIDs())

	rec := s.AddProject("Build API", "Create REST endpoints", 3)

	assert.Equal(t, Record{ID: "p1", Title: "Build API", Description: "Create REST endpoints", People: 3}, rec)
	assert.Equal(t, []Record{rec}, s.Projects())
	assert.Equal(t, 1, s.Len())
}

func TestStore_ListenersRegisteredLaterMissEarlierAdds(t *testing.T) {
	s := NewStore()
	s.AddProject("before", "registered late", 1)

	var got [][]Record
	s.AddListener(func(projects []Record) { got = append(got, projects) })
	s.AddProject("after", "registered late", 1)

	require.Len(t, got, 1)
	assert.Len(t, got[0], 2)
}

func TestStore_DuplicateListenerFiresTwice(t *testing.T) {
	s := NewStore()

	count := 0
	l := func([]Record) { count++ }
	s.AddListener(l)
	s.AddListener(l)

	s.AddProject("title", "description", 1)
	assert.Equal(t, 2, count)
}

func TestStore_SnapshotIsolation(t *testing.T) {
	s := NewStore(sequentialIDs())

	var first, second []Record
	s.AddListener(func(projects []Record) {
		first = projects
		projects[0].Title = "mutated"
	})
	s.AddListener(func(projects []Record) {
		if second == nil {
			second = projects
		}
	})

	s.AddProject("original", "description", 1)

	assert.Equal(t, "mutated", first[0].Title)
	assert.Equal(t, "original", second[0].Title)
	assert.Equal(t, "original", s.Projects()[0].Title)

	// Later additions do not leak into a snapshot already handed out.
	s.AddProject("next", "description", 1)
	assert.Len(t, second, 1)
}

func TestStore_ListenerPanicDoesNotStopLaterRounds(t *testing.T) {
	s := NewStore()

	var lengths []int
	panicked := false
	s.AddListener(func(projects []Record) {
		lengths = append(lengths, len(projects))
		if !panicked {
			panicked = true
			panic("listener failed")
		}
	})

	assert.Panics(t, func() { s.AddProject("first", "description", 1) })

	s.AddProject("second", "description", 1)
	s.AddProject("third", "description", 1)

	assert.Equal(t, []int{1, 2, 3}, lengths)
	assert.Equal(t, 3, s.Len())
}

func TestStore_Subscribe(t *testing.T) {
	s := NewStore(sequentialIDs())
	s.AddProject("before", "description", 1)

	var got [][]Record
	initial := s.Subscribe(func(projects []Record) { got = append(got, projects) })
	require.Len(t, initial, 1)
	assert.Equal(t, "before", initial[0].Title)

	s.AddProject("after", "description", 1)
	require.Len(t, got, 1)
	assert.Len(t, got[0], 2)

	// The returned slice is a copy.
	initial[0].Title = "mutated"
	assert.Equal(t, "before", s.Projects()[0].Title)
}

func TestStore_SubscribeRacingAdds(t *testing.T) {
	s := NewStore()

	const adders = 8
	const perAdder = 50

	var wg sync.WaitGroup
	start := make(chan struct{})
	for i := 0; i < adders; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			for j := 0; j < perAdder; j++ {
				s.AddProject("title", "description", 1)
			}
		}()
	}

	var mu sync.Mutex
	var latest int
	close(start)
	initial := s.Subscribe(func(projects []Record) {
		mu.Lock()
		defer mu.Unlock()
		if len(projects) > latest {
			latest = len(projects)
		}
	})
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	seen := max(latest, len(initial))
	assert.Equal(t, adders*perAdder, seen)
}

func TestStore_NotifiesInRegistrationOrder(t *testing.T) {
	s := NewStore()

	var order []string
	s.AddListener(func([]Record) { order = append(order, "a") })
	s.AddListener(func(projects []Record) {
		order = append(order, "b")
		// Triggering more work from a listener must not reorder delivery.
		if len(projects) == 1 {
			s.AddProject("nested", "added by a listener", 1)
		}
	})
	s.AddListener(func([]Record) { order = append(order, "c") })

	s.AddProject("outer", "description", 1)

	assert.Equal(t, []string{"a", "b", "c", "a", "b", "c"}, order)
	assert.Equal(t, 2, s.Len())
}

func TestStore_ReentrantAddDeliversRoundsInOrder(t *testing.T) {
	s := NewStore()

	var lengths []int
	s.AddListener(func(projects []Record) {
		lengths = append(lengths, len(projects))
		if len(projects) < 3 {
			s.AddProject("chain", "added by a listener", 1)
		}
	})

	s.AddProject("start", "description", 1)

	assert.Equal(t, []int{1, 2, 3}, lengths)
}

func TestStore_UniqueIDs(t *testing.T) {
	s := NewStore()

	const n = 10000
	seen := make(map[string]struct{}, n)
	for i := 0; i < n; i++ {
		rec := s.AddProject("title", "description", 1)
		require.NotEmpty(t, rec.ID)
		_, dup := seen[rec.ID]
		require.False(t, dup, "duplicate id %s after %d records", rec.ID, i)
		seen[rec.ID] = struct{}{}
	}
}

func TestStore_ConcurrentAdds(t *testing.T) {
	s := NewStore()

	var mu sync.Mutex
	var lengths []int
	s.AddListener(func(projects []Record) {
		mu.Lock()
		lengths = append(lengths, len(projects))
		mu.Unlock()
	})

	const workers = 8
	const perWorker = 50

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perWorker; j++ {
				s.AddProject("title", "description", 1)
			}
		}()
	}
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, lengths, workers*perWorker)
	for k, n := range lengths {
		assert.Equal(t, k+1, n, "round %d", k)
	}
}
