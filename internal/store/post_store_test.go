package store

import (
	"path/filepath"
	"sync"
	"testing"
	"time"

	"aboard/internal/db"
	"aboard/internal/models"

	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *PostStore {
	t.Helper()
	gdb, err := db.Open(filepath.Join(t.TempDir(), "posts.db"))
	require.NoError(t, err)
	return NewPostStore(gdb)
}

func TestInsertAssignsIncreasingIDs(t *testing.T) {
	s := newTestStore(t)

	var last uint
	for i := 0; i < 5; i++ {
		post := models.Post{Name: "anon", Subject: "subject", Body: "body", Timestamp: time.Now().Unix()}
		require.NoError(t, s.Insert(&post))
		require.Greater(t, post.ID, last)
		last = post.ID
	}
}

func TestListAllOrdering(t *testing.T) {
	s := newTestStore(t)

	base := time.Now().Unix()
	// 乱序写入，其中两条撞在同一秒
	inputs := []models.Post{
		{Name: "anon", Subject: "middle", Body: "body", Timestamp: base - 10},
		{Name: "anon", Subject: "tied-early", Body: "body", Timestamp: base},
		{Name: "anon", Subject: "tied-late", Body: "body", Timestamp: base},
		{Name: "anon", Subject: "oldest", Body: "body", Timestamp: base - 100},
	}
	for i := range inputs {
		require.NoError(t, s.Insert(&inputs[i]))
	}

	posts, err := s.ListAll()
	require.NoError(t, err)
	require.Len(t, posts, 4)

	// 时间戳倒序，同一秒内按 ID 倒序
	require.Equal(t, "tied-late", posts[0].Subject)
	require.Equal(t, "tied-early", posts[1].Subject)
	require.Equal(t, "middle", posts[2].Subject)
	require.Equal(t, "oldest", posts[3].Subject)

	for i := 1; i < len(posts); i++ {
		if posts[i-1].Timestamp == posts[i].Timestamp {
			require.Greater(t, posts[i-1].ID, posts[i].ID)
		} else {
			require.Greater(t, posts[i-1].Timestamp, posts[i].Timestamp)
		}
	}
}

func TestListAllEmpty(t *testing.T) {
	s := newTestStore(t)

	posts, err := s.ListAll()
	require.NoError(t, err)
	require.Empty(t, posts)
}

func TestConcurrentInsertsUniqueIDs(t *testing.T) {
	s := newTestStore(t)

	const n = 20
	ids := make(chan uint, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			post := models.Post{Name: "anon", Subject: "subject", Body: "body", Timestamp: time.Now().Unix()}
			if err := s.Insert(&post); err != nil {
				t.Errorf("insert failed: %v", err)
				return
			}
			ids <- post.ID
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[uint]bool)
	for id := range ids {
		require.False(t, seen[id], "duplicate id %d", id)
		seen[id] = true
	}
	require.Len(t, seen, n)

	// 每一行都是完整的六列，没有写了一半的帖子
	posts, err := s.ListAll()
	require.NoError(t, err)
	require.Len(t, posts, n)
	for _, p := range posts {
		require.NotEmpty(t, p.Name)
		require.NotEmpty(t, p.Subject)
		require.NotEmpty(t, p.Body)
		require.NotZero(t, p.Timestamp)
	}
}
