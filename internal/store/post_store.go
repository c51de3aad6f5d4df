package store

import (
	"fmt"
	"sync"

	"aboard/internal/models"

	"gorm.io/gorm"
)

// PostStore 存储网关，独占数据库连接。所有读写都经过内部互斥锁串行化：
// 写入量很小，宁可牺牲吞吐也要保证读不到写了一半的行。调用方看不到锁。
type PostStore struct {
	mu sync.Mutex
	db *gorm.DB
}

func NewPostStore(gdb *gorm.DB) *PostStore {
	return &PostStore{db: gdb}
}

// Insert 追加一条帖子，ID 由数据库自增分配，调用方传入的 ID 必须为零值。
func (s *PostStore) Insert(post *models.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.db.Create(post).Error; err != nil {
		return fmt.Errorf("insert post: %w", err)
	}
	return nil
}

// ListAll 返回全部帖子，按时间戳倒序；时间戳只有秒级精度，并发发帖会撞同一秒，
// 所以再按 ID 倒序兜底，保证顺序稳定。
func (s *PostStore) ListAll() ([]models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var posts []models.Post
	if err := s.db.Order("timestamp DESC, id DESC").Find(&posts).Error; err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return posts, nil
}
