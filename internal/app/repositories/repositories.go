package repositories

import (
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/yigit/studyportal/internal/db"
)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository      *UserRepository
	ResourceRepository  *ResourceRepository
	WatchlistRepository *WatchlistRepository
	GuestWatchlistStore *GuestWatchlistStore
	TeacherRepository   *TeacherRepository
	AdmissionRepository *AdmissionRepository
	ChatRepository      *ChatRepository
}

// NewRepositories initializes all repositories
func NewRepositories(pg *db.PostgresDB, rdb *redis.Client, guestTTL time.Duration) *Repositories {
	return &Repositories{
		UserRepository:      NewUserRepository(pg.Pool),
		ResourceRepository:  NewResourceRepository(pg.Pool),
		WatchlistRepository: NewWatchlistRepository(pg),
		GuestWatchlistStore: NewGuestWatchlistStore(rdb, guestTTL),
		TeacherRepository:   NewTeacherRepository(pg.Pool),
		AdmissionRepository: NewAdmissionRepository(pg.Pool),
		ChatRepository:      NewChatRepository(pg),
	}
}

func joinColumns(cols []string) string {
	return strings.Join(cols, ", ")
}
