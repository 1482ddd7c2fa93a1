package services

import (
	"github.com/rs/zerolog"
	"github.com/yigit/studyportal/internal/app/flows"
	"github.com/yigit/studyportal/internal/app/repositories"
	"github.com/yigit/studyportal/internal/pkg/auth"
	"github.com/yigit/studyportal/internal/pkg/filestorage"
	"github.com/yigit/studyportal/internal/pkg/llm"
)

// Services holds every service the controllers use.
type Services struct {
	Auth       *AuthService
	Users      UserService
	Resources  ResourceService
	Watchlist  WatchlistService
	Teachers   TeacherService
	Admissions AdmissionService
	Chats      ChatService
	Generation GenerationService
}

// NewServices wires the services onto the repositories. The generator looks
// resources up through the resource service so chat answers respect visibility.
func NewServices(repos *repositories.Repositories, model llm.Model, storage filestorage.Storage, jwtService *auth.JWTService, log zerolog.Logger) *Services {
	resources := NewResourceService(repos.ResourceRepository, storage)
	watchlist := NewWatchlistService(repos.WatchlistRepository, repos.GuestWatchlistStore, repos.ResourceRepository)
	generator := flows.NewGenerator(model, resources, storage)

	return &Services{
		Auth:       NewAuthService(repos.UserRepository, watchlist, jwtService, log.With().Str("component", "auth").Logger()),
		Users:      NewUserService(repos.UserRepository),
		Resources:  resources,
		Watchlist:  watchlist,
		Teachers:   NewTeacherService(repos.TeacherRepository, storage),
		Admissions: NewAdmissionService(repos.AdmissionRepository, generator),
		Chats:      NewChatService(repos.ChatRepository, generator),
		Generation: generator,
	}
}
