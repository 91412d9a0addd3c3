package services

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/seojin/tastemap/internal/app/repositories"
	"github.com/seojin/tastemap/internal/pkg/events"
	"github.com/seojin/tastemap/internal/pkg/filestorage"
	"github.com/seojin/tastemap/internal/pkg/kakao"
	"github.com/seojin/tastemap/internal/pkg/session"
	"github.com/seojin/tastemap/internal/pkg/ws"
)

// Services holds all the service instances
type Services struct {
	AuthService           AuthService
	GuildService          GuildService
	GuildRecordService    GuildRecordService
	GuildMissionService   GuildMissionService
	NotificationService   NotificationService
	StayService           StayService
	TasteService          TasteService
	RecommendationService RecommendationService
	FileService           FileService
}

// Dependencies carries everything the services need beyond repositories
type Dependencies struct {
	Pool        *pgxpool.Pool
	Sessions    *session.Manager
	Storage     filestorage.FileStorage
	KakaoClient *kakao.Client
	Producer    *events.Producer
	Hub         *ws.Hub
	Logger      zerolog.Logger
}

// NewServices wires all services with their repositories
func NewServices(repos *repositories.Repositories, deps Dependencies) *Services {
	notificationService := NewNotificationService(repos.NotificationRepository, deps.Hub, deps.Logger)

	return &Services{
		AuthService: NewAuthService(repos.UserRepository, deps.Sessions, deps.Logger),
		GuildService: NewGuildService(
			deps.Pool,
			repos.GuildRepository,
			repos.MembershipRepository,
			repos.UserRepository,
			notificationService,
			deps.Producer,
			deps.Logger,
		),
		GuildRecordService: NewGuildRecordService(
			deps.Pool,
			repos.GuildRecordRepository,
			repos.CommentRepository,
			repos.GuildRepository,
			repos.MembershipRepository,
			repos.MissionRepository,
			repos.UserRepository,
			notificationService,
			deps.Producer,
			deps.Logger,
		),
		GuildMissionService: NewGuildMissionService(
			deps.Pool,
			repos.MissionRepository,
			repos.GuildRepository,
			repos.MembershipRepository,
			deps.Logger,
		),
		NotificationService:   notificationService,
		StayService:           NewStayService(repos.StayRepository, deps.Logger),
		TasteService:          NewTasteService(repos.TasteRecordRepository, deps.Logger),
		RecommendationService: NewRecommendationService(repos.StayRepository, deps.KakaoClient, deps.Logger),
		FileService:           NewFileService(repos.FileRepository, deps.Storage, deps.Logger),
	}
}
