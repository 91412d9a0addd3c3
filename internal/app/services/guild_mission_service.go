package services

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/seojin/tastemap/internal/app/models"
	"github.com/seojin/tastemap/internal/app/models/dto"
	"github.com/seojin/tastemap/internal/app/repositories"
	"github.com/seojin/tastemap/internal/db"
	"github.com/seojin/tastemap/internal/pkg/apperrors"
)

// GuildMissionService defines the interface for guild mission operations
type GuildMissionService interface {
	CreateMission(ctx context.Context, guildID, callerID int64, req *dto.CreateMissionRequest) (*dto.MissionResponse, error)
	GetMissions(ctx context.Context, guildID, callerID int64) ([]dto.MissionResponse, error)
	GetMissionByID(ctx context.Context, guildID, missionID, callerID int64) (*dto.MissionResponse, []dto.MissionParticipantResponse, error)
	JoinMission(ctx context.Context, guildID, missionID, userID int64) error
}

// guildMissionServiceImpl implements GuildMissionService
type guildMissionServiceImpl struct {
	pool           *pgxpool.Pool
	missionRepo    *repositories.MissionRepository
	guildRepo      *repositories.GuildRepository
	membershipRepo *repositories.MembershipRepository
	logger         zerolog.Logger
}

// NewGuildMissionService creates a new GuildMissionService
func NewGuildMissionService(
	pool *pgxpool.Pool,
	missionRepo *repositories.MissionRepository,
	guildRepo *repositories.GuildRepository,
	membershipRepo *repositories.MembershipRepository,
	logger zerolog.Logger,
) GuildMissionService {
	return &guildMissionServiceImpl{
		pool:           pool,
		missionRepo:    missionRepo,
		guildRepo:      guildRepo,
		membershipRepo: membershipRepo,
		logger:         logger,
	}
}

// CreateMission creates a mission. Only the guild owner may create one.
func (s *guildMissionServiceImpl) CreateMission(ctx context.Context, guildID, callerID int64, req *dto.CreateMissionRequest) (*dto.MissionResponse, error) {
	guild, err := s.guildRepo.GetGuildByID(ctx, guildID)
	if err != nil {
		return nil, err
	}
	if guild.OwnerID != callerID {
		return nil, apperrors.ErrPermissionDenied
	}
	if !req.EndsAt.After(req.StartsAt) {
		return nil, apperrors.NewBadRequestError("mission end must be after its start")
	}

	mission := &models.GuildMission{
		GuildID:         guildID,
		Title:           req.Title,
		Description:     req.Description,
		TargetCount:     req.TargetCount,
		MaxParticipants: req.MaxParticipants,
		StartsAt:        req.StartsAt,
		EndsAt:          req.EndsAt,
	}
	if _, err := s.missionRepo.CreateMission(ctx, mission); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("guildID", guildID).Int64("missionID", mission.ID).Msg("Mission created")

	return mapMissionToResponse(mission, 0, nil), nil
}

// GetMissions lists a guild's missions with the caller's own progress
func (s *guildMissionServiceImpl) GetMissions(ctx context.Context, guildID, callerID int64) ([]dto.MissionResponse, error) {
	if err := s.requireApprovedMember(ctx, guildID, callerID); err != nil {
		return nil, err
	}

	missions, err := s.missionRepo.GetMissionsByGuildID(ctx, guildID)
	if err != nil {
		return nil, err
	}

	missionIDs := make([]int64, 0, len(missions))
	for _, m := range missions {
		missionIDs = append(missionIDs, m.ID)
	}
	counts, err := s.missionRepo.GetParticipantCountsByMissionIDs(ctx, missionIDs)
	if err != nil {
		return nil, err
	}
	participations, err := s.missionRepo.GetUserParticipationsByGuildID(ctx, guildID, callerID)
	if err != nil {
		return nil, err
	}

	items := make([]dto.MissionResponse, 0, len(missions))
	for _, m := range missions {
		items = append(items, *mapMissionToResponse(m, counts[m.ID], participations[m.ID]))
	}

	return items, nil
}

// GetMissionByID returns one mission with its participant progress board
func (s *guildMissionServiceImpl) GetMissionByID(ctx context.Context, guildID, missionID, callerID int64) (*dto.MissionResponse, []dto.MissionParticipantResponse, error) {
	if err := s.requireApprovedMember(ctx, guildID, callerID); err != nil {
		return nil, nil, err
	}

	mission, err := s.getMissionInGuild(ctx, guildID, missionID)
	if err != nil {
		return nil, nil, err
	}

	participants, err := s.missionRepo.GetParticipantsByMissionID(ctx, missionID)
	if err != nil {
		return nil, nil, err
	}

	var mine *models.MissionParticipant
	board := make([]dto.MissionParticipantResponse, 0, len(participants))
	for _, p := range participants {
		if p.UserID == callerID {
			mine = p
		}
		row := dto.MissionParticipantResponse{
			UserID:      p.UserID,
			RecordCount: p.RecordCount,
			CompletedAt: p.CompletedAt,
			JoinedAt:    p.JoinedAt,
		}
		if p.User != nil {
			row.Nickname = p.User.Nickname
		}
		board = append(board, row)
	}

	return mapMissionToResponse(mission, len(participants), mine), board, nil
}

// JoinMission enrolls the caller in a mission. The mission row is locked so
// concurrent joins cannot exceed the participant cap.
func (s *guildMissionServiceImpl) JoinMission(ctx context.Context, guildID, missionID, userID int64) error {
	if err := s.requireApprovedMember(ctx, guildID, userID); err != nil {
		return err
	}

	return db.WithTransaction(ctx, s.pool, func(ctx context.Context, tx pgx.Tx) error {
		mission, err := s.missionRepo.GetMissionForUpdate(ctx, tx, missionID)
		if err != nil {
			return err
		}
		if mission.GuildID != guildID {
			return apperrors.ErrMissionNotFound
		}
		if time.Now().After(mission.EndsAt) {
			return apperrors.ErrMissionClosed
		}

		count, err := s.missionRepo.CountParticipants(ctx, tx, missionID)
		if err != nil {
			return err
		}
		if count >= mission.MaxParticipants {
			return apperrors.ErrMissionFull
		}

		participant := &models.MissionParticipant{
			MissionID: missionID,
			UserID:    userID,
		}
		_, err = s.missionRepo.AddParticipant(ctx, tx, participant)
		return err
	})
}

func (s *guildMissionServiceImpl) requireApprovedMember(ctx context.Context, guildID, userID int64) error {
	if _, err := s.guildRepo.GetGuildByID(ctx, guildID); err != nil {
		return err
	}

	isMember, err := s.membershipRepo.IsApprovedMember(ctx, guildID, userID)
	if err != nil {
		return err
	}
	if !isMember {
		return apperrors.ErrNotGuildMember
	}
	return nil
}

func (s *guildMissionServiceImpl) getMissionInGuild(ctx context.Context, guildID, missionID int64) (*models.GuildMission, error) {
	mission, err := s.missionRepo.GetMissionByID(ctx, missionID)
	if err != nil {
		return nil, err
	}
	if mission.GuildID != guildID {
		return nil, apperrors.ErrMissionNotFound
	}
	return mission, nil
}

func mapMissionToResponse(mission *models.GuildMission, participantCount int, mine *models.MissionParticipant) *dto.MissionResponse {
	resp := &dto.MissionResponse{
		ID:               mission.ID,
		GuildID:          mission.GuildID,
		Title:            mission.Title,
		Description:      mission.Description,
		TargetCount:      mission.TargetCount,
		MaxParticipants:  mission.MaxParticipants,
		ParticipantCount: participantCount,
		StartsAt:         mission.StartsAt,
		EndsAt:           mission.EndsAt,
	}
	if mine != nil {
		resp.Joined = true
		resp.MyRecordCount = mine.RecordCount
		resp.CompletedAt = mine.CompletedAt
	}
	return resp
}
