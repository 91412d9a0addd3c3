package services

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/seojin/tastemap/internal/app/models"
	"github.com/seojin/tastemap/internal/app/models/dto"
	"github.com/seojin/tastemap/internal/app/repositories"
	"github.com/seojin/tastemap/internal/db"
	"github.com/seojin/tastemap/internal/pkg/apperrors"
	"github.com/seojin/tastemap/internal/pkg/events"
	"github.com/seojin/tastemap/internal/pkg/helpers"
)

const guildRankingLimit = 20

// GuildService defines the interface for guild operations
type GuildService interface {
	CreateGuild(ctx context.Context, ownerID int64, req *dto.CreateGuildRequest) (*dto.GuildResponse, error)
	GetGuilds(ctx context.Context, search string, page, size int) (*dto.GuildListResponse, error)
	GetGuildByID(ctx context.Context, id int64) (*dto.GuildResponse, error)
	UpdateGuild(ctx context.Context, guildID, callerID int64, req *dto.UpdateGuildRequest) (*dto.GuildResponse, error)
	DeleteGuild(ctx context.Context, guildID, callerID int64) error
	JoinGuild(ctx context.Context, guildID, userID int64) error
	ApproveMember(ctx context.Context, guildID, callerID, memberID int64) error
	RejectMember(ctx context.Context, guildID, callerID, memberID int64) error
	LeaveGuild(ctx context.Context, guildID, userID int64) error
	GetMembers(ctx context.Context, guildID, callerID int64) ([]dto.GuildMemberResponse, error)
	GetRanking(ctx context.Context) ([]dto.GuildRankingEntry, error)
}

// guildServiceImpl implements GuildService
type guildServiceImpl struct {
	pool           *pgxpool.Pool
	guildRepo      *repositories.GuildRepository
	membershipRepo *repositories.MembershipRepository
	userRepo       *repositories.UserRepository
	notifications  NotificationService
	producer       *events.Producer
	logger         zerolog.Logger
}

// NewGuildService creates a new GuildService
func NewGuildService(
	pool *pgxpool.Pool,
	guildRepo *repositories.GuildRepository,
	membershipRepo *repositories.MembershipRepository,
	userRepo *repositories.UserRepository,
	notifications NotificationService,
	producer *events.Producer,
	logger zerolog.Logger,
) GuildService {
	return &guildServiceImpl{
		pool:           pool,
		guildRepo:      guildRepo,
		membershipRepo: membershipRepo,
		userRepo:       userRepo,
		notifications:  notifications,
		producer:       producer,
		logger:         logger,
	}
}

// CreateGuild creates a guild with the caller as its approved owner.
// Guild, owner membership and score row are created in one transaction.
func (s *guildServiceImpl) CreateGuild(ctx context.Context, ownerID int64, req *dto.CreateGuildRequest) (*dto.GuildResponse, error) {
	guild := &models.Guild{
		Name:          req.Name,
		Description:   req.Description,
		OwnerID:       ownerID,
		CoverImageURL: req.CoverImage,
	}

	err := db.WithTransaction(ctx, s.pool, func(ctx context.Context, tx pgx.Tx) error {
		if _, err := s.guildRepo.CreateGuild(ctx, tx, guild); err != nil {
			return err
		}

		membership := &models.GuildMembership{
			GuildID: guild.ID,
			UserID:  ownerID,
			Status:  models.MembershipApproved,
		}
		if _, err := s.membershipRepo.CreateMembership(ctx, tx, membership); err != nil {
			return err
		}

		return s.guildRepo.InitScore(ctx, tx, guild.ID)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("guildID", guild.ID).Int64("ownerID", ownerID).Msg("Guild created")

	owner, err := s.userRepo.GetUserByID(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	guild.Owner = owner

	return s.mapGuildToResponse(guild, 1, 0), nil
}

// GetGuilds lists guilds with optional name search
func (s *guildServiceImpl) GetGuilds(ctx context.Context, search string, page, size int) (*dto.GuildListResponse, error) {
	offset, limit := helpers.CalculateOffsetLimit(page, size)

	guilds, total, err := s.guildRepo.GetGuilds(ctx, search, int(offset), limit)
	if err != nil {
		return nil, err
	}

	guildIDs := make([]int64, 0, len(guilds))
	ownerIDs := make([]int64, 0, len(guilds))
	for _, g := range guilds {
		guildIDs = append(guildIDs, g.ID)
		ownerIDs = append(ownerIDs, g.OwnerID)
	}

	memberCounts, err := s.membershipRepo.GetApprovedCountsByGuildIDs(ctx, guildIDs)
	if err != nil {
		return nil, err
	}
	scores, err := s.guildRepo.GetScoresByGuildIDs(ctx, guildIDs)
	if err != nil {
		return nil, err
	}
	owners, err := s.userRepo.GetUsersByIDs(ctx, ownerIDs)
	if err != nil {
		return nil, err
	}

	items := make([]dto.GuildResponse, 0, len(guilds))
	for _, g := range guilds {
		g.Owner = owners[g.OwnerID]
		items = append(items, *s.mapGuildToResponse(g, memberCounts[g.ID], scores[g.ID]))
	}

	return &dto.GuildListResponse{
		Guilds:         items,
		PaginationInfo: helpers.NewPaginationInfo(int64(total), page, limit),
	}, nil
}

// GetGuildByID returns a single guild with member count and score
func (s *guildServiceImpl) GetGuildByID(ctx context.Context, id int64) (*dto.GuildResponse, error) {
	guild, err := s.guildRepo.GetGuildByID(ctx, id)
	if err != nil {
		return nil, err
	}

	counts, err := s.membershipRepo.GetApprovedCountsByGuildIDs(ctx, []int64{id})
	if err != nil {
		return nil, err
	}
	score, err := s.guildRepo.GetScore(ctx, id)
	if err != nil {
		return nil, err
	}
	owner, err := s.userRepo.GetUserByID(ctx, guild.OwnerID)
	if err != nil {
		return nil, err
	}
	guild.Owner = owner

	return s.mapGuildToResponse(guild, counts[id], score), nil
}

// UpdateGuild changes a guild's details. Only the owner may update.
func (s *guildServiceImpl) UpdateGuild(ctx context.Context, guildID, callerID int64, req *dto.UpdateGuildRequest) (*dto.GuildResponse, error) {
	guild, err := s.guildRepo.GetGuildByID(ctx, guildID)
	if err != nil {
		return nil, err
	}
	if guild.OwnerID != callerID {
		return nil, apperrors.ErrPermissionDenied
	}

	if req.Name != nil {
		guild.Name = *req.Name
	}
	if req.Description != nil {
		guild.Description = *req.Description
	}
	if req.CoverImage != nil {
		guild.CoverImageURL = req.CoverImage
	}

	if err := s.guildRepo.UpdateGuild(ctx, guild); err != nil {
		return nil, err
	}

	return s.GetGuildByID(ctx, guildID)
}

// DeleteGuild removes a guild. Only the owner may delete.
func (s *guildServiceImpl) DeleteGuild(ctx context.Context, guildID, callerID int64) error {
	guild, err := s.guildRepo.GetGuildByID(ctx, guildID)
	if err != nil {
		return err
	}
	if guild.OwnerID != callerID {
		return apperrors.ErrPermissionDenied
	}

	if err := s.guildRepo.DeleteGuild(ctx, guildID); err != nil {
		return err
	}

	s.logger.Info().Int64("guildID", guildID).Msg("Guild deleted")
	return nil
}

// JoinGuild files a pending membership request and notifies the owner
func (s *guildServiceImpl) JoinGuild(ctx context.Context, guildID, userID int64) error {
	guild, err := s.guildRepo.GetGuildByID(ctx, guildID)
	if err != nil {
		return err
	}

	membership := &models.GuildMembership{
		GuildID: guildID,
		UserID:  userID,
		Status:  models.MembershipPending,
	}
	if _, err := s.membershipRepo.CreateMembership(ctx, s.pool, membership); err != nil {
		return err
	}

	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}

	s.notifications.Notify(ctx, nil, guild.OwnerID, &guildID, models.NotificationJoinRequest,
		fmt.Sprintf("%s requested to join %s", user.Nickname, guild.Name))

	return nil
}

// ApproveMember approves a pending membership. Only the owner may approve.
func (s *guildServiceImpl) ApproveMember(ctx context.Context, guildID, callerID, memberID int64) error {
	guild, err := s.guildRepo.GetGuildByID(ctx, guildID)
	if err != nil {
		return err
	}
	if guild.OwnerID != callerID {
		return apperrors.ErrPermissionDenied
	}

	membership, err := s.membershipRepo.GetMembership(ctx, guildID, memberID)
	if err != nil {
		return err
	}
	if membership.Status == models.MembershipApproved {
		return apperrors.ErrAlreadyMember
	}

	if err := s.membershipRepo.UpdateMembershipStatus(ctx, membership.ID, models.MembershipApproved); err != nil {
		return err
	}

	s.notifications.Notify(ctx, nil, memberID, &guildID, models.NotificationJoinApproved,
		fmt.Sprintf("Your request to join %s was approved", guild.Name))

	s.producer.Publish(ctx, events.GuildActivity{
		Type:      events.TypeMemberApproved,
		GuildID:   guildID,
		UserID:    memberID,
		Timestamp: time.Now().UTC(),
	})

	return nil
}

// RejectMember removes a member's pending or approved membership. Only the
// owner may reject, and the owner's own membership cannot be removed.
func (s *guildServiceImpl) RejectMember(ctx context.Context, guildID, callerID, memberID int64) error {
	guild, err := s.guildRepo.GetGuildByID(ctx, guildID)
	if err != nil {
		return err
	}
	if guild.OwnerID != callerID {
		return apperrors.ErrPermissionDenied
	}
	if memberID == guild.OwnerID {
		return apperrors.ErrOwnerCannotLeave
	}

	return s.membershipRepo.DeleteMembership(ctx, guildID, memberID)
}

// LeaveGuild removes the caller's membership. The owner cannot leave their
// own guild.
func (s *guildServiceImpl) LeaveGuild(ctx context.Context, guildID, userID int64) error {
	guild, err := s.guildRepo.GetGuildByID(ctx, guildID)
	if err != nil {
		return err
	}
	if guild.OwnerID == userID {
		return apperrors.ErrOwnerCannotLeave
	}

	return s.membershipRepo.DeleteMembership(ctx, guildID, userID)
}

// GetMembers lists a guild's members. Only the owner sees PENDING rows,
// so they can act on requests; non-members may not view the list at all.
func (s *guildServiceImpl) GetMembers(ctx context.Context, guildID, callerID int64) ([]dto.GuildMemberResponse, error) {
	guild, err := s.guildRepo.GetGuildByID(ctx, guildID)
	if err != nil {
		return nil, err
	}

	isMember, err := s.membershipRepo.IsApprovedMember(ctx, guildID, callerID)
	if err != nil {
		return nil, err
	}
	if !isMember {
		return nil, apperrors.ErrNotGuildMember
	}

	memberships, err := s.membershipRepo.GetMembersByGuildID(ctx, guildID, memberListFilter(guild.OwnerID, callerID))
	if err != nil {
		return nil, err
	}

	members := make([]dto.GuildMemberResponse, 0, len(memberships))
	for _, m := range memberships {
		member := dto.GuildMemberResponse{
			UserID:   m.UserID,
			Status:   string(m.Status),
			IsOwner:  m.UserID == guild.OwnerID,
			JoinedAt: m.JoinedAt,
		}
		if m.User != nil {
			member.Nickname = m.User.Nickname
		}
		members = append(members, member)
	}

	return members, nil
}

// GetRanking returns the top guilds ordered by activity score
func (s *guildServiceImpl) GetRanking(ctx context.Context) ([]dto.GuildRankingEntry, error) {
	entries, err := s.guildRepo.GetRanking(ctx, guildRankingLimit)
	if err != nil {
		return nil, err
	}

	guildIDs := make([]int64, 0, len(entries))
	for _, e := range entries {
		guildIDs = append(guildIDs, e.Guild.ID)
	}
	memberCounts, err := s.membershipRepo.GetApprovedCountsByGuildIDs(ctx, guildIDs)
	if err != nil {
		return nil, err
	}

	ranking := make([]dto.GuildRankingEntry, 0, len(entries))
	for i, e := range entries {
		ranking = append(ranking, dto.GuildRankingEntry{
			Rank:        i + 1,
			GuildID:     e.Guild.ID,
			Name:        e.Guild.Name,
			Score:       e.Score,
			MemberCount: memberCounts[e.Guild.ID],
		})
	}

	return ranking, nil
}

// memberListFilter decides which membership rows a caller may see: the
// owner gets everything including PENDING requests, everyone else only
// APPROVED members.
func memberListFilter(ownerID, callerID int64) models.MembershipStatus {
	if callerID == ownerID {
		return ""
	}
	return models.MembershipApproved
}

func (s *guildServiceImpl) mapGuildToResponse(guild *models.Guild, memberCount int, score int64) *dto.GuildResponse {
	return &dto.GuildResponse{
		ID:            guild.ID,
		Name:          guild.Name,
		Description:   guild.Description,
		CoverImageURL: guild.CoverImageURL,
		Owner:         mapUserToBasic(guild.Owner),
		MemberCount:   memberCount,
		Score:         score,
		CreatedAt:     guild.CreatedAt,
	}
}
