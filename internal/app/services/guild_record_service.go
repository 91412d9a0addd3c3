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

// Guild score awards
const (
	scoreRecordCreated    = 10
	scoreMissionCompleted = 50
)

// GuildRecordService defines the interface for guild record and comment operations
type GuildRecordService interface {
	CreateRecord(ctx context.Context, guildID, authorID int64, req *dto.CreateGuildRecordRequest) (*dto.GuildRecordResponse, error)
	GetRecords(ctx context.Context, guildID, callerID int64, page, size int) (*dto.GuildRecordListResponse, error)
	GetRecordByID(ctx context.Context, guildID, recordID, callerID int64) (*dto.GuildRecordResponse, error)
	DeleteRecord(ctx context.Context, guildID, recordID, callerID int64) error
	CreateComment(ctx context.Context, guildID, recordID, authorID int64, req *dto.CreateCommentRequest) (*dto.CommentResponse, error)
	GetComments(ctx context.Context, guildID, recordID, callerID int64) ([]dto.CommentResponse, error)
	DeleteComment(ctx context.Context, guildID, recordID, commentID, callerID int64) error
}

// guildRecordServiceImpl implements GuildRecordService
type guildRecordServiceImpl struct {
	pool           *pgxpool.Pool
	recordRepo     *repositories.GuildRecordRepository
	commentRepo    *repositories.CommentRepository
	guildRepo      *repositories.GuildRepository
	membershipRepo *repositories.MembershipRepository
	missionRepo    *repositories.MissionRepository
	userRepo       *repositories.UserRepository
	notifications  NotificationService
	producer       *events.Producer
	logger         zerolog.Logger
}

// NewGuildRecordService creates a new GuildRecordService
func NewGuildRecordService(
	pool *pgxpool.Pool,
	recordRepo *repositories.GuildRecordRepository,
	commentRepo *repositories.CommentRepository,
	guildRepo *repositories.GuildRepository,
	membershipRepo *repositories.MembershipRepository,
	missionRepo *repositories.MissionRepository,
	userRepo *repositories.UserRepository,
	notifications NotificationService,
	producer *events.Producer,
	logger zerolog.Logger,
) GuildRecordService {
	return &guildRecordServiceImpl{
		pool:           pool,
		recordRepo:     recordRepo,
		commentRepo:    commentRepo,
		guildRepo:      guildRepo,
		membershipRepo: membershipRepo,
		missionRepo:    missionRepo,
		userRepo:       userRepo,
		notifications:  notifications,
		producer:       producer,
		logger:         logger,
	}
}

// CreateRecord creates a guild record. The insert, the guild score award
// and the author's mission progress move in one transaction; notifications
// and events go out only after it commits.
func (s *guildRecordServiceImpl) CreateRecord(ctx context.Context, guildID, authorID int64, req *dto.CreateGuildRecordRequest) (*dto.GuildRecordResponse, error) {
	if err := s.requireApprovedMember(ctx, guildID, authorID); err != nil {
		return nil, err
	}

	record := &models.GuildRecord{
		GuildID:   guildID,
		AuthorID:  authorID,
		Title:     req.Title,
		Content:   req.Content,
		ImageURL:  req.ImageURL,
		PlaceName: req.PlaceName,
	}

	var completed []repositories.CompletedMission
	err := db.WithTransaction(ctx, s.pool, func(ctx context.Context, tx pgx.Tx) error {
		if _, err := s.recordRepo.CreateRecord(ctx, tx, record); err != nil {
			return err
		}

		if err := s.guildRepo.IncrementScore(ctx, tx, guildID, scoreRecordCreated); err != nil {
			return err
		}

		var err error
		completed, err = s.missionRepo.IncrementProgress(ctx, tx, guildID, authorID, time.Now())
		if err != nil {
			return err
		}

		if len(completed) > 0 {
			bonus := int64(len(completed)) * scoreMissionCompleted
			if err := s.guildRepo.IncrementScore(ctx, tx, guildID, bonus); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.producer.Publish(ctx, events.GuildActivity{
		Type:      events.TypeRecordCreated,
		GuildID:   guildID,
		UserID:    authorID,
		RefID:     record.ID,
		Timestamp: time.Now().UTC(),
	})

	for _, mission := range completed {
		s.notifications.Notify(ctx, nil, authorID, &guildID, models.NotificationMissionCompleted,
			fmt.Sprintf("You completed the mission %s", mission.Title))
		s.producer.Publish(ctx, events.GuildActivity{
			Type:      events.TypeMissionCompleted,
			GuildID:   guildID,
			UserID:    authorID,
			RefID:     mission.MissionID,
			Timestamp: time.Now().UTC(),
		})
	}

	author, err := s.userRepo.GetUserByID(ctx, authorID)
	if err != nil {
		return nil, err
	}
	record.Author = author

	return mapRecordToResponse(record, 0), nil
}

// GetRecords lists a guild's records for an approved member
func (s *guildRecordServiceImpl) GetRecords(ctx context.Context, guildID, callerID int64, page, size int) (*dto.GuildRecordListResponse, error) {
	if err := s.requireApprovedMember(ctx, guildID, callerID); err != nil {
		return nil, err
	}

	offset, limit := helpers.CalculateOffsetLimit(page, size)
	records, total, err := s.recordRepo.GetRecordsByGuildID(ctx, guildID, int(offset), limit)
	if err != nil {
		return nil, err
	}

	recordIDs := make([]int64, 0, len(records))
	for _, r := range records {
		recordIDs = append(recordIDs, r.ID)
	}
	commentCounts, err := s.commentRepo.GetCommentCountsByRecordIDs(ctx, recordIDs)
	if err != nil {
		return nil, err
	}

	items := make([]dto.GuildRecordResponse, 0, len(records))
	for _, r := range records {
		items = append(items, *mapRecordToResponse(r, commentCounts[r.ID]))
	}

	return &dto.GuildRecordListResponse{
		Records:        items,
		PaginationInfo: helpers.NewPaginationInfo(int64(total), page, limit),
	}, nil
}

// GetRecordByID returns a single record for an approved member
func (s *guildRecordServiceImpl) GetRecordByID(ctx context.Context, guildID, recordID, callerID int64) (*dto.GuildRecordResponse, error) {
	if err := s.requireApprovedMember(ctx, guildID, callerID); err != nil {
		return nil, err
	}

	record, err := s.getRecordInGuild(ctx, guildID, recordID)
	if err != nil {
		return nil, err
	}

	counts, err := s.commentRepo.GetCommentCountsByRecordIDs(ctx, []int64{recordID})
	if err != nil {
		return nil, err
	}

	return mapRecordToResponse(record, counts[recordID]), nil
}

// DeleteRecord removes a record. Only the author may delete it.
func (s *guildRecordServiceImpl) DeleteRecord(ctx context.Context, guildID, recordID, callerID int64) error {
	record, err := s.getRecordInGuild(ctx, guildID, recordID)
	if err != nil {
		return err
	}
	if record.AuthorID != callerID {
		return apperrors.ErrPermissionDenied
	}

	return s.recordRepo.DeleteRecord(ctx, recordID)
}

// CreateComment adds a comment to a record and notifies its author
func (s *guildRecordServiceImpl) CreateComment(ctx context.Context, guildID, recordID, authorID int64, req *dto.CreateCommentRequest) (*dto.CommentResponse, error) {
	if err := s.requireApprovedMember(ctx, guildID, authorID); err != nil {
		return nil, err
	}

	record, err := s.getRecordInGuild(ctx, guildID, recordID)
	if err != nil {
		return nil, err
	}

	comment := &models.GuildRecordComment{
		RecordID: recordID,
		AuthorID: authorID,
		Content:  req.Content,
	}
	if _, err := s.commentRepo.CreateComment(ctx, comment); err != nil {
		return nil, err
	}

	author, err := s.userRepo.GetUserByID(ctx, authorID)
	if err != nil {
		return nil, err
	}
	comment.Author = author

	if record.AuthorID != authorID {
		s.notifications.Notify(ctx, nil, record.AuthorID, &guildID, models.NotificationNewComment,
			fmt.Sprintf("%s commented on %s", author.Nickname, record.Title))
	}

	return mapCommentToResponse(comment), nil
}

// GetComments lists a record's comments for an approved member
func (s *guildRecordServiceImpl) GetComments(ctx context.Context, guildID, recordID, callerID int64) ([]dto.CommentResponse, error) {
	if err := s.requireApprovedMember(ctx, guildID, callerID); err != nil {
		return nil, err
	}

	if _, err := s.getRecordInGuild(ctx, guildID, recordID); err != nil {
		return nil, err
	}

	comments, err := s.commentRepo.GetCommentsByRecordID(ctx, recordID)
	if err != nil {
		return nil, err
	}

	items := make([]dto.CommentResponse, 0, len(comments))
	for _, c := range comments {
		items = append(items, *mapCommentToResponse(c))
	}

	return items, nil
}

// DeleteComment removes a comment. Only its author may delete it.
func (s *guildRecordServiceImpl) DeleteComment(ctx context.Context, guildID, recordID, commentID, callerID int64) error {
	if _, err := s.getRecordInGuild(ctx, guildID, recordID); err != nil {
		return err
	}

	comment, err := s.commentRepo.GetCommentByID(ctx, commentID)
	if err != nil {
		return err
	}
	if comment.RecordID != recordID {
		return apperrors.ErrCommentNotFound
	}
	if comment.AuthorID != callerID {
		return apperrors.ErrPermissionDenied
	}

	return s.commentRepo.DeleteComment(ctx, commentID)
}

func (s *guildRecordServiceImpl) requireApprovedMember(ctx context.Context, guildID, userID int64) error {
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

func (s *guildRecordServiceImpl) getRecordInGuild(ctx context.Context, guildID, recordID int64) (*models.GuildRecord, error) {
	record, err := s.recordRepo.GetRecordByID(ctx, recordID)
	if err != nil {
		return nil, err
	}
	if record.GuildID != guildID {
		return nil, apperrors.ErrRecordNotFound
	}
	return record, nil
}

func mapRecordToResponse(record *models.GuildRecord, commentCount int) *dto.GuildRecordResponse {
	return &dto.GuildRecordResponse{
		ID:           record.ID,
		GuildID:      record.GuildID,
		Title:        record.Title,
		Content:      record.Content,
		ImageURL:     record.ImageURL,
		PlaceName:    record.PlaceName,
		Author:       mapUserToBasic(record.Author),
		CommentCount: commentCount,
		CreatedAt:    record.CreatedAt,
	}
}

func mapCommentToResponse(comment *models.GuildRecordComment) *dto.CommentResponse {
	return &dto.CommentResponse{
		ID:        comment.ID,
		RecordID:  comment.RecordID,
		Content:   comment.Content,
		Author:    mapUserToBasic(comment.Author),
		CreatedAt: comment.CreatedAt,
	}
}
