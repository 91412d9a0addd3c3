package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Querier is the subset of pgxpool.Pool and pgx.Tx the repositories use.
// Methods that must run inside a caller-managed transaction take a Querier
// so the service layer can pass its pgx.Tx.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository         *UserRepository
	GuildRepository        *GuildRepository
	MembershipRepository   *MembershipRepository
	GuildRecordRepository  *GuildRecordRepository
	CommentRepository      *CommentRepository
	MissionRepository      *MissionRepository
	NotificationRepository *NotificationRepository
	StayRepository         *StayRepository
	TasteRecordRepository  *TasteRecordRepository
	FileRepository         *FileRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:         NewUserRepository(db),
		GuildRepository:        NewGuildRepository(db),
		MembershipRepository:   NewMembershipRepository(db),
		GuildRecordRepository:  NewGuildRecordRepository(db),
		CommentRepository:      NewCommentRepository(db),
		MissionRepository:      NewMissionRepository(db),
		NotificationRepository: NewNotificationRepository(db),
		StayRepository:         NewStayRepository(db),
		TasteRecordRepository:  NewTasteRecordRepository(db),
		FileRepository:         NewFileRepository(db),
	}
}
