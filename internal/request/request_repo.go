package request

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=request_repo.go -destination=mock/request_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, l *LeaveRequest) error
	FindByID(ctx context.Context, id uuid.UUID) (*LeaveRequest, error)
	Update(ctx context.Context, l *LeaveRequest) error
	FindByUser(ctx context.Context, userID uuid.UUID, statuses []string) ([]LeaveRequest, error)
	FindOverlapping(ctx context.Context, userID uuid.UUID, start, end time.Time, statuses []string) ([]LeaveRequest, error)
	FindByApprover(ctx context.Context, approverID uuid.UUID, status string) ([]LeaveRequest, error)
	FindByStatus(ctx context.Context, status string) ([]LeaveRequest, error)
	FindByStartDate(ctx context.Context, date time.Time, status string) ([]LeaveRequest, error)
	SumApprovedDays(ctx context.Context, userID uuid.UUID, category, name string) (int, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

// conn routes statements through the bound *sql.Tx when one is present, so
// repository writes and raw-SQL outbox inserts commit together.
func (r *repository) conn(ctx context.Context) *gorm.DB {
	db := r.db.WithContext(ctx)
	if r.tx != nil {
		db = db.Session(&gorm.Session{NewDB: true, Context: ctx})
		db.Statement.ConnPool = r.tx
	}
	return db
}

func (r *repository) Create(ctx context.Context, l *LeaveRequest) error {
	return r.conn(ctx).Create(l).Error
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*LeaveRequest, error) {
	var l LeaveRequest
	err := r.conn(ctx).First(&l, "id = ?", id).Error
	return &l, err
}

func (r *repository) Update(ctx context.Context, l *LeaveRequest) error {
	return r.conn(ctx).Save(l).Error
}

func (r *repository) FindByUser(ctx context.Context, userID uuid.UUID, statuses []string) ([]LeaveRequest, error) {
	q := r.conn(ctx).
		Where("user_id = ?", userID)
	if len(statuses) > 0 {
		q = q.Where("status IN ?", statuses)
	}

	var requests []LeaveRequest
	err := q.Order("start_date DESC").Find(&requests).Error
	return requests, err
}

// FindOverlapping implements the inclusive interval-intersection test:
// existing.start <= end AND existing.end >= start.
func (r *repository) FindOverlapping(ctx context.Context, userID uuid.UUID, start, end time.Time, statuses []string) ([]LeaveRequest, error) {
	var requests []LeaveRequest
	err := r.conn(ctx).
		Where("user_id = ?", userID).
		Where("status IN ?", statuses).
		Where("start_date <= ?", end).
		Where("end_date >= ?", start).
		Order("start_date ASC").
		Find(&requests).Error
	return requests, err
}

func (r *repository) FindByApprover(ctx context.Context, approverID uuid.UUID, status string) ([]LeaveRequest, error) {
	var requests []LeaveRequest
	err := r.conn(ctx).
		Where("approver_id = ?", approverID).
		Where("status = ?", status).
		Order("start_date ASC").
		Find(&requests).Error
	return requests, err
}

func (r *repository) FindByStatus(ctx context.Context, status string) ([]LeaveRequest, error) {
	var requests []LeaveRequest
	err := r.conn(ctx).
		Where("status = ?", status).
		Order("start_date ASC").
		Find(&requests).Error
	return requests, err
}

func (r *repository) FindByStartDate(ctx context.Context, date time.Time, status string) ([]LeaveRequest, error) {
	var requests []LeaveRequest
	err := r.conn(ctx).
		Where("start_date = ?", date).
		Where("status = ?", status).
		Find(&requests).Error
	return requests, err
}

func (r *repository) SumApprovedDays(ctx context.Context, userID uuid.UUID, category, name string) (int, error) {
	var total sql.NullInt64
	err := r.conn(ctx).
		Model(&LeaveRequest{}).
		Select("SUM(days_count)").
		Where("user_id = ?", userID).
		Where("category = ?", category).
		Where("type = ?", name).
		Where("status = ?", StatusApproved).
		Scan(&total).Error
	if err != nil {
		return 0, err
	}
	return int(total.Int64), nil
}
