package repository

import (
	"context"
	"time"

	"github.com/tjorim/rota-backend/internal/domain"
)

func (r *Repository) CreateTimeOffRecord(record *domain.TimeOffRecord) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	query := `
		INSERT INTO time_off_records (user_id, start_date, end_date, type, remark)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, version
	`

	args := []any{record.UserID, record.StartDate, record.EndDate, record.Type, record.Remark}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&record.ID, &record.CreatedAt, &record.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetTimeOffRecordByID(id int64) (*domain.TimeOffRecord, error) {
	query := `
		SELECT user_id, start_date, end_date, type, remark, created_at, version
		FROM time_off_records WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	record := &domain.TimeOffRecord{
		ID: id,
	}

	dst := []any{&record.UserID, &record.StartDate, &record.EndDate, &record.Type, &record.Remark, &record.CreatedAt, &record.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return record, nil
}

// GetTimeOffRecordsInRange 返回某个用户与 [startDate, endDate] 有交集的所有请假记录，按开始日期升序
func (r *Repository) GetTimeOffRecordsInRange(userID int64, startDate, endDate time.Time) ([]*domain.TimeOffRecord, error) {
	query := `
		SELECT id, start_date, end_date, type, remark, created_at, version
		FROM time_off_records
		WHERE user_id = $1 AND start_date <= $3 AND end_date >= $2
		ORDER BY start_date
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, userID, startDate, endDate)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]*domain.TimeOffRecord, 0)
	for rows.Next() {
		record := &domain.TimeOffRecord{
			UserID: userID,
		}
		dst := []any{&record.ID, &record.StartDate, &record.EndDate, &record.Type, &record.Remark, &record.CreatedAt, &record.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}

func (r *Repository) GetAllTimeOffRecordsByUser(userID int64) ([]*domain.TimeOffRecord, error) {
	query := `
		SELECT id, start_date, end_date, type, remark, created_at, version
		FROM time_off_records
		WHERE user_id = $1
		ORDER BY start_date DESC
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]*domain.TimeOffRecord, 0)
	for rows.Next() {
		record := &domain.TimeOffRecord{
			UserID: userID,
		}
		dst := []any{&record.ID, &record.StartDate, &record.EndDate, &record.Type, &record.Remark, &record.CreatedAt, &record.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}

func (r *Repository) UpdateTimeOffRecord(record *domain.TimeOffRecord) error {
	query := `
		UPDATE time_off_records
		SET
			start_date = $1,
			end_date = $2,
			type = $3,
			remark = $4,
			version = version + 1
		WHERE id = $5 AND version = $6
		RETURNING version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{record.StartDate, record.EndDate, record.Type, record.Remark, record.ID, record.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&record.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) DeleteTimeOffRecord(id int64) error {
	query := `
		DELETE FROM time_off_records WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	_, err := r.dbpool.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	return nil
}
