package sqlstore

import (
	"context"
	"database/sql"
	"fmt"

	"dashboard/internal/models"
)

// CreateNotification stores a message for one user.
func (s *Store) CreateNotification(ctx context.Context, n models.Notification) (models.Notification, error) {
	id, err := s.insert(ctx, `INSERT INTO notifications(user_id, message, task_id) VALUES(?, ?, ?)`, n.UserID, n.Message, nullInt64(n.TaskID))
	if err != nil {
		return models.Notification{}, fmt.Errorf("insert notification: %w", err)
	}
	n.ID = id
	return n, nil
}

// ListNotifications returns the user's notifications, newest first.
func (s *Store) ListNotifications(ctx context.Context, userID int64) ([]models.Notification, error) {
	rows, err := s.query(ctx, `SELECT id, user_id, message, task_id, created_at FROM notifications WHERE user_id = ? ORDER BY id DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	defer rows.Close()

	out := []models.Notification{}
	for rows.Next() {
		var (
			n      models.Notification
			taskID sql.NullInt64
		)
		if err := rows.Scan(&n.ID, &n.UserID, &n.Message, &taskID, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan notification: %w", err)
		}
		n.TaskID = int64Ptr(taskID)
		out = append(out, n)
	}
	return out, rows.Err()
}

// DeleteNotification removes a notification only when it belongs to userID.
func (s *Store) DeleteNotification(ctx context.Context, userID, id int64) error {
	res, err := s.exec(ctx, `DELETE FROM notifications WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("delete notification: %w", err)
	}
	return expectAffected(res, "notification")
}
