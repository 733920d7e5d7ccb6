package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"yesfundme/internal/models"
)

type CampaignRepository struct {
	db *sql.DB
}

func NewCampaignRepository(db *sql.DB) *CampaignRepository {
	return &CampaignRepository{db: db}
}

// Ensure implementation of Campaigns interface at compile time.
var _ Campaigns = (*CampaignRepository)(nil)

const (
	defaultPageLimit = 10
	maxPageLimit     = 50
)

const (
	insertCampaignSQL = `INSERT INTO campaigns (user_id, title, description, goal_amount, image_url, category) VALUES (?, ?, ?, ?, ?, ?)`

	selectCampaignByIDSQL = `
		SELECT c.id, c.user_id, c.title, c.description, c.goal_amount, c.current_amount,
		       COALESCE(c.image_url, ''), c.category, c.status, c.created_at, c.updated_at,
		       u.display_name, COALESCE(u.avatar_url, '')
		FROM campaigns c JOIN users u ON c.user_id = u.id
		WHERE c.id = ?`

	selectCampaignsByUserSQL = `
		SELECT id, user_id, title, description, goal_amount, current_amount,
		       COALESCE(image_url, ''), category, status, created_at, updated_at
		FROM campaigns WHERE user_id = ? ORDER BY created_at DESC`

	setCampaignStatusSQL = `UPDATE campaigns SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`
)

// sortColumns is the allowlist for List ordering; anything else falls back
// to created_at.
var sortColumns = map[string]bool{
	"created_at":     true,
	"goal_amount":    true,
	"current_amount": true,
	"title":          true,
}

// Create inserts a new campaign and returns its ID.
func (r *CampaignRepository) Create(ctx context.Context, c models.Campaign) (int64, error) {
	var image any
	if c.ImageURL != "" {
		image = c.ImageURL
	}
	res, err := r.db.ExecContext(ctx, insertCampaignSQL,
		c.UserID, c.Title, c.Description, c.GoalAmount, image, c.Category)
	if err != nil {
		return 0, fmt.Errorf("insert campaign %q: %w", c.Title, err)
	}
	lastID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get last insert id for campaign %q: %w", c.Title, err)
	}
	return lastID, nil
}

// GetByID fetches a campaign with creator display fields. Returns (nil, nil)
// if not found.
func (r *CampaignRepository) GetByID(ctx context.Context, id int64) (*models.Campaign, error) {
	var c models.Campaign
	err := r.db.QueryRowContext(ctx, selectCampaignByIDSQL, id).Scan(
		&c.ID, &c.UserID, &c.Title, &c.Description, &c.GoalAmount, &c.CurrentAmount,
		&c.ImageURL, &c.Category, &c.Status, &c.CreatedAt, &c.UpdatedAt,
		&c.CreatorName, &c.CreatorAvatar,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select campaign %d: %w", id, err)
	}
	return &c, nil
}

// List returns active campaigns matching the filter plus the total count for
// pagination.
func (r *CampaignRepository) List(ctx context.Context, f CampaignFilter) ([]models.Campaign, int, error) {
	conds := []string{"c.status = ?"}
	args := []any{models.StatusActive}

	if f.Search != "" {
		conds = append(conds, "(c.title LIKE ? OR c.description LIKE ?)")
		pattern := "%" + f.Search + "%"
		args = append(args, pattern, pattern)
	}
	if f.Category != "" && f.Category != "all" {
		conds = append(conds, "c.category = ?")
		args = append(args, f.Category)
	}

	where := " WHERE " + strings.Join(conds, " AND ")

	var total int
	countQ := `SELECT COUNT(*) FROM campaigns c` + where
	if err := r.db.QueryRowContext(ctx, countQ, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count campaigns: %w", err)
	}

	sortCol := f.Sort
	if !sortColumns[sortCol] {
		sortCol = "created_at"
	}
	order := "DESC"
	if strings.EqualFold(f.Order, "asc") {
		order = "ASC"
	}

	limit := f.Limit
	if limit <= 0 || limit > maxPageLimit {
		limit = defaultPageLimit
	}
	page := f.Page
	if page <= 0 {
		page = 1
	}
	offset := (page - 1) * limit

	q := `
		SELECT c.id, c.user_id, c.title, c.description, c.goal_amount, c.current_amount,
		       COALESCE(c.image_url, ''), c.category, c.status, c.created_at, c.updated_at,
		       u.display_name
		FROM campaigns c JOIN users u ON c.user_id = u.id` + where +
		fmt.Sprintf(" ORDER BY c.%s %s LIMIT ? OFFSET ?", sortCol, order)
	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list campaigns: %w", err)
	}
	defer rows.Close()

	out := make([]models.Campaign, 0, limit)
	for rows.Next() {
		var c models.Campaign
		if err := rows.Scan(
			&c.ID, &c.UserID, &c.Title, &c.Description, &c.GoalAmount, &c.CurrentAmount,
			&c.ImageURL, &c.Category, &c.Status, &c.CreatedAt, &c.UpdatedAt, &c.CreatorName,
		); err != nil {
			return nil, 0, fmt.Errorf("scan campaign row: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// ListByUser returns all campaigns owned by a user, newest first.
func (r *CampaignRepository) ListByUser(ctx context.Context, userID int64) ([]models.Campaign, error) {
	rows, err := r.db.QueryContext(ctx, selectCampaignsByUserSQL, userID)
	if err != nil {
		return nil, fmt.Errorf("list campaigns for user %d: %w", userID, err)
	}
	defer rows.Close()

	var out []models.Campaign
	for rows.Next() {
		var c models.Campaign
		if err := rows.Scan(
			&c.ID, &c.UserID, &c.Title, &c.Description, &c.GoalAmount, &c.CurrentAmount,
			&c.ImageURL, &c.Category, &c.Status, &c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan campaign row: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// Update applies the non-nil fields of upd and refreshes updated_at.
func (r *CampaignRepository) Update(ctx context.Context, id int64, upd CampaignUpdate) error {
	var (
		sets []string
		args []any
	)
	add := func(col string, v any) {
		sets = append(sets, col+" = ?")
		args = append(args, v)
	}
	if upd.Title != nil {
		add("title", *upd.Title)
	}
	if upd.Description != nil {
		add("description", *upd.Description)
	}
	if upd.GoalAmount != nil {
		add("goal_amount", *upd.GoalAmount)
	}
	if upd.ImageURL != nil {
		add("image_url", *upd.ImageURL)
	}
	if upd.Category != nil {
		add("category", *upd.Category)
	}
	if upd.Status != nil {
		add("status", *upd.Status)
	}
	if len(sets) == 0 {
		return nil
	}
	sets = append(sets, "updated_at = CURRENT_TIMESTAMP")

	q := "UPDATE campaigns SET " + strings.Join(sets, ", ") + " WHERE id = ?"
	args = append(args, id)

	if _, err := r.db.ExecContext(ctx, q, args...); err != nil {
		return fmt.Errorf("update campaign %d: %w", id, err)
	}
	return nil
}

// SetStatus changes only the campaign status.
func (r *CampaignRepository) SetStatus(ctx context.Context, id int64, status string) error {
	if _, err := r.db.ExecContext(ctx, setCampaignStatusSQL, status, id); err != nil {
		return fmt.Errorf("set campaign %d status %q: %w", id, status, err)
	}
	return nil
}
