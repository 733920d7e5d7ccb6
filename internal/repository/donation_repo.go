package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"yesfundme/internal/models"
)

// ErrNonPositiveAmount is returned by Record before any write happens.
var ErrNonPositiveAmount = errors.New("donation amount must be positive")

type DonationRepository struct {
	db *sql.DB
}

func NewDonationRepository(db *sql.DB) *DonationRepository {
	return &DonationRepository{db: db}
}

// Ensure implementation of Donations interface at compile time.
var _ Donations = (*DonationRepository)(nil)

const (
	insertDonationSQL = `INSERT INTO donations (campaign_id, user_id, amount, message, is_anonymous, donor_name) VALUES (?, ?, ?, ?, ?, ?)`

	bumpCampaignAmountSQL = `UPDATE campaigns SET current_amount = current_amount + ? WHERE id = ?`

	selectDonationsForCampaignSQL = `
		SELECT d.id, d.campaign_id, d.user_id, d.amount, COALESCE(d.message, ''),
		       d.is_anonymous, COALESCE(d.donor_name, ''), d.created_at,
		       COALESCE(u.display_name, '')
		FROM donations d LEFT JOIN users u ON d.user_id = u.id
		WHERE d.campaign_id = ?
		ORDER BY d.created_at DESC`

	selectDonationsForUserSQL = `
		SELECT d.id, d.campaign_id, d.user_id, d.amount, COALESCE(d.message, ''),
		       d.is_anonymous, COALESCE(d.donor_name, ''), d.created_at,
		       c.title, COALESCE(c.image_url, '')
		FROM donations d JOIN campaigns c ON d.campaign_id = c.id
		WHERE d.user_id = ?
		ORDER BY d.created_at DESC`
)

// Record appends one donation row and increments the campaign's
// current_amount as a single transaction. Either both writes commit or
// neither does, so the campaign aggregate stays equal to the sum of its
// donation rows no matter how concurrent donors interleave. The new donation
// ID is returned. No retry is attempted; the caller decides what a failure
// means.
func (r *DonationRepository) Record(ctx context.Context, d models.Donation) (int64, error) {
	if d.Amount <= 0 {
		return 0, ErrNonPositiveAmount
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin donation transaction: %w", err)
	}
	defer func() {
		// No-op after a successful commit.
		_ = tx.Rollback()
	}()

	var message any
	if d.Message != "" {
		message = d.Message
	}
	var donorName any
	if d.DonorName != "" {
		donorName = d.DonorName
	}
	var userID any
	if d.UserID != nil {
		userID = *d.UserID
	}

	res, err := tx.ExecContext(ctx, insertDonationSQL,
		d.CampaignID, userID, d.Amount, message, d.IsAnonymous, donorName)
	if err != nil {
		return 0, fmt.Errorf("insert donation for campaign %d: %w", d.CampaignID, err)
	}
	donationID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get last insert id for donation: %w", err)
	}

	if _, err := tx.ExecContext(ctx, bumpCampaignAmountSQL, d.Amount, d.CampaignID); err != nil {
		return 0, fmt.Errorf("bump campaign %d amount: %w", d.CampaignID, err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit donation for campaign %d: %w", d.CampaignID, err)
	}
	return donationID, nil
}

// ListForCampaign returns a campaign's donations, newest first, with the
// donor's display name joined in for authenticated donors.
func (r *DonationRepository) ListForCampaign(ctx context.Context, campaignID int64) ([]models.Donation, error) {
	rows, err := r.db.QueryContext(ctx, selectDonationsForCampaignSQL, campaignID)
	if err != nil {
		return nil, fmt.Errorf("list donations for campaign %d: %w", campaignID, err)
	}
	defer rows.Close()

	var out []models.Donation
	for rows.Next() {
		var d models.Donation
		var userID sql.NullInt64
		if err := rows.Scan(
			&d.ID, &d.CampaignID, &userID, &d.Amount, &d.Message,
			&d.IsAnonymous, &d.DonorName, &d.CreatedAt, &d.UserDisplayName,
		); err != nil {
			return nil, fmt.Errorf("scan donation row: %w", err)
		}
		if userID.Valid {
			v := userID.Int64
			d.UserID = &v
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// ListForUser returns a user's donations, newest first, with campaign
// display fields joined in.
func (r *DonationRepository) ListForUser(ctx context.Context, userID int64) ([]models.Donation, error) {
	rows, err := r.db.QueryContext(ctx, selectDonationsForUserSQL, userID)
	if err != nil {
		return nil, fmt.Errorf("list donations for user %d: %w", userID, err)
	}
	defer rows.Close()

	var out []models.Donation
	for rows.Next() {
		var d models.Donation
		var uid sql.NullInt64
		if err := rows.Scan(
			&d.ID, &d.CampaignID, &uid, &d.Amount, &d.Message,
			&d.IsAnonymous, &d.DonorName, &d.CreatedAt,
			&d.CampaignTitle, &d.CampaignImage,
		); err != nil {
			return nil, fmt.Errorf("scan donation row: %w", err)
		}
		if uid.Valid {
			v := uid.Int64
			d.UserID = &v
		}
		out = append(out, d)
	}
	return out, rows.Err()
}
