package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/minizon/minizon/internal/models"
)

// RatingStore owns item ratings, their upvotes and seller ratings.
// Aggregation happens in read queries here, never on the entities.
type RatingStore struct {
	DB *sql.DB
}

// RateItem records a 0-5 rating with an optional comment. Re-rating the
// same item replaces the rater's previous row.
func (s *RatingStore) RateItem(ctx context.Context, itemID, raterID int64, rating int, comment string) error {
	var exists bool
	err := s.DB.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM items WHERE id = ?)", itemID).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check item: %w", err)
	}
	if !exists {
		return ErrNotFound
	}

	_, err = s.DB.ExecContext(ctx, `
		INSERT INTO item_ratings (item_id, rater_id, rating, comment)
		VALUES (?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE rating = VALUES(rating), comment = VALUES(comment)`,
		itemID, raterID, rating, comment)
	if err != nil {
		return fmt.Errorf("failed to rate item: %w", err)
	}
	return nil
}

// UpvoteRating adds one upvote per voter to another user's item rating.
func (s *RatingStore) UpvoteRating(ctx context.Context, itemID, raterID, voterID int64) error {
	_, err := s.DB.ExecContext(ctx,
		"INSERT INTO rating_upvotes (item_id, rater_id, voter_id) VALUES (?, ?, ?)",
		itemID, raterID, voterID)
	if err != nil {
		if isDuplicateKey(err) {
			return ErrDuplicateUpvote
		}
		// A missing parent rating surfaces as a foreign key violation.
		if isForeignKeyViolation(err) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to upvote rating: %w", err)
	}
	return nil
}

// ItemRatings lists an item's ratings with their upvote counts.
func (s *RatingStore) ItemRatings(ctx context.Context, itemID int64) ([]models.ItemRating, error) {
	rows, err := s.DB.QueryContext(ctx, `
		SELECT r.item_id, r.rater_id, u.name, r.rating, r.comment, r.created_at,
		       COUNT(v.voter_id)
		FROM item_ratings r
		JOIN users u ON u.id = r.rater_id
		LEFT JOIN rating_upvotes v ON v.item_id = r.item_id AND v.rater_id = r.rater_id
		WHERE r.item_id = ?
		GROUP BY r.item_id, r.rater_id, u.name, r.rating, r.comment, r.created_at
		ORDER BY COUNT(v.voter_id) DESC, r.created_at DESC`, itemID)
	if err != nil {
		return nil, fmt.Errorf("failed to list item ratings: %w", err)
	}
	defer rows.Close()

	ratings := []models.ItemRating{}
	for rows.Next() {
		var r models.ItemRating
		if err := rows.Scan(&r.ItemID, &r.RaterID, &r.RaterName, &r.Rating,
			&r.Comment, &r.CreatedAt, &r.Upvotes); err != nil {
			return nil, err
		}
		ratings = append(ratings, r)
	}
	return ratings, rows.Err()
}

// RateSeller records a 0-5 rating of a seller; re-rating replaces it.
func (s *RatingStore) RateSeller(ctx context.Context, sellerID, raterID int64, rating int) error {
	var exists bool
	err := s.DB.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM users WHERE id = ?)", sellerID).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check seller: %w", err)
	}
	if !exists {
		return ErrNotFound
	}

	_, err = s.DB.ExecContext(ctx, `
		INSERT INTO seller_ratings (seller_id, rater_id, rating)
		VALUES (?, ?, ?)
		ON DUPLICATE KEY UPDATE rating = VALUES(rating)`,
		sellerID, raterID, rating)
	if err != nil {
		return fmt.Errorf("failed to rate seller: %w", err)
	}
	return nil
}

// SellerRatings returns a seller's ratings plus their average.
func (s *RatingStore) SellerRatings(ctx context.Context, sellerID int64) ([]models.SellerRating, *float64, error) {
	rows, err := s.DB.QueryContext(ctx, `
		SELECT r.seller_id, r.rater_id, u.name, r.rating, r.created_at
		FROM seller_ratings r
		JOIN users u ON u.id = r.rater_id
		WHERE r.seller_id = ?
		ORDER BY r.created_at DESC`, sellerID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list seller ratings: %w", err)
	}
	defer rows.Close()

	ratings := []models.SellerRating{}
	for rows.Next() {
		var r models.SellerRating
		if err := rows.Scan(&r.SellerID, &r.RaterID, &r.RaterName, &r.Rating, &r.CreatedAt); err != nil {
			return nil, nil, err
		}
		ratings = append(ratings, r)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}

	var avg sql.NullFloat64
	err = s.DB.QueryRowContext(ctx,
		"SELECT AVG(rating) FROM seller_ratings WHERE seller_id = ?", sellerID).Scan(&avg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to average seller ratings: %w", err)
	}
	if !avg.Valid {
		return ratings, nil, nil
	}
	return ratings, &avg.Float64, nil
}
