package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/wayfarerhq/wayfarer/internal/journal/domain"
	"github.com/wayfarerhq/wayfarer/internal/journal/store"
)

type storiesRepo struct {
	db *sql.DB
}

const storyColumns = `id, owner_id, title, story, visited_location, image_url, visited_date, is_favourite, created_at`

// Standard order for every read: favourites first, then insertion order.
// The id tie-break keeps the order stable (ULIDs sort by creation time).
const standardOrder = ` ORDER BY is_favourite DESC, id ASC`

func (r *storiesRepo) CreateStory(ctx context.Context, s domain.TravelStory) error {
	locations, err := encodeLocations(s.VisitedLocation)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO travel_stories (`+storyColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		s.ID, s.OwnerID, s.Title, s.Story, locations, s.ImageURL,
		toMillis(s.VisitedDate), s.IsFavourite, toMillis(s.CreatedAt),
	)
	return mapConflict(err)
}

func (r *storiesRepo) GetStory(ctx context.Context, ownerID, id string) (domain.TravelStory, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+storyColumns+` FROM travel_stories
		WHERE id = ? AND owner_id = ?`, id, ownerID)
	return scanStory(row)
}

func (r *storiesRepo) ListStories(ctx context.Context, ownerID string) ([]domain.TravelStory, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+storyColumns+` FROM travel_stories
		WHERE owner_id = ?`+standardOrder, ownerID)
	if err != nil {
		return nil, err
	}
	return collectStories(rows)
}

func (r *storiesRepo) UpdateStory(ctx context.Context, s domain.TravelStory) error {
	locations, err := encodeLocations(s.VisitedLocation)
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE travel_stories
		SET title = ?, story = ?, visited_location = ?, image_url = ?, visited_date = ?
		WHERE id = ? AND owner_id = ?`,
		s.Title, s.Story, locations, s.ImageURL, toMillis(s.VisitedDate),
		s.ID, s.OwnerID,
	)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}

func (r *storiesRepo) SetFavourite(ctx context.Context, ownerID, id string, isFavourite bool) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE travel_stories SET is_favourite = ?
		WHERE id = ? AND owner_id = ?`,
		isFavourite, id, ownerID,
	)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}

func (r *storiesRepo) DeleteStory(ctx context.Context, ownerID, id string) error {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM travel_stories WHERE id = ? AND owner_id = ?`, id, ownerID)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}

func (r *storiesRepo) SearchStories(ctx context.Context, ownerID, keyword string) ([]domain.TravelStory, error) {
	// The location match runs over the raw JSON text, so keywords containing
	// characters JSON escapes (quotes, backslashes) will not match there.
	// SQLite's lower() folds ASCII only, matching the service-level contract.
	pattern := "%" + escapeLike(strings.ToLower(keyword)) + "%"

	rows, err := r.db.QueryContext(ctx, `
		SELECT `+storyColumns+` FROM travel_stories
		WHERE owner_id = ?
		  AND (lower(title) LIKE ? ESCAPE '\'
		    OR lower(story) LIKE ? ESCAPE '\'
		    OR lower(visited_location) LIKE ? ESCAPE '\')`+standardOrder,
		ownerID, pattern, pattern, pattern)
	if err != nil {
		return nil, err
	}
	return collectStories(rows)
}

func (r *storiesRepo) ListStoriesByDateRange(ctx context.Context, ownerID string, start, end time.Time) ([]domain.TravelStory, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+storyColumns+` FROM travel_stories
		WHERE owner_id = ? AND visited_date >= ? AND visited_date <= ?`+standardOrder,
		ownerID, toMillis(start), toMillis(end))
	if err != nil {
		return nil, err
	}
	return collectStories(rows)
}

// requireRowAffected maps a zero-row write to ErrNotFound. Owner scoping is
// part of every WHERE clause, so "wrong owner" and "no such story" are the
// same outcome here.
func requireRowAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

// escapeLike escapes LIKE wildcards so user keywords match literally.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanStoryFrom(sc rowScanner) (domain.TravelStory, error) {
	var s domain.TravelStory
	var locations string
	var visitedDate, createdAt int64

	err := sc.Scan(&s.ID, &s.OwnerID, &s.Title, &s.Story, &locations,
		&s.ImageURL, &visitedDate, &s.IsFavourite, &createdAt)
	if err != nil {
		return domain.TravelStory{}, err
	}

	s.VisitedLocation, err = decodeLocations(locations)
	if err != nil {
		return domain.TravelStory{}, err
	}
	s.VisitedDate = fromMillis(visitedDate)
	s.CreatedAt = fromMillis(createdAt)
	return s, nil
}

func scanStory(row *sql.Row) (domain.TravelStory, error) {
	s, err := scanStoryFrom(row)
	if err != nil {
		return domain.TravelStory{}, mapNotFound(err)
	}
	return s, nil
}

func collectStories(rows *sql.Rows) ([]domain.TravelStory, error) {
	defer rows.Close()

	stories := []domain.TravelStory{}
	for rows.Next() {
		s, err := scanStoryFrom(rows)
		if err != nil {
			return nil, err
		}
		stories = append(stories, s)
	}
	return stories, rows.Err()
}
