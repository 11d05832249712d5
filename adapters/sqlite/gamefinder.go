package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"github.com/minsu-kang/steamrec/domain/game"
	"github.com/minsu-kang/steamrec/ports"
)

const storeURLPrefix = "https://store.steampowered.com/app/"

// GameFinder is a SQLite implementation of ports.GameFinder. Selection is
// uniform over the matching set via ORDER BY RANDOM() LIMIT 1; each call is
// an independent draw.
type GameFinder struct {
	db *DB
}

// NewGameFinder creates a finder over the catalog database.
func NewGameFinder(db *DB) *GameFinder {
	return &GameFinder{db: db}
}

// Random returns one uniformly-chosen game carrying every queried tag.
func (f *GameFinder) Random(ctx context.Context, q game.Query) (game.Candidate, bool, error) {
	if len(q.Tags) == 0 {
		return game.Candidate{}, false, nil
	}

	query := `
		SELECT g.appid, g.name, g.description, g.image_url
		FROM games g
		JOIN game_tags gt ON gt.game_id = g.id
		JOIN tags t ON t.id = gt.tag_id
		WHERE t.name IN (` + placeholders(len(q.Tags)) + `)
		  AND g.review_count >= ?
		  AND (? = 0 OR g.korean_support = 1)
	`
	args := make([]any, 0, len(q.Tags)+5)
	for _, t := range q.Tags {
		args = append(args, t)
	}
	args = append(args, q.MinReviews, boolArg(q.LocalizedOnly))

	if q.FreeOnly != nil {
		query += " AND g.is_free = ?"
		args = append(args, boolArg(*q.FreeOnly))
	}

	query += `
		GROUP BY g.id
		HAVING COUNT(DISTINCT t.name) = ?
		ORDER BY RANDOM()
		LIMIT 1
	`
	args = append(args, len(q.Tags))

	var c game.Candidate
	err := f.db.QueryRowContext(ctx, query, args...).
		Scan(&c.AppID, &c.Name, &c.Description, &c.ImageURL)
	if errors.Is(err, sql.ErrNoRows) {
		return game.Candidate{}, false, nil
	}
	if err != nil {
		return game.Candidate{}, false, fmt.Errorf("random game: %w", err)
	}
	c.StoreURL = storeURLPrefix + strconv.FormatInt(c.AppID, 10)
	return c, true, nil
}

func boolArg(b bool) int {
	if b {
		return 1
	}
	return 0
}

// Ensure interface compliance.
var _ ports.GameFinder = (*GameFinder)(nil)
