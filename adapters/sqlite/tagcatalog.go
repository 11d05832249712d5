package sqlite

import (
	"context"
	"fmt"

	"github.com/minsu-kang/steamrec/ports"
)

// TagCatalog is a SQLite implementation of ports.TagCatalog.
type TagCatalog struct {
	db *DB
}

// NewTagCatalog creates a catalog over the database.
func NewTagCatalog(db *DB) *TagCatalog {
	return &TagCatalog{db: db}
}

// TagNamesForApps returns one row per tag per app. No DISTINCT: the
// duplicates are the frequency signal the aggregator ranks on.
func (c *TagCatalog) TagNamesForApps(ctx context.Context, appIDs []int64) ([]string, error) {
	if len(appIDs) == 0 {
		return nil, nil
	}

	query := `
		SELECT t.name
		FROM tags t
		JOIN game_tags gt ON gt.tag_id = t.id
		JOIN games g ON g.id = gt.game_id
		WHERE g.appid IN (` + placeholders(len(appIDs)) + `)
	`
	args := make([]any, len(appIDs))
	for i, id := range appIDs {
		args[i] = id
	}

	rows, err := c.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("tag names for apps: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan tag name: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// AllTagNames returns every tag name in the catalog.
func (c *TagCatalog) AllTagNames(ctx context.Context) ([]string, error) {
	rows, err := c.db.QueryContext(ctx, "SELECT name FROM tags ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("all tag names: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan tag name: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// Ensure interface compliance.
var _ ports.TagCatalog = (*TagCatalog)(nil)
