// package repositories provides the persistence layer for the movie library.
package repositories

import (
	"database/sql"
	"fmt"
)

// affectedRows returns the number of rows touched by a write, wrapping the
// driver error consistently for all repositories.
func affectedRows(result sql.Result) (int64, error) {
	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get affected rows: %w", err)
	}
	return rows, nil
}
