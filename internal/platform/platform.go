// Package platform checks that the host commerce platform this service extends is installed.
package platform

import (
	"context"
	"fmt"
	"strings"

	"bought-tab/internal/model"

	"github.com/jackc/pgx/v5"
)

// RequiredTables are the host tables the extension reads.
var RequiredTables = []string{"products", "orders", "order_items"}

// InactiveNotice is shown to administrators when the host platform is missing.
const InactiveNotice = "Bought Product Tab could not be activated as it requires the commerce platform to be installed and activated."

// Querier is the subset of pgxpool.Pool used by Check.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Status is the outcome of the host precondition check.
type Status struct {
	Active  bool
	Missing []string
	Notice  string
}

// Notices returns the administrative warnings implied by the status.
func (s Status) Notices() []model.AdminNotice {
	if s.Active {
		return []model.AdminNotice{}
	}
	message := s.Notice
	if len(s.Missing) > 0 {
		message = fmt.Sprintf("%s Missing tables: %s.", s.Notice, strings.Join(s.Missing, ", "))
	}
	return []model.AdminNotice{{Level: "error", Message: message}}
}

// Check reports whether every required host table exists.
func Check(ctx context.Context, q Querier) (Status, error) {
	var missing []string
	for _, table := range RequiredTables {
		var exists bool
		if err := q.QueryRow(ctx, "SELECT to_regclass($1) IS NOT NULL", table).Scan(&exists); err != nil {
			return Status{}, fmt.Errorf("failed to check table %s: %w", table, err)
		}
		if !exists {
			missing = append(missing, table)
		}
	}

	if len(missing) > 0 {
		return Status{Active: false, Missing: missing, Notice: InactiveNotice}, nil
	}
	return Status{Active: true}, nil
}
