package ingredient

import (
	"context"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestForeignKeyViolationClassification(t *testing.T) {
	fkErr := &pgconn.PgError{Code: "23503", ConstraintName: "recipe_items_ingredient_id_fkey"}

	if !foreignKeyViolation(fkErr) {
		t.Error("foreign key violation not recognized")
	}
	if !foreignKeyViolation(fmt.Errorf("exec: %w", fkErr)) {
		t.Error("wrapped foreign key violation not recognized")
	}
	if foreignKeyViolation(&pgconn.PgError{Code: "23505"}) {
		t.Error("unique violation misread as a foreign key violation")
	}
	if foreignKeyViolation(context.DeadlineExceeded) {
		t.Error("timeout misread as a foreign key violation")
	}
	if foreignKeyViolation(nil) {
		t.Error("nil misread as a foreign key violation")
	}
}
