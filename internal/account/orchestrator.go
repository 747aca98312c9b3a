package account

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Step is one category of user-owned records targeted during account deletion.
type Step struct {
	Label  string
	Delete func(db *gorm.DB, userID uuid.UUID) (int64, error)
}

// StepResult is the recorded outcome for a single category.
type StepResult struct {
	Step    string `json:"step"`
	Success bool   `json:"success"`
	Count   *int64 `json:"count,omitempty"`
}

// Orchestrator permanently removes all data owned by a user across a fixed
// ordered list of categories, then deletes the user row itself. Category
// failures are recorded and never abort the run: this is a best-effort
// irreversible cleanup, not a transaction. The categories are independent leaf
// records, so deletion order only affects progress reporting.
type Orchestrator struct {
	db    *gorm.DB
	steps []Step
}

func NewOrchestrator(db *gorm.DB, steps []Step) *Orchestrator {
	return &Orchestrator{db: db, steps: steps}
}

// Run processes every category sequentially and finally deletes the identity
// record. The returned results always cover all categories. A non-nil error
// means identity revocation failed; category cleanup may still have happened,
// and the results tell the caller what was removed versus what an operator
// must clean up manually.
func (o *Orchestrator) Run(userID uuid.UUID, revoke func(db *gorm.DB, userID uuid.UUID) error) ([]StepResult, error) {
	results := make([]StepResult, 0, len(o.steps))

	for _, step := range o.steps {
		count, err := step.Delete(o.db, userID)
		if err != nil {
			slog.Error("account deletion step failed", "step", step.Label, "user_id", userID.String(), "error", err)
			results = append(results, StepResult{Step: step.Label, Success: false})
			continue
		}
		c := count
		results = append(results, StepResult{Step: step.Label, Success: true, Count: &c})
	}

	if err := revoke(o.db, userID); err != nil {
		slog.Error("account revocation failed", "user_id", userID.String(), "error", err)
		return results, fmt.Errorf("failed to delete user record: %w", err)
	}

	return results, nil
}

// DeleteOwned builds a Step delete function that hard-deletes all rows of the
// given model where user_id matches. Unscoped so soft-deleted rows go too.
func DeleteOwned(model interface{}) func(db *gorm.DB, userID uuid.UUID) (int64, error) {
	return func(db *gorm.DB, userID uuid.UUID) (int64, error) {
		result := db.Unscoped().Where("user_id = ?", userID).Delete(model)
		return result.RowsAffected, result.Error
	}
}
