package app

import (
	"database/sql"

	"leavehub/internal/auth"
	"leavehub/internal/policy"
	"leavehub/internal/request"
	"leavehub/internal/user"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// outbox_events is written with raw SQL, so its schema lives here rather
// than in a gorm model.
const outboxSchema = `
CREATE TABLE IF NOT EXISTS outbox_events (
    id UUID PRIMARY KEY,
    request_id VARCHAR(64),
    aggregate_type VARCHAR(50) NOT NULL,
    aggregate_id VARCHAR(64) NOT NULL,
    event_type VARCHAR(50) NOT NULL,
    topic VARCHAR(100) NOT NULL,
    payload JSONB NOT NULL,
    status VARCHAR(20) NOT NULL DEFAULT 'pending',
    retry_count INT NOT NULL DEFAULT 0,
    last_error TEXT,
    created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS idx_outbox_events_status ON outbox_events (status, created_at);
`

func migrate(db *gorm.DB, sqlDB *sql.DB) error {
	if err := db.AutoMigrate(
		&user.User{},
		&policy.LeaveTypePolicy{},
		&request.LeaveRequest{},
		&auth.Credential{},
	); err != nil {
		return err
	}

	_, err := sqlDB.Exec(outboxSchema)
	return err
}

// seedPolicies installs the default leave catalogue on first boot. An
// already-populated table is left untouched so admin edits survive restarts.
func seedPolicies(db *gorm.DB, logger *zap.Logger) error {
	var count int64
	if err := db.Model(&policy.LeaveTypePolicy{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	intPtr := func(v int) *int { return &v }
	defaults := []policy.LeaveTypePolicy{
		{Category: "pto", Name: "vacation", AnnualAllowanceDays: intPtr(25), CountsAgainstBalance: true, EligibilityRule: policy.RuleNone, CarryoverAllowed: true},
		{Category: "pto", Name: "personal", AnnualAllowanceDays: intPtr(5), CountsAgainstBalance: true, EligibilityRule: policy.RuleNone},
		{Category: "pto", Name: "sick", IsUnlimited: true, EligibilityRule: policy.RuleNone},
		{Category: "pto", Name: "study", AnnualAllowanceDays: intPtr(10), CountsAgainstBalance: true, EligibilityRule: policy.RuleStudentsOnly},
		{Category: "unpaid", Name: "sabbatical", AnnualAllowanceDays: intPtr(30), CountsAgainstBalance: false, EligibilityRule: policy.RuleNone},
	}

	if err := db.Create(&defaults).Error; err != nil {
		return err
	}

	logger.Info("seeded default leave policies", zap.Int("count", len(defaults)))
	return nil
}
