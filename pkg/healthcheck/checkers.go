package healthcheck

import (
	"context"

	"gorm.io/gorm"
)

// DatabaseChecker probes the relational store
type DatabaseChecker struct {
	db *gorm.DB
}

// NewDatabaseChecker creates a database checker
func NewDatabaseChecker(db *gorm.DB) *DatabaseChecker {
	return &DatabaseChecker{db: db}
}

func (c *DatabaseChecker) Name() string {
	return "database"
}

func (c *DatabaseChecker) Check(ctx context.Context) (Status, string) {
	sqlDB, err := c.db.DB()
	if err != nil {
		return StatusUnhealthy, err.Error()
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return StatusUnhealthy, err.Error()
	}
	return StatusHealthy, ""
}

// CustomChecker wraps a probe function as a Checker
type CustomChecker struct {
	name  string
	check func(ctx context.Context) (Status, string)
}

// NewCustomChecker creates a checker from a function
func NewCustomChecker(name string, check func(ctx context.Context) (Status, string)) *CustomChecker {
	return &CustomChecker{name: name, check: check}
}

func (c *CustomChecker) Name() string {
	return c.name
}

func (c *CustomChecker) Check(ctx context.Context) (Status, string) {
	return c.check(ctx)
}
