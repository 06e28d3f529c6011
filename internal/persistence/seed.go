package persistence

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/spec-kit/helpdesk-service/internal/auth"
	"github.com/spec-kit/helpdesk-service/internal/config"
)

// referenceSeverities are created when the severity table is empty.
// Level 1 exists as reference data even though the service refuses to
// assign it: those tickets are routed to a dedicated external team.
var referenceSeverities = []struct {
	Level       int
	Description string
}{
	{1, "Issue High"},
	{2, "High"},
	{3, "Medium"},
	{4, "Low"},
}

// referenceCategories maps each seeded category to its subcategories.
var referenceCategories = []struct {
	Name          string
	Subcategories []string
}{
	{"Deploy", []string{"CI/CD", "Circle CI", "Image Deployment", "Kubernetes", "Docker", "GitOps"}},
	{"Development", []string{"Frontend Development", "Backend Development", "Mobile Development", "API Development", "DevOps", "Full Stack Development"}},
	{"Infrastructure", []string{"Cloud Infrastructure", "On-premise Infrastructure", "Virtualization", "Infrastructure as Code", "Serverless Architecture"}},
	{"Testing", []string{"Automated Testing", "Manual Testing", "Performance Testing", "Security Testing", "Unit Testing", "Integration Testing"}},
	{"Security", []string{"Application Security", "Network Security", "Data Security", "Identity Management", "Threat Detection"}},
	{"Operations", []string{"Incident Management", "Change Management", "Service Management", "Release Management", "Disaster Recovery"}},
	{"Monitoring", []string{"Application Monitoring", "Infrastructure Monitoring", "User Monitoring", "Log Monitoring", "Network Monitoring"}},
	{"Database Management", []string{"SQL Databases", "NoSQL Databases", "Database Design", "Database Optimization", "Data Warehousing"}},
	{"Networking", []string{"LAN", "WAN", "Network Security", "Network Architecture", "Wireless Networking"}},
	{"User Experience", []string{"UI/UX Design", "Accessibility", "User Research", "Usability Testing", "Interaction Design"}},
}

// Seed creates the default admin identity and reference severities,
// categories, and subcategories when absent. It runs before the server
// accepts traffic and is safe to re-run.
func Seed(ctx context.Context, pool *pgxpool.Pool, cfg config.Config, logger *zap.Logger) error {
	if pool == nil {
		logger.Warn("no postgres pool available; skipping seeding")
		return nil
	}
	if !cfg.Seed.Enabled {
		logger.Info("startup seeding disabled")
		return nil
	}

	if err := seedSysadmin(ctx, pool, cfg, logger); err != nil {
		return fmt.Errorf("seed sysadmin: %w", err)
	}
	if err := seedSeverities(ctx, pool, logger); err != nil {
		return fmt.Errorf("seed severities: %w", err)
	}
	if err := seedCategories(ctx, pool, logger); err != nil {
		return fmt.Errorf("seed categories: %w", err)
	}
	return nil
}

func seedSysadmin(ctx context.Context, pool *pgxpool.Pool, cfg config.Config, logger *zap.Logger) error {
	var count int
	if err := pool.QueryRow(ctx, `SELECT COUNT(*) FROM users WHERE username=$1`, cfg.Seed.SysadminUsername).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := auth.HashPassword(cfg.Seed.SysadminPassword, cfg.Auth.BcryptCost)
	if err != nil {
		return err
	}

	const query = `
        INSERT INTO users (username, name, email, password, active, role)
        VALUES ($1, $2, $3, $4, TRUE, 'sysadmin')`
	if _, err := pool.Exec(ctx, query, cfg.Seed.SysadminUsername, cfg.Seed.SysadminName, cfg.Seed.SysadminEmail, hash); err != nil {
		return err
	}
	logger.Info("sysadmin user created", zap.String("username", cfg.Seed.SysadminUsername))
	return nil
}

func seedSeverities(ctx context.Context, pool *pgxpool.Pool, logger *zap.Logger) error {
	var count int
	if err := pool.QueryRow(ctx, `SELECT COUNT(*) FROM severity`).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	for _, sev := range referenceSeverities {
		if _, err := pool.Exec(ctx, `INSERT INTO severity (level, description) VALUES ($1, $2)`, sev.Level, sev.Description); err != nil {
			return err
		}
	}
	logger.Info("reference severities created", zap.Int("count", len(referenceSeverities)))
	return nil
}

func seedCategories(ctx context.Context, pool *pgxpool.Pool, logger *zap.Logger) error {
	var count int
	if err := pool.QueryRow(ctx, `SELECT COUNT(*) FROM categories`).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	created := 0
	for _, cat := range referenceCategories {
		var categoryID string
		if err := pool.QueryRow(ctx, `INSERT INTO categories (name) VALUES ($1) RETURNING id`, cat.Name).Scan(&categoryID); err != nil {
			return err
		}
		for _, sub := range cat.Subcategories {
			if _, err := pool.Exec(ctx, `INSERT INTO subcategories (name, category_id) VALUES ($1, $2)`, sub, categoryID); err != nil {
				return err
			}
			created++
		}
	}
	logger.Info("reference categories created",
		zap.Int("categories", len(referenceCategories)),
		zap.Int("subcategories", created),
	)
	return nil
}
