package repository

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/pjtries/VeritasAI/internal/models"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when a scan id is unknown.
var ErrNotFound = errors.New("scan not found")

// ScanRepository owns scan records and their accumulated phase outputs.
// Records are written once at triage; later phases only append to
// scan_phases, never mutate a record.
type ScanRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewScanRepository creates a new repository
func NewScanRepository(dbPath string, logger *zap.Logger) (*ScanRepository, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	repo := &ScanRepository{
		db:     db,
		logger: logger,
	}

	if err := repo.migrate(); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	logger.Info("Scan repository initialized", zap.String("db_path", dbPath))

	return repo, nil
}

// migrate creates tables
func (r *ScanRepository) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS scans (
		id TEXT PRIMARY KEY,
		score INTEGER NOT NULL,
		category TEXT NOT NULL,
		confidence REAL NOT NULL,
		explanation TEXT,
		routing_decision TEXT NOT NULL,
		status TEXT NOT NULL,
		created_at DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_scans_category ON scans(category);
	CREATE INDEX IF NOT EXISTS idx_scans_status ON scans(status);
	CREATE INDEX IF NOT EXISTS idx_scans_created_at ON scans(created_at);

	CREATE TABLE IF NOT EXISTS scan_phases (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		scan_id TEXT NOT NULL,
		phase TEXT NOT NULL,
		payload TEXT NOT NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_scan_phases_scan_id ON scan_phases(scan_id);
	`

	_, err := r.db.Exec(schema)
	return err
}

// SaveScan persists a newly triaged scan record.
func (r *ScanRepository) SaveScan(record *models.ScanRecord) error {
	routing, err := json.Marshal(record.RoutingDecision)
	if err != nil {
		return fmt.Errorf("failed to marshal routing decision: %w", err)
	}

	query := `
		INSERT INTO scans (
			id, score, category, confidence, explanation,
			routing_decision, status, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.Exec(query,
		record.ID,
		record.Score,
		string(record.Category),
		record.Confidence,
		record.Explanation,
		string(routing),
		record.Status,
		record.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to save scan: %w", err)
	}

	return nil
}

// GetScan retrieves a scan record by id.
func (r *ScanRepository) GetScan(scanID string) (*models.ScanRecord, error) {
	query := `
		SELECT id, score, category, confidence, explanation,
		       routing_decision, status, created_at
		FROM scans
		WHERE id = ?
	`

	record := &models.ScanRecord{}
	var category, routing string

	err := r.db.QueryRow(query, scanID).Scan(
		&record.ID,
		&record.Score,
		&category,
		&record.Confidence,
		&record.Explanation,
		&routing,
		&record.Status,
		&record.CreatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get scan: %w", err)
	}

	record.Category = models.RiskCategory(category)

	if err := json.Unmarshal([]byte(routing), &record.RoutingDecision); err != nil {
		return nil, fmt.Errorf("failed to unmarshal routing decision: %w", err)
	}

	return record, nil
}

// AppendPhase records a derived phase output for a scan. Entries are
// append-only; reruns of the same phase add new rows.
func (r *ScanRepository) AppendPhase(scanID, phase string, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal %s payload: %w", phase, err)
	}

	query := `
		INSERT INTO scan_phases (scan_id, phase, payload)
		VALUES (?, ?, ?)
	`

	_, err = r.db.Exec(query, scanID, phase, string(body))
	if err != nil {
		return fmt.Errorf("failed to append %s phase: %w", phase, err)
	}

	return nil
}

// Stats returns aggregate counters over stored scans.
func (r *ScanRepository) Stats() (map[string]interface{}, error) {
	stats := make(map[string]interface{})

	var total int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM scans").Scan(&total); err != nil {
		return nil, err
	}
	stats["total"] = total

	var escalated int
	err := r.db.QueryRow("SELECT COUNT(*) FROM scans WHERE status = ?",
		models.StatusEscalated).Scan(&escalated)
	if err != nil {
		return nil, err
	}
	stats["escalated"] = escalated

	query := `
		SELECT category, COUNT(*) as count
		FROM scans
		GROUP BY category
		ORDER BY category
	`
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byCategory := make(map[string]int)
	for rows.Next() {
		var category string
		var count int
		if err := rows.Scan(&category, &count); err != nil {
			continue
		}
		byCategory[category] = count
	}
	stats["by_category"] = byCategory

	return stats, nil
}

// Close closes the database connection
func (r *ScanRepository) Close() error {
	return r.db.Close()
}
