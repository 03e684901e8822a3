package progress

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/nursing-tutor-mcp-server/internal/domain"
)

// Store persists completed session records and milestones. The tracker
// treats persistence as best-effort; in-memory state stays the source
// of truth for derived metrics.
type Store interface {
	SaveRecord(ctx context.Context, record *domain.ProgressRecord) error
	ListRecords(ctx context.Context, learnerID string) ([]*domain.ProgressRecord, error)
	SaveMilestone(ctx context.Context, learnerID string, milestone *domain.Milestone) error
	ListMilestones(ctx context.Context, learnerID string) ([]*domain.Milestone, error)
	Close() error
}

// SQLiteStore implements Store on a single-file SQLite database.
type SQLiteStore struct {
	db     *sql.DB
	dbPath string
}

// NewSQLiteStore opens (creating if needed) the progress database and
// its schema.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// WAL mode for better concurrency
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set WAL mode: %w", err)
	}

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &SQLiteStore{db: db, dbPath: dbPath}, nil
}

func createSchema(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS progress_records (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		learner_id TEXT NOT NULL,
		module TEXT NOT NULL,
		topic TEXT NOT NULL,
		start_time DATETIME NOT NULL,
		end_time DATETIME,
		completion_percentage INTEGER NOT NULL DEFAULT 0,
		time_spent INTEGER NOT NULL DEFAULT 0,
		score INTEGER,
		attempts INTEGER NOT NULL DEFAULT 1,
		difficulty_rating INTEGER NOT NULL DEFAULT 3,
		confidence_level INTEGER NOT NULL DEFAULT 3,
		notes TEXT DEFAULT '',
		resources_used TEXT DEFAULT '[]',
		challenges_faced TEXT DEFAULT '[]',
		achievements TEXT DEFAULT '[]'
	);

	CREATE INDEX IF NOT EXISTS idx_records_learner ON progress_records(learner_id);
	CREATE INDEX IF NOT EXISTS idx_records_module ON progress_records(learner_id, module);

	CREATE TABLE IF NOT EXISTS milestones (
		milestone_id TEXT NOT NULL,
		learner_id TEXT NOT NULL,
		title TEXT NOT NULL,
		description TEXT DEFAULT '',
		category TEXT NOT NULL,
		target_date DATETIME NOT NULL,
		completion_date DATETIME,
		completion_percentage INTEGER NOT NULL DEFAULT 0,
		success_criteria TEXT DEFAULT '[]',
		PRIMARY KEY (learner_id, milestone_id)
	);

	CREATE INDEX IF NOT EXISTS idx_milestones_learner ON milestones(learner_id);
	`

	_, err := db.Exec(schema)
	return err
}

// SaveRecord appends a session record.
func (s *SQLiteStore) SaveRecord(ctx context.Context, record *domain.ProgressRecord) error {
	resources, err := encodeStrings(record.ResourcesUsed)
	if err != nil {
		return err
	}
	challenges, err := encodeStrings(record.ChallengesFaced)
	if err != nil {
		return err
	}
	achievements, err := encodeStrings(record.Achievements)
	if err != nil {
		return err
	}

	var endTime sql.NullTime
	if record.EndTime != nil {
		endTime = sql.NullTime{Time: *record.EndTime, Valid: true}
	}
	var score sql.NullInt64
	if record.Score != nil {
		score = sql.NullInt64{Int64: int64(*record.Score), Valid: true}
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO progress_records (
			learner_id, module, topic, start_time, end_time,
			completion_percentage, time_spent, score, attempts,
			difficulty_rating, confidence_level, notes,
			resources_used, challenges_faced, achievements
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		record.LearnerID,
		record.Module,
		record.Topic,
		record.StartTime,
		endTime,
		record.CompletionPercentage,
		record.TimeSpent,
		score,
		record.Attempts,
		record.DifficultyRating,
		record.ConfidenceLevel,
		record.Notes,
		resources,
		challenges,
		achievements,
	)
	if err != nil {
		return fmt.Errorf("failed to insert record: %w", err)
	}
	return nil
}

// ListRecords returns all session records of a learner ordered by start
// time.
func (s *SQLiteStore) ListRecords(ctx context.Context, learnerID string) ([]*domain.ProgressRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT learner_id, module, topic, start_time, end_time,
			completion_percentage, time_spent, score, attempts,
			difficulty_rating, confidence_level, notes,
			resources_used, challenges_faced, achievements
		FROM progress_records
		WHERE learner_id = ?
		ORDER BY start_time ASC
	`, learnerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query records: %w", err)
	}
	defer rows.Close()

	var records []*domain.ProgressRecord
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

func scanRecord(rows *sql.Rows) (*domain.ProgressRecord, error) {
	record := &domain.ProgressRecord{}
	var (
		endTime                             sql.NullTime
		score                               sql.NullInt64
		resources, challenges, achievements string
	)

	err := rows.Scan(
		&record.LearnerID, &record.Module, &record.Topic,
		&record.StartTime, &endTime,
		&record.CompletionPercentage, &record.TimeSpent, &score, &record.Attempts,
		&record.DifficultyRating, &record.ConfidenceLevel, &record.Notes,
		&resources, &challenges, &achievements,
	)
	if err != nil {
		return nil, err
	}

	if endTime.Valid {
		record.EndTime = &endTime.Time
	}
	if score.Valid {
		v := int(score.Int64)
		record.Score = &v
	}
	if record.ResourcesUsed, err = decodeStrings(resources); err != nil {
		return nil, err
	}
	if record.ChallengesFaced, err = decodeStrings(challenges); err != nil {
		return nil, err
	}
	if record.Achievements, err = decodeStrings(achievements); err != nil {
		return nil, err
	}
	return record, nil
}

// SaveMilestone inserts or replaces a milestone.
func (s *SQLiteStore) SaveMilestone(ctx context.Context, learnerID string, milestone *domain.Milestone) error {
	criteria, err := encodeStrings(milestone.SuccessCriteria)
	if err != nil {
		return err
	}

	var completionDate sql.NullTime
	if milestone.CompletionDate != nil {
		completionDate = sql.NullTime{Time: *milestone.CompletionDate, Valid: true}
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO milestones (
			milestone_id, learner_id, title, description, category,
			target_date, completion_date, completion_percentage, success_criteria
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(learner_id, milestone_id) DO UPDATE SET
			title = excluded.title,
			description = excluded.description,
			category = excluded.category,
			target_date = excluded.target_date,
			completion_date = excluded.completion_date,
			completion_percentage = excluded.completion_percentage,
			success_criteria = excluded.success_criteria
	`,
		milestone.ID,
		learnerID,
		milestone.Title,
		milestone.Description,
		milestone.Category,
		milestone.TargetDate,
		completionDate,
		milestone.CompletionPercentage,
		criteria,
	)
	if err != nil {
		return fmt.Errorf("failed to save milestone: %w", err)
	}
	return nil
}

// ListMilestones returns all milestones of a learner ordered by target
// date.
func (s *SQLiteStore) ListMilestones(ctx context.Context, learnerID string) ([]*domain.Milestone, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT milestone_id, title, description, category,
			target_date, completion_date, completion_percentage, success_criteria
		FROM milestones
		WHERE learner_id = ?
		ORDER BY target_date ASC
	`, learnerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query milestones: %w", err)
	}
	defer rows.Close()

	var milestones []*domain.Milestone
	for rows.Next() {
		m := &domain.Milestone{}
		var (
			completionDate sql.NullTime
			criteria       string
		)
		if err := rows.Scan(
			&m.ID, &m.Title, &m.Description, &m.Category,
			&m.TargetDate, &completionDate, &m.CompletionPercentage, &criteria,
		); err != nil {
			return nil, fmt.Errorf("failed to scan milestone: %w", err)
		}
		if completionDate.Valid {
			m.CompletionDate = &completionDate.Time
		}
		if m.SuccessCriteria, err = decodeStrings(criteria); err != nil {
			return nil, err
		}
		milestones = append(milestones, m)
	}
	return milestones, rows.Err()
}

// Close closes the store and releases resources.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func encodeStrings(values []string) (string, error) {
	if values == nil {
		values = []string{}
	}
	raw, err := json.Marshal(values)
	if err != nil {
		return "", fmt.Errorf("failed to encode list: %w", err)
	}
	return string(raw), nil
}

func decodeStrings(raw string) ([]string, error) {
	if raw == "" {
		return nil, nil
	}
	var values []string
	if err := json.Unmarshal([]byte(raw), &values); err != nil {
		return nil, fmt.Errorf("failed to decode list: %w", err)
	}
	if len(values) == 0 {
		return nil, nil
	}
	return values, nil
}
