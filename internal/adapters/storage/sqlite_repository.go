package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mattn/go-sqlite3"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/timeboxd/timeboxd/internal/domain"
	"github.com/timeboxd/timeboxd/internal/logging"
	"github.com/timeboxd/timeboxd/internal/ports"
)

const maxRetries = 3

// SQLiteRepository implements ports.TimeboxRepository and ports.SettingsStore using GORM
type SQLiteRepository struct {
	db *gorm.DB
}

// Verify interface compliance at compile time
var (
	_ ports.SettingsStore     = (*SQLiteRepository)(nil)
	_ ports.TimeboxRepository = (*SQLiteRepository)(nil)
)

// gormLogger routes GORM output to the application logger
type gormLogger struct {
	level logger.LogLevel
}

func (l *gormLogger) LogMode(level logger.LogLevel) logger.Interface {
	return &gormLogger{level: level}
}

func (l *gormLogger) Info(ctx context.Context, msg string, data ...any) {
	if l.level >= logger.Info {
		logging.Logger.Info(fmt.Sprintf(msg, data...))
	}
}

func (l *gormLogger) Warn(ctx context.Context, msg string, data ...any) {
	if l.level >= logger.Warn {
		logging.Logger.Warn(fmt.Sprintf(msg, data...))
	}
}

func (l *gormLogger) Error(ctx context.Context, msg string, data ...any) {
	if l.level >= logger.Error {
		logging.Logger.Error(fmt.Sprintf(msg, data...))
	}
}

func (l *gormLogger) Trace(ctx context.Context, begin time.Time, fc func() (sql string, rowsAffected int64), err error) {
	if l.level < logger.Info {
		return
	}

	elapsed := time.Since(begin)
	sql, rows := fc()

	switch {
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound):
		logging.Logger.Error("gorm query error", "error", err, "duration", elapsed, "sql", sql, "rows", rows)
	case elapsed > 200*time.Millisecond:
		logging.Logger.Warn("slow query", "duration", elapsed, "sql", sql, "rows", rows)
	default:
		logging.Logger.Debug("gorm query", "duration", elapsed, "sql", sql, "rows", rows)
	}
}

func newGormLogger() logger.Interface {
	if os.Getenv(logging.EnvDebug) == "1" {
		return (&gormLogger{}).LogMode(logger.Info)
	}
	return (&gormLogger{}).LogMode(logger.Silent)
}

// NewSQLiteRepository opens (and migrates) the database at dbPath
func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if len(dbPath) > 0 && dbPath[0] == '~' {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		dbPath = filepath.Join(homeDir, dbPath[1:])
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	// Connection parameters apply to every pooled connection. Immediate
	// transactions take the write lock up front so concurrent transitions
	// wait on busy_timeout instead of failing on lock upgrade.
	dsn := dbPath + "?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL&_foreign_keys=on&_txlock=immediate"

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		NowFunc:     func() time.Time { return time.Now().UTC() },
		Logger:      newGormLogger(),
		PrepareStmt: false,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := migrate(db); err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(0)

	return &SQLiteRepository{db: db}, nil
}

func migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&TimeboxModel{}); err != nil {
		if !strings.Contains(err.Error(), "already exists") {
			return fmt.Errorf("failed to migrate timeboxes schema: %w", err)
		}
	}

	// Child tables are created by hand to get ON DELETE CASCADE
	statements := []struct {
		name string
		sql  string
	}{
		{"sessions", `
			CREATE TABLE IF NOT EXISTS sessions (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				timebox_id INTEGER NOT NULL,
				started_at DATETIME NOT NULL,
				stopped_at DATETIME,
				cancelled_at DATETIME,
				end_reason TEXT,
				expired_at DATETIME,
				created_at DATETIME,
				FOREIGN KEY (timebox_id) REFERENCES timeboxes(id) ON DELETE CASCADE
			)`},
		{"idx_sessions_timebox_id", `CREATE INDEX IF NOT EXISTS idx_sessions_timebox_id ON sessions(timebox_id)`},
		{"idx_sessions_started_at", `CREATE INDEX IF NOT EXISTS idx_sessions_started_at ON sessions(started_at)`},
		// At most one open session per timebox, enforced by the database as well
		{"idx_sessions_one_open", `
			CREATE UNIQUE INDEX IF NOT EXISTS idx_sessions_one_open ON sessions(timebox_id)
			WHERE stopped_at IS NULL AND cancelled_at IS NULL`},
		{"timebox_change_log", `
			CREATE TABLE IF NOT EXISTS timebox_change_log (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				timebox_id INTEGER NOT NULL,
				previous_intention_title TEXT,
				updated_intention_title TEXT,
				previous_note_content TEXT,
				updated_note_content TEXT,
				previous_intended_duration INTEGER,
				new_intended_duration INTEGER,
				updated_at DATETIME NOT NULL,
				FOREIGN KEY (timebox_id) REFERENCES timeboxes(id) ON DELETE CASCADE
			)`},
		{"idx_change_log_timebox_id", `CREATE INDEX IF NOT EXISTS idx_change_log_timebox_id ON timebox_change_log(timebox_id)`},
		{"settings", `
			CREATE TABLE IF NOT EXISTS settings (
				key TEXT PRIMARY KEY,
				value TEXT NOT NULL,
				updated_at DATETIME
			)`},
	}

	for _, stmt := range statements {
		if err := db.Exec(stmt.sql).Error; err != nil {
			return fmt.Errorf("failed to create %s: %w", stmt.name, err)
		}
	}

	return nil
}

// Close closes the database connection
func (r *SQLiteRepository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Get implements TimeboxReader.Get
func (r *SQLiteRepository) Get(ctx context.Context, id int64) (*domain.Timebox, error) {
	var result *domain.Timebox
	err := withRetry(func() error {
		return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			tb, err := loadTimebox(tx, id)
			if err != nil {
				return err
			}
			result = tb
			return nil
		})
	}, maxRetries)
	if err != nil {
		return nil, err
	}
	return result, nil
}

// ListActive implements TimeboxReader.ListActive
func (r *SQLiteRepository) ListActive(ctx context.Context) ([]domain.Timebox, error) {
	return r.listWhere(ctx, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("status = ?", string(domain.StatusInProgress)).Order("created_at DESC")
	})
}

// ListToday implements TimeboxReader.ListToday. Today is the local day of now.
func (r *SQLiteRepository) ListToday(ctx context.Context, now time.Time) ([]domain.Timebox, error) {
	y, m, d := now.Date()
	dayStart := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	return r.listWhere(ctx, func(tx *gorm.DB) *gorm.DB {
		return tx.
			Where("created_at >= ? AND created_at < ?", dayStart.UTC(), dayEnd.UTC()).
			Where("archived_at IS NULL").
			Order("COALESCE(display_order, 999999), created_at DESC")
	})
}

// ListArchived implements TimeboxReader.ListArchived
func (r *SQLiteRepository) ListArchived(ctx context.Context) ([]domain.Timebox, error) {
	return r.listWhere(ctx, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("archived_at IS NOT NULL").Order("archived_at DESC")
	})
}

// ListSessions implements TimeboxReader.ListSessions
func (r *SQLiteRepository) ListSessions(ctx context.Context, timeboxID int64) ([]domain.Session, error) {
	var models []SessionModel
	err := withRetry(func() error {
		return r.db.WithContext(ctx).
			Where("timebox_id = ?", timeboxID).
			Order("started_at ASC, id ASC").
			Find(&models).Error
	}, maxRetries)
	if err != nil {
		return nil, err
	}

	result := make([]domain.Session, len(models))
	for i, m := range models {
		result[i] = sessionModelToDomain(m)
	}
	return result, nil
}

// listWhere loads timeboxes matching scope with their sessions in one transaction
func (r *SQLiteRepository) listWhere(ctx context.Context, scope func(*gorm.DB) *gorm.DB) ([]domain.Timebox, error) {
	var timeboxes []TimeboxModel
	var sessions []SessionModel

	err := withRetry(func() error {
		return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			timeboxes = nil
			sessions = nil
			if err := scope(tx).Find(&timeboxes).Error; err != nil {
				return err
			}
			if len(timeboxes) == 0 {
				return nil
			}
			ids := make([]int64, len(timeboxes))
			for i, tb := range timeboxes {
				ids[i] = tb.ID
			}
			return tx.Where("timebox_id IN ?", ids).Order("started_at ASC, id ASC").Find(&sessions).Error
		})
	}, maxRetries)
	if err != nil {
		return nil, err
	}

	byTimebox := make(map[int64][]SessionModel)
	for _, s := range sessions {
		byTimebox[s.TimeboxID] = append(byTimebox[s.TimeboxID], s)
	}

	result := make([]domain.Timebox, len(timeboxes))
	for i, tb := range timeboxes {
		result[i] = timeboxModelToDomain(tb, byTimebox[tb.ID])
	}
	return result, nil
}

// Create implements TimeboxWriter.Create
func (r *SQLiteRepository) Create(ctx context.Context, params domain.NewTimeboxParams, at time.Time) (*domain.Timebox, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	at = at.UTC()
	model := TimeboxModel{
		CreatedAt:        at,
		ExternalRef:      params.ExternalRef,
		IntendedDuration: params.IntendedDuration,
		Intention:        params.Intention,
		Notes:            params.Notes,
		Status:           string(domain.StatusNotStarted),
		UpdatedAt:        at,
	}

	err := withRetry(func() error {
		model.ID = 0
		if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
			return fmt.Errorf("failed to create timebox: %w", err)
		}
		return nil
	}, maxRetries)
	if err != nil {
		return nil, err
	}

	result := timeboxModelToDomain(model, nil)
	return &result, nil
}

// Update implements TimeboxWriter.Update. Changed fields are recorded in the change log.
func (r *SQLiteRepository) Update(ctx context.Context, id int64, update domain.TimeboxUpdate, at time.Time) (*domain.Timebox, error) {
	if err := update.Validate(); err != nil {
		return nil, err
	}

	at = at.UTC()
	var result *domain.Timebox

	err := withRetry(func() error {
		return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			tb, err := loadTimebox(tx, id)
			if err != nil {
				return err
			}

			change := domain.DiffUpdate(tb, update, at)
			if change == nil {
				result = tb
				return nil
			}

			changeModel := domainToChangeModel(*change)
			if err := tx.Create(&changeModel).Error; err != nil {
				return fmt.Errorf("failed to write change log: %w", err)
			}

			updates := map[string]any{"updated_at": at}
			if change.UpdatedIntention != nil {
				updates["intention"] = *change.UpdatedIntention
				tb.Intention = *change.UpdatedIntention
			}
			if change.UpdatedNotes != nil {
				updates["notes"] = *change.UpdatedNotes
				tb.Notes = change.UpdatedNotes
			}
			if change.NewIntendedDuration != nil {
				updates["intended_duration"] = *change.NewIntendedDuration
				tb.IntendedDuration = *change.NewIntendedDuration
			}
			if err := tx.Model(&TimeboxModel{}).Where("id = ?", id).Updates(updates).Error; err != nil {
				return fmt.Errorf("failed to update timebox: %w", err)
			}

			tb.UpdatedAt = at
			result = tb
			return nil
		})
	}, maxRetries)
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Delete implements TimeboxWriter.Delete. Sessions and change log go with it.
func (r *SQLiteRepository) Delete(ctx context.Context, id int64) error {
	return withRetry(func() error {
		return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("timebox_id = ?", id).Delete(&SessionModel{}).Error; err != nil {
				return err
			}
			if err := tx.Where("timebox_id = ?", id).Delete(&TimeboxChangeModel{}).Error; err != nil {
				return err
			}
			result := tx.Where("id = ?", id).Delete(&TimeboxModel{})
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return fmt.Errorf("%w: %d", domain.ErrTimeboxNotFound, id)
			}
			return nil
		})
	}, maxRetries)
}

// Reorder implements TimeboxWriter.Reorder. Applying the same items twice
// yields the same ordering.
func (r *SQLiteRepository) Reorder(ctx context.Context, items []domain.ReorderItem, at time.Time) error {
	at = at.UTC()
	return withRetry(func() error {
		return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			for _, item := range items {
				result := tx.Model(&TimeboxModel{}).
					Where("id = ?", item.ID).
					Updates(map[string]any{"display_order": item.DisplayOrder, "updated_at": at})
				if result.Error != nil {
					return fmt.Errorf("failed to reorder timebox %d: %w", item.ID, result.Error)
				}
				if result.RowsAffected == 0 {
					return fmt.Errorf("%w: %d", domain.ErrTimeboxNotFound, item.ID)
				}
			}
			return nil
		})
	}, maxRetries)
}

// ApplyTransition implements TimeboxLifecycle.ApplyTransition. The state
// machine runs inside the transaction so the ledger and status change together.
func (r *SQLiteRepository) ApplyTransition(ctx context.Context, id int64, event domain.Event, at time.Time) (*domain.Timebox, error) {
	at = at.UTC()
	var result *domain.Timebox

	err := withRetry(func() error {
		return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			tb, err := loadTimebox(tx, id)
			if err != nil {
				return err
			}

			res, err := tb.Apply(event, at)
			if err != nil {
				if errors.Is(err, domain.ErrAlreadyStopped) {
					result = tb
				}
				return err
			}

			if res.Opened != nil {
				model := SessionModel{TimeboxID: id, StartedAt: res.Opened.StartedAt, CreatedAt: at}
				if err := tx.Create(&model).Error; err != nil {
					return fmt.Errorf("failed to open session: %w", err)
				}
				res.Opened.ID = model.ID
			}

			if res.Closed != nil {
				updates := map[string]any{"end_reason": string(*res.Closed.EndReason)}
				if res.Closed.CancelledAt != nil {
					updates["cancelled_at"] = *res.Closed.CancelledAt
				} else {
					updates["stopped_at"] = *res.Closed.StoppedAt
				}
				closed := tx.Model(&SessionModel{}).
					Where("id = ? AND stopped_at IS NULL AND cancelled_at IS NULL", res.Closed.ID).
					Updates(updates)
				if closed.Error != nil {
					return fmt.Errorf("failed to close session: %w", closed.Error)
				}
				if closed.RowsAffected == 0 {
					return fmt.Errorf("%w: session %d", domain.ErrSessionClosed, res.Closed.ID)
				}
			}

			updated := tx.Model(&TimeboxModel{}).Where("id = ?", id).Updates(map[string]any{
				"after_time_stopped_at": tb.AfterTimeStoppedAt,
				"auto_stopped_at":       tb.AutoStoppedAt,
				"canceled_at":           tb.CanceledAt,
				"completed_at":          tb.CompletedAt,
				"finished_at":           tb.FinishedAt,
				"paused_at":             tb.PausedAt,
				"started_at":            tb.StartedAt,
				"status":                string(tb.Status),
				"updated_at":            tb.UpdatedAt,
			})
			if updated.Error != nil {
				return fmt.Errorf("failed to update timebox status: %w", updated.Error)
			}

			result = tb
			return nil
		})
	}, maxRetries)

	if err != nil {
		return result, err
	}
	return result, nil
}

// ExpireSession implements TimeboxLifecycle.ExpireSession. The marker is
// written once; later calls leave the first timestamp in place.
func (r *SQLiteRepository) ExpireSession(ctx context.Context, sessionID int64, at time.Time) error {
	at = at.UTC()
	return withRetry(func() error {
		return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			result := tx.Model(&SessionModel{}).
				Where("id = ? AND expired_at IS NULL", sessionID).
				Update("expired_at", at)
			if result.Error != nil {
				return fmt.Errorf("failed to expire session: %w", result.Error)
			}
			if result.RowsAffected > 0 {
				return nil
			}

			var count int64
			if err := tx.Model(&SessionModel{}).Where("id = ?", sessionID).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return fmt.Errorf("%w: %d", domain.ErrSessionNotFound, sessionID)
			}
			return nil
		})
	}, maxRetries)
}

// SetArchived implements TimeboxLifecycle.SetArchived
func (r *SQLiteRepository) SetArchived(ctx context.Context, id int64, archived bool, at time.Time) (*domain.Timebox, error) {
	at = at.UTC()
	var result *domain.Timebox

	err := withRetry(func() error {
		return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			tb, err := loadTimebox(tx, id)
			if err != nil {
				return err
			}

			var archivedAt *time.Time
			if archived {
				if tb.ArchivedAt != nil {
					result = tb
					return nil
				}
				archivedAt = &at
			}

			if err := tx.Model(&TimeboxModel{}).Where("id = ?", id).Updates(map[string]any{
				"archived_at": archivedAt,
				"updated_at":  at,
			}).Error; err != nil {
				return fmt.Errorf("failed to update archive state: %w", err)
			}

			tb.ArchivedAt = archivedAt
			tb.UpdatedAt = at
			result = tb
			return nil
		})
	}, maxRetries)
	if err != nil {
		return nil, err
	}
	return result, nil
}

// ChangeLog implements TimeboxChangeLogReader.ChangeLog, newest first
func (r *SQLiteRepository) ChangeLog(ctx context.Context, timeboxID int64) ([]domain.TimeboxChange, error) {
	var models []TimeboxChangeModel
	err := withRetry(func() error {
		return r.db.WithContext(ctx).
			Where("timebox_id = ?", timeboxID).
			Order("updated_at DESC, id DESC").
			Find(&models).Error
	}, maxRetries)
	if err != nil {
		return nil, err
	}

	result := make([]domain.TimeboxChange, len(models))
	for i, m := range models {
		result[i] = changeModelToDomain(m)
	}
	return result, nil
}

// loadTimebox reads one timebox and its ledger inside tx
func loadTimebox(tx *gorm.DB, id int64) (*domain.Timebox, error) {
	var model TimeboxModel
	if err := tx.Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %d", domain.ErrTimeboxNotFound, id)
		}
		return nil, err
	}

	var sessions []SessionModel
	if err := tx.Where("timebox_id = ?", id).Order("started_at ASC, id ASC").Find(&sessions).Error; err != nil {
		return nil, err
	}

	tb := timeboxModelToDomain(model, sessions)
	return &tb, nil
}

// withRetry retries fn when SQLite reports the database as busy or locked
func withRetry(fn func() error, maxRetries int) error {
	var err error
	for i := 0; i < maxRetries; i++ {
		err = fn()
		if err == nil {
			return nil
		}

		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && (sqliteErr.Code == sqlite3.ErrBusy || sqliteErr.Code == sqlite3.ErrLocked) {
			time.Sleep(time.Millisecond * time.Duration(50*(i+1)))
			continue
		}

		return err
	}
	return fmt.Errorf("operation failed after %d retries: %w", maxRetries, err)
}
