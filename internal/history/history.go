// Package history persists executed commands in a sqlite database and
// serves the rolling recent-command window that suggestion analysis
// consumes.
package history

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

type Manager struct {
	db *gorm.DB
}

type Entry struct {
	ID        uint      `gorm:"primarykey"`
	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time `gorm:"index"`

	Command   string
	Directory string
	ExitCode  sql.NullInt32

	// ErrorOutput holds the command's stderr when it failed. It feeds
	// the lastError field of the suggestion context.
	ErrorOutput string
}

func NewManager(dbFilePath string) (*Manager, error) {
	db, err := gorm.Open(sqlite.Open(dbFilePath), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	if err := db.AutoMigrate(&Entry{}); err != nil {
		return nil, fmt.Errorf("failed to migrate history schema: %w", err)
	}

	return &Manager{
		db: db,
	}, nil
}

// Record inserts a new entry for a command that has started executing.
func (m *Manager) Record(command string, directory string) (*Entry, error) {
	entry := Entry{
		Command:   command,
		Directory: directory,
	}

	result := m.db.Create(&entry)
	if result.Error != nil {
		return nil, result.Error
	}

	return &entry, nil
}

// Finish stores the outcome of a previously recorded command.
func (m *Manager) Finish(entry *Entry, exitCode int, errorOutput string) (*Entry, error) {
	entry.ExitCode = sql.NullInt32{Int32: int32(exitCode), Valid: true}
	entry.ErrorOutput = errorOutput

	result := m.db.Save(entry)
	if result.Error != nil {
		return nil, result.Error
	}

	return entry, nil
}

// RecentEntries returns up to limit entries, most recent first. An
// empty directory matches every directory.
func (m *Manager) RecentEntries(directory string, limit int) ([]Entry, error) {
	var entries []Entry
	db := m.db
	if directory != "" {
		db = db.Where("directory = ?", directory)
	}
	result := db.Order("created_at desc, id desc").Limit(limit).Find(&entries)
	if result.Error != nil {
		return nil, result.Error
	}

	return entries, nil
}

// RecentCommands returns the command text of up to limit entries, most
// recent first. This is the rolling window suggestion analysis reads.
func (m *Manager) RecentCommands(directory string, limit int) ([]string, error) {
	entries, err := m.RecentEntries(directory, limit)
	if err != nil {
		return nil, err
	}

	commands := make([]string, len(entries))
	for i, entry := range entries {
		commands[i] = entry.Command
	}
	return commands, nil
}

// LastError returns the stderr of the most recent failed command, or
// an empty string when the last command succeeded.
func (m *Manager) LastError() (string, error) {
	entries, err := m.RecentEntries("", 1)
	if err != nil {
		return "", err
	}
	if len(entries) == 0 {
		return "", nil
	}
	last := entries[0]
	if last.ExitCode.Valid && last.ExitCode.Int32 != 0 {
		return last.ErrorOutput, nil
	}
	return "", nil
}

// RecentByPrefix returns entries whose command starts with prefix,
// most recent first.
func (m *Manager) RecentByPrefix(prefix string, limit int) ([]Entry, error) {
	var entries []Entry
	result := m.db.Where("command LIKE ?", prefix+"%").
		Order("created_at desc, id desc").
		Limit(limit).
		Find(&entries)
	if result.Error != nil {
		return nil, result.Error
	}

	return entries, nil
}

// Search returns entries containing the given substring, most recent
// first.
func (m *Manager) Search(query string, limit int) ([]Entry, error) {
	var entries []Entry
	result := m.db.Where("command LIKE ?", "%"+query+"%").
		Order("created_at desc, id desc").
		Limit(limit).
		Find(&entries)
	if result.Error != nil {
		return nil, result.Error
	}

	return entries, nil
}

// Delete removes one entry by id.
func (m *Manager) Delete(id uint) error {
	result := m.db.Delete(&Entry{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("no history entry found with id %d", id)
	}

	return nil
}

// Reset removes every entry.
func (m *Manager) Reset() error {
	result := m.db.Exec("DELETE FROM entries")
	if result.Error != nil {
		return result.Error
	}

	return nil
}
