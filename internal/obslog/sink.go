package obslog

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"firsgate/internal/domain"
	"firsgate/internal/filex"
	"firsgate/internal/port"
)

// FileSink appends one JSON line per entry to the success or error log file.
type FileSink struct {
	successPath string
	errorPath   string
	dirs        filex.DirCache
}

// NewFileSink creates a FileSink writing to the given log files.
func NewFileSink(successPath, errorPath string) *FileSink {
	return &FileSink{successPath: successPath, errorPath: errorPath}
}

func (s *FileSink) pathFor(kind domain.LogKind) string {
	if kind == domain.LogKindSuccess {
		return s.successPath
	}
	return s.errorPath
}

// Record appends entry to the file for its channel under an exclusive lock.
func (s *FileSink) Record(_ context.Context, entry *domain.LogEntry) error {
	path := s.successPath
	if entry.IsError() {
		path = s.errorPath
	}
	if err := s.dirs.Ensure(filepath.Dir(path)); err != nil {
		return fmt.Errorf("obslog.FileSink: %w", err)
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(entry); err != nil {
		return fmt.Errorf("obslog.FileSink: encoding entry: %w", err)
	}
	if err := filex.AppendLocked(path, buf.Bytes()); err != nil {
		return fmt.Errorf("obslog.FileSink: %w", err)
	}
	return nil
}

// Recent returns up to limit entries of kind, newest first. Lines that do
// not decode are skipped.
func (s *FileSink) Recent(_ context.Context, kind domain.LogKind, limit int) ([]domain.LogEntry, error) {
	lines, err := readLines(s.pathFor(kind))
	if err != nil {
		return nil, fmt.Errorf("obslog.Recent: %w", err)
	}
	if limit > 0 && len(lines) > limit {
		lines = lines[len(lines)-limit:]
	}

	entries := make([]domain.LogEntry, 0, len(lines))
	for i := len(lines) - 1; i >= 0; i-- {
		var e domain.LogEntry
		if err := json.Unmarshal([]byte(lines[i]), &e); err != nil {
			continue
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// Statistics counts the lines of each log file that mention date.
func (s *FileSink) Statistics(_ context.Context, date string) (*domain.LogStatistics, error) {
	stats := &domain.LogStatistics{Date: date}
	for _, c := range []struct {
		path  string
		count *int
	}{
		{s.successPath, &stats.SuccessCount},
		{s.errorPath, &stats.ErrorCount},
	} {
		lines, err := readLines(c.path)
		if err != nil {
			return nil, fmt.Errorf("obslog.Statistics: %w", err)
		}
		for _, line := range lines {
			if strings.Contains(line, date) {
				*c.count++
			}
		}
	}
	stats.TotalCount = stats.SuccessCount + stats.ErrorCount
	return stats, nil
}

func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	var lines []string
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			lines = append(lines, line)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return lines, nil
}

// TableSink writes entries to the success and error log tables.
type TableSink struct {
	repo port.LogRepository
}

// NewTableSink creates a TableSink over repo.
func NewTableSink(repo port.LogRepository) *TableSink {
	return &TableSink{repo: repo}
}

// Record inserts entry into the table for its channel.
func (s *TableSink) Record(ctx context.Context, entry *domain.LogEntry) error {
	if entry.IsError() {
		return s.repo.InsertError(ctx, entry)
	}
	return s.repo.InsertSuccess(ctx, entry)
}

// Recent reads entries from the log tables, newest first.
func (s *TableSink) Recent(ctx context.Context, kind domain.LogKind, limit int) ([]domain.LogEntry, error) {
	return s.repo.Recent(ctx, kind, limit)
}

// Statistics counts table rows logged on date.
func (s *TableSink) Statistics(ctx context.Context, date string) (*domain.LogStatistics, error) {
	success, err := s.repo.CountOn(ctx, domain.LogKindSuccess, date)
	if err != nil {
		return nil, fmt.Errorf("obslog.Statistics: %w", err)
	}
	failed, err := s.repo.CountOn(ctx, domain.LogKindError, date)
	if err != nil {
		return nil, fmt.Errorf("obslog.Statistics: %w", err)
	}
	return &domain.LogStatistics{
		Date:         date,
		SuccessCount: success,
		ErrorCount:   failed,
		TotalCount:   success + failed,
	}, nil
}
