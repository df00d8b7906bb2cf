// Package logging writes per-session log files with charmbracelet/log and
// supports reading them back for the tail command.
package logging

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// LogExt is the file extension of session logs.
const LogExt = ".log"

// Options selects the level and formatter of a logger.
type Options struct {
	Level  string // debug, info, warn, error
	Format string // text, json, logfmt
}

// Session owns one log file for a single greenthumb invocation.
type Session struct {
	Dir     string
	ID      string
	LogPath string
	Logger  *log.Logger
	file    *os.File
}

// Open creates the log directory for the garden stored at dataFile and a
// fresh session log inside it.
func Open(baseDir, dataFile string, opts Options) (*Session, error) {
	logDir, err := FindLogDir(baseDir, dataFile)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}

	id := sessionID()
	logPath := filepath.Join(logDir, id+LogExt)
	file, err := os.Create(logPath)
	if err != nil {
		return nil, fmt.Errorf("create log file: %w", err)
	}

	logger := NewLogger(file, opts)
	logger.SetReportTimestamp(true)

	return &Session{
		Dir:     logDir,
		ID:      id,
		LogPath: logPath,
		Logger:  logger,
		file:    file,
	}, nil
}

// Close closes the log file.
func (s *Session) Close() error {
	if s == nil || s.file == nil {
		return nil
	}
	return s.file.Close()
}

// NewLogger returns a logger writing to w.
func NewLogger(w io.Writer, opts Options) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Level:     ParseLevel(opts.Level),
		Formatter: ParseFormatter(opts.Format),
	})
}

// NewConsole returns a logger for short human-facing notices on w.
func NewConsole(w io.Writer, level string) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Level:     ParseLevel(level),
		Formatter: log.TextFormatter,
		Prefix:    "greenthumb",
	})
}

// ParseLevel parses a level name. Unknown names map to info.
func ParseLevel(level string) log.Level {
	switch strings.ToLower(level) {
	case "debug":
		return log.DebugLevel
	case "warn", "warning":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}

// ParseFormatter parses a formatter name. Unknown names map to text.
func ParseFormatter(format string) log.Formatter {
	switch strings.ToLower(format) {
	case "json":
		return log.JSONFormatter
	case "logfmt":
		return log.LogfmtFormatter
	default:
		return log.TextFormatter
	}
}

// FindLogDir returns the log directory used for the garden stored at
// dataFile. Relative base directories are resolved against the data
// file's directory.
func FindLogDir(baseDir, dataFile string) (string, error) {
	if baseDir == "" {
		return "", errors.New("log base dir is empty")
	}
	if dataFile == "" {
		dataFile = "plants.json"
	}
	if abs, err := filepath.Abs(dataFile); err == nil {
		dataFile = abs
	}

	baseDir = resolveBaseDir(baseDir, filepath.Dir(dataFile))
	return filepath.Join(baseDir, gardenSlug(dataFile)), nil
}

func resolveBaseDir(baseDir, workDir string) string {
	if filepath.IsAbs(baseDir) {
		return filepath.Clean(baseDir)
	}
	return filepath.Clean(filepath.Join(workDir, baseDir))
}

// gardenSlug names a garden after the directory holding its data file,
// with a short hash of the full path to keep gardens apart.
func gardenSlug(dataFile string) string {
	name := filepath.Base(filepath.Dir(dataFile))
	return fmt.Sprintf("%s-%s", slugify(name), hashPath(dataFile))
}

func slugify(input string) string {
	if strings.TrimSpace(input) == "" {
		return "garden"
	}

	var b strings.Builder
	lastUnderscore := false
	for i := 0; i < len(input); i++ {
		c := input[i]
		valid := (c >= 'A' && c <= 'Z') ||
			(c >= 'a' && c <= 'z') ||
			(c >= '0' && c <= '9') ||
			c == '.' || c == '_' || c == '-'
		if !valid {
			if !lastUnderscore {
				b.WriteByte('_')
				lastUnderscore = true
			}
			continue
		}
		b.WriteByte(c)
		lastUnderscore = false
	}

	slug := strings.Trim(b.String(), "_.")
	if slug == "" {
		return "garden"
	}
	return slug
}

func hashPath(input string) string {
	sum := sha1.Sum([]byte(input))
	return hex.EncodeToString(sum[:])[:8]
}

func sessionID() string {
	return fmt.Sprintf("%s-%d", time.Now().UTC().Format("20060102-150405.000"), os.Getpid())
}

// SessionInfo describes a session log on disk.
type SessionInfo struct {
	ID      string
	Path    string
	Size    int64
	ModTime time.Time
}

// FindSessions lists the session logs in logDir, newest first.
// A missing directory yields no sessions.
func FindSessions(logDir string) ([]SessionInfo, error) {
	entries, err := os.ReadDir(logDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read log dir: %w", err)
	}

	var sessions []SessionInfo
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), LogExt) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		sessions = append(sessions, SessionInfo{
			ID:      strings.TrimSuffix(entry.Name(), LogExt),
			Path:    filepath.Join(logDir, entry.Name()),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}

	sort.Slice(sessions, func(i, j int) bool {
		if sessions[i].ModTime.Equal(sessions[j].ModTime) {
			return sessions[i].ID > sessions[j].ID
		}
		return sessions[i].ModTime.After(sessions[j].ModTime)
	})
	return sessions, nil
}

// FindLatestLog returns the newest session log in logDir, or "" if none.
func FindLatestLog(logDir string) (string, error) {
	sessions, err := FindSessions(logDir)
	if err != nil || len(sessions) == 0 {
		return "", err
	}
	return sessions[0].Path, nil
}

// TailLog copies the last n lines of path to w (the whole file when n <= 0).
// With follow set it keeps copying appended data until ctx is done.
func TailLog(ctx context.Context, w io.Writer, path string, n int, follow bool) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer file.Close()

	if n > 0 {
		if err := tailSeek(file, n); err != nil {
			return fmt.Errorf("seek to tail position: %w", err)
		}
	}

	if _, err := io.Copy(w, file); err != nil {
		return err
	}
	if !follow {
		return nil
	}

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if _, err := io.Copy(w, file); err != nil {
				return err
			}
		}
	}
}

// tailSeek positions file at the start of the n-th line from the end.
func tailSeek(file *os.File, n int) error {
	const chunk = 4096

	stat, err := file.Stat()
	if err != nil {
		return err
	}
	size := stat.Size()

	// Ignore a trailing newline so it does not count as an empty line.
	end := size
	if end > 0 {
		last := make([]byte, 1)
		if _, err := file.ReadAt(last, end-1); err != nil {
			return err
		}
		if last[0] == '\n' {
			end--
		}
	}

	buf := make([]byte, chunk)
	newlines := 0
	pos := end
	for pos > 0 {
		readSize := int64(chunk)
		if pos < readSize {
			readSize = pos
		}
		pos -= readSize
		if _, err := file.ReadAt(buf[:readSize], pos); err != nil && err != io.EOF {
			return err
		}
		for i := readSize - 1; i >= 0; i-- {
			if buf[i] != '\n' {
				continue
			}
			newlines++
			if newlines == n {
				_, err := file.Seek(pos+i+1, io.SeekStart)
				return err
			}
		}
	}

	_, err = file.Seek(0, io.SeekStart)
	return err
}
