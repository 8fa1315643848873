package logging

import (
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

const logFileName = "atelo.log"

// Rotator is an io.Writer that rotates the log file by size, keeping a
// bounded set of gzip-compressed backups. The dashboard logs to a file
// because stderr belongs to the terminal UI while it runs.
type Rotator struct {
	mu          sync.Mutex
	baseDir     string
	maxSize     int64
	maxAge      time.Duration
	maxBackups  int
	currentFile *os.File
	currentSize int64
}

// NewRotator opens (or creates) the log file under baseDir.
func NewRotator(baseDir string, maxSizeMB, maxBackups, maxAgeDays int) (*Rotator, error) {
	r := &Rotator{
		baseDir:    baseDir,
		maxSize:    int64(maxSizeMB) * 1024 * 1024,
		maxAge:     time.Duration(maxAgeDays) * 24 * time.Hour,
		maxBackups: maxBackups,
	}

	if err := os.MkdirAll(baseDir, 0o750); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	if err := r.openCurrentFile(); err != nil {
		return nil, err
	}

	return r, nil
}

func (r *Rotator) openCurrentFile() error {
	logPath := filepath.Join(r.baseDir, logFileName)

	if info, err := os.Stat(logPath); err == nil {
		r.currentSize = info.Size()
	}

	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}

	r.currentFile = file
	return nil
}

func (r *Rotator) Write(p []byte) (n int, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.currentFile == nil {
		if err := r.openCurrentFile(); err != nil {
			return 0, err
		}
	}

	if r.currentSize+int64(len(p)) > r.maxSize {
		if err := r.rotate(); err != nil {
			return 0, err
		}
	}

	n, err = r.currentFile.Write(p)
	if err != nil {
		return n, err
	}

	r.currentSize += int64(n)
	return n, nil
}

func (r *Rotator) rotate() error {
	if r.currentFile != nil {
		if err := r.currentFile.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to close current log file: %v\n", err)
		}
	}

	timestamp := time.Now().Format("2006-01-02-15-04-05")
	backupName := fmt.Sprintf("%s.%s", logFileName, timestamp)

	currentPath := filepath.Join(r.baseDir, logFileName)
	backupPath := filepath.Join(r.baseDir, backupName)

	if err := os.Rename(currentPath, backupPath); err != nil {
		return fmt.Errorf("rotate log file: %w", err)
	}

	if err := compressFile(backupPath); err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to compress log file %s: %v\n", backupPath, err)
	} else if err := os.Remove(backupPath); err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to remove uncompressed log file %s: %v\n", backupPath, err)
	}

	r.cleanup()

	r.currentSize = 0
	return r.openCurrentFile()
}

func compressFile(filePath string) error {
	inputFile, err := os.Open(filePath)
	if err != nil {
		return err
	}
	defer func() { _ = inputFile.Close() }()

	outputFile, err := os.Create(filePath + ".gz")
	if err != nil {
		return err
	}
	defer func() { _ = outputFile.Close() }()

	gzipWriter := gzip.NewWriter(outputFile)
	defer func() { _ = gzipWriter.Close() }()

	_, err = io.Copy(gzipWriter, inputFile)
	return err
}

func (r *Rotator) cleanup() {
	files, err := os.ReadDir(r.baseDir)
	if err != nil {
		return
	}

	var backups []os.FileInfo
	now := time.Now()

	for _, file := range files {
		if file.IsDir() || !strings.HasPrefix(file.Name(), logFileName+".") {
			continue
		}

		info, err := file.Info()
		if err != nil {
			continue
		}

		if r.maxAge > 0 && now.Sub(info.ModTime()) > r.maxAge {
			_ = os.Remove(filepath.Join(r.baseDir, info.Name()))
			continue
		}

		backups = append(backups, info)
	}

	if r.maxBackups > 0 && len(backups) > r.maxBackups {
		sort.Slice(backups, func(i, j int) bool {
			return backups[i].ModTime().Before(backups[j].ModTime())
		})
		for i := 0; i < len(backups)-r.maxBackups; i++ {
			_ = os.Remove(filepath.Join(r.baseDir, backups[i].Name()))
		}
	}
}

// Close closes the underlying log file.
func (r *Rotator) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.currentFile != nil {
		return r.currentFile.Close()
	}
	return nil
}
