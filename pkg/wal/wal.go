// Package wal is an append-only JSON-lines log used to rebuild in-memory state after a restart.
package wal

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"sync"
)

// FileMode is the permission used when the log file is created (rw-r--r--).
const FileMode fs.FileMode = 0644

// logFile is the part of *os.File the log uses.
type logFile interface {
	io.ReadWriteSeeker
	io.Closer
	Stat() (fs.FileInfo, error)
	Sync() error
	Truncate(size int64) error
}

// WAL appends one JSON document per line and fsyncs after every record.
type WAL struct {
	mu   sync.Mutex
	file logFile
}

// Open opens or creates the log at path in append mode.
func Open(path string) (*WAL, error) {
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_RDWR, FileMode)
	if err != nil {
		return nil, fmt.Errorf("open wal %s: %w", path, err)
	}
	return &WAL{file: file}, nil
}

// Append encodes v as one line and syncs it to disk before returning.
// On failure the file is cut back to its previous length so no partial line is left behind.
func (w *WAL) Append(v any) error {
	line, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode wal record: %w", err)
	}
	line = append(line, '\n')

	w.mu.Lock()
	defer w.mu.Unlock()

	info, err := w.file.Stat()
	if err != nil {
		return fmt.Errorf("stat wal: %w", err)
	}
	if err := w.write(line); err != nil {
		if terr := w.file.Truncate(info.Size()); terr != nil {
			return errors.Join(fmt.Errorf("append wal record: %w", err), fmt.Errorf("truncate wal: %w", terr))
		}
		return fmt.Errorf("append wal record: %w", err)
	}
	return nil
}

func (w *WAL) write(line []byte) error {
	if _, err := w.file.Write(line); err != nil {
		return err
	}
	return w.file.Sync()
}

// Replay feeds every record, oldest first, to fn. A torn final line left by a crash is cut
// off so later appends start clean; any other decode failure is returned.
func (w *WAL) Replay(fn func(raw json.RawMessage) error) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if _, err := w.file.Seek(0, io.SeekStart); err != nil {
		return err
	}
	decoder := json.NewDecoder(w.file)
	var good int64
	for {
		var raw json.RawMessage
		if err := decoder.Decode(&raw); err != nil {
			switch {
			case errors.Is(err, io.EOF):
				return nil
			case errors.Is(err, io.ErrUnexpectedEOF):
				return w.file.Truncate(good)
			}
			return fmt.Errorf("decode wal record: %w", err)
		}
		if err := fn(raw); err != nil {
			return err
		}
		good = decoder.InputOffset()
	}
}

// Close closes the underlying file.
func (w *WAL) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.file.Close()
}
