package registry

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"jarvis/internal/logger"
)

// LoadFile reads and parses the database at path. Compressed snapshots are
// decompressed transparently. A missing file is reported with an error
// wrapping fs.ErrNotExist.
func LoadFile(path string) (*Store, error) {
	r, err := openDatabase(path)
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", path, err)
	}
	defer func() {
		if cerr := r.Close(); cerr != nil {
			logger.Warn("[WARN] Failed to close database %s: %v\n", path, cerr)
		}
	}()

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read database %s: %w", path, err)
	}

	st, err := Load(data)
	if err != nil {
		return nil, err
	}
	logger.Debug("[DEBUG] Loaded %d entries from %s\n", st.Len(), path)
	return st, nil
}

// SaveFile rewrites the database at path with the full contents of st.
func SaveFile(path string, st *Store) error {
	if IsCompressed(path) {
		return fmt.Errorf("%w: %s", ErrReadOnly, path)
	}

	data, err := st.Serialize()
	if err != nil {
		return fmt.Errorf("encode database: %w", err)
	}

	logger.Debug("[DEBUG] Writing %d entries to %s\n", st.Len(), path)
	if err := writeFile(path, data); err != nil {
		return fmt.Errorf("write database %s: %w", path, err)
	}
	return nil
}

// writeFile replaces the contents of the file path points to. Symlinks are
// followed so the link itself survives. The new contents go through a temp
// file and a rename; when the directory does not allow that, an existing
// file is truncated and rewritten in place instead.
func writeFile(path string, data []byte) error {
	target := path
	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		target = resolved
	}

	info, _ := os.Stat(target)

	err := writeFileAtomic(target, data, info)
	if err != nil && info != nil && errors.Is(err, fs.ErrPermission) {
		logger.Debug("[DEBUG] Cannot replace %s atomically (%v), rewriting in place\n", target, err)
		return writeFileInPlace(target, data)
	}
	return err
}

// writeFileAtomic writes data to a temporary file next to path and renames it
// into place, so a crash mid-write never leaves a truncated database.
//
// When prev describes the file being replaced, its mode and owner are copied
// to the new file; otherwise the file is created 0644.
func writeFileAtomic(path string, data []byte, prev os.FileInfo) error {
	perm := os.FileMode(0o644)
	if prev != nil {
		perm = prev.Mode().Perm()
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}

	tmpPath := tmp.Name()
	committed := false
	defer func() {
		_ = tmp.Close()
		if !committed {
			_ = os.Remove(tmpPath)
		}
	}()

	// Best-effort; some filesystems do not support chmod or chown.
	_ = tmp.Chmod(perm)
	if prev != nil {
		keepOwner(tmp, prev)
	}

	if _, err := tmp.Write(data); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	// Renaming over an existing file fails on Windows; remove it and retry.
	if err := os.Rename(tmpPath, path); err != nil {
		if errors.Is(err, fs.ErrPermission) {
			return fmt.Errorf("rename temp file: %w", err)
		}
		_ = os.Remove(path)
		if err2 := os.Rename(tmpPath, path); err2 != nil {
			return fmt.Errorf("rename temp file: %w", err)
		}
	}

	committed = true
	return nil
}

// writeFileInPlace truncates the existing file at path and writes data into
// it. The file keeps its inode, mode and owner.
func writeFileInPlace(path string, data []byte) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_TRUNC, 0)
	if err != nil {
		return fmt.Errorf("open for writing: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			logger.Warn("[WARN] Failed to close %s: %v\n", path, cerr)
		}
	}()

	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	if err := f.Sync(); err != nil {
		return fmt.Errorf("sync: %w", err)
	}
	return nil
}
