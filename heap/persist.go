package heap

import (
	"fmt"
	"os"
)

// Save writes the manager's live image, byte for byte, to path. It takes
// the shared lock, consistent with Validate/Stats/Iter, so a save can run
// alongside other readers. The file on disk is exactly totalSize
// bytes and needs no header or footer beyond the image itself; Load
// reads it back unmodified.
func (m *Manager) Save(path string) error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.buf == nil {
		return ErrNoManager
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("heap: save %s: %w: %w", path, ErrIO, err)
	}
	defer f.Close()

	if _, err := f.Write(m.buf); err != nil {
		return fmt.Errorf("heap: save %s: %w: %w", path, ErrIO, err)
	}
	if err := f.Sync(); err != nil {
		return fmt.Errorf("heap: save %s: %w: %w", path, ErrIO, err)
	}
	return nil
}

// LoadFile reads the image at path into a freshly allocated buffer and
// installs it as the current manager via Load. The buffer is never handed
// to the caller, but as with every Load, the returned Manager reports
// OwnsMemory false.
func LoadFile(path string) (*Manager, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("heap: load %s: %w: %w", path, ErrIO, err)
	}
	m, err := Load(data)
	if err != nil {
		return nil, fmt.Errorf("heap: load %s: %w", path, err)
	}
	return m, nil
}
