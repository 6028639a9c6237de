// Package repository là tầng lưu trữ phẳng: mỗi loại dữ liệu là một file JSON
// trong thư mục data, đọc/ghi trọn file mỗi lần thao tác. Store giữ một
// RWMutex riêng cho từng file để chu trình đọc-sửa-ghi không nuốt mất ghi
// của request chạy song song.
package repository

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
)

type Store struct {
	dir   string
	mu    sync.Mutex
	locks map[string]*sync.RWMutex
}

func NewStore(dir string) (*Store, error) {
	if dir == "" {
		dir = "data"
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return &Store{
		dir:   dir,
		locks: make(map[string]*sync.RWMutex),
	}, nil
}

func (s *Store) Dir() string {
	return s.dir
}

func (s *Store) path(name string) string {
	return filepath.Join(s.dir, name)
}

func (s *Store) fileLock(name string) *sync.RWMutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[name]
	if !ok {
		l = &sync.RWMutex{}
		s.locks[name] = l
	}
	return l
}

// Load giải mã file JSON vào v. File chưa tồn tại, rỗng hoặc hỏng định dạng
// được coi như tài liệu rỗng (v giữ nguyên giá trị zero); dữ liệu hỏng không
// được phép chặn cả trang.
func (s *Store) Load(name string, v any) error {
	l := s.fileLock(name)
	l.RLock()
	defer l.RUnlock()
	return s.read(name, v)
}

// Save ghi đè trọn file bằng nội dung của v.
func (s *Store) Save(name string, v any) error {
	l := s.fileLock(name)
	l.Lock()
	defer l.Unlock()
	return s.write(name, v)
}

// Update chạy một chu trình đọc-sửa-ghi dưới khóa ghi của file: đọc vào v,
// gọi fn, rồi ghi lại v nếu fn trả về true.
func (s *Store) Update(name string, v any, fn func() (bool, error)) error {
	l := s.fileLock(name)
	l.Lock()
	defer l.Unlock()

	if err := s.read(name, v); err != nil {
		return err
	}
	save, err := fn()
	if err != nil {
		return err
	}
	if !save {
		return nil
	}
	return s.write(name, v)
}

func (s *Store) read(name string, v any) error {
	data, err := os.ReadFile(s.path(name))
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		// File hỏng định dạng: coi như rỗng.
		return nil
	}
	return nil
}

func (s *Store) write(name string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path(name), data, 0644)
}
