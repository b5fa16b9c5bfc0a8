package customer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"

	"retail-customers/internal/domain"
)

// File stores customers as a JSON array in a single file. Every call reads
// the whole file, so changes made by other processes are picked up.
type File struct {
	mu     sync.Mutex
	path   string
	logger *zap.Logger
}

// NewFile returns a Repository backed by the JSON file at path, creating it
// (and its directory) when missing.
func NewFile(path string, logger *zap.Logger) (*File, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := &File{path: path, logger: logger}
	if err := r.ensure(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *File) ensure() error {
	if err := os.MkdirAll(filepath.Dir(r.path), 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	if _, err := os.Stat(r.path); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("stat data file: %w", err)
	}
	if err := r.write(nil); err != nil {
		return err
	}
	r.logger.Info("created customer data file", zap.String("path", r.path))
	return nil
}

func (r *File) Save(_ context.Context, c *domain.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	records, err := r.read()
	if err != nil {
		return err
	}
	records = append(records, ToRecord(c))
	if err := r.write(records); err != nil {
		return err
	}
	r.logger.Debug("saved customer", zap.String("id", c.ID().String()), zap.Int("count", len(records)))
	return nil
}

func (r *File) FindByID(_ context.Context, id domain.CustomerID) (*domain.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	records, err := r.read()
	if err != nil {
		return nil, err
	}
	idx := indexOf(records, id)
	if idx < 0 {
		r.logger.Debug("customer not found", zap.String("id", id.String()), zap.Int("count", len(records)))
		return nil, nil
	}
	return records[idx].Customer()
}

func (r *File) FindAll(_ context.Context) ([]*domain.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	records, err := r.read()
	if err != nil {
		return nil, err
	}
	return decodeAll(records)
}

func (r *File) Update(_ context.Context, c *domain.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	records, err := r.read()
	if err != nil {
		return err
	}
	idx := indexOf(records, c.ID())
	if idx < 0 {
		return notFound(c.ID())
	}
	records[idx] = ToRecord(c)
	if err := r.write(records); err != nil {
		return err
	}
	r.logger.Debug("updated customer", zap.String("id", c.ID().String()))
	return nil
}

func (r *File) Delete(_ context.Context, id domain.CustomerID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	records, err := r.read()
	if err != nil {
		return err
	}
	idx := indexOf(records, id)
	if idx < 0 {
		return notFound(id)
	}
	records = append(records[:idx], records[idx+1:]...)
	if err := r.write(records); err != nil {
		return err
	}
	r.logger.Debug("deleted customer", zap.String("id", id.String()), zap.Int("remaining", len(records)))
	return nil
}

func (r *File) FindAllSortedByCredit(ctx context.Context, ascending bool) ([]*domain.Customer, error) {
	customers, err := r.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	SortByCredit(customers, ascending)
	return customers, nil
}

// Clear truncates the store to an empty list.
func (r *File) Clear() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.write(nil)
}

// Count reports how many records the file holds.
func (r *File) Count() (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	records, err := r.read()
	if err != nil {
		return 0, err
	}
	return len(records), nil
}

func (r *File) read() ([]Record, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read data file: %w", err)
	}
	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		r.logger.Error("decode data file", zap.String("path", r.path), zap.Error(err))
		return nil, fmt.Errorf("decode data file %s: %w", r.path, err)
	}
	return records, nil
}

// write replaces the file through a temp file so readers never see a partial list.
func (r *File) write(records []Record) error {
	if records == nil {
		records = []Record{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encode customers: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(r.path), filepath.Base(r.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), r.path); err != nil {
		r.logger.Error("replace data file", zap.String("path", r.path), zap.Error(err))
		return fmt.Errorf("replace data file: %w", err)
	}
	return nil
}

func indexOf(records []Record, id domain.CustomerID) int {
	for i, rec := range records {
		if rec.ID == id.String() {
			return i
		}
	}
	return -1
}

func decodeAll(records []Record) ([]*domain.Customer, error) {
	out := make([]*domain.Customer, 0, len(records))
	for _, rec := range records {
		c, err := rec.Customer()
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}
