package orders

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/atish-2023/Ecommerce-Website/internal/storage"
)

// FileStore keeps all orders in one JSON array document. Every append is a
// read-modify-write of the whole document, serialized through mu so
// concurrent appends cannot lose each other's record. Cross-process writers
// are not coordinated.
type FileStore struct {
	docs storage.Store
	name string
	mu   sync.Mutex
}

func NewFileStore(docs storage.Store, name string) *FileStore {
	return &FileStore{docs: docs, name: name}
}

func (s *FileStore) read(ctx context.Context) ([]OrderRecord, error) {
	data, err := s.docs.Load(ctx, s.name)
	if err != nil {
		if errors.Is(err, storage.ErrNotExist) {
			return []OrderRecord{}, nil
		}
		return nil, err
	}
	var out []OrderRecord
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *FileStore) Append(ctx context.Context, o OrderRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.read(ctx)
	if err != nil {
		return err
	}
	all = append(all, o)

	data, err := json.MarshalIndent(all, "", "  ")
	if err != nil {
		return err
	}
	return s.docs.Save(ctx, s.name, data)
}

func (s *FileStore) FindBySessionID(ctx context.Context, sessionID string) (OrderRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.read(ctx)
	if err != nil {
		return OrderRecord{}, err
	}
	for _, o := range all {
		if o.StripeSessionID == sessionID {
			return o, nil
		}
	}
	return OrderRecord{}, ErrNotFound
}

func (s *FileStore) All(ctx context.Context) ([]OrderRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.read(ctx)
}
