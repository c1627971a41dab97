package users

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/atish-2023/Ecommerce-Website/internal/storage"
)

var ErrNotFound = errors.New("user not found")

// FileStore keeps all users in one JSON array document, rewritten wholesale on
// every mutation. mu serializes the read-modify-write.
type FileStore struct {
	docs storage.Store
	name string
	mu   sync.Mutex
}

func NewFileStore(docs storage.Store, name string) *FileStore {
	return &FileStore{docs: docs, name: name}
}

func (s *FileStore) read(ctx context.Context) ([]User, error) {
	data, err := s.docs.Load(ctx, s.name)
	if err != nil {
		if errors.Is(err, storage.ErrNotExist) {
			return []User{}, nil
		}
		return nil, err
	}
	var out []User
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *FileStore) write(ctx context.Context, all []User) error {
	data, err := json.MarshalIndent(all, "", "  ")
	if err != nil {
		return err
	}
	return s.docs.Save(ctx, s.name, data)
}

func (s *FileStore) All(ctx context.Context) ([]User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.read(ctx)
}

func (s *FileStore) FindByEmail(ctx context.Context, email string) (User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.read(ctx)
	if err != nil {
		return User{}, err
	}
	for _, u := range all {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return User{}, ErrNotFound
}

func (s *FileStore) FindByID(ctx context.Context, id string) (User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.read(ctx)
	if err != nil {
		return User{}, err
	}
	for _, u := range all {
		if u.ID == id {
			return u, nil
		}
	}
	return User{}, ErrNotFound
}

func (s *FileStore) Create(ctx context.Context, u User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.read(ctx)
	if err != nil {
		return err
	}
	all = append(all, u)
	return s.write(ctx, all)
}

// UpdateLastLogin stamps the user's lastLogin and returns the updated record.
func (s *FileStore) UpdateLastLogin(ctx context.Context, id string) (User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.read(ctx)
	if err != nil {
		return User{}, err
	}
	for i := range all {
		if all[i].ID == id {
			all[i].LastLogin = time.Now().UTC().Format("2006-01-02T15:04:05.000Z07:00")
			if err := s.write(ctx, all); err != nil {
				return User{}, err
			}
			return all[i], nil
		}
	}
	return User{}, ErrNotFound
}
