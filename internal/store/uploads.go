package store

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/Finempire/Ecommerce-GST-App/internal/models"
)

// UploadStatus tracks where an uploaded file sits in its lifecycle.
type UploadStatus string

const (
	StatusPending    UploadStatus = "pending"
	StatusProcessing UploadStatus = "processing"
	StatusCompleted  UploadStatus = "completed"
	StatusFailed     UploadStatus = "failed"
)

// Upload records one ingested file and the outcome of processing it.
type Upload struct {
	ID        string
	FileName  string
	Platform  string
	Status    UploadStatus
	RowCount  int
	Error     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// UploadStore persists uploads and their normalized transactions.
type UploadStore interface {
	CreateUpload(id, fileName, platform string) (*Upload, error)
	UpdateUploadStatus(id string, status UploadStatus, processingErr error) error
	RecordTransactions(uploadID string, txs []models.Transaction) error
	Upload(id string) (*Upload, error)
	Transactions(uploadID string) ([]models.Transaction, error)
	AllTransactions() []models.Transaction
}

// MemoryUploadStore is an in-memory UploadStore. It backs the CLI for a
// single run and the tests; nothing survives the process.
type MemoryUploadStore struct {
	mu           sync.RWMutex
	uploads      map[string]*Upload
	transactions map[string][]models.Transaction
	order        []string
	now          func() time.Time
}

// NewMemoryUploadStore creates an empty in-memory upload store.
func NewMemoryUploadStore() *MemoryUploadStore {
	return &MemoryUploadStore{
		uploads:      make(map[string]*Upload),
		transactions: make(map[string][]models.Transaction),
		now:          time.Now,
	}
}

// CreateUpload registers a new upload in pending state.
func (s *MemoryUploadStore) CreateUpload(id, fileName, platform string) (*Upload, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.uploads[id]; exists {
		return nil, fmt.Errorf("upload %s already exists", id)
	}

	now := s.now()
	upload := &Upload{
		ID:        id,
		FileName:  fileName,
		Platform:  platform,
		Status:    StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.uploads[id] = upload
	s.order = append(s.order, id)

	copied := *upload
	return &copied, nil
}

// UpdateUploadStatus moves an upload to the given status. A non-nil
// processingErr is recorded alongside a failed status.
func (s *MemoryUploadStore) UpdateUploadStatus(id string, status UploadStatus, processingErr error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	upload, exists := s.uploads[id]
	if !exists {
		return fmt.Errorf("upload %s not found", id)
	}

	upload.Status = status
	upload.UpdatedAt = s.now()
	if processingErr != nil {
		upload.Error = processingErr.Error()
	}
	return nil
}

// RecordTransactions stores the normalized transactions for an upload and
// updates its row count.
func (s *MemoryUploadStore) RecordTransactions(uploadID string, txs []models.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	upload, exists := s.uploads[uploadID]
	if !exists {
		return fmt.Errorf("upload %s not found", uploadID)
	}

	s.transactions[uploadID] = append(s.transactions[uploadID], txs...)
	upload.RowCount = len(s.transactions[uploadID])
	upload.UpdatedAt = s.now()
	return nil
}

// Upload returns a copy of the upload with the given id.
func (s *MemoryUploadStore) Upload(id string) (*Upload, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	upload, exists := s.uploads[id]
	if !exists {
		return nil, fmt.Errorf("upload %s not found", id)
	}
	copied := *upload
	return &copied, nil
}

// Transactions returns the normalized transactions recorded for an upload.
func (s *MemoryUploadStore) Transactions(uploadID string) ([]models.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, exists := s.uploads[uploadID]; !exists {
		return nil, fmt.Errorf("upload %s not found", uploadID)
	}
	return append([]models.Transaction(nil), s.transactions[uploadID]...), nil
}

// AllTransactions returns every stored transaction across uploads, in
// upload creation order.
func (s *MemoryUploadStore) AllTransactions() []models.Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var all []models.Transaction
	for _, id := range s.order {
		all = append(all, s.transactions[id]...)
	}
	return all
}

// Uploads returns copies of every upload sorted by creation time.
func (s *MemoryUploadStore) Uploads() []Upload {
	s.mu.RLock()
	defer s.mu.RUnlock()

	uploads := make([]Upload, 0, len(s.uploads))
	for _, id := range s.order {
		uploads = append(uploads, *s.uploads[id])
	}
	sort.SliceStable(uploads, func(i, j int) bool {
		return uploads[i].CreatedAt.Before(uploads[j].CreatedAt)
	})
	return uploads
}
