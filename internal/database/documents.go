package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/pageza/dietwise/backend/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrNotFound = errors.New("document not found")

// DocumentStore is a hierarchical key-path document store. Each document is
// addressed by a slash-separated path and belongs to exactly one collection.
type DocumentStore interface {
	// Get returns the document at path, or ErrNotFound.
	Get(ctx context.Context, path string) (*models.Document, error)
	// List returns the documents directly inside collection, ordered by document ID.
	List(ctx context.Context, collection string) ([]models.Document, error)
	// Set writes data at path, fully replacing any previous content.
	Set(ctx context.Context, path string, data interface{}) error
	// Create writes data at path only if no document exists there yet.
	// It reports whether the document was created.
	Create(ctx context.Context, path string, data interface{}) (bool, error)
}

// GormDocumentStore stores documents as JSON rows in a single table.
type GormDocumentStore struct {
	db *gorm.DB
}

// Ensure GormDocumentStore implements DocumentStore
var _ DocumentStore = (*GormDocumentStore)(nil)

// NewDocumentStore creates a new GormDocumentStore
func NewDocumentStore(db *gorm.DB) *GormDocumentStore {
	return &GormDocumentStore{db: db}
}

func (s *GormDocumentStore) Get(ctx context.Context, path string) (*models.Document, error) {
	if _, _, err := splitDocumentPath(path); err != nil {
		return nil, err
	}

	var doc models.Document
	if err := s.db.WithContext(ctx).Where("path = ?", path).First(&doc).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get document %s: %w", path, err)
	}
	return &doc, nil
}

func (s *GormDocumentStore) List(ctx context.Context, collection string) ([]models.Document, error) {
	if err := validateCollectionPath(collection); err != nil {
		return nil, err
	}

	var docs []models.Document
	if err := s.db.WithContext(ctx).
		Where("collection = ?", collection).
		Order("doc_id ASC").
		Find(&docs).Error; err != nil {
		return nil, fmt.Errorf("failed to list collection %s: %w", collection, err)
	}
	return docs, nil
}

func (s *GormDocumentStore) Set(ctx context.Context, path string, data interface{}) error {
	doc, err := newDocument(path, data)
	if err != nil {
		return err
	}

	err = s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "path"}},
		DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
	}).Create(doc).Error
	if err != nil {
		return fmt.Errorf("failed to set document %s: %w", path, err)
	}
	return nil
}

func (s *GormDocumentStore) Create(ctx context.Context, path string, data interface{}) (bool, error) {
	doc, err := newDocument(path, data)
	if err != nil {
		return false, err
	}

	result := s.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(doc)
	if result.Error != nil {
		return false, fmt.Errorf("failed to create document %s: %w", path, result.Error)
	}
	return result.RowsAffected == 1, nil
}

func newDocument(path string, data interface{}) (*models.Document, error) {
	collection, id, err := splitDocumentPath(path)
	if err != nil {
		return nil, err
	}

	raw, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal document %s: %w", path, err)
	}

	return &models.Document{
		Path:       path,
		Collection: collection,
		DocID:      id,
		Data:       datatypes.JSON(raw),
	}, nil
}

// Decode unmarshals the document payload into dest.
func Decode(doc *models.Document, dest interface{}) error {
	if err := json.Unmarshal(doc.Data, dest); err != nil {
		return fmt.Errorf("failed to decode document %s: %w", doc.Path, err)
	}
	return nil
}

// GetInto loads the document at path into dest. It reports false, with no
// error, when the document does not exist.
func GetInto(ctx context.Context, store DocumentStore, path string, dest interface{}) (bool, error) {
	doc, err := store.Get(ctx, path)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, Decode(doc, dest)
}
