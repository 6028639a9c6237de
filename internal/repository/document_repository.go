package repository

import (
	"fmt"
	"time"

	"github.com/tuanminh7/website-lms/internal/model"
)

const documentsFile = "documents.json"

type DocumentRepository struct {
	store *Store
}

func NewDocumentRepository(store *Store) *DocumentRepository {
	return &DocumentRepository{store: store}
}

func (r *DocumentRepository) All() ([]model.Document, error) {
	var docs []model.Document
	err := r.store.Load(documentsFile, &docs)
	return docs, err
}

func (r *DocumentRepository) Add(doc *model.Document) error {
	var docs []model.Document
	return r.store.Update(documentsFile, &docs, func() (bool, error) {
		doc.ID = fmt.Sprintf("doc_%d", len(docs)+1)
		doc.CreatedAt = time.Now()
		docs = append(docs, *doc)
		return true, nil
	})
}
