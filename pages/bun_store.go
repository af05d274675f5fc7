package pages

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"
)

// siteDocumentModel is the single-row table holding the serialized site
// document. The whole document is one JSON blob; the CMS never issues
// per-page writes.
type siteDocumentModel struct {
	bun.BaseModel `bun:"table:site_documents"`

	ID        int       `bun:",pk"`
	Document  []byte    `bun:"document"`
	UpdatedAt time.Time `bun:"updated_at"`
}

// BunStore persists the site document using a Bun-backed database.
type BunStore struct {
	db *bun.DB
}

// NewBunStore constructs a Bun-backed store.
func NewBunStore(db *bun.DB) *BunStore {
	return &BunStore{db: db}
}

// Init creates the backing table when it does not exist.
func (s *BunStore) Init(ctx context.Context) error {
	if s.db == nil {
		return errors.New("pages: bun store requires a database")
	}
	_, err := s.db.NewCreateTable().Model((*siteDocumentModel)(nil)).IfNotExists().Exec(ctx)
	return err
}

// Load reads and decodes the site document. A missing row yields an empty
// document rather than an error so a fresh database just works.
func (s *BunStore) Load(ctx context.Context) (*SiteData, error) {
	if s.db == nil {
		return nil, errors.New("pages: bun store requires a database")
	}
	var model siteDocumentModel
	if err := s.db.NewSelect().Model(&model).Where("id = ?", 1).Scan(ctx); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return &SiteData{}, nil
		}
		return nil, err
	}

	doc := &SiteData{}
	if len(model.Document) > 0 {
		if err := json.Unmarshal(model.Document, doc); err != nil {
			return nil, fmt.Errorf("pages: decode site document: %w", err)
		}
	}
	return doc, nil
}

// Save serializes and upserts the site document into its singleton row.
func (s *BunStore) Save(ctx context.Context, data *SiteData) error {
	if s.db == nil {
		return errors.New("pages: bun store requires a database")
	}
	if data == nil {
		data = &SiteData{}
	}

	encoded, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("pages: encode site document: %w", err)
	}

	var existing siteDocumentModel
	created := false
	if err := s.db.NewSelect().Model(&existing).Where("id = ?", 1).Scan(ctx); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			created = true
		} else {
			return err
		}
	}

	model := siteDocumentModel{
		ID:        1,
		Document:  encoded,
		UpdatedAt: time.Now().UTC(),
	}
	if created {
		_, err = s.db.NewInsert().Model(&model).Exec(ctx)
	} else {
		_, err = s.db.NewUpdate().
			Model(&model).
			Column("document", "updated_at").
			WherePK().
			Exec(ctx)
	}
	return err
}
