package backend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"storefront-cms/internal/domain/siteconfig"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SQL keeps the document in one row of the site_config table, keyed by a
// fixed id. Works on any gorm dialect; Postgres and sqlite are wired.
type SQL struct {
	db *gorm.DB
	id uint
}

func NewSQL(db *gorm.DB, id uint) *SQL {
	if id == 0 {
		id = siteconfig.DefaultRecordID
	}
	return &SQL{db: db, id: id}
}

func (s *SQL) Name() string { return KindSQL }

func (s *SQL) Read(ctx context.Context) ([]byte, error) {
	var rec siteconfig.Record
	err := s.db.WithContext(ctx).First(&rec, "id = ?", s.id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load site_config %d: %w", s.id, err)
	}
	if len(rec.Data) == 0 {
		return nil, ErrNotFound
	}
	return []byte(rec.Data), nil
}

func (s *SQL) Write(ctx context.Context, doc []byte) error {
	rec := siteconfig.Record{
		ID:      s.id,
		Data:    datatypes.JSON(doc),
		Version: peekVersion(doc),
	}

	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"data", "version", "updated_at"}),
		}).
		Create(&rec).Error
	if err != nil {
		return fmt.Errorf("upsert site_config %d: %w", s.id, err)
	}
	return nil
}

func peekVersion(doc []byte) int {
	var head struct {
		Version int `json:"version"`
	}
	_ = json.Unmarshal(doc, &head)
	return head.Version
}
