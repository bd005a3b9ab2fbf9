package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"

	"newscast/apperrors"
	"newscast/config"
	"newscast/types"
)

// newsRecord is the gorm row for one NewsDocument
type newsRecord struct {
	ID              string    `gorm:"primaryKey;size:32"`
	Category        string    `gorm:"size:32;not null;index:idx_news_category"`
	Title           string    `gorm:"type:text;not null"`
	Link            string    `gorm:"type:text;not null;uniqueIndex:idx_news_link"`
	Summary         string    `gorm:"type:text"`
	PubDate         string    `gorm:"size:64"`
	CreatedAt       time.Time `gorm:"not null;index:idx_news_status_created,priority:2,sort:desc"`
	Status          string    `gorm:"size:16;not null;default:'unread';index:idx_news_status_created,priority:1"`
	StatusUpdatedAt *time.Time
}

func (newsRecord) TableName() string { return "news" }

func toRecord(d types.NewsDocument) newsRecord {
	return newsRecord{
		ID:              d.ID,
		Category:        string(d.Category),
		Title:           d.Title,
		Link:            d.Link,
		Summary:         d.Summary,
		PubDate:         d.PubDate,
		CreatedAt:       d.CreatedAt,
		Status:          string(d.Status),
		StatusUpdatedAt: d.StatusUpdatedAt,
	}
}

func (r newsRecord) toDocument() types.NewsDocument {
	return types.NewsDocument{
		ID:              r.ID,
		Category:        types.Category(r.Category),
		Title:           r.Title,
		Link:            r.Link,
		Summary:         r.Summary,
		PubDate:         r.PubDate,
		CreatedAt:       r.CreatedAt,
		Status:          types.Status(r.Status),
		StatusUpdatedAt: r.StatusUpdatedAt,
	}
}

// Postgres is the gorm-backed DocumentStore
type Postgres struct {
	db  *gorm.DB
	log zerolog.Logger
}

// NewPostgres connects, migrates the news table and returns the store
func NewPostgres(cfg *config.DatabaseConfig, log zerolog.Logger) (*Postgres, error) {
	level := gormlogger.Warn
	if cfg.LogSQL {
		level = gormlogger.Info
	}

	db, err := gorm.Open(postgres.Open(cfg.GetDSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(level),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.AutoMigrate(&newsRecord{}); err != nil {
		return nil, fmt.Errorf("failed to auto migrate: %w", err)
	}

	log.Info().Str("host", cfg.Host).Str("db", cfg.DBName).Msg("✅ Document store connected")
	return &Postgres{db: db, log: log}, nil
}

// Close releases the connection pool
func (p *Postgres) Close() error {
	sqlDB, err := p.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (p *Postgres) List(ctx context.Context, q Query) ([]types.NewsDocument, error) {
	tx := p.db.WithContext(ctx).Model(&newsRecord{})
	if q.Status != nil {
		tx = tx.Where("status = ?", string(*q.Status))
	}
	if q.Category != nil {
		tx = tx.Where("category = ?", string(*q.Category))
	}
	tx = tx.Order("created_at DESC").Order("id")
	if q.Limit > 0 {
		tx = tx.Limit(q.Limit)
	}

	var rows []newsRecord
	if err := tx.Find(&rows).Error; err != nil {
		return nil, apperrors.NewStoreError("list news", err)
	}

	docs := make([]types.NewsDocument, len(rows))
	for i, r := range rows {
		docs[i] = r.toDocument()
	}
	return docs, nil
}

func (p *Postgres) Get(ctx context.Context, id string) (*types.NewsDocument, error) {
	var row newsRecord
	if err := p.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("news %s not found", id)
		}
		return nil, apperrors.NewStoreError("get news", err)
	}
	d := row.toDocument()
	return &d, nil
}

func (p *Postgres) ExistsByLink(ctx context.Context, link string) (bool, error) {
	var count int64
	err := p.db.WithContext(ctx).
		Model(&newsRecord{}).
		Where("link = ?", link).
		Count(&count).Error
	if err != nil {
		return false, apperrors.NewStoreError("check link", err)
	}
	return count > 0, nil
}

func (p *Postgres) Insert(ctx context.Context, doc types.NewsDocument) (bool, error) {
	doc, err := prepareInsert(doc, time.Now())
	if err != nil {
		return false, err
	}

	rec := toRecord(doc)
	res := p.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&rec)
	if res.Error != nil {
		return false, apperrors.NewStoreError("insert news", res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (p *Postgres) UpdateStatus(ctx context.Context, ids []string, target types.Status, at time.Time) error {
	if err := validateTransition(ids, target); err != nil {
		return err
	}
	ids = uniqueIDs(ids)

	err := p.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rows []newsRecord
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id IN ?", ids).
			Find(&rows).Error; err != nil {
			return err
		}

		found := make(map[string]types.Status, len(rows))
		for _, r := range rows {
			found[r.ID] = types.Status(r.Status)
		}
		for _, id := range ids {
			current, ok := found[id]
			if !ok {
				return apperrors.NewNotFoundError("news %s not found", id)
			}
			if !current.CanTransitionTo(target) {
				return apperrors.NewValidationError("news %s cannot move from %s to %s", id, current, target)
			}
		}

		res := tx.Model(&newsRecord{}).
			Where("id IN ?", ids).
			Updates(map[string]any{
				"status":            string(target),
				"status_updated_at": at,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected != int64(len(ids)) {
			return fmt.Errorf("status update touched %d of %d rows", res.RowsAffected, len(ids))
		}
		return nil
	})
	if err != nil {
		return apperrors.NewStoreError("update status", err)
	}

	p.log.Debug().Int("count", len(ids)).Str("status", string(target)).Msg("status batch committed")
	return nil
}

func (p *Postgres) Delete(ctx context.Context, id string) error {
	res := p.db.WithContext(ctx).Delete(&newsRecord{}, "id = ?", id)
	if res.Error != nil {
		return apperrors.NewStoreError("delete news", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.NewNotFoundError("news %s not found", id)
	}
	return nil
}
