package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/pkg/errors"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/DaanHessen/kidsrd/internal/engine"
)

// DB wraps gorm.DB for repositories and exposes Close.
type DB struct {
	gorm *gorm.DB
	sql  *sql.DB
}

func (d *DB) Close() error   { return d.sql.Close() }
func (d *DB) Gorm() *gorm.DB { return d.gorm }

// Open connects to Postgres. The app only reads from it.
func Open(ctx context.Context, dsn string) (*DB, error) {
	if dsn == "" {
		return nil, errors.New("missing DSN")
	}
	gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{Logger: logger.Discard})
	if err != nil {
		return nil, errors.Wrap(err, "open postgres")
	}
	sdb, err := gdb.DB()
	if err != nil {
		return nil, err
	}
	sdb.SetConnMaxLifetime(30 * time.Minute)
	sdb.SetMaxOpenConns(4)
	sdb.SetMaxIdleConns(2)
	if err := sdb.PingContext(ctx); err != nil {
		_ = sdb.Close()
		return nil, errors.Wrap(err, "ping postgres")
	}
	return &DB{gorm: gdb, sql: sdb}, nil
}

// CatalogItem is a row of catalog_items.
type CatalogItem struct {
	ID    string `gorm:"primaryKey"`
	Kind  string `gorm:"primaryKey"`
	Title string
	Likes int
}

func (CatalogItem) TableName() string { return "catalog_items" }

// CatalogRepo reads seed catalog rows.
type CatalogRepo struct{ db *DB }

func NewCatalogRepo(db *DB) *CatalogRepo { return &CatalogRepo{db: db} }

// List returns the rows of one kind, highest likes first.
func (r *CatalogRepo) List(ctx context.Context, kind engine.Kind) ([]CatalogItem, error) {
	var rows []CatalogItem
	err := r.db.gorm.WithContext(ctx).
		Where("kind = ?", kind.String()).
		Order("likes DESC").
		Find(&rows).Error
	if err != nil {
		return nil, errors.Wrapf(err, "list %s items", kind)
	}
	return rows, nil
}

// CatalogSource loads the seed catalog from Postgres.
type CatalogSource struct{ DB *DB }

func (s CatalogSource) Load(ctx context.Context) (engine.Seed, error) {
	repo := NewCatalogRepo(s.DB)
	stories, err := repo.List(ctx, engine.KindStory)
	if err != nil {
		return engine.Seed{}, err
	}
	games, err := repo.List(ctx, engine.KindGame)
	if err != nil {
		return engine.Seed{}, err
	}
	return engine.Seed{Stories: toItems(stories), Games: toItems(games)}, nil
}

func toItems(rows []CatalogItem) []engine.ContentItem {
	out := make([]engine.ContentItem, len(rows))
	for i, r := range rows {
		out[i] = engine.ContentItem{ID: r.ID, Title: r.Title, Likes: r.Likes}
	}
	return out
}
