package kvstore

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Entry is one stored value. Table is created by cmd/tools/createtable.
type Entry struct {
	NS        string    `gorm:"column:ns;primaryKey;type:varchar(64)"`
	Key       string    `gorm:"column:k;primaryKey;type:varchar(64)"`
	Value     string    `gorm:"column:v;type:text;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null"`
}

func (Entry) TableName() string { return "kv_entries" }

type SQL struct{ db *gorm.DB }

func NewSQL(db *gorm.DB) *SQL { return &SQL{db: db} }

func (s *SQL) Get(ctx context.Context, ns, key string) (string, bool, error) {
	if ns == "" {
		return "", false, ErrNoNamespace
	}
	var e Entry
	err := s.db.WithContext(ctx).First(&e, "ns = ? AND k = ?", ns, key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return e.Value, true, nil
}

func (s *SQL) Set(ctx context.Context, ns, key, value string) error {
	if ns == "" {
		return ErrNoNamespace
	}
	e := Entry{NS: ns, Key: key, Value: value, UpdatedAt: time.Now()}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "ns"}, {Name: "k"}},
			DoUpdates: clause.AssignmentColumns([]string{"v", "updated_at"}),
		}).
		Create(&e).Error
}

func (s *SQL) Delete(ctx context.Context, ns string, keys ...string) error {
	if ns == "" {
		return ErrNoNamespace
	}
	if len(keys) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).
		Where("ns = ? AND k IN ?", ns, keys).
		Delete(&Entry{}).Error
}
