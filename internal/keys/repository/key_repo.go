package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/yerk0w/EduLifeFor-merge/internal/keys/model"
)

// KeyRepository keys and their current holders
type KeyRepository interface {
	Create(ctx context.Context, k *model.Key) error
	GetByID(ctx context.Context, id uint) (*model.Key, error)
	GetByCode(ctx context.Context, code string) (*model.Key, error)
	Updates(ctx context.Context, id uint, fields map[string]interface{}) error
	// Purge removes the key with its assignments, transfers and history
	Purge(ctx context.Context, id uint) error

	GetWithHolder(ctx context.Context, id uint) (*model.KeyWithHolder, error)
	// ListWithHolders ordered by building, floor, room
	ListWithHolders(ctx context.Context) ([]model.KeyWithHolder, error)
	// ListHeldBy keys actively held by teacherID
	ListHeldBy(ctx context.Context, teacherID uint) ([]model.KeyWithHolder, error)
	// Counts total keys and keys with an active holder
	Counts(ctx context.Context) (total, assigned int64, err error)
}

type keyRepo struct {
	db *gorm.DB
}

// NewKeyRepo creates a KeyRepository
func NewKeyRepo(db *gorm.DB) KeyRepository {
	return &keyRepo{db: db}
}

func (r *keyRepo) Create(ctx context.Context, k *model.Key) error {
	return r.db.WithContext(ctx).Create(k).Error
}

func (r *keyRepo) GetByID(ctx context.Context, id uint) (*model.Key, error) {
	var k model.Key
	if err := r.db.WithContext(ctx).First(&k, id).Error; err != nil {
		return nil, err
	}
	return &k, nil
}

func (r *keyRepo) GetByCode(ctx context.Context, code string) (*model.Key, error) {
	var k model.Key
	if err := r.db.WithContext(ctx).Where("key_code = ?", code).First(&k).Error; err != nil {
		return nil, err
	}
	return &k, nil
}

func (r *keyRepo) Updates(ctx context.Context, id uint, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&model.Key{ID: id}).Updates(fields).Error
}

func (r *keyRepo) Purge(ctx context.Context, id uint) error {
	db := r.db.WithContext(ctx)
	for _, m := range []interface{}{&model.KeyAssignment{}, &model.KeyTransfer{}, &model.KeyHistory{}} {
		if err := db.Where("key_id = ?", id).Delete(m).Error; err != nil {
			return err
		}
	}
	return db.Delete(&model.Key{}, id).Error
}

// ────────────────────── holders ──────────────────────

func (r *keyRepo) withHolder(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("keys").
		Select("keys.*, ka.teacher_id AS teacher_id, ka.assigned_at AS assigned_at").
		Joins("LEFT JOIN key_assignments ka ON ka.key_id = keys.id AND ka.is_active = 1")
}

func (r *keyRepo) GetWithHolder(ctx context.Context, id uint) (*model.KeyWithHolder, error) {
	var k model.KeyWithHolder
	if err := r.withHolder(ctx).Where("keys.id = ?", id).Take(&k).Error; err != nil {
		return nil, err
	}
	return &k, nil
}

func (r *keyRepo) ListWithHolders(ctx context.Context) ([]model.KeyWithHolder, error) {
	var list []model.KeyWithHolder
	err := r.withHolder(ctx).
		Order("keys.building, keys.floor, keys.room_number").
		Scan(&list).Error
	return list, err
}

func (r *keyRepo) ListHeldBy(ctx context.Context, teacherID uint) ([]model.KeyWithHolder, error) {
	var list []model.KeyWithHolder
	err := r.withHolder(ctx).
		Where("ka.teacher_id = ?", teacherID).
		Order("keys.building, keys.floor, keys.room_number").
		Scan(&list).Error
	return list, err
}

func (r *keyRepo) Counts(ctx context.Context) (total, assigned int64, err error) {
	db := r.db.WithContext(ctx)
	if err = db.Model(&model.Key{}).Count(&total).Error; err != nil {
		return 0, 0, err
	}
	err = db.Model(&model.KeyAssignment{}).Where("is_active = ?", true).Count(&assigned).Error
	return total, assigned, err
}
