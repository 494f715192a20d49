package repository

import (
	"doypal/internal/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type EventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) *EventRepository {
	return &EventRepository{db: db}
}

func (r *EventRepository) ListActive(profileID *uint) ([]models.Event, error) {
	var list []models.Event
	err := r.db.Scopes(Active, ForProfile(profileID)).Order("timestamp DESC").Find(&list).Error
	return list, err
}

// ListAll includes soft-deleted events; admin view only.
func (r *EventRepository) ListAll() ([]models.Event, error) {
	var list []models.Event
	err := r.db.Order("timestamp DESC").Find(&list).Error
	return list, err
}

// GetByID returns the event regardless of is_active so archived rows stay
// auditable.
func (r *EventRepository) GetByID(id uint) (*models.Event, error) {
	var e models.Event
	if err := r.db.First(&e, id).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *EventRepository) Create(e *models.Event) error {
	e.IsActive = true
	e.Stamp()
	return r.db.Create(e).Error
}

func (r *EventRepository) Update(id uint, fields map[string]interface{}) (*models.Event, error) {
	res := r.db.Model(&models.Event{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetByID(id)
}

func (r *EventRepository) SoftDelete(id uint) error {
	res := r.db.Model(&models.Event{}).Where("id = ?", id).Update("is_active", false)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// HardDelete permanently removes an event. Admin escape hatch; the public
// API only ever soft-deletes.
func (r *EventRepository) HardDelete(id uint) error {
	res := r.db.Delete(&models.Event{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ListUnlinked returns active events without a template, newest first.
func (r *EventRepository) ListUnlinked(limit int) ([]models.Event, error) {
	var list []models.Event
	err := r.db.Scopes(Active).Where("template_id IS NULL").
		Order("timestamp DESC").Limit(limit).Find(&list).Error
	return list, err
}

// ListRecent returns the most recent active events, capped at n.
func (r *EventRepository) ListRecent(n int) ([]models.Event, error) {
	var list []models.Event
	err := r.db.Scopes(Active).Order("timestamp DESC").Limit(n).Find(&list).Error
	return list, err
}

// ListMissingEmbedding returns active events without a stored embedding.
func (r *EventRepository) ListMissingEmbedding() ([]models.Event, error) {
	var list []models.Event
	err := r.db.Scopes(Active).Where("description_embedding IS NULL").
		Order("timestamp DESC").Find(&list).Error
	return list, err
}

func (r *EventRepository) SetEmbedding(id uint, embedding datatypes.JSON) error {
	res := r.db.Model(&models.Event{}).Where("id = ?", id).
		Update("description_embedding", embedding)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *EventRepository) SetTemplate(id, templateID uint) (*models.Event, error) {
	res := r.db.Model(&models.Event{}).Where("id = ?", id).Update("template_id", templateID)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetByID(id)
}
