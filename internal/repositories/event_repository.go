package repositories

import (
	"context"

	"gorm.io/gorm"

	"loglan_core/internal/models"
)

type EventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) *EventRepository {
	return &EventRepository{db: db}
}

func (r *EventRepository) Create(ctx context.Context, event *models.Event) error {
	return r.db.WithContext(ctx).Create(event).Error
}

func (r *EventRepository) GetByID(ctx context.Context, id int64) (*models.Event, error) {
	return first[models.Event](ctx, r.db, id)
}

// GetByEventID looks an event up by its event_id, the value words refer to.
func (r *EventRepository) GetByEventID(ctx context.Context, eventID int64) (*models.Event, error) {
	return first[models.Event](ctx, r.db, "event_id = ?", eventID)
}

func (r *EventRepository) GetAll(ctx context.Context) ([]models.Event, error) {
	return all[models.Event](ctx, r.db, "event_id")
}

// Latest returns the event with the highest event_id.
func (r *EventRepository) Latest(ctx context.Context) (*models.Event, error) {
	return first[models.Event](ctx, r.db.Order("event_id DESC"))
}

// LatestID is Latest's event_id, or 0 for an empty table.
func (r *EventRepository) LatestID(ctx context.Context) (int64, error) {
	var id int64
	if err := r.db.WithContext(ctx).Model(&models.Event{}).Select("COALESCE(MAX(event_id), 0)").Scan(&id).Error; err != nil {
		return 0, err
	}
	return id, nil
}
