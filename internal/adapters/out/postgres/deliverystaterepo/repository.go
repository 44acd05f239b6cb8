package deliverystaterepo

import (
	"context"
	"errors"

	"tableorder/internal/core/domain/model/delivery"
	"tableorder/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormDeliveryStateRepository implements DeliveryStateRepository using GORM.
type GormDeliveryStateRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates modified
// within a unit of work.
type aggregateTracker interface {
	TrackAggregate(orderID int64, aggregate any)
}

// NewGormDeliveryStateRepository creates a new GORM delivery state repository.
func NewGormDeliveryStateRepository(db *gorm.DB, tracker aggregateTracker) *GormDeliveryStateRepository {
	return &GormDeliveryStateRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves the state of a newly tracked order, including its first version.
func (r *GormDeliveryStateRepository) Add(ctx context.Context, state *delivery.State) error {
	dto := fromDomain(state)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(state.OrderID(), state)
	return nil
}

// Update persists the aggregate's current status and appends any versions
// and records not yet stored. Histories are append-only, so existing rows
// are never touched.
func (r *GormDeliveryStateRepository) Update(ctx context.Context, state *delivery.State) error {
	db := r.db.WithContext(ctx)

	result := db.Model(&DeliveryStateDTO{}).
		Where("order_id = ?", state.OrderID()).
		Update("status", int(state.Status()))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("orderId", state.OrderID())
	}

	if err := r.appendNewVersions(db, state); err != nil {
		return err
	}

	return r.appendNewRecords(db, state)
}

func (r *GormDeliveryStateRepository) appendNewVersions(db *gorm.DB, state *delivery.State) error {
	var storedMax int
	err := db.Model(&VersionDTO{}).
		Where("order_id = ?", state.OrderID()).
		Select("COALESCE(MAX(number), 0)").
		Scan(&storedMax).Error
	if err != nil {
		return err
	}

	for _, v := range state.Versions() {
		if v.Number() <= storedMax {
			continue
		}
		dto := versionFromDomain(state.OrderID(), v)
		if err = db.Create(&dto).Error; err != nil {
			return err
		}
	}
	return nil
}

func (r *GormDeliveryStateRepository) appendNewRecords(db *gorm.DB, state *delivery.State) error {
	var storedCount int64
	err := db.Model(&RecordDTO{}).
		Where("order_id = ?", state.OrderID()).
		Count(&storedCount).Error
	if err != nil {
		return err
	}

	records := state.Records()
	for i := int(storedCount); i < len(records); i++ {
		dto := recordFromDomain(state.OrderID(), records[i])
		if err = db.Create(&dto).Error; err != nil {
			return err
		}
	}

	r.tracker.TrackAggregate(state.OrderID(), state)
	return nil
}

// Get retrieves the full delivery state of an order, including version and
// record histories.
func (r *GormDeliveryStateRepository) Get(ctx context.Context, orderID int64) (*delivery.State, error) {
	var dto DeliveryStateDTO
	err := r.db.WithContext(ctx).
		Preload("Versions.Items").
		Preload("Records").
		First(&dto, "order_id = ?", orderID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("orderId", orderID)
		}
		return nil, err
	}

	return toDomain(dto)
}
