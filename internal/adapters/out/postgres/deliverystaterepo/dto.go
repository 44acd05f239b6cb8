// Package deliverystaterepo provides data transfer objects and mapping functions
// for delivery state persistence. This package implements the repository pattern
// for the delivery tracking aggregate, handling the conversion between domain
// entities and database representations.
package deliverystaterepo

import (
	"sort"
	"time"

	"tableorder/internal/core/domain/model/delivery"
)

// Item kind discriminator values inside order_version_items.
const (
	itemKindDish = 1
	itemKindSet  = 2
)

// DeliveryStateDTO represents the database structure for persisting delivery
// state aggregates. Version and record histories live in child tables keyed
// by the order id.
type DeliveryStateDTO struct {
	OrderID  int64        `gorm:"primaryKey;autoIncrement:false"`
	Status   int          `gorm:"type:int;not null"`
	Versions []VersionDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Records  []RecordDTO  `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for delivery state entities.
func (DeliveryStateDTO) TableName() string {
	return "delivery_states"
}

// VersionDTO represents one order version row. Item quantities live in the
// order_version_items child table.
type VersionDTO struct {
	ID         uint             `gorm:"primaryKey"`
	OrderID    int64            `gorm:"not null;index"`
	Number     int              `gorm:"type:int;not null"`
	Kind       int              `gorm:"type:int;not null"`
	ModifiedAt time.Time        `gorm:"not null"`
	Items      []VersionItemDTO `gorm:"foreignKey:VersionID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for order version entities.
func (VersionDTO) TableName() string {
	return "order_versions"
}

// VersionItemDTO represents one ordered item inside a version.
type VersionItemDTO struct {
	ID        uint  `gorm:"primaryKey"`
	VersionID uint  `gorm:"not null;index"`
	ItemKind  int   `gorm:"type:int;not null"`
	ItemID    int64 `gorm:"not null"`
	Quantity  int   `gorm:"type:int;not null"`
}

// TableName specifies the database table name for version item entities.
func (VersionItemDTO) TableName() string {
	return "order_version_items"
}

// RecordDTO represents one delivery record row.
type RecordDTO struct {
	ID          uint      `gorm:"primaryKey"`
	OrderID     int64     `gorm:"not null;index"`
	DishID      int64     `gorm:"not null"`
	Quantity    int       `gorm:"type:int;not null"`
	DeliveredAt time.Time `gorm:"not null"`
	DeliveredBy int64     `gorm:"not null"`
}

// TableName specifies the database table name for delivery record entities.
func (RecordDTO) TableName() string {
	return "delivery_records"
}

// fromDomain converts a delivery state aggregate to its database
// representation, including the full version and record histories.
func fromDomain(state *delivery.State) DeliveryStateDTO {
	versions := make([]VersionDTO, 0, len(state.Versions()))
	for _, v := range state.Versions() {
		versions = append(versions, versionFromDomain(state.OrderID(), v))
	}

	records := make([]RecordDTO, 0, len(state.Records()))
	for _, r := range state.Records() {
		records = append(records, recordFromDomain(state.OrderID(), r))
	}

	return DeliveryStateDTO{
		OrderID:  state.OrderID(),
		Status:   int(state.Status()),
		Versions: versions,
		Records:  records,
	}
}

func versionFromDomain(orderID int64, v delivery.Version) VersionDTO {
	items := make([]VersionItemDTO, 0, len(v.DishesOrdered())+len(v.SetsOrdered()))
	for _, iq := range v.DishesOrdered() {
		items = append(items, VersionItemDTO{
			ItemKind: itemKindDish,
			ItemID:   iq.ItemID,
			Quantity: iq.Quantity,
		})
	}
	for _, iq := range v.SetsOrdered() {
		items = append(items, VersionItemDTO{
			ItemKind: itemKindSet,
			ItemID:   iq.ItemID,
			Quantity: iq.Quantity,
		})
	}

	return VersionDTO{
		OrderID:    orderID,
		Number:     v.Number(),
		Kind:       int(v.Kind()),
		ModifiedAt: v.ModifiedAt(),
		Items:      items,
	}
}

func recordFromDomain(orderID int64, r delivery.Record) RecordDTO {
	return RecordDTO{
		OrderID:     orderID,
		DishID:      r.DishID(),
		Quantity:    r.QuantityDelivered(),
		DeliveredAt: r.DeliveredAt(),
		DeliveredBy: r.DeliveredByUserID(),
	}
}

// toDomain converts a database DTO back into a delivery state aggregate.
// Histories are re-ordered before restoration: versions by number, records
// by insertion id.
func toDomain(dto DeliveryStateDTO) (*delivery.State, error) {
	sort.Slice(dto.Versions, func(i, j int) bool {
		return dto.Versions[i].Number < dto.Versions[j].Number
	})
	sort.Slice(dto.Records, func(i, j int) bool {
		return dto.Records[i].ID < dto.Records[j].ID
	})

	versions := make([]delivery.Version, 0, len(dto.Versions))
	for _, v := range dto.Versions {
		version, err := versionToDomain(v)
		if err != nil {
			return nil, err
		}
		versions = append(versions, version)
	}

	records := make([]delivery.Record, 0, len(dto.Records))
	for _, r := range dto.Records {
		record, err := delivery.NewRecord(r.DishID, r.Quantity, r.DeliveredAt, r.DeliveredBy)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	return delivery.RestoreState(dto.OrderID, versions, records, delivery.Status(dto.Status))
}

func versionToDomain(dto VersionDTO) (delivery.Version, error) {
	var dishes, sets []delivery.ItemQuantity
	for _, item := range dto.Items {
		iq := delivery.ItemQuantity{ItemID: item.ItemID, Quantity: item.Quantity}
		if item.ItemKind == itemKindSet {
			sets = append(sets, iq)
		} else {
			dishes = append(dishes, iq)
		}
	}

	return delivery.NewVersion(dto.Number, delivery.ModificationKind(dto.Kind),
		dto.ModifiedAt, dishes, sets)
}
