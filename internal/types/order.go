package types

import (
	"time"
)

// Order groups existing results under one owning user. The link set lives in
// the order_result join table; results are referenced, never owned, so
// deleting an order leaves its results in place.
//
// Total is nullable: one upstream schema revision tracked an order total and
// one did not, so the column is optional and only enforced when
// ORDER_REQUIRE_TOTAL is set.
type Order struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    int64     `gorm:"not null;index;column:user_id" json:"userId"`
	User      *User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	Total     *float64  `gorm:"column:total" json:"total,omitempty"`
	Results   []*Result `gorm:"many2many:order_result" json:"results"`
	CreatedAt time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null" json:"updatedAt"`
}

func (Order) TableName() string {
	return "order"
}
