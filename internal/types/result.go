package types

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Result is one stored simulation run: three initial angles plus the
// angle/time/coordinate series produced from them. Series columns are jsonb
// number arrays; a Result is created standalone and may be linked from any
// number of orders.
type Result struct {
	ID           uuid.UUID                    `gorm:"type:uuid;primaryKey" json:"id"`
	Name         string                       `gorm:"not null;default:'Untitled';column:name" json:"name"`
	Theta1Init   float64                      `gorm:"not null;column:theta1_init" json:"theta1_init"`
	Theta2Init   float64                      `gorm:"not null;column:theta2_init" json:"theta2_init"`
	Theta3Init   float64                      `gorm:"not null;column:theta3_init" json:"theta3_init"`
	Theta1Series datatypes.JSONSlice[float64] `gorm:"column:theta1_series;type:jsonb" json:"theta1_series"`
	Theta2Series datatypes.JSONSlice[float64] `gorm:"column:theta2_series;type:jsonb" json:"theta2_series"`
	Theta3Series datatypes.JSONSlice[float64] `gorm:"column:theta3_series;type:jsonb" json:"theta3_series"`
	Time         datatypes.JSONSlice[float64] `gorm:"column:time;type:jsonb" json:"time"`
	X1           datatypes.JSONSlice[float64] `gorm:"column:x1;type:jsonb" json:"x1"`
	Y1           datatypes.JSONSlice[float64] `gorm:"column:y1;type:jsonb" json:"y1"`
	X2           datatypes.JSONSlice[float64] `gorm:"column:x2;type:jsonb" json:"x2"`
	Y2           datatypes.JSONSlice[float64] `gorm:"column:y2;type:jsonb" json:"y2"`
	X3           datatypes.JSONSlice[float64] `gorm:"column:x3;type:jsonb" json:"x3"`
	Y3           datatypes.JSONSlice[float64] `gorm:"column:y3;type:jsonb" json:"y3"`
	CreatedAt    time.Time                    `gorm:"not null" json:"createdAt"`
	UpdatedAt    time.Time                    `gorm:"not null" json:"updatedAt"`
}

func (Result) TableName() string {
	return "result"
}

// ValidateSeriesLengths checks that every non-empty series on the record has
// the same length. Empty series are allowed (a run can be stored before its
// coordinates are derived).
func (r *Result) ValidateSeriesLengths() error {
	series := map[string]int{
		"theta1_series": len(r.Theta1Series),
		"theta2_series": len(r.Theta2Series),
		"theta3_series": len(r.Theta3Series),
		"time":          len(r.Time),
		"x1":            len(r.X1),
		"y1":            len(r.Y1),
		"x2":            len(r.X2),
		"y2":            len(r.Y2),
		"x3":            len(r.X3),
		"y3":            len(r.Y3),
	}
	want := -1
	wantField := ""
	for field, n := range series {
		if n == 0 {
			continue
		}
		if want == -1 {
			want = n
			wantField = field
			continue
		}
		if n != want {
			return fmt.Errorf("series length mismatch: %s has %d points, %s has %d", wantField, want, field, n)
		}
	}
	return nil
}
