package services

import (
	"errors"

	"github.com/pendulab/pendulum-backend/internal/apierr"
)

// OrderValidator gates create/update requests before the order service runs.
// Checks run in a fixed priority order and short-circuit: body, then owner,
// then result list, then (when configured) total. A request missing both the
// owner and the results must report the owner failure.
type OrderValidator struct {
	requireTotal bool
}

func NewOrderValidator(requireTotal bool) *OrderValidator {
	return &OrderValidator{requireTotal: requireTotal}
}

func (v *OrderValidator) ValidateCreate(req *CreateOrderInput) error {
	if req == nil {
		return apierr.BadRequest("no_order_data", errors.New("No order data"))
	}
	if req.UserID == 0 {
		return apierr.Unauthorized("missing_user_id", errors.New("Unauthorized: missing userId"))
	}
	if len(req.ResultIDs) == 0 {
		return apierr.Conflict("no_results", errors.New("No results in order"))
	}
	if v.requireTotal && (req.Total == nil || *req.Total == 0) {
		return apierr.Conflict("no_total", errors.New("No order total"))
	}
	// Identifier resolution, including ids that cannot parse, is left to the
	// order service so every unresolvable id reports the same Conflict.
	return nil
}

// ValidateUpdate relaxes every field to optional; a patch may omit anything.
func (v *OrderValidator) ValidateUpdate(req *UpdateOrderInput) error {
	if req == nil {
		return apierr.BadRequest("no_order_data", errors.New("No order data"))
	}
	return nil
}
