package compiler

import (
	"errors"
	"fmt"

	"github.com/broady/restahead/restaheadgen/ir"
)

// ErrUnsupportedReturn is returned by [PlanConversion].
var ErrUnsupportedReturn = errors.New("unsupported return type")

// PlanConversion derives how a call turns the response into its declared
// result:
//
//	error                                    void, blocking
//	(*restahead.Response, error)             raw, blocking
//	(T, error)                               converted, blocking
//	*restahead.Future[struct{}]              void, async
//	*restahead.Future[*restahead.Response]   raw, async
//	*restahead.Future[T]                     converted, async
func PlanConversion(ret ir.ReturnType) (ir.ConversionPlan, error) {
	var plan ir.ConversionPlan
	switch ret.Shape {
	case ir.ShapeError:
		return ir.ConversionPlan{Category: ir.Void, Mode: ir.Blocking}, nil
	case ir.ShapeValueError:
		plan.Mode = ir.Blocking
	case ir.ShapeFuture:
		plan.Mode = ir.Async
		if ret.Value.Kind == ir.KindEmpty {
			plan.Category = ir.Void
			return plan, nil
		}
	default:
		reason := ret.Reason
		if reason == "" {
			reason = "want error, (T, error) or *restahead.Future[T]"
		}
		if ret.Expr != "" {
			return plan, fmt.Errorf("%w %s: %s", ErrUnsupportedReturn, ret.Expr, reason)
		}
		return plan, fmt.Errorf("%w: %s", ErrUnsupportedReturn, reason)
	}

	switch ret.Value.Kind {
	case ir.KindResponse:
		plan.Category = ir.RawResponse
	case ir.KindContext:
		return ir.ConversionPlan{}, fmt.Errorf("%w: cannot convert a response to %s", ErrUnsupportedReturn, ret.Value.Expr)
	default:
		plan.Category = ir.ConvertedValue
		plan.Target = ret.Value
	}
	return plan, nil
}
