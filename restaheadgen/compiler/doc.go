// Package compiler turns restahead declarations into Go client code.
//
// The front end validates each [ir.Declaration] into an
// [ir.RequestSpecification] ([BuildRequestSpecification]) and derives an
// [ir.ConversionPlan] from its return type ([PlanConversion]). Problems are
// collected as diagnostics; one bad declaration never stops the others from
// being checked. The back end ([Compiler]) emits one gofmt-formatted file per
// service whose declarations are all valid.
package compiler
