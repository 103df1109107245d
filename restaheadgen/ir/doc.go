// Package ir defines the intermediate representation shared by the restahead
// generator stages.
//
// The provider turns annotated Go interfaces into [Service] and [Declaration]
// values. The compiler validates each declaration into a
// [RequestSpecification], plans its response handling as a [ConversionPlan],
// and emits Go code. Problems at every stage are reported as [Diagnostic]
// values tied to the declaration and parameter they concern.
//
// Nothing in this package persists across generator runs.
package ir
