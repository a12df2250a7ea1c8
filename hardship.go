// Package hardship bundles the assets of the hardship management front-end:
// the screen templates rendered by pkg/view and the OpenAPI description of
// the record service consumed by pkg/contract.
//
// Typical wiring:
//
//	engine, _ := view.New(view.WithFS(hardship.TemplatesFS()))
//	checker, _ := contract.Load(ctx, hardship.ContractDocument())
package hardship
