// Package visual provides the "visual" namespace handler.
//
// It starts, switches and ends the characterwise (v) and linewise (V)
// selections, swaps the selection ends (o) and selects text objects
// (iw, a( and the rest). The selection runs from the state's anchor to the
// cursor; operators typed in a visual mode are applied to it by the
// operator handler.
//
// Usage:
//
//	d.AddNamespace(visual.NewHandler())
package visual
