// Package core provides a small, stable facade over pushguard's internal
// engine for other programs. It re-exports a narrow API surface so callers
// can depend on a stable import path without importing internal packages.
//
// Example:
//
//	res, err := core.Scan(ctx, core.Config{Root: "."})
//	if err != nil { /* handle */ }
//	hyg, _ := core.Hygiene(".")
//	_ = core.WriteReport(os.Stdout, ".", res, hyg)
package core
