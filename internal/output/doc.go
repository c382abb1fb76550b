// Package output provides structured output handling for the iconpack CLI.
//
// Every command writes through a Printer so the same code path serves both
// people at a terminal and scripts consuming --json output.
//
// # Printer
//
//	printer := output.NewPrinter(cmd.OutOrStdout(), jsonMode, output.IsTTY(cmd.OutOrStdout()))
//
//	printer.Success(map[string]any{"message": "Generated 12 icons"})
//	printer.Warn("formatter failed: %v", err)
//	printer.Error(err)
//
// Warn doubles as the generator's reporting channel: *Printer satisfies
// generator.Reporter, so non-fatal problems (a failing formatter, an icon
// skipped under keep_going) surface the same way in both modes.
//
// # JSON Mode
//
//	// Success: {"message": "...", ...}
//	// Warning: {"warning": "..."}
//	// Error:   {"error": "message", "code": N}
//
// # Exit Codes
//
//	output.ExitSuccess     // 0
//	output.ExitUserError   // 1: bad config, invalid icon name, skipped icons
//	output.ExitSystemError // 2: filesystem failures
//	output.ExitConflict    // 3: two sources map to one component name
//
// Use NewUserError, NewSystemError, NewSystemErrorWithCause and
// NewConflictError to build errors that carry these codes.
package output
