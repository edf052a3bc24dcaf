// Package operator provides the "operator" namespace handler.
//
// The input resolver composes an operator with its motion, text object or
// doubled form (dd, >>) and hands over a vim.Command whose region is
// already resolved. The handler applies it with the engine's operator
// package:
//   - operator.delete (d) and operator.change (c)
//   - operator.yank (y)
//   - operator.indent (>) and operator.unindent (<)
//   - operator.toggleCase (g~), operator.lowercase (gu), operator.uppercase (gU)
//
// Every operator is one undo frame. A change opens an insert session on
// the same transaction instead of committing it; the frame is recorded
// when insert mode ends.
package operator
