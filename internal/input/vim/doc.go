// Package vim implements the operator-pending half of Vim's command
// grammar together with the register store that operators write to.
//
// # Grammar
//
// An operator command has the shape
//
//	[count]["x]operator[count](motion | i/a object | operator)
//
// The input resolver handles everything up to and including the operator
// key, then hands the composer the operator, the first count and the
// register:
//
//	c := vim.NewComposer(table, buf)
//	c.Begin(operator.Delete, key.MustParse("d"), 2, 0)
//	c.Extend(key.Rune('3'))          // AwaitingMore
//	out := c.Extend(key.Rune('w'))   // Complete, six words
//
// The two counts multiply. A doubled operator (dd, g~~, gUgU) targets
// count whole lines.
//
// When an outcome is Complete, its Command already carries the region the
// operator applies to. Motions and text objects are evaluated against a
// snapshot of the buffer taken at that moment, with Vim's adjustments for
// exclusive motions applied.
//
// # Registers
//
// RegisterStore follows Vim's register rules: the unnamed register mirrors
// the last yank or delete, yanks also land in "0, deletes of whole lines
// shift "1 through "9, small deletes go to "-, uppercase names append and
// "_ discards.
package vim
