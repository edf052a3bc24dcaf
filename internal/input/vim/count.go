package vim

import (
	"math"
	"strconv"
)

// maxCount caps accumulated counts.
const maxCount = math.MaxInt32

// Count accumulates a numeric count prefix.
type Count struct {
	value  int
	active bool
}

// Reset clears the count.
func (c *Count) Reset() {
	c.value = 0
	c.active = false
}

// Accumulate adds a digit to the count and reports whether r was taken.
// A leading '0' is not a count; it is the line-start motion.
func (c *Count) Accumulate(r rune) bool {
	if r < '0' || r > '9' {
		return false
	}
	digit := int(r - '0')
	if !c.active && digit == 0 {
		return false
	}
	c.active = true
	if c.value > (maxCount-digit)/10 {
		c.value = maxCount
		return true
	}
	c.value = c.value*10 + digit
	return true
}

// Active reports whether any digit was typed.
func (c *Count) Active() bool {
	return c.active
}

// Value returns the typed count, or 0 when none was typed.
func (c *Count) Value() int {
	return c.value
}

// Get returns the effective count (1 if none was typed).
func (c *Count) Get() int {
	if c.value <= 0 {
		return 1
	}
	return c.value
}

// String returns the digits typed so far.
func (c *Count) String() string {
	if !c.active {
		return ""
	}
	return strconv.Itoa(c.value)
}

// CombineCounts multiplies the count typed before an operator with the one
// typed after it, so 2d3w deletes six words. Zero means "not typed"; the
// result is zero only when neither count was typed.
func CombineCounts(count1, count2 int) int {
	switch {
	case count1 <= 0 && count2 <= 0:
		return 0
	case count1 <= 0:
		return count2
	case count2 <= 0:
		return count1
	}
	if count1 > maxCount/count2 {
		return maxCount
	}
	return count1 * count2
}
