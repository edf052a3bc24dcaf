// Package script runs small user Lua scripts that customise editing
// behaviour, such as which lines start a section for [[ and ]].
//
// Scripts run in a restricted gopher-lua state: only the base, table,
// string and math libraries are opened, the loaders are removed, and
// every call runs under a deadline.
//
//	-- sections.lua
//	function is_section(line, index)
//	  return line:match("^func ") ~= nil or line:match("^## ") ~= nil
//	end
package script
