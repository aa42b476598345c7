// Package lua runs spell-check rules written in Lua.
//
// A script defines a global check_word function that receives a word and
// returns true when it is spelled correctly:
//
//	local allowed = { gopher = true, lua = true }
//
//	function check_word(word)
//	    if allowed[string.lower(word)] then
//	        return true
//	    end
//	    return known(word)
//	end
//
// known is available when the Checker was given a fallback and consults it.
//
// Scripts run in a State with only the base, table, string and math
// libraries opened; functions that reach the file system are removed.
package lua
