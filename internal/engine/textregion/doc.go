// Package textregion provides a run-length encoded map of labels over a
// one-dimensional offset space.
//
// A Region covers the offsets [0, Len()) with an ordered list of runs. Every
// run is non-empty and carries a label; adjacent runs never share an equal
// label, so the number of runs is proportional to the number of distinct
// labeled spans rather than to the length of the space.
//
// Regions mirror a text buffer: edits to the buffer are replayed as Insert
// and Remove calls so that labels follow the text they describe, and
// Replace relabels a span in place.
//
//	r := textregion.New[bool]()
//	r.Insert(0, 100, false)  // [0,100)=false
//	r.Replace(20, 30, true)  // [0,20)=false [20,50)=true [50,100)=false
//	r.Remove(0, 20)          // [0,30)=true [30,80)=false
//
// Offsets past the end of the region are programmer errors: they mean the
// mirror has drifted from the data it describes, and the operation panics
// with an error wrapping ErrOutOfRange.
//
// A Region is not safe for concurrent use.
package textregion
