package bsdiff

// Control is one record of the match stream: add bytes of byte-wise
// delta against the source, copy bytes of target emitted verbatim, then
// a signed seek to realign the source cursor.
type Control struct {
	Add  uint64
	Copy uint64
	Seek int64
}
