package port

// DocumentHandle is an opaque reference to the encrypted document. The core
// never opens, closes or mutates it; it only forwards it to the oracle that
// created it.
type DocumentHandle interface{}

// UnlockOracle is the external password check. TryUnlock returns true when
// the password unlocks the document and false for a plain wrong password.
// Any other condition (unreadable document, foreign handle type) is returned
// as an error and aborts the search.
type UnlockOracle interface {
	TryUnlock(doc DocumentHandle, password string) (bool, error)
}
