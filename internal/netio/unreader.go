package netio

// Unreader lets a single pending slice be pushed back and replayed on the
// next Read, so a codec that reads past a frame boundary (e.g. into the
// next request's bytes while draining a body) can hand the extra bytes
// back without a full buffered-reader abstraction.
type Unreader struct {
	pending []byte
}

func (u *Unreader) PendingOr(or func() ([]byte, error)) ([]byte, error) {
	if len(u.pending) > 0 {
		data := u.pending
		u.pending = nil
		return data, nil
	}

	return or()
}

func (u *Unreader) Unread(b []byte) {
	if len(b) == 0 {
		return
	}

	u.pending = b
}

func (u *Unreader) Reset() {
	u.pending = nil
}
