package serial

// Response is one entry of a mock port response table: either a static
// byte sequence replayed verbatim, or a function computing the reply
// from the written payload. The zero value is a configured empty
// response, which is distinct from having no entry at all.
type Response struct {
	static  []byte
	compute func(in []byte) []byte
}

// Static returns a Response replaying data verbatim
func Static(data []byte) Response {
	cp := make([]byte, len(data))
	copy(cp, data)
	return Response{static: cp}
}

// StaticString returns a Response replaying the UTF-8 bytes of s
func StaticString(s string) Response {
	return Response{static: []byte(s)}
}

// Compute returns a Response derived from the written payload. fn is
// invoked once per write, with the written bytes as its sole argument.
// A nil return stages the no-data marker, as if the payload had no
// entry in the table.
func Compute(fn func(in []byte) []byte) Response {
	return Response{compute: fn}
}

// Echo returns a Response replying with the written payload itself
func Echo() Response {
	return Compute(func(in []byte) []byte {
		return in
	})
}

// resolve produces the pending output staged by writing in
func (r Response) resolve(in []byte) pendingOutput {
	out := r.static
	if r.compute != nil {
		out = r.compute(in)
		if out == nil {
			return pendingOutput{}
		}
	}
	cp := make([]byte, len(out))
	copy(cp, out)
	return pendingOutput{present: true, data: cp}
}
