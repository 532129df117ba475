package apiresult

// Envelope is the wire-level result every endpoint replies with. ResultCode
// is 0 exactly when the operation succeeded; failures carry the taxonomy
// code and Data stays null unless structured validation detail was attached.
type Envelope struct {
	ResultCode    int    `json:"resultCode"`
	ResultMessage string `json:"resultMessage"`
	Data          any    `json:"data"`
}

// OK reports whether the envelope represents a success.
func (e Envelope) OK() bool {
	return e.ResultCode == 0
}

// NewSuccess builds a success envelope carrying data.
func NewSuccess(data any) Envelope {
	entry := catalog[Success]
	return Envelope{ResultCode: entry.Code, ResultMessage: entry.Message, Data: data}
}

// NewFailure builds a failure envelope from a catalog key. An unknown key
// yields the SERVER_ERROR entry.
func NewFailure(key Key) Envelope {
	entry, _ := Lookup(key)
	return Envelope{ResultCode: entry.Code, ResultMessage: entry.Message}
}

// WithMessage overrides the presented message. The code is untouched; an
// empty override keeps the entry's default.
func (e Envelope) WithMessage(msg string) Envelope {
	if msg != "" {
		e.ResultMessage = msg
	}
	return e
}

// WithDetail attaches structured validation detail as the envelope's data.
func (e Envelope) WithDetail(detail any) Envelope {
	e.Data = detail
	return e
}
