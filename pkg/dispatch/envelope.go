package dispatch

// SuccessEnvelope is the wire envelope for a successful call.
type SuccessEnvelope struct {
	Data any `json:"data"`
}

// ErrorEnvelope is the wire envelope for a failed call.
type ErrorEnvelope struct {
	Error ErrorBody `json:"error"`
}

// ErrorBody holds structured error information on the wire. Data is omitted
// entirely when the failure carries no payload.
type ErrorBody struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// EncodeSuccess wraps a result value as {"data": value}.
func EncodeSuccess(value any) SuccessEnvelope {
	return SuccessEnvelope{Data: value}
}

// EncodeFailure wraps a call error as {"error": {"type", "message", "data"?}}.
func EncodeFailure(err *CallError) ErrorEnvelope {
	return ErrorEnvelope{Error: ErrorBody{
		Type:    err.Kind,
		Message: err.Message,
		Data:    err.Data,
	}}
}

// EncodeOutcome converts a dispatch outcome into its wire envelope.
func EncodeOutcome(o Outcome) any {
	if o.Failed() {
		return EncodeFailure(o.Err)
	}
	return EncodeSuccess(o.Value)
}
