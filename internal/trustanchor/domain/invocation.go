// Package domain defines the remote-invocation protocol spoken with the
// trust anchor: the request envelope handed to the signing callback and the
// response it returns.
package domain

// Action identifies the remote operation requested from the trust anchor's
// key manager.
type Action string

const (
	ActionWrapKey       Action = "wrap_key"
	ActionUnwrapKey     Action = "unwrap_key"
	ActionGetGroupKeyID Action = "get_group_key_id"
)

// InvocationRequest describes what is being asked of the key manager.
// Exactly one of PlaintextKeyB64 and WrappedKeyB64 is set, depending on the
// action.
type InvocationRequest struct {
	Action          Action `json:"action"`
	GroupID         string `json:"group_id"`
	PlaintextKeyB64 string `json:"plaintext_key_b64,omitempty"`
	WrappedKeyB64   string `json:"wrapped_key_b64,omitempty"`
}

// ResourceLimits is the execution budget attached to every invocation. The
// values are opaque pass-through configuration for the remote execution
// environment; nothing on this side interprets them. They are fixed per
// adapter instance, not per call.
type ResourceLimits struct {
	MaxInstructions uint64 `json:"max_instructions"`
	MaxMemoryBytes  uint64 `json:"max_memory_bytes"`
	MaxSeconds      uint64 `json:"max_seconds"`
}

// DefaultResourceLimits returns the deployment defaults used when the
// configuration does not override them.
func DefaultResourceLimits() ResourceLimits {
	return ResourceLimits{
		MaxInstructions: 10_000_000_000,
		MaxMemoryBytes:  64 << 20,
		MaxSeconds:      30,
	}
}

// InvocationEnvelope is the unit handed to the signing callback: the request
// plus its execution budget and a unique id for correlation.
type InvocationEnvelope struct {
	ID      string            `json:"id"`
	Request InvocationRequest `json:"request"`
	Limits  ResourceLimits    `json:"limits"`
}

// InvocationResponse is what the key manager returns. Error/Code are set
// instead of the payload fields when the invocation was rejected.
type InvocationResponse struct {
	WrappedKeyB64   string `json:"wrapped_key_b64,omitempty"`
	PlaintextKeyB64 string `json:"plaintext_key_b64,omitempty"`
	KeyID           string `json:"key_id,omitempty"`
	Error           string `json:"error,omitempty"`
	Code            int    `json:"code,omitempty"`
}

// WrapResult is the outcome of wrapping a data key under a group.
type WrapResult struct {
	WrappedKeyB64 string
	KeyID         string
}

// UnwrapResult is the outcome of unwrapping a previously wrapped key.
// PlaintextKeyB64 is plaintext-equivalent and must be dropped from memory as
// soon as the key has been imported.
type UnwrapResult struct {
	PlaintextKeyB64 string
	KeyID           string
}
