package service

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	anchorDomain "github.com/fastkv/fastkv-go/internal/trustanchor/domain"
)

// OutLayerAnchor talks to the OutLayer TEE key manager. It builds the
// invocation envelope describing the WASM action to run plus its resource
// budget, and delegates execution and signing to the injected SignFunc.
type OutLayerAnchor struct {
	sign   SignFunc
	limits anchorDomain.ResourceLimits
}

// NewOutLayerAnchor creates an OutLayerAnchor with the given signing
// callback and resource limits. Zero limits fall back to the deployment
// defaults.
func NewOutLayerAnchor(sign SignFunc, limits anchorDomain.ResourceLimits) *OutLayerAnchor {
	if limits == (anchorDomain.ResourceLimits{}) {
		limits = anchorDomain.DefaultResourceLimits()
	}
	return &OutLayerAnchor{
		sign:   sign,
		limits: limits,
	}
}

// WrapKey wraps the exported data key under the group's policy.
func (a *OutLayerAnchor) WrapKey(
	ctx context.Context,
	groupID, plaintextKeyB64 string,
) (anchorDomain.WrapResult, error) {
	resp, err := a.invoke(ctx, anchorDomain.InvocationRequest{
		Action:          anchorDomain.ActionWrapKey,
		GroupID:         groupID,
		PlaintextKeyB64: plaintextKeyB64,
	})
	if err != nil {
		return anchorDomain.WrapResult{}, err
	}
	if resp.WrappedKeyB64 == "" {
		return anchorDomain.WrapResult{}, fmt.Errorf(
			"%w: wrap response missing wrapped key", anchorDomain.ErrAnchorFailure,
		)
	}

	return anchorDomain.WrapResult{
		WrappedKeyB64: resp.WrappedKeyB64,
		KeyID:         resp.KeyID,
	}, nil
}

// UnwrapKey reveals a previously wrapped data key.
func (a *OutLayerAnchor) UnwrapKey(
	ctx context.Context,
	groupID, wrappedKeyB64 string,
) (anchorDomain.UnwrapResult, error) {
	resp, err := a.invoke(ctx, anchorDomain.InvocationRequest{
		Action:        anchorDomain.ActionUnwrapKey,
		GroupID:       groupID,
		WrappedKeyB64: wrappedKeyB64,
	})
	if err != nil {
		return anchorDomain.UnwrapResult{}, err
	}
	if resp.PlaintextKeyB64 == "" {
		return anchorDomain.UnwrapResult{}, fmt.Errorf(
			"%w: unwrap response missing key material", anchorDomain.ErrAnchorFailure,
		)
	}

	return anchorDomain.UnwrapResult{
		PlaintextKeyB64: resp.PlaintextKeyB64,
		KeyID:           resp.KeyID,
	}, nil
}

// LookupKeyID returns the group's key id without performing a wrap.
func (a *OutLayerAnchor) LookupKeyID(ctx context.Context, groupID string) (string, error) {
	resp, err := a.invoke(ctx, anchorDomain.InvocationRequest{
		Action:  anchorDomain.ActionGetGroupKeyID,
		GroupID: groupID,
	})
	if err != nil {
		return "", err
	}
	if resp.KeyID == "" {
		return "", fmt.Errorf("%w: response missing key id", anchorDomain.ErrAnchorFailure)
	}
	return resp.KeyID, nil
}

// invoke runs one request through the signing callback and maps rejection
// responses onto the error taxonomy. No retry on any path.
func (a *OutLayerAnchor) invoke(
	ctx context.Context,
	req anchorDomain.InvocationRequest,
) (anchorDomain.InvocationResponse, error) {
	envelope := anchorDomain.InvocationEnvelope{
		ID:      uuid.Must(uuid.NewV7()).String(),
		Request: req,
		Limits:  a.limits,
	}

	resp, err := a.sign(ctx, envelope)
	if err != nil {
		return anchorDomain.InvocationResponse{}, fmt.Errorf(
			"%w: %v", anchorDomain.ErrAnchorFailure, err,
		)
	}

	if resp.Error != "" {
		if resp.Code == http.StatusForbidden || resp.Code == http.StatusUnauthorized {
			return anchorDomain.InvocationResponse{}, fmt.Errorf(
				"%w: %s", anchorDomain.ErrGroupUnauthorized, resp.Error,
			)
		}
		return anchorDomain.InvocationResponse{}, fmt.Errorf(
			"%w: %s (code %d)", anchorDomain.ErrAnchorFailure, resp.Error, resp.Code,
		)
	}

	return resp, nil
}
