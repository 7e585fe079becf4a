package affiliate

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorKindsMatchSentinels(t *testing.T) {
	assert.ErrorIs(t, NewConfigurationError("no app id"), ErrConfiguration)
	assert.ErrorIs(t, NewTransportError("request failed", nil), ErrTransport)
	assert.ErrorIs(t, NewAPIError("Invalid Signature", 200), ErrAPI)
	assert.ErrorIs(t, NewDataShapeError("no nodes"), ErrDataShape)

	assert.NotErrorIs(t, NewAPIError("Invalid Signature", 200), ErrTransport)
}

func TestAPIErrorMessageIsVerbatim(t *testing.T) {
	err := NewAPIError("Invalid Signature", 200)
	assert.Equal(t, "Invalid Signature", err.Message)
	assert.Equal(t, "affiliate [api]: Invalid Signature", err.Error())
}

func TestTransportErrorUnwrapsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewTransportError("request failed", cause)
	assert.ErrorIs(t, err, cause)
}
