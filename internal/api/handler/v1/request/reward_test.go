package request

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSpendRequest_Validate(t *testing.T) {
	assert.NoError(t, (&SpendRequest{Amount: 2.5, Note: "lego set"}).Validate())
	assert.Error(t, (&SpendRequest{Amount: 0, Note: "free"}).Validate())
	assert.Error(t, (&SpendRequest{Amount: -1, Note: "refund"}).Validate())
	assert.Error(t, (&SpendRequest{Amount: 2.5}).Validate())
	assert.Error(t, (&SpendRequest{Amount: 2.5, Note: strings.Repeat("x", 201)}).Validate())
}

func TestPayoutRequest_Validate(t *testing.T) {
	assert.NoError(t, (&PayoutRequest{Amount: 5}).Validate())
	assert.NoError(t, (&PayoutRequest{Amount: 5, Note: "weekly allowance"}).Validate())
	assert.Error(t, (&PayoutRequest{Amount: 0}).Validate())
	assert.Error(t, (&PayoutRequest{Amount: 5, Note: strings.Repeat("x", 201)}).Validate())
}
