package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInviteCodeUsedByEmpty(t *testing.T) {
	ic := &InviteCode{Code: "abc"}

	assert.Empty(t, ic.UsedBy())
	assert.Equal(t, 0, ic.UseCount())
}

func TestInviteCodeAppendUsedBy(t *testing.T) {
	ic := &InviteCode{Code: "abc"}

	require.NoError(t, ic.AppendUsedBy(7))
	require.NoError(t, ic.AppendUsedBy(9))

	assert.Equal(t, []uint{7, 9}, ic.UsedBy())
	assert.Equal(t, 2, ic.UseCount())
}

func TestInviteCodeAppendUsedByKeepsDuplicates(t *testing.T) {
	// Redeeming the same code twice with the same user is recorded twice;
	// there is intentionally no duplicate guard at this layer.
	ic := &InviteCode{Code: "abc"}

	require.NoError(t, ic.AppendUsedBy(7))
	require.NoError(t, ic.AppendUsedBy(7))

	assert.Equal(t, 2, ic.UseCount())
}

func TestInviteCodeUsedByMalformedColumn(t *testing.T) {
	ic := &InviteCode{Code: "abc", UsedByJSON: "{not json"}

	assert.Empty(t, ic.UsedBy())
}
