package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseStatus(t *testing.T) {
	assert.Equal(t, StatusPresent, ParseStatus("present"))
	assert.Equal(t, StatusAbsent, ParseStatus("absent"))
	assert.Equal(t, StatusAll, ParseStatus("all"))
	assert.Equal(t, StatusAll, ParseStatus(""))
	assert.Equal(t, StatusAll, ParseStatus("Present"))
	assert.Equal(t, StatusAll, ParseStatus("late"))
}

func TestParseAction(t *testing.T) {
	assert.Equal(t, ActionCheckout, ParseAction("checkout"))
	assert.Equal(t, ActionCheckin, ParseAction("checkin"))
	assert.Equal(t, ActionCheckin, ParseAction(""))
	assert.Equal(t, ActionCheckin, ParseAction("CHECKOUT"))
	assert.Equal(t, ActionCheckin, ParseAction("delete"))

	assert.True(t, ActionCheckin.CheckedIn())
	assert.False(t, ActionCheckout.CheckedIn())
}
