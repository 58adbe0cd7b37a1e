package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/companydir/internal/company"
)

func TestPicker_StartsOnCurrent(t *testing.T) {
	opts := company.OptionsFrom(testCompanies(6))

	p := newPicker(pickIndustry, opts, "Healthcare", 80, 20)
	choice, ok := p.choice()
	require.True(t, ok)
	assert.Equal(t, "Healthcare", choice)
	assert.Equal(t, "SELECT INDUSTRY", p.title())
	assert.Contains(t, p.list.View(), "● Healthcare")
}

func TestPicker_Location(t *testing.T) {
	opts := company.OptionsFrom(testCompanies(3))

	p := newPicker(pickLocation, opts, "Nowhere", 80, 20)
	assert.Equal(t, "SELECT LOCATION", p.title())

	choice, ok := p.choice()
	require.True(t, ok)
	assert.Equal(t, company.AllLocations, choice)
	assert.Equal(t, 2, p.list.ItemCount())
	assert.Equal(t, "1 of 2", p.position())
}
