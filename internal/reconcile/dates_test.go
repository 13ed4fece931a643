package reconcile

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlexibleDate(t *testing.T) {
	iso := ParseFlexibleDate("2024-05-01")
	require.NotNil(t, iso)

	dmy := ParseFlexibleDate("01-05-2024")
	require.NotNil(t, dmy)
	assert.True(t, iso.Equal(*dmy), "ISO and DD-MM-YYYY forms of the same date must agree")

	rfc := ParseFlexibleDate("2024-05-01T00:00:00Z")
	require.NotNil(t, rfc)
	assert.True(t, iso.Equal(*rfc))

	assert.Nil(t, ParseFlexibleDate("pending"))
	assert.Nil(t, ParseFlexibleDate(nil))
	assert.Nil(t, ParseFlexibleDate("   "))
}

func TestParseFlexibleDatePassesThroughTime(t *testing.T) {
	ship := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	got := ParseFlexibleDate(ship)
	require.NotNil(t, got)
	assert.True(t, ship.Equal(*got))

	assert.Nil(t, ParseFlexibleDate(time.Time{}))
}

func TestSalesMonth(t *testing.T) {
	assert.Nil(t, SalesMonth(nil))

	ship := time.Date(2024, 5, 17, 0, 0, 0, 0, time.UTC)
	m := SalesMonth(&ship)
	require.NotNil(t, m)
	assert.Equal(t, "2024-05", *m)
}
