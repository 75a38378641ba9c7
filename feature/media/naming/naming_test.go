package naming

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var mainSt = Address{
	ListingKey:   "EX-42",
	StreetNumber: "12",
	StreetName:   "Main St",
	City:         "Springfield",
	State:        "IL",
	PostalCode:   "62701",
}

func TestBase(t *testing.T) {
	tests := []struct {
		name string
		addr Address
		want string
	}{
		{"Full Address", mainSt, "12-main-st-springfield-il-62701"},
		{"With Unit", Address{StreetNumber: "5", StreetName: "Elm Ave", Unit: "4B", City: "Austin"}, "5-elm-ave-unit-4b-austin"},
		{"Accents", Address{StreetName: "Côte-des-Neiges", City: "Montréal"}, "cote-des-neiges-montreal"},
		{"Key Only", Address{ListingKey: "EX 42"}, "ex-42"},
		{"Nothing Known", Address{}, "listing-42"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Base(tt.addr, 42))
		})
	}
}

func TestBase_Truncates(t *testing.T) {
	base := Base(Address{StreetName: strings.Repeat("very long street ", 20)}, 1)
	assert.LessOrEqual(t, len(base), maxBaseLength)
	assert.False(t, strings.HasSuffix(base, "-"))
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "12-main-st-photo-3.webp", Filename("12-main-st", 3, ".webp"))
}

func TestAltText(t *testing.T) {
	assert.Equal(t, "Photo 3 of 12 Main St, Springfield, IL 62701", AltText(mainSt, 42, 3))
	assert.Equal(t, "Photo 1 of listing EX-42", AltText(Address{ListingKey: "EX-42"}, 42, 1))
	assert.Equal(t, "Photo 2 of listing 42", AltText(Address{}, 42, 2))
}

func TestObjectPath(t *testing.T) {
	at := time.Date(2026, time.March, 31, 23, 30, 0, 0, time.FixedZone("EST", -5*3600))
	assert.Equal(t, "listings/2026/04/42/a-photo-1.webp", ObjectPath("listings", at, 42, "a-photo-1.webp"))
	assert.Equal(t, "2026/04/7/a.webp", ObjectPath("", at, 7, "a.webp"))
}
