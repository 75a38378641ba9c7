package naming

import (
	"fmt"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/gosimple/slug"
)

const maxBaseLength = 80

// Address holds the listing fields photo names are derived from.
type Address struct {
	ListingKey   string
	StreetNumber string
	StreetName   string
	Unit         string
	City         string
	State        string
	PostalCode   string
}

func (a Address) street() string {
	parts := nonEmpty(a.StreetNumber, a.StreetName)
	s := strings.Join(parts, " ")
	if a.Unit != "" {
		s = strings.TrimSpace(s + " Unit " + a.Unit)
	}
	return s
}

// Line returns a one-line human-readable address, or "" if no field is set.
func (a Address) Line() string {
	locality := strings.Join(nonEmpty(a.State, a.PostalCode), " ")
	return strings.Join(nonEmpty(a.street(), a.City, locality), ", ")
}

// Base returns the slug shared by every photo of a listing. It falls back to the
// listing key, then to the listing id, when no address is known.
func Base(addr Address, listingID int64) string {
	base := slug.Make(strings.Join(nonEmpty(addr.street(), addr.City, addr.State, addr.PostalCode), " "))
	if base == "" {
		base = slug.Make(addr.ListingKey)
	}
	if base == "" {
		base = fmt.Sprintf("listing-%d", listingID)
	}
	if len(base) > maxBaseLength {
		base = strings.TrimRight(base[:maxBaseLength], "-")
	}
	return base
}

// Filename returns the file name of the n-th photo.
func Filename(base string, n int, ext string) string {
	return fmt.Sprintf("%s-photo-%d%s", base, n, ext)
}

// AltText returns the descriptive text of the n-th photo.
func AltText(addr Address, listingID int64, n int) string {
	if line := addr.Line(); line != "" {
		return fmt.Sprintf("Photo %d of %s", n, line)
	}
	if addr.ListingKey != "" {
		return fmt.Sprintf("Photo %d of listing %s", n, addr.ListingKey)
	}
	return fmt.Sprintf("Photo %d of listing %d", n, listingID)
}

// ObjectPath places filename under prefix, partitioned by upload year and month and
// then by listing, so listings sharing an address never share an object.
func ObjectPath(prefix string, at time.Time, listingID int64, filename string) string {
	at = at.UTC()
	return path.Join(prefix, fmt.Sprintf("%04d", at.Year()), fmt.Sprintf("%02d", int(at.Month())), strconv.FormatInt(listingID, 10), filename)
}

func nonEmpty(values ...string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
