// Package saleid generates the short receipt tokens printed on bills
// and emailed to customers.
package saleid

import (
	"strings"

	"github.com/google/uuid"
)

// Length of a generated receipt token.
const Length = 8

// New returns an 8-character uppercase token derived from a random UUID.
// Hyphens never appear in the first eight characters of a UUID string,
// so the token is always alphanumeric.
func New() string {
	return strings.ToUpper(uuid.New().String()[:Length])
}
