// Package ids generates session-unique identifiers of the form
// <prefix>-<unix millis>[-<index>]-<random>.
package ids

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const suffixLen = 8

// New returns an identifier for the index-th item of a batch created at now.
func New(prefix string, now time.Time, index int) string {
	return fmt.Sprintf("%s-%d-%d-%s", prefix, now.UnixMilli(), index, suffix())
}

// Random returns an identifier without a batch index.
func Random(prefix string, now time.Time) string {
	return fmt.Sprintf("%s-%d-%s", prefix, now.UnixMilli(), suffix())
}

func suffix() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:suffixLen]
}
