package masker

import (
	"sort"
	"strings"
)

type Masker interface {
	Mask(string) string
}

var _ Masker = (*Replacer)(nil)

// Replacer hides the given secrets in arbitrary text, each secret is replaced
// with asterisks of the same length.
type Replacer struct {
	replacer *strings.Replacer
}

func NewReplacer(secrets ...string) *Replacer {
	masker := &Replacer{}

	old := []string{}
	for _, secret := range secrets {
		value := strings.TrimSpace(secret)
		if value != "" {
			old = append(old, value)
		}
	}

	// longest first, otherwise a short secret can break a longer one
	sort.Slice(old, func(i, j int) bool {
		if len(old[i]) != len(old[j]) {
			return len(old[i]) > len(old[j])
		}
		return old[i] < old[j]
	})

	old = unique(old)

	oldnew := make([]string, len(old)*2)
	for i, item := range old {
		oldnew[i*2] = item
		oldnew[i*2+1] = strings.Repeat("*", len(item))
	}

	if len(oldnew) > 0 {
		masker.replacer = strings.NewReplacer(oldnew...)
	}

	return masker
}

func unique(slice []string) []string {
	result := make([]string, 0, len(slice))
	for i, item := range slice {
		if i > 0 && item == slice[i-1] {
			continue
		}
		result = append(result, item)
	}
	return result
}

func (masker *Replacer) Mask(buf string) string {
	if masker == nil || masker.replacer == nil {
		return buf
	}

	return masker.replacer.Replace(buf)
}
