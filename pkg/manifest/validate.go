package manifest

import (
	"fmt"

	"github.com/mrhapile/respack/pkg/types"
)

// Validate checks that every declaration has a type, key and path and that
// no key is declared twice anywhere in the list.
func Validate(decls []types.Declaration) error {
	seen := make(map[string]int, len(decls))
	for i, d := range decls {
		var missing string
		switch {
		case d.Type == "":
			missing = "type"
		case d.Key == "":
			missing = "key"
		case d.Path == "":
			missing = "path"
		}
		if missing != "" {
			return &Error{
				Kind:   ErrEmptyField,
				Source: d.Source,
				Line:   d.Line,
				Msg:    "declaration has no " + missing,
			}
		}

		if j, ok := seen[d.Key]; ok {
			first := decls[j]
			return &Error{
				Kind:   ErrDuplicateKey,
				Source: d.Source,
				Line:   d.Line,
				Msg:    formatDuplicate(d.Key, first),
			}
		}
		seen[d.Key] = i
	}
	return nil
}

func formatDuplicate(key string, first types.Declaration) string {
	src := first.Source
	if src == "" {
		src = "<manifest>"
	}
	return fmt.Sprintf("key %q already declared at %s:%d", key, src, first.Line)
}
