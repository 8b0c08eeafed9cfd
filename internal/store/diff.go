package store

import (
	"fmt"
	"strings"
	"time"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// lineDiff compares two store snapshots line by line. It returns the
// changed lines prefixed with "+ " or "- " and a one-line summary.
func lineDiff(before, after string) (changes []string, summary string) {
	dmp := diffmatchpatch.New()
	dmp.DiffTimeout = time.Second

	chars1, chars2, lineArray := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffMain(chars1, chars2, false)
	diffs = dmp.DiffCharsToLines(diffs, lineArray)

	inserted, deleted := 0, 0
	for _, d := range diffs {
		var prefix string
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			prefix = "+ "
		case diffmatchpatch.DiffDelete:
			prefix = "- "
		default:
			continue
		}
		for _, line := range strings.Split(strings.TrimSuffix(d.Text, "\n"), "\n") {
			changes = append(changes, prefix+line)
			if d.Type == diffmatchpatch.DiffInsert {
				inserted++
			} else {
				deleted++
			}
		}
	}
	return changes, fmt.Sprintf("%d lines inserted, %d lines deleted", inserted, deleted)
}
