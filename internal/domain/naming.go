package domain

import (
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

// TimestampFormat is the prefix format for all derived artifact names.
const TimestampFormat = "20060102_150405"

// MetaNoteSuffix terminates every metadata note filename.
const MetaNoteSuffix = "_meta.md"

// PlanSuffix terminates every plan filename.
const PlanSuffix = "_plan.md"

var timestampPrefixRe = regexp.MustCompile(`^\d{8}_\d{6}_`)

// unsafe characters replaced during filename sanitization.
const unsafeChars = `\/:*?"<>|`

// SanitizeStem replaces filesystem-unsafe characters in a filename stem
// with underscores.
func SanitizeStem(stem string) string {
	return strings.Map(func(r rune) rune {
		if strings.ContainsRune(unsafeChars, r) {
			return '_'
		}
		return r
	}, stem)
}

// DerivedTaskName builds the Needs_Action working-copy name for an inbox
// file: {ingestTimestamp}_{sanitizedStem}{ext}.
func DerivedTaskName(ts time.Time, originalName string) string {
	ext := filepath.Ext(originalName)
	stem := SanitizeStem(strings.TrimSuffix(originalName, ext))
	return ts.Format(TimestampFormat) + "_" + stem + ext
}

// MetaNoteName builds the metadata note name paired with a derived task
// name: {derivedStem}_meta.md.
func MetaNoteName(derivedTaskName string) string {
	stem := strings.TrimSuffix(derivedTaskName, filepath.Ext(derivedTaskName))
	return stem + MetaNoteSuffix
}

// PlanName builds a plan filename for a processing attempt:
// {processTimestamp}_{taskStem}_plan.md.
func PlanName(ts time.Time, taskStem string) string {
	return ts.Format(TimestampFormat) + "_" + taskStem + PlanSuffix
}

// IsMetaNote reports whether a filename is a metadata note.
func IsMetaNote(name string) bool {
	return strings.HasSuffix(name, MetaNoteSuffix)
}

// IsPlan reports whether a filename is a plan document.
func IsPlan(name string) bool {
	return strings.HasSuffix(name, PlanSuffix)
}

// StripTimestampPrefix removes a leading ingest-timestamp prefix from a
// derived filename, recovering the sanitized original name. Names without
// a prefix are returned unchanged.
func StripTimestampPrefix(name string) string {
	return timestampPrefixRe.ReplaceAllString(name, "")
}

// MatchesWithCounter reports whether candidate is stem{ext} with an
// optional _N collision counter before the extension, the shape produced
// by collision-safe destination resolution.
func MatchesWithCounter(candidate, stem, ext string) bool {
	if candidate == stem+ext {
		return true
	}
	rest, ok := strings.CutPrefix(candidate, stem+"_")
	if !ok {
		return false
	}
	counter, ok := strings.CutSuffix(rest, ext)
	if !ok || counter == "" {
		return false
	}
	for _, r := range counter {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
