package phyloxml

import (
	"strconv"
	"strings"
)

// parseBool accepts exactly "true" and "false". Unlike the numeric
// converters it is strict: any other token is a schema error.
func parseBool(text string) (bool, error) {
	switch text {
	case "true":
		return true, nil
	case "false":
		return false, nil
	}
	return false, schemaErrorf("", "cannot convert %q to boolean", text)
}

// optInt converts text to an integer, treating absent and unparseable input
// identically: both yield nil.
func optInt(text string) *int {
	if text == "" {
		return nil
	}
	v, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return nil
	}
	return &v
}

// optFloat converts text to a float, treating absent and unparseable input
// identically: both yield nil.
func optFloat(text string) *float64 {
	if text == "" {
		return nil
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil {
		return nil
	}
	return &v
}

// collapseWhitespace turns every run of whitespace into a single space and
// trims the ends, the normalization phyloXML applies to free-text fields.
func collapseWhitespace(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

var wsReplacer = strings.NewReplacer("\t", " ", "\n", " ", "\r", " ")

// replaceWhitespace turns tab, LF and CR into spaces without collapsing
// runs, the milder normalization defined alongside collapseWhitespace.
func replaceWhitespace(text string) string {
	return wsReplacer.Replace(text)
}

// formatFloat renders a float in its shortest round-trip form with an
// upper-case exponent marker.
func formatFloat(v float64) string {
	return strings.ToUpper(strconv.FormatFloat(v, 'g', -1, 64))
}

func formatBool(v bool) string {
	if v {
		return "true"
	}
	return "false"
}
