package jsondiff

import (
	"bytes"
	"fmt"
	"io"
	"strings"
)

const (
	colorClose   = "\x1b[0m"
	colorNeutral = "\x1b[37m"
	colorAdd     = "\x1b[32m"
	colorDel     = "\x1b[31m"
	colorChg     = "\x1b[34m"
)

var kindColors = map[Kind]string{
	KindAdd: colorAdd,
	KindDel: colorDel,
	KindChg: colorChg,
}

// absent is printed in place of a missing left or right value
const absent = "not present"

// FormatPrettyString is a convenience wrapper that outputs to a string instead of
// an io.Writer
func FormatPrettyString(edits Edits, colorTTY bool) (string, error) {
	buf := &bytes.Buffer{}
	if err := FormatPretty(buf, edits, colorTTY); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// FormatPretty writes a text report to w, one banner per edit kind followed by
// a PATH, LEFT & RIGHT line for each edit. if colorTTY is true it will add
// green for additions
// red for deletions
// blue for changes
func FormatPretty(w io.Writer, edits Edits, colorTTY bool) error {
	var prev Kind
	for _, e := range edits {
		start, end := "", ""
		if colorTTY {
			start, end = kindColors[e.Kind], colorClose
		}

		if e.Kind != prev {
			banner := strings.Repeat("-", 25)
			if _, err := fmt.Fprintf(w, "%s%s%s%s%s\n\n", start, banner, e.Kind, banner, end); err != nil {
				return err
			}
			prev = e.Kind
		}

		left, err := formatValue(e.Left)
		if err != nil {
			return err
		}
		right, err := formatValue(e.Right)
		if err != nil {
			return err
		}

		if _, err := fmt.Fprintf(w, "%[1]s%[2]s | PATH  : %[3]s%[6]s\n%[1]s%[2]s | LEFT  : %[4]s%[6]s\n%[1]s%[2]s | RIGHT : %[5]s%[6]s\n\n",
			start, e.Kind, e.Path, left, right, end); err != nil {
			return err
		}
	}
	return nil
}

// formatValue renders v as compact JSON
func formatValue(v Value) (string, error) {
	if isNil(v) {
		return absent, nil
	}
	data, err := v.MarshalJSON()
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// FormatPrettyStats prints a string of stats info
func FormatPrettyStats(diffStat *Stats) string {
	return formatStats(diffStat, false)
}

// FormatPrettyStatsColor prints a string of stats info with ANSI colors
func FormatPrettyStatsColor(diffStat *Stats) string {
	return formatStats(diffStat, true)
}

func formatStats(ds *Stats, color bool) string {
	var (
		neutralColor, addColor, delColor, chgColor, closeColor string
	)

	if ds == nil {
		return ""
	}

	if color {
		neutralColor = colorNeutral
		addColor = colorAdd
		delColor = colorDel
		chgColor = colorChg
		closeColor = colorClose
	}

	buf := &bytes.Buffer{}

	elsColor := addColor
	change := ds.NodeChange()
	sign := "+"
	if change < 0 {
		elsColor = delColor
		sign = ""
	} else if change == 0 {
		elsColor = neutralColor
		sign = ""
	}

	buf.WriteString(fmt.Sprintf("%s%s%d %s%s%s%s.",
		elsColor, sign, change, closeColor,
		neutralColor, plural(change, "element", "elements"), closeColor,
	))
	buf.WriteString(fmt.Sprintf(" %s%d %s.%s", addColor, ds.Adds, plural(ds.Adds, "addition", "additions"), closeColor))
	buf.WriteString(fmt.Sprintf(" %s%d %s.%s", delColor, ds.Dels, plural(ds.Dels, "deletion", "deletions"), closeColor))
	buf.WriteString(fmt.Sprintf(" %s%d %s.%s", chgColor, ds.Chgs, plural(ds.Chgs, "change", "changes"), closeColor))
	buf.WriteRune('\n')

	return buf.String()
}

func plural(n int, one, many string) string {
	if n == 1 || n == -1 {
		return one
	}
	return many
}
