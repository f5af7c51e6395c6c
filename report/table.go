package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"github.com/redhat-nfvpe/xgetopt/api"
)

type row struct {
	kind  string
	name  string
	value string
}

var kindColors = map[string]color.Attribute{
	"option":  color.FgGreen,
	"unknown": color.FgRed,
	"missing": color.FgYellow,
	"operand": color.FgCyan,
}

func tableRows(res api.Result) []row {
	rows := []row{{kind: "KIND", name: "NAME", value: "VALUE"}}
	for _, opt := range res.Options {
		rows = append(rows, row{kind: "option", name: "-" + opt.Name, value: opt.Value})
	}
	for _, name := range res.Unknown {
		rows = append(rows, row{kind: "unknown", name: "-" + name})
	}
	for _, name := range res.Missing {
		rows = append(rows, row{kind: "missing", name: "-" + name})
	}
	for _, op := range res.Operands {
		rows = append(rows, row{kind: "operand", value: op})
	}
	return rows
}

// writeTable prints one aligned row per option, rejected option and operand.
// Widths are display widths, so wide characters line up.
func writeTable(w io.Writer, res api.Result, colored bool) error {
	rows := tableRows(res)

	kindWidth, nameWidth := 0, 0
	for _, r := range rows {
		kindWidth = max(kindWidth, runewidth.StringWidth(r.kind))
		nameWidth = max(nameWidth, runewidth.StringWidth(r.name))
	}

	for i, r := range rows {
		kind := runewidth.FillRight(r.kind, kindWidth)
		if attr, ok := kindColors[r.kind]; ok && i > 0 {
			c := color.New(attr)
			if colored {
				c.EnableColor()
			} else {
				c.DisableColor()
			}
			kind = c.Sprint(kind)
		}
		line := kind + "  " + runewidth.FillRight(r.name, nameWidth) + "  " + r.value
		if _, err := fmt.Fprintln(w, strings.TrimRight(line, " ")); err != nil {
			return err
		}
	}
	return nil
}
