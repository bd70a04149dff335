// Package reports renders the report suite: every generator here is a thin
// consumer of the pinball package's resolution, attribution and statistics
// kernel.
package reports

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/richard-senior/pinstats/pkg/util"
)

// markdown table rendering driven by struct tags, so every report states
// its columns once on its row type:
//
//	type row struct {
//		Machine string `md:"Machine"`
//		Games   int    `md:"Games,right"`
//		Median  float64 `md:"Median,right"`
//		note    string  // untagged and unexported fields are skipped
//	}
//
// Tag is `md:"Header"` with an optional `,right` alignment flag; `md:"-"`
// skips a field explicitly.

type column struct {
	index  int
	header string
	right  bool
}

/**
* MarkdownTable renders a slice of structs (or struct pointers) as a
* GitHub-style Markdown table using the `md` struct tags of the element
* type.
 */
func MarkdownTable(rows any) (string, error) {
	v := reflect.ValueOf(rows)
	if v.Kind() != reflect.Slice {
		return "", fmt.Errorf("MarkdownTable wants a slice, got %T", rows)
	}
	elem := v.Type().Elem()
	if elem.Kind() == reflect.Ptr {
		elem = elem.Elem()
	}
	if elem.Kind() != reflect.Struct {
		return "", fmt.Errorf("MarkdownTable wants a slice of structs, got %T", rows)
	}

	cols, err := tableColumns(elem)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("|")
	for _, c := range cols {
		b.WriteString(" " + c.header + " |")
	}
	b.WriteString("\n|")
	for _, c := range cols {
		if c.right {
			b.WriteString(" ---: |")
		} else {
			b.WriteString(" --- |")
		}
	}
	b.WriteString("\n")

	for i := 0; i < v.Len(); i++ {
		rv := v.Index(i)
		if rv.Kind() == reflect.Ptr {
			rv = rv.Elem()
		}
		b.WriteString("|")
		for _, c := range cols {
			b.WriteString(" " + formatCell(rv.Field(c.index)) + " |")
		}
		b.WriteString("\n")
	}
	return b.String(), nil
}

func tableColumns(elem reflect.Type) ([]column, error) {
	var cols []column
	for i := 0; i < elem.NumField(); i++ {
		f := elem.Field(i)
		if f.PkgPath != "" {
			continue
		}
		tag := f.Tag.Get("md")
		if tag == "" || tag == "-" {
			continue
		}
		parts := strings.Split(tag, ",")
		col := column{index: i, header: parts[0]}
		for _, opt := range parts[1:] {
			if opt == "right" {
				col.right = true
			}
		}
		cols = append(cols, col)
	}
	if len(cols) == 0 {
		return nil, fmt.Errorf("type %s has no md-tagged fields", elem.Name())
	}
	return cols, nil
}

func formatCell(v reflect.Value) string {
	switch v.Kind() {
	case reflect.String:
		return strings.ReplaceAll(v.String(), "|", "\\|")
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(v.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(v.Uint(), 10)
	case reflect.Float32, reflect.Float64:
		f := v.Float()
		if math.IsInf(f, 1) {
			return "∞"
		}
		return strconv.FormatFloat(f, 'f', 2, 64)
	case reflect.Bool:
		if v.Bool() {
			return "yes"
		}
		return "no"
	default:
		s, err := util.GetAsString(v.Interface())
		if err != nil {
			return ""
		}
		return strings.ReplaceAll(s, "|", "\\|")
	}
}
