package console

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/actionsmith/inputguard/pkg/logger"
	"github.com/actionsmith/inputguard/pkg/stringutil"
)

var renderLog = logger.New("console:render")

// RenderStruct renders a value for console display using reflection and
// `console:` struct tags. Structs become markdown-style sections of aligned
// key-value pairs, slices of structs become tables, and maps become
// key-value sections.
//
// Supported tag options:
//   - `console:"title:Rule Summary"` sets the section title
//   - `console:"header:Field"` sets the key or column header
//   - `console:"format:number"` renders counters as 1k / 1.2M
//   - `console:"format:filesize"` renders byte counts as 1.5KB / 2.50GB
//   - `console:"default:-"` substitutes a value for zero fields
//   - `console:"maxlen:40"` truncates long values
//   - `console:"omitempty"` skips zero fields
//   - `console:"-"` skips the field entirely
func RenderStruct(v any) string {
	renderLog.Printf("Rendering struct: type=%T", v)
	var output strings.Builder
	renderValue(reflect.ValueOf(v), "", &output, 0)
	renderLog.Printf("Struct rendering complete: output_size=%d bytes", output.Len())
	return output.String()
}

func renderValue(val reflect.Value, title string, output *strings.Builder, depth int) {
	for val.Kind() == reflect.Ptr {
		if val.IsNil() {
			return
		}
		val = val.Elem()
	}

	switch val.Kind() {
	case reflect.Struct:
		renderStructValue(val, title, output, depth)
	case reflect.Slice, reflect.Array:
		renderSlice(val, title, output, depth)
	case reflect.Map:
		renderMap(val, title, output, depth)
	}
}

// writeTitle prints a section title as a markdown header sized by depth.
func writeTitle(output *strings.Builder, title string, depth int) {
	if title == "" {
		return
	}
	fmt.Fprintf(output, "%s %s\n\n", strings.Repeat("#", depth+1), title)
}

func renderStructValue(val reflect.Value, title string, output *strings.Builder, depth int) {
	typ := val.Type()
	renderLog.Printf("Rendering struct: type=%s, title=%s, depth=%d, fields=%d", typ.Name(), title, depth, val.NumField())

	writeTitle(output, title, depth)

	// Longest rendered key, for alignment.
	maxFieldLen := 0
	for i := range val.NumField() {
		tag := parseConsoleTag(typ.Field(i).Tag.Get("console"))
		if tag.skip || (tag.omitempty && isZeroValue(val.Field(i))) {
			continue
		}
		name := typ.Field(i).Name
		if tag.header != "" {
			name = tag.header
		}
		if len(name) > maxFieldLen {
			maxFieldLen = len(name)
		}
	}

	for i := range val.NumField() {
		field := val.Field(i)
		fieldType := typ.Field(i)

		tag := parseConsoleTag(fieldType.Tag.Get("console"))
		if tag.skip || (tag.omitempty && isZeroValue(field)) {
			continue
		}

		fieldName := fieldType.Name
		if tag.header != "" {
			fieldName = tag.header
		}

		elem := field
		if field.Kind() == reflect.Ptr && !field.IsNil() {
			elem = field.Elem()
		}

		switch {
		case elem.Kind() == reflect.Struct && elem.Type() != reflect.TypeOf(time.Time{}):
			renderValue(field, tag.titleOr(fieldName), output, depth+1)
		case elem.Kind() == reflect.Slice, elem.Kind() == reflect.Array, elem.Kind() == reflect.Map:
			renderValue(field, tag.titleOr(fieldName), output, depth+1)
		default:
			fmt.Fprintf(output, "  %-*s: %v\n", maxFieldLen, fieldName, formatFieldValueWithTag(field, tag))
		}
	}

	output.WriteString("\n")
}

func renderSlice(val reflect.Value, title string, output *strings.Builder, depth int) {
	if val.Len() == 0 {
		return
	}

	writeTitle(output, title, depth)

	elemType := val.Type().Elem()
	for elemType.Kind() == reflect.Ptr {
		elemType = elemType.Elem()
	}

	if elemType.Kind() == reflect.Struct {
		output.WriteString(RenderTable(buildTableConfig(val)))
	} else {
		for i := range val.Len() {
			fmt.Fprintf(output, "  • %v\n", formatFieldValue(val.Index(i)))
		}
		output.WriteString("\n")
	}
}

func renderMap(val reflect.Value, title string, output *strings.Builder, depth int) {
	if val.Len() == 0 {
		return
	}

	writeTitle(output, title, depth)

	for _, key := range val.MapKeys() {
		fmt.Fprintf(output, "  %-18s %v\n", fmt.Sprintf("%v:", key), formatFieldValue(val.MapIndex(key)))
	}
	output.WriteString("\n")
}

// buildTableConfig derives table headers and rows from a slice of structs.
func buildTableConfig(val reflect.Value) TableConfig {
	var config TableConfig
	if val.Len() == 0 {
		return config
	}

	elemType := val.Type().Elem()
	for elemType.Kind() == reflect.Ptr {
		elemType = elemType.Elem()
	}

	var fieldIndices []int
	var fieldTags []consoleTag
	for i := range elemType.NumField() {
		field := elemType.Field(i)
		tag := parseConsoleTag(field.Tag.Get("console"))
		if tag.skip {
			continue
		}

		header := field.Name
		if tag.header != "" {
			header = tag.header
		}
		config.Headers = append(config.Headers, header)
		fieldIndices = append(fieldIndices, i)
		fieldTags = append(fieldTags, tag)
	}

	for i := range val.Len() {
		elem := val.Index(i)
		for elem.Kind() == reflect.Ptr {
			if elem.IsNil() {
				break
			}
			elem = elem.Elem()
		}
		if elem.Kind() != reflect.Struct {
			continue
		}

		row := make([]string, 0, len(fieldIndices))
		for j, fieldIdx := range fieldIndices {
			row = append(row, formatFieldValueWithTag(elem.Field(fieldIdx), fieldTags[j]))
		}
		config.Rows = append(config.Rows, row)
	}

	return config
}

// consoleTag is a parsed `console:` struct tag.
type consoleTag struct {
	title      string
	header     string
	format     string
	defaultVal string
	maxLen     int
	omitempty  bool
	skip       bool
}

// titleOr returns the tag title, falling back to the given name.
func (t consoleTag) titleOr(name string) string {
	if t.title != "" {
		return t.title
	}
	return name
}

func parseConsoleTag(tag string) consoleTag {
	var result consoleTag
	if tag == "-" {
		result.skip = true
		return result
	}

	for part := range strings.SplitSeq(tag, ",") {
		part = strings.TrimSpace(part)
		switch {
		case part == "omitempty":
			result.omitempty = true
		default:
			if after, ok := strings.CutPrefix(part, "title:"); ok {
				result.title = after
			} else if after, ok := strings.CutPrefix(part, "header:"); ok {
				result.header = after
			} else if after, ok := strings.CutPrefix(part, "format:"); ok {
				result.format = after
			} else if after, ok := strings.CutPrefix(part, "default:"); ok {
				result.defaultVal = after
			} else if after, ok := strings.CutPrefix(part, "maxlen:"); ok {
				if n, err := strconv.Atoi(after); err == nil {
					result.maxLen = n
				}
			}
		}
	}

	return result
}

// isZeroValue reports whether val holds its type's zero value. time.Time is
// compared with IsZero since its zero has non-zero internal fields once a
// location is attached.
func isZeroValue(val reflect.Value) bool {
	if !val.IsValid() {
		return true
	}

	if val.Type() == reflect.TypeOf(time.Time{}) {
		if val.CanInterface() {
			if t, ok := val.Interface().(time.Time); ok {
				return t.IsZero()
			}
		}
		return false
	}

	switch val.Kind() {
	case reflect.Array, reflect.Map, reflect.Slice, reflect.String:
		return val.Len() == 0
	case reflect.Bool:
		return !val.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return val.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return val.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return val.Float() == 0
	case reflect.Interface, reflect.Ptr:
		return val.IsNil()
	}

	return false
}

// formatFieldValue renders a single value for display. Nil pointers and
// empty strings render as "-".
func formatFieldValue(val reflect.Value) string {
	for val.Kind() == reflect.Ptr {
		if val.IsNil() {
			return "-"
		}
		val = val.Elem()
	}

	if !val.IsValid() {
		return "-"
	}

	if isZeroValue(val) {
		switch {
		case val.Kind() == reflect.String:
			return "-"
		case val.CanInt():
			return strconv.FormatInt(val.Int(), 10)
		case val.CanUint():
			return strconv.FormatUint(val.Uint(), 10)
		case val.CanFloat():
			return fmt.Sprintf("%v", val.Float())
		default:
			return "-"
		}
	}

	if val.Type() == reflect.TypeOf(time.Time{}) && val.CanInterface() {
		if t, ok := val.Interface().(time.Time); ok {
			return t.Format("2006-01-02 15:04:05")
		}
	}

	if !val.CanInterface() {
		// Unexported field: format from the kind instead.
		switch {
		case val.Kind() == reflect.Bool:
			return strconv.FormatBool(val.Bool())
		case val.CanInt():
			return strconv.FormatInt(val.Int(), 10)
		case val.CanUint():
			return strconv.FormatUint(val.Uint(), 10)
		case val.CanFloat():
			return fmt.Sprintf("%v", val.Float())
		case val.Kind() == reflect.String:
			return val.String()
		default:
			return val.Type().String()
		}
	}

	return fmt.Sprintf("%v", val.Interface())
}

// formatFieldValueWithTag renders a value honoring the format, default, and
// maxlen tag options.
func formatFieldValueWithTag(val reflect.Value, tag consoleTag) string {
	baseValue := formatFieldValue(val)

	if tag.defaultVal != "" && isZeroValue(val) {
		baseValue = tag.defaultVal
	}

	if tag.format != "" && baseValue != "-" {
		switch tag.format {
		case "number":
			if val.CanInt() {
				return FormatNumber(int(val.Int()))
			}
			if val.CanUint() {
				return FormatNumber(int(val.Uint()))
			}
		case "filesize":
			if val.CanInt() {
				return FormatFileSize(val.Int())
			}
			if val.CanUint() {
				return FormatFileSize(int64(val.Uint()))
			}
		}
	}

	if tag.maxLen > 0 {
		baseValue = stringutil.Truncate(baseValue, tag.maxLen)
	}

	return baseValue
}

// FormatNumber formats a count in compact human form: 532, 1.53k, 12.4M.
func FormatNumber(n int) string {
	f := float64(n)
	format := func(v float64, suffix string) string {
		switch {
		case v >= 100:
			return fmt.Sprintf("%.0f%s", v, suffix)
		case v >= 10:
			return fmt.Sprintf("%.1f%s", v, suffix)
		default:
			return fmt.Sprintf("%.2f%s", v, suffix)
		}
	}

	switch {
	case f < 1000:
		return strconv.Itoa(n)
	case f < 1000000:
		return format(f/1000, "k")
	case f < 1000000000:
		return format(f/1000000, "M")
	default:
		return format(f/1000000000, "B")
	}
}

// FormatFileSize formats a byte count for human display, used by the
// `format:filesize` struct tag.
func FormatFileSize(bytes int64) string {
	const (
		kb = 1024
		mb = 1024 * kb
		gb = 1024 * mb
	)
	switch {
	case bytes >= gb:
		return fmt.Sprintf("%.2fGB", float64(bytes)/float64(gb))
	case bytes >= mb:
		return fmt.Sprintf("%.1fMB", float64(bytes)/float64(mb))
	case bytes >= kb:
		return fmt.Sprintf("%.1fKB", float64(bytes)/float64(kb))
	default:
		return fmt.Sprintf("%dB", bytes)
	}
}
