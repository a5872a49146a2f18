// Package inspector turns entity data into labeled rows for the debug panel.
// Layout hints come from `inspect` struct tags.
package inspector

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/spatial/r2"
)

// Widget selects how a field is shown.
type Widget int

const (
	WidgetAuto Widget = iota
	WidgetLabel
	WidgetBar
	WidgetAngle
	WidgetVec
	WidgetBool
	WidgetSkip
)

var widgetNames = map[string]Widget{
	"label": WidgetLabel,
	"bar":   WidgetBar,
	"angle": WidgetAngle,
	"vec":   WidgetVec,
	"bool":  WidgetBool,
	"skip":  WidgetSkip,
}

// Field is one exported struct field with its rendering hints.
type Field struct {
	Name    string
	Value   any
	Widget  Widget
	Options map[string]string
}

// ParseTag parses an inspect struct tag.
// Format: `inspect:"widget[,option:value...]"`, for example
//
//	`inspect:"bar,max:200"`
//	`inspect:"vec,fmt:%.1f"`
//	`inspect:"skip"`
func ParseTag(tag string) (Widget, map[string]string) {
	options := make(map[string]string)
	if tag == "" {
		return WidgetAuto, options
	}

	parts := strings.Split(tag, ",")
	widget, ok := widgetNames[strings.TrimSpace(parts[0])]
	if !ok {
		widget = WidgetAuto
	}
	for _, part := range parts[1:] {
		kv := strings.SplitN(strings.TrimSpace(part), ":", 2)
		if len(kv) == 2 {
			options[kv[0]] = kv[1]
		}
	}
	return widget, options
}

// ExtractFields reflects over a struct or struct pointer. Unexported and
// skipped fields are left out.
func ExtractFields(v any) []Field {
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil
	}

	t := rv.Type()
	var fields []Field
	for i := 0; i < rv.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		widget, options := ParseTag(sf.Tag.Get("inspect"))
		if widget == WidgetSkip {
			continue
		}
		fv := rv.Field(i)
		if widget == WidgetAuto {
			widget = autoDetectWidget(fv)
		}
		fields = append(fields, Field{
			Name:    sf.Name,
			Value:   fv.Interface(),
			Widget:  widget,
			Options: options,
		})
	}
	return fields
}

func autoDetectWidget(v reflect.Value) Widget {
	if v.Type() == reflect.TypeOf(r2.Vec{}) {
		return WidgetVec
	}
	if v.Kind() == reflect.Bool {
		return WidgetBool
	}
	return WidgetLabel
}

// Format renders the field's value as text.
func (f Field) Format() string {
	fmtStr := f.Options["fmt"]
	switch f.Widget {
	case WidgetVec:
		if v, ok := f.Value.(r2.Vec); ok {
			if fmtStr == "" {
				fmtStr = "%.2f"
			}
			return fmt.Sprintf("("+fmtStr+", "+fmtStr+")", v.X, v.Y)
		}
	case WidgetAngle:
		if rad, ok := FloatValue(f.Value); ok {
			return fmt.Sprintf("%.1f°", rad*180/math.Pi)
		}
	case WidgetBool:
		if b, ok := f.Value.(bool); ok {
			if b {
				return "yes"
			}
			return "no"
		}
	}
	return FormatValue(f.Value, fmtStr)
}

// FormatValue formats a value with fmtStr, or a default per type.
func FormatValue(value any, fmtStr string) string {
	if fmtStr != "" {
		return fmt.Sprintf(fmtStr, value)
	}
	switch v := value.(type) {
	case float32, float64:
		return fmt.Sprintf("%.2f", v)
	default:
		return fmt.Sprintf("%v", value)
	}
}

// Max returns the max option, defaulting to 1.
func (f Field) Max() float64 {
	if s, ok := f.Options["max"]; ok {
		if max, err := strconv.ParseFloat(s, 64); err == nil {
			return max
		}
	}
	return 1
}

// Fraction returns the value over Max clamped to [0, 1], for bars.
func (f Field) Fraction() float64 {
	v, ok := FloatValue(f.Value)
	if !ok {
		return 0
	}
	return math.Max(0, math.Min(1, v/f.Max()))
}

// FloatValue extracts a float64 from numeric types.
func FloatValue(value any) (float64, bool) {
	switch v := value.(type) {
	case float32:
		return float64(v), true
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint64:
		return float64(v), true
	default:
		return 0, false
	}
}
