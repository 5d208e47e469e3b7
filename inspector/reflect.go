package inspector

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/pthm-cable/thrust/components"
	"github.com/pthm-cable/thrust/entity"
)

// Widget types for rendering fields.
type Widget int

const (
	WidgetAuto Widget = iota
	WidgetLabel
	WidgetBar
	WidgetAngle
	WidgetBool
	WidgetSkip
)

// Field represents a component field with rendering hints.
type Field struct {
	Name    string
	Value   interface{}
	Widget  Widget
	Options map[string]string
}

// Section is one component's fields under a title.
type Section struct {
	Title  string
	Fields []Field
}

// ParseTag parses an inspect struct tag.
// Format: `inspect:"widget[,option:value...]"`
// Examples:
//
//	`inspect:"bar"`
//	`inspect:"bar,max:200"`
//	`inspect:"angle"`
//	`inspect:"label,fmt:%.1f"`
//	`inspect:"skip"`
func ParseTag(tag string) (Widget, map[string]string) {
	options := make(map[string]string)

	if tag == "" {
		return WidgetAuto, options
	}

	parts := strings.Split(tag, ",")

	var widget Widget
	switch strings.TrimSpace(parts[0]) {
	case "label":
		widget = WidgetLabel
	case "bar":
		widget = WidgetBar
	case "angle":
		widget = WidgetAngle
	case "bool":
		widget = WidgetBool
	case "skip":
		widget = WidgetSkip
	default:
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

// ExtractFields uses reflection to extract all fields from a component.
// An embedded field takes the component's type name, so a Velocity that
// embeds a vector shows up as "Velocity".
func ExtractFields(component interface{}) []Field {
	v := reflect.ValueOf(component)
	if v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return nil
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return nil
	}

	t := v.Type()
	var fields []Field

	for i := 0; i < v.NumField(); i++ {
		sf := t.Field(i)
		fv := v.Field(i)

		if !sf.IsExported() {
			continue
		}

		widget, options := ParseTag(sf.Tag.Get("inspect"))
		if widget == WidgetSkip {
			continue
		}
		if widget == WidgetAuto {
			widget = autoDetectWidget(fv)
		}

		name := sf.Name
		if sf.Anonymous {
			name = t.Name()
		}

		fields = append(fields, Field{
			Name:    name,
			Value:   fv.Interface(),
			Widget:  widget,
			Options: options,
		})
	}

	return fields
}

// Sections extracts the inspectable components of e in display order.
// maxVelocity scales the speed bar; zero or less leaves it at 1.
func Sections(e entity.Entity, maxVelocity float64) []Section {
	return []Section{
		{Title: "Transform", Fields: ExtractFields(e.Transform)},
		{Title: "Motion", Fields: motionFields(e, maxVelocity)},
		{Title: "Sprite", Fields: ExtractFields(e.Sprite)},
		{Title: "Tags", Fields: ExtractFields(components.Tags{Flags: e.Flags})},
	}
}

// motionReadout holds values derived from an entity's velocity and
// acceleration.
type motionReadout struct {
	Speed     float64 `inspect:"bar,fmt:%.3f"`
	Heading   float64 `inspect:"angle"`
	Thrusting bool
}

// motionFields lists velocity and acceleration plus the derived readout.
// A resting entity shows its transform rotation as heading.
func motionFields(e entity.Entity, maxVelocity float64) []Field {
	fields := ExtractFields(components.Velocity{Vec2: e.Velocity})
	fields = append(fields, ExtractFields(components.Acceleration{Vec2: e.Acceleration})...)

	heading, ok := e.Velocity.Heading()
	if !ok {
		heading = e.Transform.Rotation
	}
	readout := ExtractFields(motionReadout{
		Speed:     e.Velocity.Magnitude(),
		Heading:   heading,
		Thrusting: !e.Acceleration.IsZero(),
	})
	if maxVelocity > 0 {
		readout[0].Options["max"] = strconv.FormatFloat(maxVelocity, 'g', -1, 64)
	}
	return append(fields, readout...)
}

// autoDetectWidget chooses a widget based on the field type.
func autoDetectWidget(v reflect.Value) Widget {
	switch v.Kind() {
	case reflect.Bool:
		return WidgetBool
	default:
		return WidgetLabel
	}
}

// FormatValue formats a field value as a string.
func FormatValue(value interface{}, fmtStr string) string {
	if fmtStr != "" {
		return fmt.Sprintf(fmtStr, value)
	}
	switch v := value.(type) {
	case float32:
		return fmt.Sprintf("%.2f", v)
	case float64:
		return fmt.Sprintf("%.2f", v)
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprintf("%v", value)
	}
}

// GetMax returns the max option as a float, defaulting to 1.0.
func GetMax(options map[string]string) float32 {
	if maxStr, ok := options["max"]; ok {
		if max, err := strconv.ParseFloat(maxStr, 32); err == nil {
			return float32(max)
		}
	}
	return 1.0
}

// GetFloatValue extracts a float32 from various types.
func GetFloatValue(value interface{}) (float32, bool) {
	switch v := value.(type) {
	case float32:
		return v, true
	case float64:
		return float32(v), true
	case int:
		return float32(v), true
	case int32:
		return float32(v), true
	case int64:
		return float32(v), true
	case uint32:
		return float32(v), true
	default:
		return 0, false
	}
}
