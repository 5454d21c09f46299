package strictjson

import (
	"errors"
	"fmt"
	"reflect"
	"time"

	"github.com/go-viper/mapstructure/v2"

	"github.com/rbaliyan/strictjson/codec"
)

// Bind copies a decoded value onto target, which must be a non-nil pointer.
// Struct fields are matched by their json tag. Records are accepted as well
// as maps, and input is weakly typed (e.g., "8080" binds to an int field).
func Bind(value, target any) error {
	if target == nil {
		return &BindError{Target: "nil", Err: errors.New("target must be a non-nil pointer")}
	}
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return &BindError{Target: typeName(target), Err: errors.New("target must be a non-nil pointer")}
	}

	config := &mapstructure.DecoderConfig{
		Result:           target,
		TagName:          "json",
		WeaklyTypedInput: true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToTimeHookFunc(time.RFC3339),
			mapstructure.TextUnmarshallerHookFunc(),
		),
	}
	decoder, err := mapstructure.NewDecoder(config)
	if err != nil {
		return &BindError{Target: typeName(target), Err: err}
	}
	if err := decoder.Decode(codec.ToMappings(value)); err != nil {
		return &BindError{Target: typeName(target), Err: err}
	}
	return nil
}

// DecodeInto decodes data and binds the result onto target.
func (c *Codec) DecodeInto(data []byte, target any, opts ...CallOption) error {
	v, err := c.Decode(data, opts...)
	if err != nil {
		return err
	}
	return c.bind(v, target)
}

// DecodeFileInto decodes the file at path and binds the result onto target.
func (c *Codec) DecodeFileInto(path string, target any, opts ...CallOption) error {
	v, err := c.DecodeFile(path, opts...)
	if err != nil {
		return err
	}
	return c.bind(v, target)
}

func (c *Codec) bind(v, target any) error {
	if err := Bind(v, target); err != nil {
		c.logger.Debug("strictjson: bind failed", "target", fmt.Sprintf("%T", target), "error", err)
		return err
	}
	return nil
}
