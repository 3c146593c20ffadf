package mcp

import (
	"encoding/json"
	"reflect"
	"strings"

	"github.com/go-viper/mapstructure/v2"
)

// argumentGetter is satisfied by mcp.CallToolRequest.
type argumentGetter interface {
	GetArguments() map[string]any
}

// generateArgs are the arguments accepted by outline_generate.
type generateArgs struct {
	IncludeDocument bool `json:"include_document"`
}

// bindArguments decodes tool arguments into target. Some clients send every
// value as a string, so "true", "10" and JSON-encoded lists are coerced to the
// field's type.
func bindArguments[T any](request argumentGetter, target *T) error {
	raw := request.GetArguments()
	if len(raw) == 0 {
		return nil
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			jsonStringHook,
			mapstructure.StringToSliceHookFunc(","),
		),
		Result:  target,
		TagName: "json",
	})
	if err != nil {
		return err
	}

	return decoder.Decode(raw)
}

func jsonStringHook(f reflect.Type, t reflect.Type, data any) (any, error) {
	if f.Kind() != reflect.String {
		return data, nil
	}

	trimmed := strings.TrimSpace(data.(string))
	if trimmed == "" {
		return data, nil
	}

	switch t.Kind() {
	case reflect.Slice:
		if strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]") {
			slicePtr := reflect.New(t)
			if err := json.Unmarshal([]byte(trimmed), slicePtr.Interface()); err == nil {
				return slicePtr.Elem().Interface(), nil
			}
		}
	case reflect.Bool:
		if trimmed == "true" || trimmed == "false" {
			return trimmed == "true", nil
		}
	}

	return data, nil
}
