package config

import (
	"reflect"
	"strings"
)

// GetSettingsExample uses reflection to generate example settings.
// It stays in sync when new fields are added to Settings.
func GetSettingsExample() map[string]any {
	t := reflect.TypeOf(Settings{})
	example := make(map[string]any, t.NumField())

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		jsonTag := field.Tag.Get("json")
		if jsonTag == "" || jsonTag == "-" {
			continue
		}
		jsonName := strings.Split(jsonTag, ",")[0]
		example[jsonName] = exampleValue(field.Type, jsonName)
	}

	return example
}

func exampleValue(t reflect.Type, fieldName string) any {
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	switch t.Kind() {
	case reflect.Bool:
		return fieldName != "debug"
	case reflect.Int:
		switch fieldName {
		case "call_timeout_seconds":
			return DefaultCallTimeoutSeconds
		case "idle_poll_interval_seconds":
			return DefaultIdlePollIntervalSeconds
		case "max_log_files":
			return 1000
		case "tick_interval_ms":
			return DefaultTickIntervalMillis
		}
		return 10
	case reflect.String:
		if fieldName == "db_path" {
			return "~/.timeboxd/state.db"
		}
		return "example"
	}

	return nil
}
