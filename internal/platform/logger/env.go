package logger

import (
	"os"
	"strconv"
	"strings"
)

// logger cannot use platform/config, which logs through it

func env(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func envBool(key string, def bool) bool {
	v, err := strconv.ParseBool(env(key, ""))
	if err != nil {
		return def
	}
	return v
}

func envInt(key string, def int) int {
	n, err := strconv.Atoi(env(key, ""))
	if err != nil || n < 0 {
		return def
	}
	return n
}

// FromEnv reads LOG_LEVEL, LOG_FORMAT, LOG_SERVICE, LOG_COMPONENT, LOG_CALLER and LOG_SAMPLE_EVERY
func FromEnv() Options {
	return Options{
		Level:       strings.ToLower(env("LOG_LEVEL", "debug")),
		Format:      strings.ToLower(env("LOG_FORMAT", "console")),
		Service:     env("LOG_SERVICE", "spacebio"),
		Component:   env("LOG_COMPONENT", ""),
		WithCaller:  envBool("LOG_CALLER", false),
		SampleEvery: envInt("LOG_SAMPLE_EVERY", 0),
	}
}
