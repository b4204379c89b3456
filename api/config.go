package api

import "fmt"

// DecodePolicy decides what a list response does with items that fail to decode.
type DecodePolicy string

const (
	// DecodeInline replaces each failed item with an error marker object.
	DecodeInline DecodePolicy = "inline"

	// DecodeDrop omits failed items from the response.
	DecodeDrop DecodePolicy = "drop"

	// DecodeAbort fails the whole request when any item fails.
	DecodeAbort DecodePolicy = "abort"
)

// ParseDecodePolicy parses a policy name. An empty name selects DecodeInline.
func ParseDecodePolicy(s string) (DecodePolicy, error) {
	switch DecodePolicy(s) {
	case "", DecodeInline:
		return DecodeInline, nil
	case DecodeDrop, DecodeAbort:
		return DecodePolicy(s), nil
	}
	return "", fmt.Errorf("shelf: unknown decode policy %q", s)
}

// Config holds configuration for the Handler.
type Config struct {
	// DecodePolicy applies to list and lookup responses.
	// Default: DecodeInline
	DecodePolicy DecodePolicy
}

// DefaultConfig returns the configuration matching the service's historical behaviour.
func DefaultConfig() Config {
	return Config{
		DecodePolicy: DecodeInline,
	}
}

func (c *Config) validate() {
	if c.DecodePolicy == "" {
		c.DecodePolicy = DecodeInline
	}
}
