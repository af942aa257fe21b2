//go:build tools

package tools

// Pins the swag codegen CLI used to generate swagger docs for the monitoring API.
import (
	_ "github.com/swaggo/swag/cmd/swag"
)
