package source

import (
	"fmt"
	"os"
)

// Load reads the whole file named by name
func Load(name string) (string, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return "", fmt.Errorf("failed to read source %q: %w", name, err)
	}
	return string(data), nil
}
