package microsim

import (
	"fmt"
	"os"
	"path/filepath"
)

// Build writes the generated assembly to the output path. The result is
// loaded into the MicroSim simulator as is; there is nothing to link.
func (m *microSim) Build() error {
	if m.text.Len() == 0 {
		return fmt.Errorf("nothing generated for %s", m.output)
	}

	if dir := filepath.Dir(m.output); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %v", err)
		}
	}

	if err := os.WriteFile(m.output, []byte(m.GetCode()), 0644); err != nil {
		return fmt.Errorf("failed to write assembly file: %v", err)
	}

	return nil
}
