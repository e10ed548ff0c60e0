package pipeline

import (
	"sgsalary/adapters/tabular"
)

// LoadAndClean reads the source file and runs a cleaning pass over it.
// This is the single entry point both consumers use at startup; the
// resulting posting collection is immutable and safe to share read-only.
func LoadAndClean(path string, opts Options) (*Result, error) {
	table, err := tabular.NewReader(path).Read()
	if err != nil {
		return nil, err
	}
	return Clean(table, opts)
}
