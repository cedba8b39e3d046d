// SPDX-License-Identifier: MIT

package convolve

import (
	"fmt"
	"io"

	"github.com/goccy/go-json"
)

// presetFile is the on-disk preset document:
//
//	{"kernels": [{"name": "soft", "values": [1,2,1, 2,4,2, 1,2,1], "normalize": true}]}
type presetFile struct {
	Kernels []presetEntry `json:"kernels"`
}

type presetEntry struct {
	Name      string    `json:"name"`
	Values    []float32 `json:"values"`
	Normalize bool      `json:"normalize,omitempty"`
}

// LoadPresets decodes a preset document into kernels keyed by name.
// MAIN DESCRIPTION:
//   - Every entry goes through NewKernel; "normalize": true scales weights to sum 1.
//
// Errors:
//   - ErrPresetFormat (bad JSON, empty or duplicate names, no kernels),
//     ErrKernelSize / ErrKernelParse from NewKernel.
func LoadPresets(r io.Reader) (map[string]*Kernel, error) {
	var doc presetFile
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("LoadPresets: %w: %w", ErrPresetFormat, err)
	}
	if len(doc.Kernels) == 0 {
		return nil, fmt.Errorf("LoadPresets: no kernels: %w", ErrPresetFormat)
	}

	out := make(map[string]*Kernel, len(doc.Kernels))
	for i, e := range doc.Kernels {
		if e.Name == "" {
			return nil, fmt.Errorf("LoadPresets: entry %d has no name: %w", i, ErrPresetFormat)
		}
		if _, dup := out[e.Name]; dup {
			return nil, fmt.Errorf("LoadPresets: duplicate %q: %w", e.Name, ErrPresetFormat)
		}
		k, err := NewKernel(e.Name, e.Values)
		if err != nil {
			return nil, fmt.Errorf("LoadPresets: %w", err)
		}
		if e.Normalize {
			if k, err = k.Normalized(); err != nil {
				return nil, fmt.Errorf("LoadPresets: %w", err)
			}
		}
		out[e.Name] = k
	}

	return out, nil
}

// WritePresets encodes kernels as a preset document, in the given order.
func WritePresets(w io.Writer, kernels ...*Kernel) error {
	doc := presetFile{Kernels: make([]presetEntry, 0, len(kernels))}
	for _, k := range kernels {
		doc.Kernels = append(doc.Kernels, presetEntry{Name: k.Name(), Values: k.Values()})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("WritePresets: %w", err)
	}

	return nil
}
