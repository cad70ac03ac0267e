package defn

import (
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

// LoadFile reads and compiles a chain definition from a CUE file.
func LoadFile(path string) (*Defn, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading definition: %w", err)
	}
	return LoadBytes(data, path)
}

// LoadBytes compiles a chain definition from CUE source. The filename
// is used for error positions only.
func LoadBytes(data []byte, filename string) (*Defn, error) {
	ctx := cuecontext.New()
	v := ctx.CompileBytes(data, cue.Filename(filename))
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}
	return Compile(v)
}
