package wgpu

import (
	"errors"
	"fmt"

	"github.com/gogpu/hostapp/internal/cache"
	"github.com/gogpu/naga"
	"github.com/gogpu/wgpu"
)

// validated remembers WGSL sources that already passed validation.
var validated = cache.New[string, struct{}](64)

// ValidateWGSL parses, lowers and validates a WGSL source with naga.
func ValidateWGSL(source string) error {
	if _, ok := validated.Get(source); ok {
		return nil
	}
	ast, err := naga.Parse(source)
	if err != nil {
		return err
	}
	module, err := naga.LowerWithSource(ast, source)
	if err != nil {
		return err
	}
	problems, err := naga.Validate(module)
	if err != nil {
		return err
	}
	if len(problems) > 0 {
		errs := make([]error, len(problems))
		for i := range problems {
			errs[i] = problems[i]
		}
		return errors.Join(errs...)
	}
	validated.Set(source, struct{}{})
	return nil
}

// ShaderModule validates source and creates a shader module from it.
func ShaderModule(device *wgpu.Device, label, source string) (*wgpu.ShaderModule, error) {
	if err := ValidateWGSL(source); err != nil {
		return nil, fmt.Errorf("wgpu: shader %q: %w", label, err)
	}
	return device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{Label: label, WGSL: source})
}
