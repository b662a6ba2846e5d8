package modes

import (
	"testing"

	"github.com/reusee/dscope"
)

// ModuleForTest selects ModeDevelopment. Providers that read the host
// environment, such as the config loader, stay hermetic in this mode.
type ModuleForTest struct {
	dscope.Module
}

func ForTest(t *testing.T) ModuleForTest {
	return ModuleForTest{}
}

func (ModuleForTest) Mode() Mode {
	return ModeDevelopment
}
