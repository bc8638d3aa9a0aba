package embedding

import "fmt"

// errUnimplemented is shared by the GPU stubs. This file has no build
// tag, so it is also compiled into the default CPU build, where nothing
// calls it.
func errUnimplemented(accelerator string) error {
	return fmt.Errorf("%s accelerator path is a contract-only stub, no kernel is wired", accelerator)
}
