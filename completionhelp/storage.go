package completionhelp

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/findy-network/findy-mediator/agent/storage/api"
	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
)

// StorageLocations returns the usual directories of the mediator storage.
func StorageLocations() []string {
	defer err2.Catch(err2.Err(func(err error) {
		_, _ = fmt.Fprintln(os.Stderr, err)
	}))

	home := try.To1(os.UserHomeDir())
	return []string{".", filepath.Join(home, ".findy/mediator")}
}

// StorageTypes returns the names of the storage types.
func StorageTypes() []string {
	return []string{api.TypeBolt.String(), api.TypeMgd.String(), api.TypeMem.String()}
}
