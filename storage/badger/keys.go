package badger

import (
	"fmt"

	"github.com/poiesic/arremate/core"
)

const (
	vectorCachePrefix = "embvec"
)

// makeVectorKey generates a key for a cached embedding by content ID.
func makeVectorKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", vectorCachePrefix, id))
}
