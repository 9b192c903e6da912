package pipeline

import (
	"github.com/google/renameio/v2"

	"github.com/matzehuels/charts/pkg/errors"
)

// Persist atomically replaces the file at path with data. The data is
// written to a temporary file in the same directory and renamed over path,
// so path holds either its previous content or all of data.
func Persist(path string, data []byte) error {
	if err := renameio.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodePersist, err, "failed to write %s", path)
	}
	return nil
}
