package archive

import "errors"

var (
	// ErrInvalidConfig is returned by Config.Validate and NewArchiver.
	ErrInvalidConfig = errors.New("archive: invalid config")

	// ErrNotArchived means the bucket holds no archive for the requested date.
	ErrNotArchived = errors.New("archive: snapshot not archived")
)

// IsNotArchived reports whether err means the archive does not exist.
func IsNotArchived(err error) bool {
	return errors.Is(err, ErrNotArchived)
}
