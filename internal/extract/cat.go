package extract

import (
	"fmt"

	"github.com/lu4p/cat"
)

// extractWithCat handles the OpenDocument and RTF formats cat understands.
func extractWithCat(content []byte, ext string) (string, error) {
	text, err := cat.FromBytes(content)
	if err != nil {
		return "", fmt.Errorf("extract %s: %w", ext, err)
	}
	return text, nil
}
