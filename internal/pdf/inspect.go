package pdf

import (
	"fmt"
	"os"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// Info is what pdfcpu reports about a document before it is rendered.
type Info struct {
	PageCount int
	Version   string
}

// Inspect validates the PDF at path with pdfcpu and returns its page count and
// header version. The document is not optimized.
func Inspect(path string) (Info, error) {
	f, err := os.Open(path)
	if err != nil {
		return Info{}, fmt.Errorf("failed to read %s: %w", path, err)
	}
	defer f.Close()

	pdfContext, err := api.ReadAndValidate(f, model.NewDefaultConfiguration())
	if err != nil {
		return Info{}, fmt.Errorf("failed to validate %s: %w", path, err)
	}
	return Info{
		PageCount: pdfContext.PageCount,
		Version:   pdfContext.VersionString(),
	}, nil
}
