package reports

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// readRawRows opens a workbook and returns the raw rows of the selected
// sheet with no header interpretation. An empty sheet name selects the
// first sheet. The file handle is closed before returning.
func readRawRows(path, sheet string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	name := sheet
	if name == "" {
		name = f.GetSheetName(0)
		if name == "" {
			return nil, fmt.Errorf("workbook has no sheets")
		}
	}

	rows, err := f.GetRows(name)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", name, err)
	}

	return rows, nil
}
