package loader

import (
	"fmt"
	"strings"

	"github.com/tealeg/xlsx"
	"github.com/xuri/excelize/v2"
)

type xlsxLoader struct{}

// Load treats each sheet as one page unit.
func (xlsxLoader) Load(filePath string) ([]Page, error) {
	f, err := xlsx.OpenFile(filePath)
	if err != nil {
		return nil, err
	}

	var pages []Page
	for sheetNum, sheet := range f.Sheets {
		var text strings.Builder
		text.WriteString(fmt.Sprintf("Sheet: %s\n", sheet.Name))
		for _, row := range sheet.Rows {
			for _, cell := range row.Cells {
				text.WriteString(cell.String() + "\t")
			}
			text.WriteString("\n")
		}
		pages = append(pages, Page{Number: sheetNum + 1, Content: text.String()})
	}
	return pages, nil
}

type odsLoader struct{}

func (odsLoader) Load(filePath string) ([]Page, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var pages []Page
	for sheetNum, sheetName := range f.GetSheetList() {
		rows, err := f.GetRows(sheetName)
		if err != nil {
			continue
		}
		var text strings.Builder
		text.WriteString(fmt.Sprintf("Sheet: %s\n", sheetName))
		for _, row := range rows {
			for _, cell := range row {
				text.WriteString(cell + "\t")
			}
			text.WriteString("\n")
		}
		pages = append(pages, Page{Number: sheetNum + 1, Content: text.String()})
	}
	return pages, nil
}
