package notebook

import (
	"errors"
	"fmt"
	"os"

	"github.com/tidwall/gjson"
)

// Errors returned when reading notebook files.
var (
	ErrInvalidNotebook = errors.New("invalid notebook JSON")
	ErrNoCells         = errors.New("notebook has no cells field")
)

// Parse reads cells and language metadata out of nbformat JSON. Only the
// fields the bridge needs are read; everything else in the file is ignored.
func Parse(data []byte) ([]Cell, string, error) {
	if !gjson.ValidBytes(data) {
		return nil, "", ErrInvalidNotebook
	}

	root := gjson.ParseBytes(data)

	language := root.Get("metadata.kernelspec.language").String()
	if language == "" {
		language = root.Get("metadata.language_info.name").String()
	}
	if language == "" {
		language = "python"
	}

	cellsField := root.Get("cells")
	if !cellsField.Exists() {
		return nil, "", ErrNoCells
	}

	var cells []Cell
	cellsField.ForEach(func(_, raw gjson.Result) bool {
		cell := Cell{
			Index: len(cells),
			Kind:  parseCellKind(raw.Get("cell_type").String()),
		}

		switch cell.Kind {
		case CellCode:
			cell.Language = language
		case CellMarkup:
			cell.Language = "markdown"
		}

		source := raw.Get("source")
		if source.IsArray() {
			source.ForEach(func(_, line gjson.Result) bool {
				cell.Source = append(cell.Source, line.String())
				return true
			})
		} else if source.Exists() {
			cell.Source = SplitSource(source.String())
		}

		cells = append(cells, cell)
		return true
	})

	return cells, language, nil
}

// LoadFile reads an .ipynb file into a State. The shadow path and view
// handle are left for the caller to fill in.
func LoadFile(path string) (*State, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read notebook: %w", err)
	}

	cells, language, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return &State{
		FacadePath:     path,
		ShadowLanguage: language,
		Cells:          cells,
	}, nil
}

func parseCellKind(name string) CellKind {
	switch name {
	case "code":
		return CellCode
	case "markdown":
		return CellMarkup
	default:
		return CellRaw
	}
}
