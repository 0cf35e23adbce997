package printing

import "regexp"

// shortMoneyPattern matches values that look like amounts ("1,034.50",
// "250.00 EUR") which must never wrap inside a table cell.
var shortMoneyPattern = regexp.MustCompile(`\d[.,]\d\d($| [A-Z]{3}$)`)

// processItem appends the section name to a node's style list so the
// design can theme whole sections, and tags short numeric text with
// noWrap.
func processItem(item map[string]any, section string) map[string]any {
	styles, _ := item["style"].([]any)
	styles = append(styles, section)

	if text, ok := item["text"].(string); ok {
		if text != "" && len(text) < 20 && shortMoneyPattern.MatchString(text) {
			styles = append(styles, "noWrap")
		}
	}

	item["style"] = styles
	return item
}

func hasContent(item map[string]any) bool {
	if text, ok := item["text"].(string); ok && text != "" {
		return true
	}
	if _, ok := item["stack"]; ok {
		return true
	}
	return false
}

// prepareDataList drops blank entries and applies the section style.
// An empty list collapses to a single spacer entry.
func prepareDataList(data []any, section string) []any {
	if len(data) == 0 {
		data = []any{map[string]any{"text": " "}}
	}
	newData := make([]any, 0, len(data))
	for _, entry := range data {
		item, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		item = processItem(item, section)
		if hasContent(item) {
			newData = append(newData, item)
		}
	}
	return newData
}

// prepareDataTable drops blank cells and empty rows and applies the
// section style to every remaining cell.
func prepareDataTable(rows [][]any, section string) []any {
	newData := make([]any, 0, len(rows))
	for _, row := range rows {
		newRow := make([]any, 0, len(row))
		for _, cell := range row {
			item, ok := cell.(map[string]any)
			if !ok {
				continue
			}
			item = processItem(item, section)
			if hasContent(item) {
				newRow = append(newRow, item)
			}
		}
		if len(newRow) > 0 {
			newData = append(newData, newRow)
		}
	}
	return newData
}

// prepareDataPairs drops label/value rows where either side is blank
// and applies the section style. The value cell additionally gets the
// sectionValue style for separate theming.
func prepareDataPairs(pairs [][]any, section string) []any {
	if len(pairs) == 0 {
		pairs = [][]any{{
			map[string]any{"text": " "},
			map[string]any{"text": " "},
		}}
	}
	newData := make([]any, 0, len(pairs))
	for _, row := range pairs {
		blank := false
		for j, cell := range row {
			item, ok := cell.(map[string]any)
			if !ok {
				blank = true
				continue
			}
			processItem(item, section)
			if !hasContent(item) {
				blank = true
			}
			if j == 1 {
				processItem(item, section+"Value")
			}
		}
		if !blank {
			newData = append(newData, any(row))
		}
	}
	return newData
}
