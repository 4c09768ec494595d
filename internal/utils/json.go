package utils

import (
	"os"
	"regexp"
)

var jsonComments = regexp.MustCompile(`(?s)//.*?\n|/\*.*?\*/`)

// GetJsonData reads a JSON file, stripping C style comments so hand annotated
// data files still decode.
func GetJsonData(filePath string) ([]byte, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	return jsonComments.ReplaceAll(data, nil), nil
}
