package loader

import "os"

type textLoader struct{}

func (textLoader) Load(filePath string) ([]Page, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}
	return []Page{{Number: 1, Content: string(data)}}, nil
}
