package vision

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"detect-bot/internal/domain/port"
)

// Проверка реализации интерфейса (общая для обеих сборок)
var _ port.ObjectDetector = (*YoloDetector)(nil)

// LoadNames читает список имён классов из yaml-файла датасета
// (поле names бывает и списком, и словарём индекс → имя).
func LoadNames(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read names file: %w", err)
	}

	var asMap struct {
		Names map[int]string `yaml:"names"`
	}
	if err := yaml.Unmarshal(data, &asMap); err == nil && len(asMap.Names) > 0 {
		indices := make([]int, 0, len(asMap.Names))
		for i := range asMap.Names {
			indices = append(indices, i)
		}
		sort.Ints(indices)

		names := make([]string, 0, len(indices))
		for _, i := range indices {
			names = append(names, asMap.Names[i])
		}
		return names, nil
	}

	var asList struct {
		Names []string `yaml:"names"`
	}
	if err := yaml.Unmarshal(data, &asList); err != nil {
		return nil, fmt.Errorf("parse names file: %w", err)
	}
	if len(asList.Names) == 0 {
		return nil, fmt.Errorf("names file %s has no names", path)
	}
	return asList.Names, nil
}
