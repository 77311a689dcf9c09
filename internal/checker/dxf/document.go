package dxf

import (
	"bytes"
	"fmt"
	"strings"

	"dxf-checker/internal/checker/models"

	"github.com/paulmach/orb"
)

// ============================================================
// Document
// ============================================================

// Block — определение блока из секции BLOCKS.
type Block struct {
	Name     string
	Base     orb.Point
	Entities []Entity
}

// Document — чертеж, разобранный за один проход. После Parse не меняется:
// конвейер работает с типизированными сущностями, запись — с потоком тегов.
type Document struct {
	Tags        []Tag
	Entities    []Entity          // типизированные сущности секции ENTITIES
	Blocks      map[string]*Block // имя блока (верхний регистр) -> определение
	EntitiesEnd int               // индекс тега ENDSEC, закрывающего ENTITIES
}

// Parse читает DXF из r. Невалидный или неподдерживаемый файл -> models.ErrFormat.
func Parse(data []byte) (*Document, error) {
	scanner := NewScanner(bytes.NewReader(data))

	var tags []Tag
	for scanner.Next() {
		tags = append(tags, scanner.LastTag)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrFormat, err)
	}
	if len(tags) == 0 {
		return nil, fmt.Errorf("%w: empty file", models.ErrFormat)
	}

	doc := &Document{
		Tags:        tags,
		Blocks:      make(map[string]*Block),
		EntitiesEnd: -1,
	}

	for i := 0; i < len(tags); i++ {
		if tags[i].Code != 0 || strings.ToUpper(tags[i].Value) != "SECTION" {
			continue
		}
		if i+1 >= len(tags) || tags[i+1].Code != 2 {
			continue
		}

		switch strings.ToUpper(tags[i+1].Value) {
		case "BLOCKS":
			i = doc.parseBlocks(i + 2)
		case "ENTITIES":
			i = doc.parseEntities(i + 2)
		}
	}

	if doc.EntitiesEnd < 0 {
		return nil, fmt.Errorf("%w: no ENTITIES section", models.ErrFormat)
	}

	return doc, nil
}

// parseEntities разбирает секцию ENTITIES, возвращает индекс ее ENDSEC.
func (d *Document) parseEntities(start int) int {
	i := start
	for i < len(d.Tags) {
		if d.Tags[i].Code != 0 {
			i++
			continue
		}
		if strings.ToUpper(d.Tags[i].Value) == "ENDSEC" {
			d.EntitiesEnd = i
			return i
		}

		entity, next := parseEntity(d.Tags, i)
		if entity != nil {
			d.Entities = append(d.Entities, entity)
		}
		i = next
	}
	return i
}

// parseBlocks разбирает секцию BLOCKS, возвращает индекс ее ENDSEC.
func (d *Document) parseBlocks(start int) int {
	i := start
	var current *Block

	for i < len(d.Tags) {
		if d.Tags[i].Code != 0 {
			i++
			continue
		}

		switch strings.ToUpper(d.Tags[i].Value) {
		case "ENDSEC":
			return i
		case "BLOCK":
			current = &Block{}
			j := i + 1
			for j < len(d.Tags) && d.Tags[j].Code != 0 {
				switch d.Tags[j].Code {
				case 2:
					current.Name = strings.ToUpper(d.Tags[j].AsString())
				case 10:
					current.Base[0] = d.Tags[j].AsFloat()
				case 20:
					current.Base[1] = d.Tags[j].AsFloat()
				}
				j++
			}
			if current.Name != "" {
				d.Blocks[current.Name] = current
			}
			i = j
		case "ENDBLK":
			current = nil
			_, i = parseEntity(d.Tags, i)
		default:
			entity, next := parseEntity(d.Tags, i)
			if entity != nil && current != nil {
				current.Entities = append(current.Entities, entity)
			}
			i = next
		}
	}
	return i
}
