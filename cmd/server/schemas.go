package main

import (
	"embed"
	"fmt"

	"github.com/lumenpulse/apikit/pkg/validator"
)

//go:embed schemas/*.yaml
var schemaFiles embed.FS

type schemas struct {
	register  validator.Schema
	article   validator.Schema
	articleID validator.Schema
	search    validator.Schema
	metadata  validator.Schema
}

func loadSchemas() (schemas, error) {
	var s schemas
	targets := []struct {
		file string
		dst  *validator.Schema
	}{
		{"schemas/register.yaml", &s.register},
		{"schemas/article.yaml", &s.article},
		{"schemas/article_id.yaml", &s.articleID},
		{"schemas/search.yaml", &s.search},
		{"schemas/metadata.yaml", &s.metadata},
	}
	for _, t := range targets {
		schema, err := validator.LoadSchema(schemaFiles, t.file)
		if err != nil {
			return schemas{}, fmt.Errorf("load %s: %w", t.file, err)
		}
		*t.dst = schema
	}
	return s, nil
}
