package toml

import (
	"fmt"

	"github.com/bnema/ctxplay/internal/domain"
)

const currentSchemaVersion = 1

type fileSchema struct {
	Version  int             `toml:"version"`
	Title    string          `toml:"title,omitempty"`
	Messages []messageSchema `toml:"messages"`
}

func (s *fileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentSchemaVersion
	}
}

func (s fileSchema) validateVersion() error {
	if s.Version > currentSchemaVersion {
		return fmt.Errorf("unsupported script schema version %d (current %d)", s.Version, currentSchemaVersion)
	}

	return nil
}

type messageSchema struct {
	Role       string            `toml:"role"`
	Content    string            `toml:"content"`
	Tokens     float64           `toml:"tokens"`
	Attachment *attachmentSchema `toml:"attachment,omitempty"`
}

type attachmentSchema struct {
	Name   string  `toml:"name"`
	Tokens float64 `toml:"tokens"`
}

func toSchema(doc domain.ScriptDocument) fileSchema {
	file := fileSchema{
		Version:  currentSchemaVersion,
		Title:    doc.Title,
		Messages: make([]messageSchema, 0, len(doc.Messages)),
	}
	for _, message := range doc.Messages {
		entry := messageSchema{
			Role:    string(message.Role),
			Content: message.Text(),
			Tokens:  message.TokenWeight,
		}
		if message.Attachment != nil {
			entry.Attachment = &attachmentSchema{
				Name:   message.Attachment.Name,
				Tokens: message.Attachment.TokenWeight,
			}
		}
		file.Messages = append(file.Messages, entry)
	}
	return file
}

func fromSchema(file fileSchema, source string) domain.ScriptDocument {
	doc := domain.ScriptDocument{
		Title:    file.Title,
		Source:   source,
		Messages: make([]domain.Message, 0, len(file.Messages)),
	}
	for _, entry := range file.Messages {
		var attachment *domain.Attachment
		if entry.Attachment != nil {
			attachment = &domain.Attachment{Name: entry.Attachment.Name, TokenWeight: entry.Attachment.Tokens}
		}
		doc.Messages = append(doc.Messages, domain.NewMessage(domain.Role(entry.Role), entry.Content, entry.Tokens, attachment))
	}
	return doc
}
