package application

import (
	"context"
	"fmt"

	"github.com/bnema/ctxplay/internal/domain"
	"github.com/bnema/ctxplay/internal/ports"
)

type ScriptService struct {
	repo ports.ScriptRepository
}

func NewScriptService(repo ports.ScriptRepository) *ScriptService {
	return &ScriptService{repo: repo}
}

// LoadedScript is a validated script plus where it came from.
type LoadedScript struct {
	Title  string
	Source string
	Script domain.Script
}

func (s *ScriptService) Load(ctx context.Context) (LoadedScript, error) {
	doc, err := s.repo.Load(ctx)
	if err != nil {
		return LoadedScript{}, fmt.Errorf("load script: %w", err)
	}

	script, err := domain.NewScript(doc.Messages...)
	if err != nil {
		return LoadedScript{}, fmt.Errorf("validate script %s: %w", doc.Source, err)
	}

	return LoadedScript{
		Title:  doc.Title,
		Source: doc.Source,
		Script: script,
	}, nil
}

// OutlineEntry is the projected state after one message has been fully played.
type OutlineEntry struct {
	Index      int
	Role       domain.Role
	Words      int
	Units      int
	Weight     float64
	Attachment *domain.Attachment
	Cumulative float64
	Capacity   domain.Capacity
}

// Outline projects capacity message by message without running playback.
func Outline(script domain.Script, limit float64) []OutlineEntry {
	entries := make([]OutlineEntry, 0, script.Len())
	var cumulative float64
	units := 0
	for i, message := range script.Messages() {
		cumulative += message.TokenWeight
		units += message.UnitCount()
		entries = append(entries, OutlineEntry{
			Index:      i + 1,
			Role:       message.Role,
			Words:      message.WordCount(),
			Units:      units,
			Weight:     message.TokenWeight,
			Attachment: message.Attachment,
			Cumulative: cumulative,
			Capacity:   domain.Capacity{Consumed: cumulative, Limit: limit},
		})
	}
	return entries
}
